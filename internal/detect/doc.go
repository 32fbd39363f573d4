// Package detect implements the change decision at the heart of pathwatch.
//
// Given the list of file paths git reports as changed between two refs, it
// answers one question: is any of them the target path, or nested under it?
// The prefix test is segment-aware — target "foo" matches "foo" and
// "foo/bar.go" but never "foo2" — which is the correctness property the whole
// tool hangs on.
//
// The package also owns the all-zero object hash sentinel and the
// short-circuit rule: when there is no usable "before" ref the decision is
// "changed" without consulting git at all.
package detect
