package detect

import "strings"

// ZeroOID is the all-zero object hash git uses when a ref has no prior
// commit: first push to a branch, a force-push rewriting history, a deleted
// branch.
const ZeroOID = "0000000000000000000000000000000000000000"

// NormalizePath trims surrounding whitespace and trailing slashes so the
// target compares consistently against diff entries. Internal separators and
// dot segments are left alone; the target is never resolved on disk.
func NormalizePath(p string) string {
	return strings.TrimRight(strings.TrimSpace(p), "/")
}

// SkipDiff reports whether before gives us nothing to diff against, because
// it is empty or the all-zero hash. The safe answer is then "changed" —
// assuming a change costs a redundant downstream run, silently skipping one
// does not.
func SkipDiff(before string) bool {
	return before == "" || before == ZeroOID
}

// IsFullOID reports whether ref is a full 40-character hex object name, as
// opposed to a symbolic or relative revision like HEAD~3 or a branch name.
func IsFullOID(ref string) bool {
	if len(ref) != 40 {
		return false
	}
	for _, c := range ref {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// PathChanged reports whether any entry in files equals target or sits under
// it. Entries are trimmed and blank lines skipped; the scan stops at the
// first match. The prefix must end on a path segment, so "foo2" does not
// match target "foo".
func PathChanged(files []string, target string) bool {
	prefix := target + "/"
	for _, f := range files {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if f == target || strings.HasPrefix(f, prefix) {
			return true
		}
	}
	return false
}
