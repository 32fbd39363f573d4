// Package action is the GitHub Actions surface of pathwatch.
//
// It reads the declared inputs (INPUT_PATH, INPUT_BEFORE, INPUT_AFTER) and
// the runner environment (GITHUB_OUTPUT, GITHUB_WORKSPACE) through an
// injected [Lookup], and appends the single `changed=<bool>` line to the
// step-output file. The lookup indirection lets tests run against a plain
// map instead of mutating the real process environment.
package action
