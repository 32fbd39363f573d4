// Pathwatch decides whether any file under a target path changed between two
// git refs and reports the result for conditional CI steps.
//
// It reads the target path and ref pair from the INPUT_PATH, INPUT_BEFORE and
// INPUT_AFTER environment variables (GitHub Actions input convention) and
// appends a single changed=true|false line to the file named by
// GITHUB_OUTPUT. An empty or all-zero before ref — first push, force-push —
// short-circuits to changed=true. Shallow checkouts are deepened or fetched
// on demand before the diff runs.
//
// Usage:
//
//	pathwatch check                            # inputs from the environment
//	pathwatch check --path src/api --before <sha> --after HEAD
//	pathwatch version
//
// Exit code 0 means a decision was written; any failure exits non-zero with
// a diagnostic on stderr and nothing written to the output file.
package main
