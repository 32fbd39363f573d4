package action

import (
	"fmt"
	"os"
	"strings"
)

// Environment keys defined by the Actions runner.
const (
	EnvInputPath   = "INPUT_PATH"
	EnvInputBefore = "INPUT_BEFORE"
	EnvInputAfter  = "INPUT_AFTER"
	EnvOutputFile  = "GITHUB_OUTPUT"
	EnvWorkspace   = "GITHUB_WORKSPACE"
)

// Lookup resolves one environment key. Production code passes os.Getenv.
type Lookup func(key string) string

// Inputs holds the action's declared inputs, whitespace-trimmed.
type Inputs struct {
	Path   string
	Before string
	After  string
}

// ReadInputs gathers the declared inputs via lookup.
func ReadInputs(lookup Lookup) Inputs {
	return Inputs{
		Path:   strings.TrimSpace(lookup(EnvInputPath)),
		Before: strings.TrimSpace(lookup(EnvInputBefore)),
		After:  strings.TrimSpace(lookup(EnvInputAfter)),
	}
}

// OutputPath returns the file the runner collects step outputs from.
// An unset GITHUB_OUTPUT is unrecoverable: there is nowhere to report the
// decision.
func OutputPath(lookup Lookup) (string, error) {
	p := strings.TrimSpace(lookup(EnvOutputFile))
	if p == "" {
		return "", fmt.Errorf("%s is not set", EnvOutputFile)
	}
	return p, nil
}

// Workspace resolves the repository checkout directory: the override if
// given, else GITHUB_WORKSPACE, else the process working directory. The
// result must exist and be a directory, since every git subprocess runs
// inside it.
func Workspace(lookup Lookup, override string) (string, error) {
	dir := strings.TrimSpace(override)
	if dir == "" {
		dir = strings.TrimSpace(lookup(EnvWorkspace))
	}
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolving working directory: %w", err)
		}
		dir = wd
	}
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("workspace %s: %w", dir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("workspace %s is not a directory", dir)
	}
	return dir, nil
}

// WriteChanged appends exactly one `changed=<bool>` line to the output file.
// Append semantics keep outputs written by earlier steps in the same job
// intact.
func WriteChanged(path string, changed bool) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening output file: %w", err)
	}
	if _, err := fmt.Fprintf(f, "changed=%t\n", changed); err != nil {
		f.Close()
		return fmt.Errorf("writing output: %w", err)
	}
	return f.Close()
}
