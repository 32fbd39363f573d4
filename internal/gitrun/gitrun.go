package gitrun

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrToolMissing reports that the git executable could not be found.
var ErrToolMissing = errors.New("git executable not found")

// FetchError reports a failed targeted fetch of an absent commit. It is
// fatal: without the object the diff cannot succeed.
type FetchError struct {
	Ref string
	Err error
}

func (e *FetchError) Error() string { return fmt.Sprintf("fetching %s: %v", e.Ref, e.Err) }

func (e *FetchError) Unwrap() error { return e.Err }

// DiffError reports a non-zero exit from the diff, carrying git's own stderr
// when it produced any.
type DiffError struct {
	Stderr string
	Err    error
}

func (e *DiffError) Error() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	return "git diff failed"
}

func (e *DiffError) Unwrap() error { return e.Err }

// LookupPath finds executables in PATH. It's a package variable so tests can
// stub it and avoid depending on git being installed.
var LookupPath = exec.LookPath

// Client is the git capability the decision runs against.
type Client interface {
	// HasObject reports whether ref resolves in the local object database.
	HasObject(ctx context.Context, ref string) bool
	// FetchAll fetches all remote branch tips with no depth limit.
	FetchAll(ctx context.Context) error
	// FetchCommit fetches exactly ref from the remote at depth 1.
	FetchCommit(ctx context.Context, ref string) error
	// DiffNameOnly returns the changed file paths between two refs.
	DiffNameOnly(ctx context.Context, before, after string) ([]string, error)
	// MarkSafeDirectory registers the working directory as safe for git.
	MarkSafeDirectory(ctx context.Context) error
}

// ExecClient runs git as a subprocess inside a fixed working directory.
type ExecClient struct {
	GitPath string
	Remote  string
	Dir     string
}

// NewExecClient verifies the git binary is reachable and returns a client
// bound to dir.
func NewExecClient(gitPath, remote, dir string) (*ExecClient, error) {
	if _, err := LookupPath(gitPath); err != nil {
		return nil, ErrToolMissing
	}
	return &ExecClient{GitPath: gitPath, Remote: remote, Dir: dir}, nil
}

func (c *ExecClient) command(ctx context.Context, args ...string) *exec.Cmd {
	// #nosec G204 -- arguments come from validated config and refs, never shell interpolated
	cmd := exec.CommandContext(ctx, c.GitPath, args...)
	cmd.Dir = c.Dir
	return cmd
}

// HasObject probes the local object database with cat-file.
func (c *ExecClient) HasObject(ctx context.Context, ref string) bool {
	return c.command(ctx, "cat-file", "-t", ref).Run() == nil
}

// FetchAll fetches every branch tip from the remote without a depth limit,
// so relative revisions like HEAD~3 resolve on shallow checkouts.
func (c *ExecClient) FetchAll(ctx context.Context) error {
	refspec := fmt.Sprintf("+refs/heads/*:refs/remotes/%s/*", c.Remote)
	return c.command(ctx, "fetch", "--quiet", c.Remote, refspec).Run()
}

// FetchCommit fetches exactly ref at depth 1.
func (c *ExecClient) FetchCommit(ctx context.Context, ref string) error {
	out, err := c.command(ctx, "fetch", "--quiet", "--depth=1", c.Remote, ref).CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%s: %w", msg, err)
		}
		return err
	}
	return nil
}

// DiffNameOnly runs `git diff --name-only before after` and returns the
// trimmed, non-blank lines of its output.
func (c *ExecClient) DiffNameOnly(ctx context.Context, before, after string) ([]string, error) {
	out, err := c.command(ctx, "diff", "--name-only", before, after).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &DiffError{Stderr: strings.TrimSpace(string(exitErr.Stderr)), Err: err}
		}
		if errors.Is(err, exec.ErrNotFound) {
			return nil, ErrToolMissing
		}
		return nil, fmt.Errorf("running git diff: %w", err)
	}
	var files []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		files = append(files, line)
	}
	return files, nil
}

// MarkSafeDirectory adds the working directory to git's safe.directory list.
// Container runners often check out the repo as a different user, and git
// refuses to operate on such a tree until it is marked safe.
func (c *ExecClient) MarkSafeDirectory(ctx context.Context) error {
	return c.command(ctx, "config", "--global", "--add", "safe.directory", c.Dir).Run()
}
