package gitrun

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewExecClient_ToolMissing(t *testing.T) {
	orig := LookupPath
	defer func() { LookupPath = orig }()
	LookupPath = func(string) (string, error) {
		return "", exec.ErrNotFound
	}

	_, err := NewExecClient("git", "origin", ".")
	if !errors.Is(err, ErrToolMissing) {
		t.Fatalf("err = %v, want ErrToolMissing", err)
	}
}

func TestDiffError_Message(t *testing.T) {
	withStderr := &DiffError{Stderr: "fatal: bad revision 'xyz'", Err: errors.New("exit status 2")}
	if withStderr.Error() != "fatal: bad revision 'xyz'" {
		t.Errorf("Error() = %q, want git's stderr", withStderr.Error())
	}
	empty := &DiffError{Err: errors.New("exit status 2")}
	if empty.Error() != "git diff failed" {
		t.Errorf("Error() = %q, want generic fallback", empty.Error())
	}
}

func TestFetchError_Unwrap(t *testing.T) {
	underlying := errors.New("exit status 128")
	err := &FetchError{Ref: "abc123", Err: underlying}
	if !errors.Is(err, underlying) {
		t.Error("FetchError should unwrap to its underlying error")
	}
	if !strings.Contains(err.Error(), "abc123") {
		t.Errorf("Error() = %q, want ref name included", err.Error())
	}
}

// fakeClient scripts git behavior for materialization tests.
type fakeClient struct {
	objects      map[string]bool
	fetchAllErr  error
	fetchErr     map[string]error
	fetchAllHits int
	fetched      []string
	probed       []string
}

func (f *fakeClient) HasObject(_ context.Context, ref string) bool {
	f.probed = append(f.probed, ref)
	return f.objects[ref]
}

func (f *fakeClient) FetchAll(_ context.Context) error {
	f.fetchAllHits++
	return f.fetchAllErr
}

func (f *fakeClient) FetchCommit(_ context.Context, ref string) error {
	f.fetched = append(f.fetched, ref)
	return f.fetchErr[ref]
}

func (f *fakeClient) DiffNameOnly(context.Context, string, string) ([]string, error) {
	return nil, nil
}

func (f *fakeClient) MarkSafeDirectory(context.Context) error { return nil }

const (
	oidA = "a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2"
	oidB = "b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3"
)

func TestEnsureResolvable_DeepenSymbolicRef(t *testing.T) {
	f := &fakeClient{}
	if err := EnsureResolvable(context.Background(), f, StrategyDeepen, oidA, "HEAD"); err != nil {
		t.Fatalf("EnsureResolvable: %v", err)
	}
	if f.fetchAllHits != 1 {
		t.Errorf("fetchAllHits = %d, want 1", f.fetchAllHits)
	}
}

func TestEnsureResolvable_DeepenBothFullOIDs(t *testing.T) {
	f := &fakeClient{}
	if err := EnsureResolvable(context.Background(), f, StrategyDeepen, oidA, oidB); err != nil {
		t.Fatalf("EnsureResolvable: %v", err)
	}
	if f.fetchAllHits != 0 {
		t.Errorf("fetchAllHits = %d, want 0 when both refs are full hashes", f.fetchAllHits)
	}
}

func TestEnsureResolvable_DeepenFetchFailureIgnored(t *testing.T) {
	f := &fakeClient{fetchAllErr: errors.New("remote unreachable")}
	if err := EnsureResolvable(context.Background(), f, StrategyDeepen, "HEAD~3", "HEAD"); err != nil {
		t.Fatalf("deepen fetch failure should not abort, got %v", err)
	}
}

func TestEnsureResolvable_TargetedFetchesOnlyMissing(t *testing.T) {
	f := &fakeClient{
		objects:  map[string]bool{oidA: true},
		fetchErr: map[string]error{},
	}
	if err := EnsureResolvable(context.Background(), f, StrategyTargeted, oidA, oidB); err != nil {
		t.Fatalf("EnsureResolvable: %v", err)
	}
	if len(f.fetched) != 1 || f.fetched[0] != oidB {
		t.Errorf("fetched = %v, want only %s", f.fetched, oidB)
	}
}

func TestEnsureResolvable_TargetedFetchFailureFatal(t *testing.T) {
	f := &fakeClient{
		objects:  map[string]bool{},
		fetchErr: map[string]error{oidA: errors.New("exit status 128")},
	}
	err := EnsureResolvable(context.Background(), f, StrategyTargeted, oidA, oidB)
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want *FetchError", err)
	}
	if fe.Ref != oidA {
		t.Errorf("FetchError.Ref = %q, want %q", fe.Ref, oidA)
	}
}

// setupRepo builds a two-commit repository and returns its dir plus both
// commit hashes.
func setupRepo(t *testing.T) (dir, first, second string) {
	t.Helper()
	dir = t.TempDir()
	run := func(args ...string) string {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
			"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
		)
		out, err := cmd.CombinedOutput()
		if err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
		return strings.TrimSpace(string(out))
	}

	run("init", "-q")
	if err := os.MkdirAll(filepath.Join(dir, "src", "api"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("readme\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	run("add", ".")
	run("commit", "-q", "-m", "initial")
	first = run("rev-parse", "HEAD")

	if err := os.WriteFile(filepath.Join(dir, "src", "api", "handler.go"), []byte("package api\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	run("add", ".")
	run("commit", "-q", "-m", "add handler")
	second = run("rev-parse", "HEAD")
	return dir, first, second
}

func TestExecClient_DiffNameOnly(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir, first, second := setupRepo(t)

	c := &ExecClient{GitPath: "git", Remote: "origin", Dir: dir}
	files, err := c.DiffNameOnly(context.Background(), first, second)
	if err != nil {
		t.Fatalf("DiffNameOnly: %v", err)
	}
	if len(files) != 1 || files[0] != "src/api/handler.go" {
		t.Errorf("files = %v, want [src/api/handler.go]", files)
	}
}

func TestExecClient_DiffNameOnly_BadRevision(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir, _, second := setupRepo(t)

	c := &ExecClient{GitPath: "git", Remote: "origin", Dir: dir}
	_, err := c.DiffNameOnly(context.Background(), "xyz", second)
	var de *DiffError
	if !errors.As(err, &de) {
		t.Fatalf("err = %v, want *DiffError", err)
	}
	if !strings.Contains(de.Stderr, "bad revision") && !strings.Contains(de.Stderr, "xyz") {
		t.Errorf("Stderr = %q, want git's own diagnostic", de.Stderr)
	}
}

func TestExecClient_HasObject(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir, first, _ := setupRepo(t)

	c := &ExecClient{GitPath: "git", Remote: "origin", Dir: dir}
	if !c.HasObject(context.Background(), first) {
		t.Errorf("HasObject(%s) = false, want true", first)
	}
	if c.HasObject(context.Background(), strings.Repeat("d", 40)) {
		t.Error("HasObject of unknown hash = true, want false")
	}
}
