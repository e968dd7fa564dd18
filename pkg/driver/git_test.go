package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

func initGitRepo(t *testing.T, dir string) string {
	t.Helper()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("git init: %v", err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("worktree: %v", err)
	}
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		_, err = worktree.Add(filepath.ToSlash(rel))
		return err
	})
	if err != nil {
		t.Fatalf("git add: %v", err)
	}
	hash, err := worktree.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "tester@example.com", When: time.Now()},
	})
	if err != nil {
		t.Fatalf("git commit: %v", err)
	}
	return hash.String()
}

func TestParseGitSource(t *testing.T) {
	cases := []struct {
		spec string
		want GitSource
	}{
		{"git+https://example.com/scripts.git#main.is", GitSource{URL: "https://example.com/scripts.git", Path: "main.is"}},
		{"git+https://example.com/scripts.git@v1#lib/a.is", GitSource{URL: "https://example.com/scripts.git", Ref: "v1", Path: "lib/a.is"}},
		{"git+git@example.com:me/scripts.git#main.is", GitSource{URL: "git@example.com:me/scripts.git", Path: "main.is"}},
		{"git+git@example.com:me/scripts.git@refs/heads/dev#main.is", GitSource{URL: "git@example.com:me/scripts.git", Ref: "refs/heads/dev", Path: "main.is"}},
		{"git+ssh://git@example.com/scripts#main.is", GitSource{URL: "ssh://git@example.com/scripts", Path: "main.is"}},
		{"git+/tmp/repo@abc123#x.is", GitSource{URL: "/tmp/repo", Ref: "abc123", Path: "x.is"}},
	}
	for _, tc := range cases {
		got, err := ParseGitSource(tc.spec)
		if err != nil {
			t.Fatalf("ParseGitSource(%q) returned error: %v", tc.spec, err)
		}
		if got != tc.want {
			t.Fatalf("ParseGitSource(%q) = %+v, want %+v", tc.spec, got, tc.want)
		}
	}
}

func TestParseGitSourceRejectsMalformedSpecs(t *testing.T) {
	for _, spec := range []string{
		"https://example.com/r.git#a.is",
		"git+https://example.com/r.git",
		"git+https://example.com/r.git#",
		"git+#a.is",
		"git+https://example.com/r.git#../escape.is",
	} {
		if _, err := ParseGitSource(spec); err == nil {
			t.Fatalf("expected ParseGitSource(%q) to fail", spec)
		}
	}
}

func TestGitFetcherChecksOutScript(t *testing.T) {
	repoDir := t.TempDir()
	writeFile(t, filepath.Join(repoDir, "scripts", "hello.is"), "<: \"hello from git\"\n")
	commit := initGitRepo(t, repoDir)

	fetcher, err := NewGitFetcher(t.TempDir())
	if err != nil {
		t.Fatalf("NewGitFetcher: %v", err)
	}
	path, resolved, err := fetcher.Fetch(context.Background(), GitSource{URL: repoDir, Path: "scripts/hello.is"})
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if resolved != commit {
		t.Fatalf("resolved %s, want %s", resolved, commit)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read checkout: %v", err)
	}
	if !strings.Contains(string(data), "hello from git") {
		t.Fatalf("unexpected script contents %q", data)
	}

	// A pinned commit reuses the cached checkout.
	again, _, err := fetcher.Fetch(context.Background(), GitSource{URL: repoDir, Ref: commit, Path: "scripts/hello.is"})
	if err != nil {
		t.Fatalf("second Fetch returned error: %v", err)
	}
	if again != path {
		t.Fatalf("expected cached path %s, got %s", path, again)
	}
}

func TestGitFetcherUnknownRevision(t *testing.T) {
	repoDir := t.TempDir()
	writeFile(t, filepath.Join(repoDir, "main.is"), "1\n")
	initGitRepo(t, repoDir)

	fetcher := &GitFetcher{Root: t.TempDir()}
	_, _, err := fetcher.Fetch(context.Background(), GitSource{URL: repoDir, Ref: "refs/tags/missing", Path: "main.is"})
	if err == nil || !strings.Contains(err.Error(), "resolve revision") {
		t.Fatalf("expected revision error, got %v", err)
	}
}

func TestDefaultCacheRootHonoursEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("AISCRIPT_HOME", dir)
	got, err := DefaultCacheRoot()
	if err != nil {
		t.Fatalf("DefaultCacheRoot: %v", err)
	}
	if got != dir {
		t.Fatalf("DefaultCacheRoot = %q, want %q", got, dir)
	}
}
