package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// GitSource identifies a script inside a git repository.
type GitSource struct {
	URL  string
	Ref  string
	Path string
}

// ParseGitSource parses `git+<url>[@<ref>]#<path>`. The ref separator is the
// last `@` that follows a `/` in the URL, so scp-style remotes such as
// git@host:repo.git parse without a ref.
func ParseGitSource(spec string) (GitSource, error) {
	rest, ok := strings.CutPrefix(spec, "git+")
	if !ok {
		return GitSource{}, fmt.Errorf("source: %q is not a git source", spec)
	}
	hash := strings.LastIndex(rest, "#")
	if hash < 0 || strings.TrimSpace(rest[hash+1:]) == "" {
		return GitSource{}, fmt.Errorf("source: %q is missing #<path>", spec)
	}
	src := GitSource{Path: strings.TrimSpace(rest[hash+1:])}
	rest = rest[:hash]
	if at := strings.LastIndex(rest, "@"); at >= 0 && hasPathBefore(rest[:at]) {
		src.Ref = strings.TrimSpace(rest[at+1:])
		rest = rest[:at]
	}
	src.URL = strings.TrimSpace(rest)
	if src.URL == "" {
		return GitSource{}, fmt.Errorf("source: %q is missing a repository URL", spec)
	}
	if filepath.IsAbs(src.Path) || strings.HasPrefix(filepath.Clean(src.Path), "..") {
		return GitSource{}, fmt.Errorf("source: path %q must stay inside the repository", src.Path)
	}
	return src, nil
}

func hasPathBefore(prefix string) bool {
	if _, after, ok := strings.Cut(prefix, "://"); ok {
		prefix = after
	}
	return strings.Contains(prefix, "/")
}

// GitFetcher clones script repositories into a cache directory, one checkout
// per resolved commit.
type GitFetcher struct {
	Root string
}

// NewGitFetcher returns a fetcher rooted at cacheDir, or at the default cache
// when cacheDir is empty.
func NewGitFetcher(cacheDir string) (*GitFetcher, error) {
	if cacheDir == "" {
		home, err := DefaultCacheRoot()
		if err != nil {
			return nil, err
		}
		cacheDir = home
	}
	abs, err := filepath.Abs(cacheDir)
	if err != nil {
		return nil, fmt.Errorf("git: resolve cache %s: %w", cacheDir, err)
	}
	return &GitFetcher{Root: abs}, nil
}

// DefaultCacheRoot returns $AISCRIPT_HOME or ~/.aiscript.
func DefaultCacheRoot() (string, error) {
	if home := strings.TrimSpace(os.Getenv("AISCRIPT_HOME")); home != "" {
		abs, err := filepath.Abs(home)
		if err != nil {
			return "", fmt.Errorf("resolve AISCRIPT_HOME %q: %w", home, err)
		}
		return abs, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home: %w", err)
	}
	return filepath.Join(userHome, ".aiscript"), nil
}

// Fetch checks out src and returns the local path of the script along with
// the resolved commit hash. Checkouts already present in the cache are reused
// when the ref is a full commit hash.
func (f *GitFetcher) Fetch(ctx context.Context, src GitSource) (string, string, error) {
	if f == nil || f.Root == "" {
		return "", "", fmt.Errorf("git fetcher not initialised")
	}
	baseDir := filepath.Join(f.Root, "git", sanitizePathSegment(src.URL))
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", "", err
	}
	if plumbing.IsHash(src.Ref) {
		existing := filepath.Join(baseDir, src.Ref)
		if _, err := os.Stat(existing); err == nil {
			return filepath.Join(existing, src.Path), src.Ref, nil
		}
	}

	tmpDir, err := os.MkdirTemp(baseDir, "git-fetch-*")
	if err != nil {
		return "", "", err
	}
	if err := os.RemoveAll(tmpDir); err != nil {
		return "", "", err
	}

	repo, err := git.PlainCloneContext(ctx, tmpDir, false, &git.CloneOptions{
		URL:               src.URL,
		RecurseSubmodules: git.DefaultSubmoduleRecursionDepth,
	})
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("git clone %s: %w", src.URL, err)
	}

	revision := plumbing.Revision("HEAD")
	if src.Ref != "" {
		revision = plumbing.Revision(src.Ref)
	}
	hash, err := repo.ResolveRevision(revision)
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("resolve revision %s: %w", revision, err)
	}

	targetDir := filepath.Join(baseDir, hash.String())
	if _, err := os.Stat(targetDir); err == nil {
		_ = os.RemoveAll(tmpDir)
		return filepath.Join(targetDir, src.Path), hash.String(), nil
	}

	worktree, err := repo.Worktree()
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("git checkout %s: %w", revision, err)
	}
	if err := os.Rename(tmpDir, targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", err
	}
	return filepath.Join(targetDir, src.Path), hash.String(), nil
}

func sanitizePathSegment(segment string) string {
	segment = strings.TrimSpace(segment)
	var b strings.Builder
	for _, r := range segment {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	result := b.String()
	if result == "" {
		return "head"
	}
	return result
}
