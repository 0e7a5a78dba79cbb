package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// HomeEnv overrides the cache root used for fetched sources.
const HomeEnv = "CALC_HOME"

// CacheDir returns $CALC_HOME, or ~/.calc when unset.
func CacheDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(HomeEnv)); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".calc"), nil
}

// GitSpec names a repository and the revision to check out. At most one of
// Rev, Tag and Branch should be set; none means the remote HEAD.
type GitSpec struct {
	URL    string
	Rev    string
	Tag    string
	Branch string
}

func (s GitSpec) revision() (plumbing.Revision, string) {
	if rev := strings.TrimSpace(s.Rev); rev != "" {
		return plumbing.Revision(rev), rev
	}
	if tag := strings.TrimSpace(s.Tag); tag != "" {
		return plumbing.Revision("refs/tags/" + tag), tag
	}
	if branch := strings.TrimSpace(s.Branch); branch != "" {
		return plumbing.Revision("refs/remotes/origin/" + branch), branch
	}
	return plumbing.Revision("HEAD"), ""
}

// GitFetcher clones repositories into a cache, one directory per pinned
// revision.
type GitFetcher struct {
	cacheDir string
}

func NewGitFetcher(cacheDir string) *GitFetcher {
	if cacheDir == "" {
		return nil
	}
	return &GitFetcher{cacheDir: cacheDir}
}

// Checkout makes spec available on disk and returns the checkout directory
// and the resolved commit.
func (g *GitFetcher) Checkout(spec GitSpec) (string, string, error) {
	if g == nil {
		return "", "", errors.New("git fetcher unavailable")
	}
	url := strings.TrimSpace(spec.URL)
	if url == "" {
		return "", "", errors.New("git: repository URL required")
	}
	baseDir := filepath.Join(g.cacheDir, "src", sanitizePathSegment(url))
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", "", err
	}

	revision, descriptor := spec.revision()
	if rev := strings.TrimSpace(spec.Rev); isCommitish(rev) {
		if dir, commit, ok := cachedCheckout(baseDir, rev); ok {
			return dir, commit, nil
		}
	}

	tmpDir, err := os.MkdirTemp(baseDir, "git-fetch-*")
	if err != nil {
		return "", "", err
	}
	if err := os.RemoveAll(tmpDir); err != nil {
		return "", "", err
	}

	repo, err := git.PlainClone(tmpDir, false, &git.CloneOptions{URL: url})
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("git clone %s: %w", url, err)
	}
	hash, err := repo.ResolveRevision(revision)
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("resolve revision %s: %w", revision, err)
	}

	commit := hash.String()
	version := pinnedVersion(descriptor, commit)
	targetDir := filepath.Join(baseDir, sanitizePathSegment(version))
	if _, err := os.Stat(targetDir); err == nil {
		_ = os.RemoveAll(tmpDir)
		return targetDir, commit, nil
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
	return targetDir, commit, nil
}

// Load checks out spec and reads the program at path inside the repository.
func (g *GitFetcher) Load(spec GitSpec, path string) (*Source, error) {
	dir, commit, err := g.Checkout(spec)
	if err != nil {
		return nil, err
	}
	rel := filepath.Clean(string(filepath.Separator) + path)
	src, err := LoadFile(filepath.Join(dir, rel))
	if err != nil {
		return nil, err
	}
	src.Name = fmt.Sprintf("%s@%s:%s", spec.URL, shortHash(commit), strings.TrimPrefix(filepath.ToSlash(rel), "/"))
	return src, nil
}

// cachedCheckout finds a checkout stored for rev, either under the full hash
// or as rev@<hash>, whose HEAD is the commit rev abbreviates.
func cachedCheckout(baseDir, rev string) (string, string, bool) {
	key := sanitizePathSegment(rev)
	candidates, _ := filepath.Glob(filepath.Join(baseDir, key+"@*"))
	candidates = append([]string{filepath.Join(baseDir, key)}, candidates...)
	for _, dir := range candidates {
		repo, err := git.PlainOpen(dir)
		if err != nil {
			continue
		}
		head, err := repo.Head()
		if err != nil {
			continue
		}
		if commit := head.Hash().String(); strings.HasPrefix(commit, strings.ToLower(rev)) {
			return dir, commit, true
		}
	}
	return "", "", false
}

// isCommitish reports whether rev looks like a full or abbreviated commit
// hash. Other revisions may move and are always resolved against the remote.
func isCommitish(rev string) bool {
	if len(rev) < 4 || len(rev) > 40 {
		return false
	}
	for _, r := range rev {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f' || r >= 'A' && r <= 'F') {
			return false
		}
	}
	return true
}

func pinnedVersion(descriptor, commit string) string {
	descriptor = strings.TrimSpace(descriptor)
	if descriptor == "" || descriptor == commit {
		return commit
	}
	return descriptor + "@" + commit
}

func shortHash(commit string) string {
	if len(commit) > 12 {
		return commit[:12]
	}
	return commit
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
	out := b.String()
	if out == "" {
		return "head"
	}
	// "." and ".." would resolve to the cache directories themselves.
	if strings.Trim(out, ".") == "" {
		return strings.Repeat("_", len(out))
	}
	return out
}
