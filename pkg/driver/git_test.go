package driver

import (
	"io/fs"
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
		t.Fatalf("PlainInit: %v", err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	if err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == filepath.Join(dir, ".git") {
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
	}); err != nil {
		t.Fatalf("stage files: %v", err)
	}
	hash, err := worktree.Commit("init", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "calc",
			Email: "calc@example.com",
			When:  time.Now(),
		},
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	return hash.String()
}

func TestGitFetcherLoad(t *testing.T) {
	repoDir := t.TempDir()
	writeFile(t, filepath.Join(repoDir, "programs", "hello.calc"), "println \"hi\"\n")
	commit := initGitRepo(t, repoDir)

	fetcher := NewGitFetcher(t.TempDir())
	src, err := fetcher.Load(GitSpec{URL: repoDir}, "programs/hello.calc")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if src.Text != "println \"hi\"\n" {
		t.Fatalf("unexpected text %q", src.Text)
	}
	wantName := repoDir + "@" + commit[:12] + ":programs/hello.calc"
	if src.Name != wantName {
		t.Fatalf("source name = %q, want %q", src.Name, wantName)
	}

	branch, err := fetcher.Load(GitSpec{URL: repoDir, Branch: "master"}, "programs/hello.calc")
	if err != nil {
		t.Fatalf("load branch: %v", err)
	}
	if branch.Text != src.Text {
		t.Fatalf("branch checkout differs: %q", branch.Text)
	}
}

func TestGitFetcherReusesPinnedCheckout(t *testing.T) {
	repoDir := t.TempDir()
	writeFile(t, filepath.Join(repoDir, "main.calc"), "print 1\n")
	commit := initGitRepo(t, repoDir)

	fetcher := NewGitFetcher(t.TempDir())
	first, got, err := fetcher.Checkout(GitSpec{URL: repoDir, Rev: commit})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if got != commit {
		t.Fatalf("commit = %s, want %s", got, commit)
	}
	if err := os.RemoveAll(repoDir); err != nil {
		t.Fatalf("remove origin: %v", err)
	}
	second, _, err := fetcher.Checkout(GitSpec{URL: repoDir, Rev: commit})
	if err != nil {
		t.Fatalf("cached checkout: %v", err)
	}
	if first != second {
		t.Fatalf("expected cached dir %s, got %s", first, second)
	}
}

func TestGitFetcherStaysInsideCheckout(t *testing.T) {
	repoDir := t.TempDir()
	writeFile(t, filepath.Join(repoDir, "main.calc"), "print 1\n")
	initGitRepo(t, repoDir)

	fetcher := NewGitFetcher(t.TempDir())
	src, err := fetcher.Load(GitSpec{URL: repoDir}, "../../main.calc")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !strings.HasSuffix(src.Name, ":main.calc") {
		t.Fatalf("unexpected name %q", src.Name)
	}
}

func TestGitFetcherErrors(t *testing.T) {
	var nilFetcher *GitFetcher
	if _, _, err := nilFetcher.Checkout(GitSpec{URL: "x"}); err == nil {
		t.Fatalf("expected error from nil fetcher")
	}
	if NewGitFetcher("") != nil {
		t.Fatalf("expected nil fetcher for empty cache dir")
	}
	fetcher := NewGitFetcher(t.TempDir())
	if _, _, err := fetcher.Checkout(GitSpec{}); err == nil {
		t.Fatalf("expected error for empty URL")
	}
	if _, _, err := fetcher.Checkout(GitSpec{URL: filepath.Join(t.TempDir(), "nope")}); err == nil {
		t.Fatalf("expected clone error")
	}
	for _, rev := range []string{".", ".."} {
		dir, _, err := fetcher.Checkout(GitSpec{URL: filepath.Join(t.TempDir(), "unreachable.git"), Rev: rev})
		if err == nil {
			t.Fatalf("rev %q: expected error, got checkout %s", rev, dir)
		}
	}
}

func TestGitFetcherRejectsDotRevisions(t *testing.T) {
	cache := t.TempDir()
	fetcher := NewGitFetcher(cache)

	other := t.TempDir()
	writeFile(t, filepath.Join(other, "main.calc"), "print 666\n")
	initGitRepo(t, other)
	if _, err := fetcher.Load(GitSpec{URL: other}, "main.calc"); err != nil {
		t.Fatalf("load other repository: %v", err)
	}

	repoDir := t.TempDir()
	writeFile(t, filepath.Join(repoDir, "main.calc"), "print 1\n")
	initGitRepo(t, repoDir)
	for _, rev := range []string{".", ".."} {
		if src, err := fetcher.Load(GitSpec{URL: repoDir, Rev: rev}, "main.calc"); err == nil {
			t.Fatalf("rev %q: expected resolve error, loaded %s", rev, src.Name)
		}
	}
}

func TestGitFetcherReusesAbbreviatedRevision(t *testing.T) {
	repoDir := t.TempDir()
	writeFile(t, filepath.Join(repoDir, "main.calc"), "print 1\n")
	commit := initGitRepo(t, repoDir)

	fetcher := NewGitFetcher(t.TempDir())
	short := commit[:8]
	first, got, err := fetcher.Checkout(GitSpec{URL: repoDir, Rev: short})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if got != commit || filepath.Base(first) != short+"@"+commit {
		t.Fatalf("unexpected checkout %s at %s", first, got)
	}
	if err := os.RemoveAll(repoDir); err != nil {
		t.Fatalf("remove origin: %v", err)
	}
	second, got, err := fetcher.Checkout(GitSpec{URL: repoDir, Rev: short})
	if err != nil {
		t.Fatalf("cached checkout: %v", err)
	}
	if second != first || got != commit {
		t.Fatalf("expected cached %s at %s, got %s at %s", first, commit, second, got)
	}
}

func TestIsCommitish(t *testing.T) {
	cases := map[string]bool{
		"abc":                                      false,
		"abcd":                                     true,
		"ABCDEF12":                                 true,
		"2fd4e1c67a2d28fced849ee1bb76e7391b93eb12": true,
		"main":                                     false,
		"..":                                       false,
		"v1.0":                                     false,
	}
	for in, want := range cases {
		if got := isCommitish(in); got != want {
			t.Errorf("isCommitish(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv(HomeEnv, "/tmp/calc-cache")
	dir, err := CacheDir()
	if err != nil || dir != "/tmp/calc-cache" {
		t.Fatalf("CacheDir() = %q, %v", dir, err)
	}
	t.Setenv(HomeEnv, "")
	dir, err = CacheDir()
	if err != nil {
		t.Fatalf("CacheDir: %v", err)
	}
	if filepath.Base(dir) != ".calc" {
		t.Fatalf("unexpected default cache dir %q", dir)
	}
}

func TestSanitizePathSegment(t *testing.T) {
	cases := map[string]string{
		"https://example.com/a.git": "https___example.com_a.git",
		"v1.0@abc":                  "v1.0_abc",
		"  ":                        "head",
		".":                         "_",
		"..":                        "__",
		"...":                       "___",
		"a..b":                      "a..b",
	}
	for in, want := range cases {
		if got := sanitizePathSegment(in); got != want {
			t.Errorf("sanitizePathSegment(%q) = %q, want %q", in, got, want)
		}
	}
}
