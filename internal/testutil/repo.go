package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
)

// changesFile is rewritten on every commit so no commit is empty.
const changesFile = "CHANGES"

// baseTime is the author time of the first commit; each later commit is one minute newer.
var baseTime = time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)

// TestRepo is a throwaway git repository with a deterministic history.
type TestRepo struct {
	Repo *git.Repository
	FS   billy.Filesystem
	// Dir is the worktree path of a disk repository, empty in memory.
	Dir string

	t       *testing.T
	commits int
}

// NewMemoryRepo initializes an empty repository backed by memory storage and a memfs worktree.
func NewMemoryRepo(t *testing.T) *TestRepo {
	t.Helper()

	fs := memfs.New()
	repo, err := git.Init(memory.NewStorage(), fs)
	if err != nil {
		t.Fatalf("initializing memory repository: %v", err)
	}
	return &TestRepo{Repo: repo, FS: fs, t: t}
}

// NewDiskRepo initializes an empty repository in a temporary directory so
// the git binary can read it too.
func NewDiskRepo(t *testing.T) *TestRepo {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("initializing repository in %s: %v", dir, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("getting worktree: %v", err)
	}
	return &TestRepo{Repo: repo, FS: wt.Filesystem, Dir: dir, t: t}
}

// NewMemoryRepoWithCommits initializes a repository and commits messages in order,
// so the last message ends up at HEAD.
func NewMemoryRepoWithCommits(t *testing.T, messages ...string) *TestRepo {
	t.Helper()

	r := NewMemoryRepo(t)
	for _, msg := range messages {
		r.Commit(msg)
	}
	return r
}

// Commit records a commit with the given message and returns its hash.
func (r *TestRepo) Commit(message string) plumbing.Hash {
	r.t.Helper()

	wt, err := r.Repo.Worktree()
	if err != nil {
		r.t.Fatalf("getting worktree: %v", err)
	}

	r.commits++
	f, err := r.FS.Create(changesFile)
	if err != nil {
		r.t.Fatalf("creating %s: %v", changesFile, err)
	}
	if _, err := fmt.Fprintf(f, "%d\n%s\n", r.commits, message); err != nil {
		r.t.Fatalf("writing %s: %v", changesFile, err)
	}
	if err := f.Close(); err != nil {
		r.t.Fatalf("closing %s: %v", changesFile, err)
	}

	if _, err := wt.Add(changesFile); err != nil {
		r.t.Fatalf("staging %s: %v", changesFile, err)
	}

	when := baseTime.Add(time.Duration(r.commits) * time.Minute)
	sig := &object.Signature{Name: "Test User", Email: "test@test.com", When: when}
	hash, err := wt.Commit(message, &git.CommitOptions{Author: sig, Committer: sig})
	if err != nil {
		r.t.Fatalf("committing %q: %v", message, err)
	}
	return hash
}

// Tag creates a lightweight tag pointing at hash.
func (r *TestRepo) Tag(name string, hash plumbing.Hash) {
	r.t.Helper()

	if _, err := r.Repo.CreateTag(name, hash, nil); err != nil {
		r.t.Fatalf("creating tag %s: %v", name, err)
	}
}

// ShortHash returns the 7-character abbreviation of hash.
func ShortHash(hash plumbing.Hash) string {
	return hash.String()[:7]
}
