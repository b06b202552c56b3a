// Package gittest provides test utilities for the git package.
package gittest

import (
	"testing"
	"time"

	"github.com/go-git/go-billy/v6"
	"github.com/go-git/go-billy/v6/memfs"
	gogit "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/config"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/cache"
	"github.com/go-git/go-git/v6/plumbing/filemode"
	"github.com/go-git/go-git/v6/plumbing/format/index"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/go-git/go-git/v6/storage/filesystem"
	"github.com/schmitthub/gitprompt/internal/git"
	"github.com/stretchr/testify/require"
)

// InMemoryGitManager wraps *git.GitManager with test-only mutators.
// The underlying repository uses in-memory storage (memfs).
type InMemoryGitManager struct {
	*git.GitManager
	repo     *gogit.Repository
	worktree billy.Filesystem
}

// NewInMemoryGitManager creates a GitManager backed by in-memory storage.
// The repoRoot is a logical path (not a real filesystem path).
//
// The repository is seeded with an initial commit on master so HEAD exists.
func NewInMemoryGitManager(t *testing.T, repoRoot string) *InMemoryGitManager {
	t.Helper()

	m := NewUnbornGitManager(t, repoRoot)
	m.WriteFile(t, "README.md", "# Test Repository\n")
	m.Commit(t, "Initial commit", "README.md")
	return m
}

// NewUnbornGitManager creates an in-memory repository with no commits.
// HEAD is a symbolic ref to refs/heads/master that does not resolve yet.
func NewUnbornGitManager(t *testing.T, repoRoot string) *InMemoryGitManager {
	t.Helper()

	dotGitFS := memfs.New()
	worktreeFS := memfs.New()

	storer := filesystem.NewStorage(dotGitFS, cache.NewObjectLRUDefault())

	repo, err := gogit.Init(storer, gogit.WithWorkTree(worktreeFS))
	require.NoError(t, err, "failed to init in-memory repo")

	return &InMemoryGitManager{
		GitManager: git.NewGitManagerWithRepo(repo, repoRoot),
		repo:       repo,
		worktree:   worktreeFS,
	}
}

// Repository returns the underlying go-git Repository for test assertions.
func (m *InMemoryGitManager) Repository() *gogit.Repository {
	return m.repo
}

// WriteFile creates or truncates a worktree file.
func (m *InMemoryGitManager) WriteFile(t *testing.T, name, content string) {
	t.Helper()

	f, err := m.worktree.Create(name)
	require.NoError(t, err, "failed to create %s", name)
	_, err = f.Write([]byte(content))
	require.NoError(t, err, "failed to write %s", name)
	require.NoError(t, f.Close(), "failed to close %s", name)
}

// RemoveFile deletes a worktree file.
func (m *InMemoryGitManager) RemoveFile(t *testing.T, name string) {
	t.Helper()
	require.NoError(t, m.worktree.Remove(name), "failed to remove %s", name)
}

// Stage adds the given paths to the index.
func (m *InMemoryGitManager) Stage(t *testing.T, paths ...string) {
	t.Helper()

	wt, err := m.repo.Worktree()
	require.NoError(t, err, "failed to get worktree")
	for _, p := range paths {
		_, err = wt.Add(p)
		require.NoError(t, err, "failed to add %s", p)
	}
}

// Commit stages the given paths and commits them, returning the new hash.
func (m *InMemoryGitManager) Commit(t *testing.T, msg string, paths ...string) plumbing.Hash {
	t.Helper()

	m.Stage(t, paths...)

	wt, err := m.repo.Worktree()
	require.NoError(t, err, "failed to get worktree")

	hash, err := wt.Commit(msg, &gogit.CommitOptions{
		AllowEmptyCommits: true,
		Author: &object.Signature{
			Name:  "Test User",
			Email: "test@example.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err, "failed to commit %q", msg)
	return hash
}

// SetRef points a reference directly at a commit.
func (m *InMemoryGitManager) SetRef(t *testing.T, name plumbing.ReferenceName, hash plumbing.Hash) {
	t.Helper()
	require.NoError(t, m.repo.Storer.SetReference(plumbing.NewHashReference(name, hash)))
}

// CheckoutBranch points HEAD at refs/heads/<branch> without touching the
// worktree. The branch ref is created at the current HEAD commit when missing.
func (m *InMemoryGitManager) CheckoutBranch(t *testing.T, branch string) {
	t.Helper()

	name := plumbing.NewBranchReferenceName(branch)
	if _, err := m.repo.Reference(name, false); err != nil {
		head, err := m.repo.Head()
		require.NoError(t, err, "checkout of a new branch needs a commit")
		m.SetRef(t, name, head.Hash())
	}
	require.NoError(t, m.repo.Storer.SetReference(plumbing.NewSymbolicReference(plumbing.HEAD, name)))
}

// Detach points HEAD directly at the given commit.
func (m *InMemoryGitManager) Detach(t *testing.T, hash plumbing.Hash) {
	t.Helper()
	m.SetRef(t, plumbing.HEAD, hash)
}

// TrackRemote configures branch to track <remote>/<branch> and creates the
// remote with its default fetch refspec if needed.
func (m *InMemoryGitManager) TrackRemote(t *testing.T, branch, remote string) {
	t.Helper()

	if _, err := m.repo.Remote(remote); err != nil {
		_, err = m.repo.CreateRemote(&config.RemoteConfig{
			Name: remote,
			URLs: []string{"https://example.com/" + remote + ".git"},
		})
		require.NoError(t, err, "failed to create remote %s", remote)
	}

	err := m.repo.CreateBranch(&config.Branch{
		Name:   branch,
		Remote: remote,
		Merge:  plumbing.NewBranchReferenceName(branch),
	})
	require.NoError(t, err, "failed to configure upstream for %s", branch)
}

// SetConfig sets a raw option in the repository's local configuration.
func (m *InMemoryGitManager) SetConfig(t *testing.T, section, key, value string) {
	t.Helper()

	cfg, err := m.repo.Config()
	require.NoError(t, err)
	cfg.Raw.Section(section).SetOption(key, value)
	require.NoError(t, m.repo.SetConfig(cfg))
}

// Conflict leaves path unmerged, as a merge that stopped on it would: the
// index holds "ours" and "theirs" at stages 2 and 3 and the worktree file
// carries conflict markers.
func (m *InMemoryGitManager) Conflict(t *testing.T, path, ours, theirs string) {
	t.Helper()

	require.NoError(t, StageConflict(m.repo, path, []byte(ours), []byte(theirs)))
	m.WriteFile(t, path, "<<<<<<< ours\n"+ours+"=======\n"+theirs+">>>>>>> theirs\n")
}

// StageConflict replaces any index entry for path with unmerged entries
// for ours (stage 2) and theirs (stage 3). The worktree is left alone.
func StageConflict(repo *gogit.Repository, path string, ours, theirs []byte) error {
	idx, err := repo.Storer.Index()
	if err != nil {
		return err
	}

	kept := idx.Entries[:0]
	for _, e := range idx.Entries {
		if e.Name != path {
			kept = append(kept, e)
		}
	}
	idx.Entries = kept

	for _, side := range []struct {
		stage   index.Stage
		content []byte
	}{{index.OurMode, ours}, {index.TheirMode, theirs}} {
		hash, err := writeBlob(repo, side.content)
		if err != nil {
			return err
		}
		idx.Entries = append(idx.Entries, &index.Entry{
			Name:  path,
			Hash:  hash,
			Mode:  filemode.Regular,
			Stage: side.stage,
			Size:  uint32(len(side.content)),
		})
	}
	return repo.Storer.SetIndex(idx)
}

func writeBlob(repo *gogit.Repository, content []byte) (plumbing.Hash, error) {
	obj := repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	obj.SetSize(int64(len(content)))
	w, err := obj.Writer()
	if err != nil {
		return plumbing.ZeroHash, err
	}
	if _, err := w.Write(content); err != nil {
		return plumbing.ZeroHash, err
	}
	if err := w.Close(); err != nil {
		return plumbing.ZeroHash, err
	}
	return repo.Storer.SetEncodedObject(obj)
}
