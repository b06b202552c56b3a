package git

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/config"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRepoOnDisk creates a real git repository in a temp directory.
func newTestRepoOnDisk(t *testing.T) (*gogit.Repository, string) {
	t.Helper()
	dir := t.TempDir()

	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err, "init test repo")

	// Seed with initial commit so HEAD exists
	wt, err := repo.Worktree()
	require.NoError(t, err)

	readme := filepath.Join(dir, "README.md")
	err = os.WriteFile(readme, []byte("# Test Repo\n"), 0644)
	require.NoError(t, err)

	_, err = wt.Add("README.md")
	require.NoError(t, err)

	_, err = wt.Commit("initial commit", &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "test",
			Email: "test@test.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)

	return repo, dir
}

func TestNewGitManager(t *testing.T) {
	t.Run("opens repo from root", func(t *testing.T) {
		_, repoDir := newTestRepoOnDisk(t)

		mgr, err := NewGitManager(repoDir)
		require.NoError(t, err)
		assert.Equal(t, repoDir, mgr.RepoRoot())
		assert.NotNil(t, mgr.Repository())
		assert.False(t, mgr.IsLinkedWorktree())
	})

	t.Run("opens repo from subdirectory", func(t *testing.T) {
		_, repoDir := newTestRepoOnDisk(t)

		subdir := filepath.Join(repoDir, "src", "pkg")
		err := os.MkdirAll(subdir, 0755)
		require.NoError(t, err)

		mgr, err := NewGitManager(subdir)
		require.NoError(t, err)
		assert.Equal(t, repoDir, mgr.RepoRoot())
	})

	t.Run("returns ErrNotRepository for non-git directory", func(t *testing.T) {
		notGitDir := t.TempDir()

		_, err := NewGitManager(notGitDir)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotRepository), "expected ErrNotRepository, got: %v", err)
	})
}

func TestGitManager_Head_OnDisk(t *testing.T) {
	repo, repoDir := newTestRepoOnDisk(t)
	mgr, err := NewGitManager(repoDir)
	require.NoError(t, err)

	want, err := repo.Head()
	require.NoError(t, err)

	head, err := mgr.Head()
	require.NoError(t, err)
	assert.True(t, head.IsBranch())
	assert.False(t, head.IsSymbolic())
	assert.Equal(t, want.Hash(), head.Hash)
	// go-git defaults to "master"
	assert.Contains(t, []string{"master", "main"}, head.ShortName())
}

func TestGitManager_Upstream_LocalBranch(t *testing.T) {
	repo, repoDir := newTestRepoOnDisk(t)
	mgr, err := NewGitManager(repoDir)
	require.NoError(t, err)

	head, err := repo.Head()
	require.NoError(t, err)
	base := plumbing.NewBranchReferenceName("base")
	require.NoError(t, repo.Storer.SetReference(plumbing.NewHashReference(base, head.Hash())))
	require.NoError(t, repo.CreateBranch(&config.Branch{
		Name:   head.Name().Short(),
		Remote: ".",
		Merge:  base,
	}))

	up, err := mgr.Upstream(head.Name().Short())
	require.NoError(t, err)
	assert.Equal(t, base, up.Name)
	assert.Equal(t, head.Hash(), up.Hash)
}

func TestUpstreamRefName(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.Config
		want    plumbing.ReferenceName
		wantErr error
	}{
		{
			name:    "branch without config",
			cfg:     config.NewConfig(),
			wantErr: ErrNoUpstream,
		},
		{
			name: "branch without merge",
			cfg: func() *config.Config {
				c := config.NewConfig()
				c.Branches["main"] = &config.Branch{Name: "main", Remote: "origin"}
				return c
			}(),
			wantErr: ErrNoUpstream,
		},
		{
			name: "mapped through fetch refspec",
			cfg: func() *config.Config {
				c := config.NewConfig()
				c.Remotes["upstream"] = &config.RemoteConfig{
					Name:  "upstream",
					Fetch: []config.RefSpec{"+refs/heads/*:refs/remotes/mirror/*"},
				}
				c.Branches["main"] = &config.Branch{Name: "main", Remote: "upstream", Merge: "refs/heads/trunk"}
				return c
			}(),
			want: "refs/remotes/mirror/trunk",
		},
		{
			name: "remote without refspec falls back to remotes/<remote>",
			cfg: func() *config.Config {
				c := config.NewConfig()
				c.Branches["main"] = &config.Branch{Name: "main", Remote: "origin", Merge: "refs/heads/main"}
				return c
			}(),
			want: "refs/remotes/origin/main",
		},
		{
			name: "dot remote tracks a local branch",
			cfg: func() *config.Config {
				c := config.NewConfig()
				c.Branches["main"] = &config.Branch{Name: "main", Remote: ".", Merge: "refs/heads/base"}
				return c
			}(),
			want: "refs/heads/base",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := upstreamRefName(tt.cfg, "main")
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFlagsFor(t *testing.T) {
	tests := []struct {
		name     string
		staging  gogit.StatusCode
		worktree gogit.StatusCode
		want     StatusFlags
	}{
		{"unmodified", gogit.Unmodified, gogit.Unmodified, 0},
		{"untracked", gogit.Untracked, gogit.Untracked, WorktreeNew},
		{"staged new", gogit.Added, gogit.Unmodified, IndexNew},
		{"staged copy counts as new", gogit.Copied, gogit.Unmodified, IndexNew},
		{"staged modified", gogit.Modified, gogit.Unmodified, IndexModified},
		{"staged delete", gogit.Deleted, gogit.Unmodified, IndexDeleted},
		{"staged rename", gogit.Renamed, gogit.Unmodified, IndexRenamed},
		{"worktree modified", gogit.Unmodified, gogit.Modified, WorktreeModified},
		{"worktree deleted", gogit.Unmodified, gogit.Deleted, WorktreeDeleted},
		{"worktree renamed", gogit.Unmodified, gogit.Renamed, WorktreeRenamed},
		{"staged then edited", gogit.Added, gogit.Modified, IndexNew | WorktreeModified},
		{"staged then deleted", gogit.Modified, gogit.Deleted, IndexModified | WorktreeDeleted},
		{"unmerged in index", gogit.UpdatedButUnmerged, gogit.Modified, Conflicted},
		{"unmerged in worktree", gogit.Unmodified, gogit.UpdatedButUnmerged, Conflicted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FlagsFor(tt.staging, tt.worktree))
		})
	}
}

func TestStatusFlags_Any(t *testing.T) {
	f := IndexNew | WorktreeModified

	assert.True(t, f.Any(IndexNew))
	assert.True(t, f.Any(Conflicted|WorktreeModified))
	assert.False(t, f.Any(Conflicted|WorktreeNew))
}

func TestIsInsideWorktree(t *testing.T) {
	t.Run("main repo returns false", func(t *testing.T) {
		_, repoDir := newTestRepoOnDisk(t)

		isWT, err := IsInsideWorktree(repoDir)
		require.NoError(t, err)
		assert.False(t, isWT, "main repo should not be detected as worktree")
	})

	t.Run("gitdir file returns true", func(t *testing.T) {
		dir := t.TempDir()
		err := os.WriteFile(filepath.Join(dir, ".git"), []byte("gitdir: /elsewhere/.git/worktrees/x\n"), 0644)
		require.NoError(t, err)

		isWT, err := IsInsideWorktree(filepath.Join(dir))
		require.NoError(t, err)
		assert.True(t, isWT)
	})

	t.Run("non-git directory returns false", func(t *testing.T) {
		dir := t.TempDir()

		isWT, err := IsInsideWorktree(dir)
		require.NoError(t, err)
		assert.False(t, isWT)
	})
}
