package prompt_test

import (
	"testing"

	"github.com/go-git/go-git/v6/plumbing"
	"github.com/schmitthub/gitprompt/internal/git/gittest"
	"github.com/schmitthub/gitprompt/internal/logger/loggertest"
	"github.com/schmitthub/gitprompt/internal/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noColor() prompt.Options {
	opts := prompt.DefaultOptions()
	opts.Shell = prompt.ShellNone
	return opts
}

func TestRender_InMemoryRepository(t *testing.T) {
	t.Run("fresh repository without commits", func(t *testing.T) {
		mgr := gittest.NewUnbornGitManager(t, "/fake/repo")
		mgr.WriteFile(t, "a.txt", "a\n")

		out, err := prompt.Render(mgr, noColor(), loggertest.NewNop())
		require.NoError(t, err)
		assert.Equal(t, "master/_1 :: \n", out)
	})

	t.Run("clean branch", func(t *testing.T) {
		mgr := gittest.NewInMemoryGitManager(t, "/fake/repo")

		out, err := prompt.Render(mgr, noColor(), loggertest.NewNop())
		require.NoError(t, err)
		assert.Equal(t, "master/= :: \n", out)
	})

	t.Run("dirty branch ahead of upstream", func(t *testing.T) {
		mgr := gittest.NewInMemoryGitManager(t, "/fake/repo")
		base, err := mgr.Head()
		require.NoError(t, err)

		mgr.CheckoutBranch(t, "feature")
		mgr.TrackRemote(t, "feature", "origin")
		mgr.SetRef(t, plumbing.NewRemoteReferenceName("origin", "feature"), base.Hash)

		mgr.WriteFile(t, "one.txt", "1\n")
		mgr.Commit(t, "one", "one.txt")

		mgr.WriteFile(t, "s1.txt", "s\n")
		mgr.WriteFile(t, "s2.txt", "s\n")
		mgr.Stage(t, "s1.txt", "s2.txt")
		mgr.WriteFile(t, "u1.txt", "u\n")
		mgr.WriteFile(t, "u2.txt", "u\n")
		mgr.WriteFile(t, "u3.txt", "u\n")
		mgr.WriteFile(t, "README.md", "edited\n")

		out, err := prompt.Render(mgr, noColor(), loggertest.NewNop())
		require.NoError(t, err)
		assert.Equal(t, "feature>1/-2+1_3 :: \n", out)
	})

	t.Run("merge conflict", func(t *testing.T) {
		mgr := gittest.NewInMemoryGitManager(t, "/fake/repo")
		mgr.Conflict(t, "README.md", "ours\n", "theirs\n")

		out, err := prompt.Render(mgr, noColor(), loggertest.NewNop())
		require.NoError(t, err)
		assert.Equal(t, "master/!1 :: \n", out)
	})

	t.Run("untracked directory counts once", func(t *testing.T) {
		mgr := gittest.NewInMemoryGitManager(t, "/fake/repo")
		mgr.WriteFile(t, "newdir/a.txt", "a\n")
		mgr.WriteFile(t, "newdir/b.txt", "b\n")
		mgr.WriteFile(t, "newdir/c.txt", "c\n")

		out, err := prompt.Render(mgr, noColor(), loggertest.NewNop())
		require.NoError(t, err)
		assert.Equal(t, "master/_1 :: \n", out)
	})

	t.Run("behind upstream", func(t *testing.T) {
		mgr := gittest.NewInMemoryGitManager(t, "/fake/repo")
		base, err := mgr.Head()
		require.NoError(t, err)

		mgr.WriteFile(t, "x.txt", "x\n")
		tip := mgr.Commit(t, "x", "x.txt")
		mgr.TrackRemote(t, "master", "origin")
		mgr.SetRef(t, plumbing.NewRemoteReferenceName("origin", "master"), tip)
		mgr.SetRef(t, plumbing.NewBranchReferenceName("master"), base.Hash)

		d := prompt.ResolveDivergence(mgr, loggertest.NewNop())
		assert.Equal(t, prompt.Divergence{Behind: 1}, d)
	})

	t.Run("detached HEAD", func(t *testing.T) {
		mgr := gittest.NewInMemoryGitManager(t, "/fake/repo")
		head, err := mgr.Head()
		require.NoError(t, err)
		mgr.Detach(t, head.Hash)
		mgr.SetConfig(t, "core", "abbrev", "7")

		label, err := prompt.Label(mgr, prompt.DefaultOptions(), loggertest.NewNop())
		require.NoError(t, err)
		assert.Equal(t, ":"+head.Hash.String()[:8], label)
	})
}
