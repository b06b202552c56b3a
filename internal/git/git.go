// Package git provides read-only Git repository queries backed by go-git.
//
// This is a Tier 1 (Leaf) package in the gitprompt architecture:
//   - It imports ONLY stdlib and go-git packages
//   - It does NOT import any internal packages
//   - Nothing in this package writes to the repository
//
// GitManager is the facade owning the repository handle. It exposes the
// primitives the prompt needs: HEAD resolution (resolved and raw), status
// enumeration, upstream lookup, ahead/behind counting and configuration reads.
package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	gogit "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/config"
	"github.com/go-git/go-git/v6/plumbing"
)

var (
	// ErrNotRepository is returned when the path is not inside a git repository.
	ErrNotRepository = errors.New("not a git repository")

	// ErrNoUpstream is returned when the branch has no configured upstream.
	ErrNoUpstream = errors.New("no upstream configured")

	// ErrConfigKeyNotFound is returned when a configuration key is not set.
	ErrConfigKeyNotFound = errors.New("config key not found")
)

// GitManager is the top-level facade for git queries.
// It owns the repository handle; every method is read-only.
type GitManager struct {
	repo     *gogit.Repository
	repoRoot string
	linked   bool
}

// NewGitManager opens the git repository containing the given path.
// It walks up the directory tree to find the repository root.
//
// Returns ErrNotRepository (wrapped) if path is not inside a git repository.
func NewGitManager(path string) (*GitManager, error) {
	// DetectDotGit walks up to find the repo; EnableDotGitCommonDir lets a
	// linked worktree resolve refs and objects from the main repository.
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotRepository, path)
		}
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}
	repoRoot := wt.Filesystem.Root()

	linked, err := IsInsideWorktree(repoRoot)
	if err != nil {
		return nil, err
	}

	return &GitManager{
		repo:     repo,
		repoRoot: repoRoot,
		linked:   linked,
	}, nil
}

// NewGitManagerWithRepo creates a GitManager from an existing go-git Repository.
// This is primarily used for testing with in-memory repositories.
// The repoRoot parameter should be the logical root directory (can be a fake path for testing).
func NewGitManagerWithRepo(repo *gogit.Repository, repoRoot string) *GitManager {
	return &GitManager{
		repo:     repo,
		repoRoot: repoRoot,
	}
}

// Repository returns the underlying go-git Repository.
func (g *GitManager) Repository() *gogit.Repository {
	return g.repo
}

// RepoRoot returns the root directory of the git repository.
func (g *GitManager) RepoRoot() string {
	return g.repoRoot
}

// IsLinkedWorktree reports whether the repository was opened from a linked
// worktree (a checkout whose .git is a file pointing at the main repository).
func (g *GitManager) IsLinkedWorktree() bool {
	return g.linked
}

// Head resolves HEAD all the way to a commit.
// The returned Ref carries the branch name for a checked-out branch, or
// plumbing.HEAD for a detached checkout.
// Fails when HEAD points at a branch with no commits yet.
func (g *GitManager) Head() (*Ref, error) {
	head, err := g.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolving HEAD: %w", err)
	}
	return refFromPlumbing(head), nil
}

// RawHead reads the HEAD reference without following it.
// For an unborn branch this still succeeds and reports the symbolic target.
func (g *GitManager) RawHead() (*Ref, error) {
	head, err := g.repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return nil, fmt.Errorf("reading HEAD: %w", err)
	}
	return refFromPlumbing(head), nil
}

// Upstream resolves the commit of the upstream configured for the given
// local branch (short name).
//
// Returns ErrNoUpstream (wrapped) when the branch has no remote/merge config.
func (g *GitManager) Upstream(branch string) (*Ref, error) {
	cfg, err := g.repo.Config()
	if err != nil {
		return nil, fmt.Errorf("reading repository config: %w", err)
	}

	name, err := upstreamRefName(cfg, branch)
	if err != nil {
		return nil, err
	}

	ref, err := g.repo.Reference(name, true)
	if err != nil {
		return nil, fmt.Errorf("resolving upstream %s: %w", name, err)
	}
	return refFromPlumbing(ref), nil
}

// upstreamRefName maps a branch's remote/merge config onto the local
// reference that tracks it, using the remote's fetch refspecs.
func upstreamRefName(cfg *config.Config, branch string) (plumbing.ReferenceName, error) {
	b, ok := cfg.Branches[branch]
	if !ok || b.Remote == "" || b.Merge == "" {
		return "", fmt.Errorf("%w: %s", ErrNoUpstream, branch)
	}

	// A remote of "." tracks another local branch directly.
	if b.Remote == "." {
		return b.Merge, nil
	}

	if remote, ok := cfg.Remotes[b.Remote]; ok {
		for _, spec := range remote.Fetch {
			if spec.Match(b.Merge) {
				return spec.Dst(b.Merge), nil
			}
		}
	}

	return plumbing.NewRemoteReferenceName(b.Remote, b.Merge.Short()), nil
}

// ConfigInt reads an integer option from the merged repository configuration
// (system, global and local scopes, local wins).
//
// Returns ErrConfigKeyNotFound (wrapped) when the option is unset, and a
// parse error when the value is not an integer.
func (g *GitManager) ConfigInt(section, key string) (int, error) {
	cfg, err := g.repo.ConfigScoped(config.SystemScope)
	if err != nil {
		return 0, fmt.Errorf("opening repository config: %w", err)
	}

	if !cfg.Raw.HasSection(section) || !cfg.Raw.Section(section).HasOption(key) {
		return 0, fmt.Errorf("%w: %s.%s", ErrConfigKeyNotFound, section, key)
	}

	raw := cfg.Raw.Section(section).Option(key)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parsing %s.%s=%q: %w", section, key, raw, err)
	}
	return n, nil
}

// IsInsideWorktree checks if the given path is inside a git worktree
// (not the main repository worktree).
func IsInsideWorktree(path string) (bool, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("getting absolute path: %w", err)
	}

	// Walk up looking for .git file (not directory)
	current := absPath
	for {
		gitPath := filepath.Join(current, ".git")
		info, err := os.Stat(gitPath)
		if err == nil {
			// linked worktrees have a .git file pointing to the main repo
			return !info.IsDir(), nil
		}
		if !os.IsNotExist(err) {
			return false, fmt.Errorf("checking %s: %w", gitPath, err)
		}

		parent := filepath.Dir(current)
		if parent == current {
			return false, nil
		}
		current = parent
	}
}
