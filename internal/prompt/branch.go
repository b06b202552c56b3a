package prompt

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/schmitthub/gitprompt/internal/git"
)

// HeadShape classifies where HEAD points.
type HeadShape int

const (
	// HeadMissing: neither the resolved nor the raw HEAD could be read.
	HeadMissing HeadShape = iota
	// HeadBranch: HEAD resolves through a local branch.
	HeadBranch
	// HeadSymbolic: HEAD is symbolic but does not resolve to a branch,
	// typically an unborn branch in a repository without commits.
	HeadSymbolic
	// HeadDetached: HEAD points straight at a commit.
	HeadDetached
)

func (s HeadShape) String() string {
	switch s {
	case HeadBranch:
		return "branch"
	case HeadSymbolic:
		return "symbolic"
	case HeadDetached:
		return "detached"
	default:
		return "missing"
	}
}

// ClassifyHead inspects HEAD and returns its shape with the ref it was
// derived from (nil for HeadMissing).
func ClassifyHead(repo Repository) (HeadShape, *git.Ref) {
	head, err := repo.Head()
	if err != nil {
		head, err = repo.RawHead()
		if err != nil {
			return HeadMissing, nil
		}
	}

	switch {
	case head.IsBranch():
		return HeadBranch, head
	case head.IsSymbolic():
		return HeadSymbolic, head
	default:
		return HeadDetached, head
	}
}

// Label names the current checkout position.
//
// Both HeadMissing and HeadSymbolic yield opts.FallbackBranch. A symbolic
// HEAD aimed at an existing but empty branch is not told apart from one aimed
// at a branch that does not exist.
//
// Configuration is read only for HeadDetached, so an unreadable config
// fails a detached checkout but never a symbolic or missing HEAD.
func Label(repo Repository, opts Options, log Logger) (string, error) {
	shape, head := ClassifyHead(repo)
	log.Debug().Str("shape", shape.String()).Msg("classified HEAD")

	switch shape {
	case HeadBranch:
		name := head.ShortName()
		if name == "" {
			return "", fmt.Errorf("%w: unable to determine name of branch %q", ErrInvariant, head.Name)
		}
		return name, nil
	case HeadDetached:
		if head.Hash.IsZero() {
			return "", fmt.Errorf("%w: detached HEAD without a commit", ErrInvariant)
		}
		n, err := abbrev(repo, opts, log)
		if err != nil {
			return "", err
		}
		return detachedLabel(head.Hash.String(), n), nil
	default:
		return opts.FallbackBranch, nil
	}
}

// abbrev reads core.abbrev, falling back to opts.DefaultAbbrev when unset or
// not a non-negative integer. Only a configuration that cannot be read at all
// is an error.
func abbrev(repo Repository, opts Options, log Logger) (int, error) {
	n, err := repo.ConfigInt("core", "abbrev")
	var numErr *strconv.NumError
	switch {
	case errors.Is(err, git.ErrConfigKeyNotFound), errors.As(err, &numErr):
		log.Debug().Err(err).Int("default", opts.DefaultAbbrev).Msg("core.abbrev unavailable")
		return opts.DefaultAbbrev, nil
	case err != nil:
		return 0, fmt.Errorf("unable to read configuration: %w", err)
	case n < 0:
		log.Debug().Int("abbrev", n).Msg("core.abbrev negative, using default")
		return opts.DefaultAbbrev, nil
	}
	return n, nil
}

// detachedLabel is ":" followed by the hash cut to abbrev+1 characters.
func detachedLabel(hash string, abbrev int) string {
	if n := abbrev + 1; n < len(hash) {
		hash = hash[:n]
	}
	return ":" + hash
}
