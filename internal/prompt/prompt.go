// Package prompt turns repository state into the one-line prompt segment.
//
// The three queries (Count, ResolveDivergence, Label) are independent and
// read-only; Render composes them and Format lays out the result.
package prompt

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v6/plumbing"
	"github.com/rs/zerolog"
	"github.com/schmitthub/gitprompt/internal/git"
)

// ErrInvariant marks repository states the prompt logic assumes cannot occur,
// such as a branch with no readable name.
var ErrInvariant = errors.New("unexpected repository state")

// Repository is the read-only view of a repository the prompt consumes.
// *git.GitManager satisfies it.
type Repository interface {
	Status() ([]git.StatusEntry, error)
	Head() (*git.Ref, error)
	RawHead() (*git.Ref, error)
	Upstream(branch string) (*git.Ref, error)
	AheadBehind(local, upstream plumbing.Hash) (ahead, behind int, err error)
	ConfigInt(section, key string) (int, error)
}

// Logger is the subset of the zerolog-backed logger the prompt reports through.
type Logger interface {
	Debug() *zerolog.Event
}

// Report is everything the formatter needs.
type Report struct {
	Label      string
	Divergence Divergence
	Counts     Counts
}

// Build runs the three queries against repo.
// Only invariant violations and status enumeration failures are returned;
// divergence problems degrade to zero.
func Build(repo Repository, opts Options, log Logger) (Report, error) {
	counts, err := Count(repo)
	if err != nil {
		return Report{}, err
	}

	div := ResolveDivergence(repo, log)

	label, err := Label(repo, opts, log)
	if err != nil {
		return Report{}, err
	}

	return Report{Label: label, Divergence: div, Counts: counts}, nil
}

// Render builds the report and formats it in one step.
func Render(repo Repository, opts Options, log Logger) (string, error) {
	report, err := Build(repo, opts, log)
	if err != nil {
		return "", fmt.Errorf("building prompt: %w", err)
	}
	return Format(report, opts.Palette()), nil
}
