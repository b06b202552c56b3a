package prompt

import (
	"fmt"

	"github.com/schmitthub/gitprompt/internal/git"
)

// Bucket is the single category a status entry is counted under.
type Bucket int

const (
	BucketNone Bucket = iota
	BucketStaged
	BucketChanged
	BucketConflicted
	BucketUntracked
)

func (b Bucket) String() string {
	switch b {
	case BucketStaged:
		return "staged"
	case BucketChanged:
		return "changed"
	case BucketConflicted:
		return "conflicted"
	case BucketUntracked:
		return "untracked"
	default:
		return "none"
	}
}

type rule struct {
	mask   git.StatusFlags
	bucket Bucket
}

// rules is evaluated top to bottom; the first rule whose mask intersects an
// entry's flags decides its bucket.
var rules = []rule{
	{git.IndexNew | git.IndexModified | git.IndexDeleted | git.IndexRenamed | git.IndexTypeChange, BucketStaged},
	{git.WorktreeModified | git.WorktreeDeleted | git.WorktreeRenamed | git.WorktreeTypeChange, BucketChanged},
	{git.Conflicted, BucketConflicted},
	{git.WorktreeNew, BucketUntracked},
}

// Classify returns the bucket for one entry's flags.
func Classify(flags git.StatusFlags) Bucket {
	for _, r := range rules {
		if flags.Any(r.mask) {
			return r.bucket
		}
	}
	return BucketNone
}

// Counts holds how many entries landed in each bucket.
type Counts struct {
	Staged    int
	Changed   int
	Conflicts int
	Untracked int
}

// Clean reports whether every bucket is empty.
func (c Counts) Clean() bool {
	return c == Counts{}
}

func (c *Counts) add(b Bucket) {
	switch b {
	case BucketStaged:
		c.Staged++
	case BucketChanged:
		c.Changed++
	case BucketConflicted:
		c.Conflicts++
	case BucketUntracked:
		c.Untracked++
	}
}

// Tally counts already-enumerated entries.
func Tally(entries []git.StatusEntry) Counts {
	var c Counts
	for _, e := range entries {
		c.add(Classify(e.Flags))
	}
	return c
}

// Count enumerates repo's status, untracked files included, and tallies it.
// An enumeration failure is returned as is; there is no partial result.
func Count(repo Repository) (Counts, error) {
	entries, err := repo.Status()
	if err != nil {
		return Counts{}, fmt.Errorf("unable to gather status information: %w", err)
	}
	return Tally(entries), nil
}
