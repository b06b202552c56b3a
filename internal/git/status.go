package git

import (
	"fmt"
	"path"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing/format/index"
)

// StatusFlags is the set of states a single working-tree entry is in.
// An entry can carry several flags at once (staged and then edited again).
type StatusFlags uint16

// Index* flags describe the staged column, Worktree* the unstaged column.
const (
	IndexNew StatusFlags = 1 << iota
	IndexModified
	IndexDeleted
	IndexRenamed
	IndexTypeChange
	WorktreeNew
	WorktreeModified
	WorktreeDeleted
	WorktreeRenamed
	WorktreeTypeChange
	Conflicted
)

// Any reports whether at least one flag in mask is set.
func (f StatusFlags) Any(mask StatusFlags) bool {
	return f&mask != 0
}

// StatusEntry is one path of the status listing.
type StatusEntry struct {
	Path  string
	Flags StatusFlags
}

// Status enumerates the working tree and index, untracked files included.
// Ignored files are not reported. Entries are ordered by path.
//
// A path with unmerged index entries is reported as Conflicted only. A
// directory holding nothing but untracked files is one entry, its path
// ending in "/", the way `git status` lists it.
func (g *GitManager) Status() ([]StatusEntry, error) {
	wt, err := g.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}

	st, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("gathering status: %w", err)
	}

	idx, err := g.repo.Storer.Index()
	if err != nil {
		return nil, fmt.Errorf("reading index: %w", err)
	}
	unmerged, trackedDirs := scanIndex(idx)

	seen := make(map[string]bool, len(st))
	entries := make([]StatusEntry, 0, len(st))
	add := func(p string, flags StatusFlags) {
		if !seen[p] {
			seen[p] = true
			entries = append(entries, StatusEntry{Path: p, Flags: flags})
		}
	}

	for p := range unmerged {
		add(p, Conflicted)
	}
	for p, fs := range st {
		if unmerged[p] {
			continue
		}
		flags := FlagsFor(fs.Staging, fs.Worktree)
		switch {
		case flags == 0:
			continue
		case flags == WorktreeNew:
			add(untrackedRoot(p, trackedDirs), flags)
		default:
			add(p, flags)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })

	return entries, nil
}

// scanIndex returns the paths with entries at a non-zero stage and every
// directory that contains at least one index entry.
func scanIndex(idx *index.Index) (unmerged, trackedDirs map[string]bool) {
	unmerged = map[string]bool{}
	trackedDirs = map[string]bool{}
	for _, e := range idx.Entries {
		if e.Stage != index.Merged {
			unmerged[e.Name] = true
		}
		for dir := path.Dir(e.Name); dir != "."; dir = path.Dir(dir) {
			if trackedDirs[dir] {
				break
			}
			trackedDirs[dir] = true
		}
	}
	return unmerged, trackedDirs
}

// untrackedRoot maps an untracked file onto its topmost ancestor directory
// with no index entries below it, or returns p when every ancestor is tracked.
func untrackedRoot(p string, trackedDirs map[string]bool) string {
	parts := strings.Split(p, "/")
	for i := 1; i < len(parts); i++ {
		dir := strings.Join(parts[:i], "/")
		if !trackedDirs[dir] {
			return dir + "/"
		}
	}
	return p
}

// FlagsFor translates go-git's two-column status code into StatusFlags.
func FlagsFor(staging, worktree gogit.StatusCode) StatusFlags {
	if staging == gogit.UpdatedButUnmerged || worktree == gogit.UpdatedButUnmerged {
		return Conflicted
	}

	// go-git reports untracked paths as ?? in both columns.
	if staging == gogit.Untracked && worktree == gogit.Untracked {
		return WorktreeNew
	}

	var flags StatusFlags
	switch staging {
	case gogit.Added, gogit.Copied:
		flags |= IndexNew
	case gogit.Modified:
		flags |= IndexModified
	case gogit.Deleted:
		flags |= IndexDeleted
	case gogit.Renamed:
		flags |= IndexRenamed
	}

	switch worktree {
	case gogit.Added, gogit.Untracked:
		flags |= WorktreeNew
	case gogit.Modified:
		flags |= WorktreeModified
	case gogit.Deleted:
		flags |= WorktreeDeleted
	case gogit.Renamed:
		flags |= WorktreeRenamed
	}

	return flags
}
