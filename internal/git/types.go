package git

import (
	"strings"

	"github.com/go-git/go-git/v6/plumbing"
)

const branchPrefix = "refs/heads/"

// Ref is a read-only snapshot of a git reference.
type Ref struct {
	// Name is the full reference name (refs/heads/main, HEAD, ...).
	Name plumbing.ReferenceName

	// Hash is the commit the reference points to.
	// Zero for symbolic references that were not resolved.
	Hash plumbing.Hash

	// SymbolicTarget is the reference a symbolic ref points to.
	// Empty for direct (hash) references.
	SymbolicTarget plumbing.ReferenceName
}

// IsBranch reports whether the reference is a local branch.
func (r *Ref) IsBranch() bool {
	return r.Name.IsBranch()
}

// IsSymbolic reports whether the reference points at another reference.
func (r *Ref) IsSymbolic() bool {
	return r.SymbolicTarget != ""
}

// ShortName returns the human-readable name (main for refs/heads/main).
// A malformed branch ref with nothing after the prefix yields "".
func (r *Ref) ShortName() string {
	if r.IsBranch() {
		return strings.TrimPrefix(string(r.Name), branchPrefix)
	}
	return r.Name.Short()
}

func refFromPlumbing(ref *plumbing.Reference) *Ref {
	r := &Ref{Name: ref.Name()}
	switch ref.Type() {
	case plumbing.SymbolicReference:
		r.SymbolicTarget = ref.Target()
	case plumbing.HashReference:
		r.Hash = ref.Hash()
	}
	return r
}
