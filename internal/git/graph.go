package git

import (
	"fmt"

	"github.com/emirpasic/gods/trees/binaryheap"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"
)

// Paint marks for the ahead/behind walk.
const (
	fromLocal uint8 = 1 << iota
	fromUpstream
	stale
)

// commitLoader reads a commit object; (*gogit.Repository).CommitObject
// satisfies it.
type commitLoader func(plumbing.Hash) (*object.Commit, error)

// AheadBehind counts the commits reachable from local but not from upstream
// (ahead) and the commits reachable from upstream but not from local (behind).
//
// Both sides are walked together, newest commit first, and the walk stops
// once only commits reachable from both remain queued. The cost follows the
// size of the divergence, not the length of the history.
func (g *GitManager) AheadBehind(local, upstream plumbing.Hash) (ahead, behind int, err error) {
	return aheadBehind(g.repo.CommitObject, local, upstream)
}

type graphNode struct {
	commit *object.Commit
	flags  uint8
}

type queued struct {
	node *graphNode
	seq  int
}

// byCommitTime orders newer commits first; equal times pop in insertion
// order so the walk degrades to breadth-first.
func byCommitTime(a, b interface{}) int {
	x, y := a.(queued), b.(queued)
	tx, ty := x.node.commit.Committer.When, y.node.commit.Committer.When
	switch {
	case tx.After(ty):
		return -1
	case tx.Before(ty):
		return 1
	case x.seq < y.seq:
		return -1
	case x.seq > y.seq:
		return 1
	}
	return 0
}

func aheadBehind(load commitLoader, local, upstream plumbing.Hash) (ahead, behind int, err error) {
	if local == upstream {
		return 0, 0, nil
	}

	nodes := map[plumbing.Hash]*graphNode{}
	node := func(h plumbing.Hash) (*graphNode, error) {
		if n, ok := nodes[h]; ok {
			return n, nil
		}
		c, err := load(h)
		if err != nil {
			return nil, fmt.Errorf("loading commit %s: %w", h, err)
		}
		n := &graphNode{commit: c}
		nodes[h] = n
		return n, nil
	}

	queue := binaryheap.NewWith(byCommitTime)
	seq := 0
	push := func(n *graphNode) {
		queue.Push(queued{node: n, seq: seq})
		seq++
	}

	for _, tip := range []struct {
		hash plumbing.Hash
		flag uint8
	}{{local, fromLocal}, {upstream, fromUpstream}} {
		n, err := node(tip.hash)
		if err != nil {
			return 0, 0, err
		}
		n.flags |= tip.flag
		push(n)
	}

	for interesting(queue) {
		v, _ := queue.Pop()
		n := v.(queued).node

		flags := n.flags & (fromLocal | fromUpstream | stale)
		if flags&(fromLocal|fromUpstream) == fromLocal|fromUpstream {
			flags |= stale
			n.flags |= stale
		}

		for _, ph := range n.commit.ParentHashes {
			p, err := node(ph)
			if err != nil {
				return 0, 0, err
			}
			if p.flags&flags == flags {
				continue
			}
			p.flags |= flags
			push(p)
		}
	}

	for _, n := range nodes {
		switch n.flags & (fromLocal | fromUpstream) {
		case fromLocal:
			ahead++
		case fromUpstream:
			behind++
		}
	}
	return ahead, behind, nil
}

// interesting reports whether any queued commit is still reachable from only
// one side.
func interesting(queue *binaryheap.Heap) bool {
	for _, v := range queue.Values() {
		if v.(queued).node.flags&stale == 0 {
			return true
		}
	}
	return false
}
