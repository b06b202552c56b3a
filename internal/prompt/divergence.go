package prompt

// Divergence is how far the current branch is from its upstream.
type Divergence struct {
	Ahead  int
	Behind int
}

// ResolveDivergence compares HEAD with the current branch's upstream.
// Every failure along the way (no commits, detached HEAD, no upstream,
// upstream never fetched, broken history) yields the zero Divergence.
func ResolveDivergence(repo Repository, log Logger) Divergence {
	head, err := repo.Head()
	if err != nil {
		log.Debug().Err(err).Msg("divergence: HEAD unresolved")
		return Divergence{}
	}
	if !head.IsBranch() || head.Hash.IsZero() {
		log.Debug().Str("head", head.Name.String()).Msg("divergence: HEAD is not a branch")
		return Divergence{}
	}

	up, err := repo.Upstream(head.ShortName())
	if err != nil {
		log.Debug().Err(err).Str("branch", head.ShortName()).Msg("divergence: no upstream")
		return Divergence{}
	}
	if up.Hash.IsZero() {
		log.Debug().Str("upstream", up.Name.String()).Msg("divergence: upstream has no commit")
		return Divergence{}
	}

	ahead, behind, err := repo.AheadBehind(head.Hash, up.Hash)
	if err != nil {
		log.Debug().Err(err).Msg("divergence: ancestry walk failed")
		return Divergence{}
	}
	return Divergence{Ahead: ahead, Behind: behind}
}
