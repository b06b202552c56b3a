package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/schmitthub/gitprompt/internal/cmdutil"
	"github.com/schmitthub/gitprompt/internal/config"
	"github.com/schmitthub/gitprompt/internal/git"
	"github.com/schmitthub/gitprompt/internal/iostreams"
	"github.com/schmitthub/gitprompt/internal/logger"
	"github.com/schmitthub/gitprompt/internal/prompt"
)

// RenderOptions holds the inputs of a prompt render.
type RenderOptions struct {
	IOStreams  *iostreams.IOStreams
	GitManager func() (*git.GitManager, error)
	Settings   func() (*config.Settings, error)

	// Shell overrides prompt.shell from settings when non-empty.
	Shell string
}

func renderRun(_ context.Context, opts *RenderOptions) error {
	ios := opts.IOStreams
	log := ios.Logger

	promptOpts, err := promptOptions(opts, log)
	if err != nil {
		return err
	}

	mgr, err := opts.GitManager()
	if err != nil {
		if errors.Is(err, git.ErrNotRepository) {
			log.Debug().Err(err).Msg("no repository, nothing to render")
			return nil
		}
		return err
	}
	logger.SetContext(mgr.RepoRoot())
	defer logger.ClearContext()

	log.Debug().
		Str("shell", string(promptOpts.Shell)).
		Bool("linked_worktree", mgr.IsLinkedWorktree()).
		Msg("rendering prompt")

	// Nothing reaches Out unless the whole line was built.
	line, err := prompt.Render(mgr, promptOpts, log)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(ios.Out, line)
	return err
}

// promptOptions layers settings and the --shell flag over the defaults.
func promptOptions(opts *RenderOptions, log iostreams.Logger) (prompt.Options, error) {
	po := prompt.DefaultOptions()

	if opts.Settings != nil {
		s, err := opts.Settings()
		switch {
		case err != nil:
			log.Debug().Err(err).Msg("settings unavailable, using defaults")
		case s != nil:
			po.FallbackBranch = s.Prompt.FallbackBranch
			po.DefaultAbbrev = s.Prompt.DefaultAbbrev
			if shell := prompt.Shell(s.Prompt.Shell); shell.Valid() {
				po.Shell = shell
			}
		}
	}

	if opts.Shell != "" {
		shell := prompt.Shell(opts.Shell)
		if !shell.Valid() {
			return po, cmdutil.FlagErrorf("invalid value %q for --shell: want one of %s", opts.Shell, shellNames())
		}
		po.Shell = shell
	}

	return po, nil
}

func shellNames() string {
	names := make([]string, len(prompt.Shells))
	for i, s := range prompt.Shells {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
