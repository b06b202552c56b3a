package root

import (
	"context"

	configcmd "github.com/schmitthub/gitprompt/internal/cmd/config"
	versioncmd "github.com/schmitthub/gitprompt/internal/cmd/version"
	"github.com/schmitthub/gitprompt/internal/cmdutil"
	internalconfig "github.com/schmitthub/gitprompt/internal/config"
	"github.com/schmitthub/gitprompt/internal/logger"
	"github.com/spf13/cobra"
)

// NewCmdRoot creates the root command for the gitprompt CLI.
// Invoked without a subcommand it renders the prompt segment.
func NewCmdRoot(f *cmdutil.Factory, runF func(context.Context, *RenderOptions) error) *cobra.Command {
	opts := &RenderOptions{
		IOStreams:  f.IOStreams,
		GitManager: f.GitManager,
		Settings:   f.Settings,
	}

	cmd := &cobra.Command{
		Use:   "gitprompt",
		Short: "Print a one-line git status segment for your shell prompt",
		Long: `Prints the branch, upstream divergence and working tree summary of the
repository containing the current directory as a single colored line.

Outside a repository nothing is printed and the exit status is 0, so the
prompt can simply omit the segment.

Markers:
  <N  commits behind upstream     -N  staged files
  >N  commits ahead of upstream   !N  conflicted files
  =   clean working tree          +N  changed files
                                  _N  untracked files`,
		Example: `  # zsh: PROMPT='$(gitprompt)%# '
  gitprompt

  # bash: PS1='$(gitprompt --shell bash)\$ '
  gitprompt --shell bash

  # Inspect another checkout without escape codes
  gitprompt -C ~/src/project --shell none`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Annotations: map[string]string{
			"versionInfo": versioncmd.Format(f.Version, f.BuildDate),
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			initializeLogger(f)

			logger.Debug().
				Str("version", f.Version).
				Bool("debug", f.Debug).
				Str("dir", f.WorkDir).
				Msg("gitprompt starting")

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return renderRun(cmd.Context(), opts)
		},
		Version: f.Version,
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&f.Debug, "debug", "D", false, "Enable debug logging on stderr")
	cmd.PersistentFlags().StringVarP(&f.WorkDir, "dir", "C", "", "Start repository discovery in `path` instead of the current directory")

	cmd.Flags().StringVar(&opts.Shell, "shell", "", "Color wrapping: zsh, bash, plain or none (default from settings, zsh)")

	cmd.SetVersionTemplate(versioncmd.Format(f.Version, f.BuildDate))
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return cmdutil.FlagErrorWrap(err)
	})

	cmd.AddCommand(configcmd.NewCmdConfig(f, nil))
	cmd.AddCommand(versioncmd.NewCmdVersion(f))

	return cmd
}

// initializeLogger sets up the logger with file logging if possible.
// Falls back to console-only logging on any errors.
func initializeLogger(f *cmdutil.Factory) {
	if f.Settings == nil {
		logger.Init(f.Debug)
		return
	}

	settings, err := f.Settings()
	if err != nil {
		// Fall back to console-only logging; rendering uses defaults too
		logger.Init(f.Debug)
		logger.Warn().Err(err).Msg("ignoring settings, using defaults")
		return
	}

	logsDir, err := internalconfig.LogsDir()
	if err != nil {
		logger.Init(f.Debug)
		logger.Warn().Err(err).Msg("file logging unavailable: failed to get logs directory")
		return
	}

	logCfg := &logger.LoggingConfig{
		FileEnabled: &settings.Logging.FileEnabled,
		MaxSizeMB:   settings.Logging.MaxSizeMB,
		MaxAgeDays:  settings.Logging.MaxAgeDays,
		MaxBackups:  settings.Logging.MaxBackups,
	}

	if err := logger.InitWithFile(f.Debug, logsDir, logCfg); err != nil {
		logger.Init(f.Debug)
		logger.Warn().Err(err).Msg("file logging unavailable: failed to initialize file writer")
		return
	}
	if path := logger.GetLogFilePath(); path != "" {
		logger.Debug().Str("path", path).Msg("file logging enabled")
	}
}
