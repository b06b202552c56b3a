package config

import (
	"context"
	"fmt"

	"github.com/schmitthub/gitprompt/internal/cmdutil"
	internalconfig "github.com/schmitthub/gitprompt/internal/config"
	"github.com/schmitthub/gitprompt/internal/iostreams"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// ConfigOptions holds options for the config command.
type ConfigOptions struct {
	IOStreams      *iostreams.IOStreams
	SettingsLoader func() (*internalconfig.SettingsLoader, error)
	Settings       func() (*internalconfig.Settings, error)

	Init bool
}

// NewCmdConfig creates the config command.
func NewCmdConfig(f *cmdutil.Factory, runF func(context.Context, *ConfigOptions) error) *cobra.Command {
	opts := &ConfigOptions{
		IOStreams:      f.IOStreams,
		SettingsLoader: f.SettingsLoader,
		Settings:       f.Settings,
	}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective gitprompt settings",
		Long: `Prints the settings gitprompt renders with, after layering the settings
file and GITPROMPT_* environment variables over the defaults.

With --init, writes a commented settings file if none exists yet.`,
		Example: `  # Show effective settings
  gitprompt config

  # Create a settings file to edit
  gitprompt config --init`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return configRun(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Init, "init", false, "Write a default settings file if none exists")

	return cmd
}

func configRun(_ context.Context, opts *ConfigOptions) error {
	ios := opts.IOStreams

	loader, err := opts.SettingsLoader()
	if err != nil {
		return err
	}

	if opts.Init {
		created, err := loader.EnsureExists()
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintf(ios.ErrOut, "Created %s\n", loader.Path())
		} else {
			fmt.Fprintf(ios.ErrOut, "Settings file already exists at %s\n", loader.Path())
		}
		return nil
	}

	settings, err := opts.Settings()
	if err != nil {
		return err
	}
	ios.Logger.Debug().Str("path", loader.Path()).Bool("exists", loader.Exists()).Msg("showing settings")

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if loader.Exists() {
		fmt.Fprintf(ios.Out, "# %s\n", loader.Path())
	} else {
		fmt.Fprintf(ios.Out, "# defaults (no file at %s)\n", loader.Path())
	}
	_, err = ios.Out.Write(data)
	return err
}
