// Package gitprompt is the process entry point shared by cmd/gitprompt and
// the acceptance tests.
package gitprompt

import (
	"errors"
	"fmt"

	"github.com/schmitthub/gitprompt/internal/cmd/factory"
	"github.com/schmitthub/gitprompt/internal/cmd/root"
	"github.com/schmitthub/gitprompt/internal/cmdutil"
	"github.com/schmitthub/gitprompt/internal/logger"
)

// Build-time variables injected via ldflags
var (
	Version   = "dev"
	BuildDate = ""
)

const (
	exitOk    = 0
	exitError = 1
	exitUsage = 2
)

// Main is the entry point for the gitprompt CLI.
// It initializes the Factory, creates the root command, and executes it.
func Main() int {
	// Ensure logs are flushed on exit
	defer logger.CloseFileWriter()

	f := factory.New(Version, BuildDate)
	rootCmd := root.NewCmdRoot(f, nil)

	cmd, err := rootCmd.ExecuteC()
	if err == nil {
		return exitOk
	}

	logger.Debug().Err(err).Str("command", cmd.CommandPath()).Msg("command failed")
	fmt.Fprintf(f.IOStreams.ErrOut, "gitprompt: %s\n", err)

	var flagErr *cmdutil.FlagError
	if errors.As(err, &flagErr) {
		fmt.Fprintln(f.IOStreams.ErrOut)
		fmt.Fprint(f.IOStreams.ErrOut, cmd.UsageString())
		return exitUsage
	}
	return exitError
}
