package cmdutil

import (
	"github.com/schmitthub/gitprompt/internal/config"
	"github.com/schmitthub/gitprompt/internal/git"
	"github.com/schmitthub/gitprompt/internal/iostreams"
)

// Factory provides shared dependencies for CLI commands.
// The struct defines what dependencies exist; internal/cmd/factory wires
// the real implementations.
//
// Closure fields use lazy initialization internally. Commands extract only
// the fields they need into per-command Options structs.
type Factory struct {
	// Configuration from flags (set before command execution)
	WorkDir string
	Debug   bool

	// Version info (set at build time via ldflags)
	Version   string
	BuildDate string

	// IO streams for input/output (for testability)
	IOStreams *iostreams.IOStreams

	SettingsLoader func() (*config.SettingsLoader, error)
	Settings       func() (*config.Settings, error)

	// GitManager opens the repository containing WorkDir (or the process
	// working directory when WorkDir is empty).
	GitManager func() (*git.GitManager, error)
}
