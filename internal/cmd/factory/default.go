package factory

import (
	"fmt"
	"os"
	"sync"

	"github.com/schmitthub/gitprompt/internal/cmdutil"
	"github.com/schmitthub/gitprompt/internal/config"
	"github.com/schmitthub/gitprompt/internal/git"
	"github.com/schmitthub/gitprompt/internal/iostreams"
)

// New creates a fully-wired Factory with lazy-initialized dependency closures.
// Called exactly once at the CLI entry point (internal/gitprompt/cmd.go).
// Tests should NOT import this package — construct &cmdutil.Factory{} directly.
func New(version, buildDate string) *cmdutil.Factory {
	f := &cmdutil.Factory{
		Version:   version,
		BuildDate: buildDate,
		IOStreams: iostreams.NewIOStreams(),
	}

	// --- Lazy dependency closures ---

	// Settings
	var (
		loaderOnce     sync.Once
		settingsLoader *config.SettingsLoader
		loaderErr      error
	)
	f.SettingsLoader = func() (*config.SettingsLoader, error) {
		loaderOnce.Do(func() {
			settingsLoader, loaderErr = config.NewSettingsLoader()
		})
		return settingsLoader, loaderErr
	}

	var (
		settingsOnce sync.Once
		settings     *config.Settings
		settingsErr  error
	)
	f.Settings = func() (*config.Settings, error) {
		settingsOnce.Do(func() {
			loader, err := f.SettingsLoader()
			if err != nil {
				settingsErr = err
				return
			}
			settings, settingsErr = loader.Load()
		})
		return settings, settingsErr
	}

	// Repository. Resolved on first use so --dir has been parsed by then.
	var (
		gitOnce sync.Once
		gitMgr  *git.GitManager
		gitErr  error
	)
	f.GitManager = func() (*git.GitManager, error) {
		gitOnce.Do(func() {
			dir := f.WorkDir
			if dir == "" {
				wd, err := os.Getwd()
				if err != nil {
					gitErr = fmt.Errorf("failed to get working directory: %w", err)
					return
				}
				dir = wd
			}
			gitMgr, gitErr = git.NewGitManager(dir)
		})
		return gitMgr, gitErr
	}

	return f
}
