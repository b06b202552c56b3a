package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// HomeEnv overrides the gitprompt configuration directory.
	HomeEnv = "GITPROMPT_HOME"
	// DefaultDirName is the directory name under the user config dir.
	DefaultDirName = "gitprompt"
	// LogsSubdir is the subdirectory for log files.
	LogsSubdir = "logs"
)

// Home returns the gitprompt configuration directory.
// It checks GITPROMPT_HOME first, then the user config dir
// ($XDG_CONFIG_HOME/gitprompt or ~/.config/gitprompt on Linux).
func Home() (string, error) {
	if home := os.Getenv(HomeEnv); home != "" {
		return home, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config dir: %w", err)
	}
	return filepath.Join(dir, DefaultDirName), nil
}

// LogsDir returns the log directory (<home>/logs).
func LogsDir() (string, error) {
	home, err := Home()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, LogsSubdir), nil
}
