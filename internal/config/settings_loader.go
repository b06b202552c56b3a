package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// SettingsFileName is the name of the user settings file.
	SettingsFileName = "settings.yaml"

	envPrefix = "GITPROMPT"
)

// ErrInvalidSettings wraps validation failures.
var ErrInvalidSettings = errors.New("invalid settings")

// SettingsLoader reads settings.yaml layered with GITPROMPT_* env vars.
type SettingsLoader struct {
	path string
}

// NewSettingsLoader creates a SettingsLoader for <Home()>/settings.yaml.
func NewSettingsLoader() (*SettingsLoader, error) {
	home, err := Home()
	if err != nil {
		return nil, fmt.Errorf("failed to determine gitprompt home: %w", err)
	}
	return NewSettingsLoaderAt(filepath.Join(home, SettingsFileName)), nil
}

// NewSettingsLoaderAt creates a SettingsLoader for an explicit file path.
func NewSettingsLoaderAt(path string) *SettingsLoader {
	return &SettingsLoader{path: path}
}

// Path returns the full path to the settings file.
func (l *SettingsLoader) Path() string {
	return l.path
}

// Exists checks if the settings file exists.
func (l *SettingsLoader) Exists() bool {
	_, err := os.Stat(l.path)
	return err == nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Load reads the settings file if present, applies env overrides and
// validates the result. A missing file is not an error.
func (l *SettingsLoader) Load() (*Settings, error) {
	v := newViper()

	if l.Exists() {
		v.SetConfigFile(l.path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings file %s: %w", l.path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// EnsureExists writes the commented template if no settings file exists.
// Returns true if the file was created.
func (l *SettingsLoader) EnsureExists() (bool, error) {
	if l.Exists() {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return false, fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := os.WriteFile(l.path, []byte(DefaultSettingsYAML), 0644); err != nil {
		return false, fmt.Errorf("failed to write settings file: %w", err)
	}
	return true, nil
}

var validShells = map[string]bool{"zsh": true, "bash": true, "plain": true, "none": true}

// Validate checks value ranges.
func (s *Settings) Validate() error {
	var errs []error
	if !validShells[s.Prompt.Shell] {
		errs = append(errs, fmt.Errorf("prompt.shell: unknown shell %q (want zsh, bash, plain or none)", s.Prompt.Shell))
	}
	if s.Prompt.FallbackBranch == "" {
		errs = append(errs, errors.New("prompt.fallback_branch: must not be empty"))
	}
	if s.Prompt.DefaultAbbrev < 0 {
		errs = append(errs, fmt.Errorf("prompt.default_abbrev: must not be negative, got %d", s.Prompt.DefaultAbbrev))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, errors.Join(errs...))
	}
	return nil
}
