package config

import (
	"github.com/spf13/viper"
)

// Default values for every settings key.
const (
	DefaultShell          = "zsh"
	DefaultFallbackBranch = "master"
	DefaultAbbrev         = 8

	DefaultLogMaxSizeMB  = 50
	DefaultLogMaxAgeDays = 7
	DefaultLogMaxBackups = 3
)

// DefaultSettings returns Settings with every default applied.
func DefaultSettings() *Settings {
	return &Settings{
		Prompt: PromptSettings{
			Shell:          DefaultShell,
			FallbackBranch: DefaultFallbackBranch,
			DefaultAbbrev:  DefaultAbbrev,
		},
		Logging: LoggingSettings{
			FileEnabled: false,
			MaxSizeMB:   DefaultLogMaxSizeMB,
			MaxAgeDays:  DefaultLogMaxAgeDays,
			MaxBackups:  DefaultLogMaxBackups,
		},
	}
}

// SetDefaults registers every settings key on v. Registering the keys is
// also what makes GITPROMPT_* environment overrides visible to Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := DefaultSettings()
	v.SetDefault("prompt.shell", d.Prompt.Shell)
	v.SetDefault("prompt.fallback_branch", d.Prompt.FallbackBranch)
	v.SetDefault("prompt.default_abbrev", d.Prompt.DefaultAbbrev)
	v.SetDefault("logging.file_enabled", d.Logging.FileEnabled)
	v.SetDefault("logging.max_size_mb", d.Logging.MaxSizeMB)
	v.SetDefault("logging.max_age_days", d.Logging.MaxAgeDays)
	v.SetDefault("logging.max_backups", d.Logging.MaxBackups)
}

// DefaultSettingsYAML is a commented template for settings.yaml.
const DefaultSettingsYAML = `# gitprompt settings
# Every key is optional; environment variables GITPROMPT_<SECTION>_<KEY>
# (e.g. GITPROMPT_PROMPT_SHELL=bash) override this file.

prompt:
  # Color wrapping: zsh (%{...%}), bash (readline markers), plain, none
  shell: zsh
  # Label shown before the first commit exists
  fallback_branch: master
  # Hash length for a detached HEAD when core.abbrev is unset
  default_abbrev: 8

logging:
  # Write a rotated JSON log under <home>/logs
  file_enabled: false
  max_size_mb: 50
  max_age_days: 7
  max_backups: 3
`
