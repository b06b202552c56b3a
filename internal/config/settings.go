package config

// Settings is the user-level configuration for gitprompt.
// Every field has a default; an absent settings file changes nothing.
type Settings struct {
	// Prompt configures labeling and color wrapping.
	Prompt PromptSettings `yaml:"prompt" mapstructure:"prompt"`

	// Logging configures file-based logging.
	// File logging is DISABLED by default.
	Logging LoggingSettings `yaml:"logging" mapstructure:"logging"`
}

// PromptSettings configures the rendered line.
type PromptSettings struct {
	// Shell selects the color wrapping: zsh, bash, plain or none.
	Shell string `yaml:"shell" mapstructure:"shell"`

	// FallbackBranch labels a repository whose HEAD has no commit yet.
	FallbackBranch string `yaml:"fallback_branch" mapstructure:"fallback_branch"`

	// DefaultAbbrev is the hash length used when core.abbrev is unset.
	DefaultAbbrev int `yaml:"default_abbrev" mapstructure:"default_abbrev"`
}

// LoggingSettings configures file-based logging.
type LoggingSettings struct {
	// FileEnabled enables logging to <home>/logs/gitprompt.log
	FileEnabled bool `yaml:"file_enabled" mapstructure:"file_enabled"`

	// MaxSizeMB is the maximum size in MB before rotation (default: 50)
	MaxSizeMB int `yaml:"max_size_mb" mapstructure:"max_size_mb"`

	// MaxAgeDays is the maximum age in days to retain old logs (default: 7)
	MaxAgeDays int `yaml:"max_age_days" mapstructure:"max_age_days"`

	// MaxBackups is the maximum number of old log files to keep (default: 3)
	MaxBackups int `yaml:"max_backups" mapstructure:"max_backups"`
}
