package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, content string) *SettingsLoader {
	t.Helper()
	path := filepath.Join(t.TempDir(), SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return NewSettingsLoaderAt(path)
}

func TestSettingsLoader_MissingFileGivesDefaults(t *testing.T) {
	l := NewSettingsLoaderAt(filepath.Join(t.TempDir(), "nope", SettingsFileName))

	assert.False(t, l.Exists())
	s, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestSettingsLoader_FileOverridesDefaults(t *testing.T) {
	l := writeSettings(t, `
prompt:
  shell: bash
  fallback_branch: main
logging:
  file_enabled: true
  max_backups: 9
`)

	s, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "bash", s.Prompt.Shell)
	assert.Equal(t, "main", s.Prompt.FallbackBranch)
	assert.Equal(t, DefaultAbbrev, s.Prompt.DefaultAbbrev)
	assert.True(t, s.Logging.FileEnabled)
	assert.Equal(t, 9, s.Logging.MaxBackups)
	assert.Equal(t, DefaultLogMaxSizeMB, s.Logging.MaxSizeMB)
}

func TestSettingsLoader_EnvOverridesFile(t *testing.T) {
	l := writeSettings(t, "prompt:\n  shell: bash\n")
	t.Setenv("GITPROMPT_PROMPT_SHELL", "plain")
	t.Setenv("GITPROMPT_PROMPT_DEFAULT_ABBREV", "12")

	s, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "plain", s.Prompt.Shell)
	assert.Equal(t, 12, s.Prompt.DefaultAbbrev)
}

func TestSettingsLoader_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{
			name:    "unknown shell",
			content: "prompt:\n  shell: fish\n",
			wantMsg: "prompt.shell",
		},
		{
			name:    "empty fallback",
			content: "prompt:\n  fallback_branch: \"\"\n",
			wantMsg: "prompt.fallback_branch",
		},
		{
			name:    "negative abbrev",
			content: "prompt:\n  default_abbrev: -1\n",
			wantMsg: "prompt.default_abbrev",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := writeSettings(t, tt.content).Load()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidSettings)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestSettingsLoader_MalformedYAML(t *testing.T) {
	_, err := writeSettings(t, "prompt: [unclosed\n").Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read settings file")
}

func TestSettingsLoader_EnsureExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", SettingsFileName)
	l := NewSettingsLoaderAt(path)

	created, err := l.EnsureExists()
	require.NoError(t, err)
	assert.True(t, created)

	created, err = l.EnsureExists()
	require.NoError(t, err)
	assert.False(t, created)

	s, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s, "template must parse to the defaults")
}

func TestHome(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		t.Setenv(HomeEnv, "/custom/home")

		home, err := Home()
		require.NoError(t, err)
		assert.Equal(t, "/custom/home", home)

		logs, err := LogsDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/custom/home", LogsSubdir), logs)
	})

	t.Run("xdg config dir", func(t *testing.T) {
		if runtime.GOOS != "linux" {
			t.Skip("XDG_CONFIG_HOME is only consulted on Linux")
		}
		t.Setenv(HomeEnv, "")
		t.Setenv("XDG_CONFIG_HOME", "/xdg")
		t.Setenv("HOME", "/home/someone")

		home, err := Home()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/xdg", DefaultDirName), home)
	})
}
