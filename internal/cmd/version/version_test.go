package version

import (
	"testing"

	"github.com/schmitthub/gitprompt/internal/cmdutil"
	"github.com/schmitthub/gitprompt/internal/iostreams/iostreamstest"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name      string
		version   string
		buildDate string
		want      string
	}{
		{
			name:    "version only",
			version: "1.2.3",
			want:    "gitprompt version 1.2.3\n",
		},
		{
			name:      "version with date",
			version:   "1.2.3",
			buildDate: "2026-10-01",
			want:      "gitprompt version 1.2.3 (2026-10-01)\n",
		},
		{
			name:    "leading v is dropped",
			version: "v0.4.0",
			want:    "gitprompt version 0.4.0\n",
		},
		{
			name:    "dev version",
			version: "dev",
			want:    "gitprompt version dev\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.version, tt.buildDate)
			if got != tt.want {
				t.Errorf("Format(%q, %q) = %q, want %q", tt.version, tt.buildDate, got, tt.want)
			}
		})
	}
}

func TestNewCmdVersion(t *testing.T) {
	tio := iostreamstest.New()
	f := &cmdutil.Factory{IOStreams: tio.IOStreams}

	root := &cobra.Command{
		Use:         "gitprompt",
		Annotations: map[string]string{"versionInfo": Format("1.0.0", "")},
	}
	root.AddCommand(NewCmdVersion(f))
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "gitprompt version 1.0.0\n", tio.OutBuf.String())
}
