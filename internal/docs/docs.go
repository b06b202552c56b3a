// Package docs renders reference documentation for the gitprompt command
// tree as Markdown pages and man pages.
package docs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// visibleCommands returns the documented subcommands of cmd, sorted by name.
func visibleCommands(cmd *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, c := range cmd.Commands() {
		if !c.IsAvailableCommand() || c.IsAdditionalHelpTopicCommand() {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// flagLine describes one flag for the generated pages.
type flagLine struct {
	Name      string
	Shorthand string
	Type      string
	Default   string
	Usage     string
}

func collectFlags(fs *pflag.FlagSet) []flagLine {
	var out []flagLine
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		varname, usage := pflag.UnquoteUsage(f)
		line := flagLine{
			Name:      f.Name,
			Shorthand: f.Shorthand,
			Type:      varname,
			Usage:     usage,
		}
		switch f.DefValue {
		case "", "false", "0", "[]":
		default:
			line.Default = f.DefValue
		}
		out = append(out, line)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// genTree walks cmd depth-first and writes one file per visible command.
func genTree(cmd *cobra.Command, dir string, filename func(*cobra.Command) string, gen func(*cobra.Command, io.Writer) error) error {
	for _, c := range visibleCommands(cmd) {
		if err := genTree(c, dir, filename, gen); err != nil {
			return err
		}
	}

	path := filepath.Join(dir, filename(cmd))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer f.Close()

	if err := gen(cmd, f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func joinedPath(cmd *cobra.Command, sep string) string {
	return strings.ReplaceAll(cmd.CommandPath(), " ", sep)
}
