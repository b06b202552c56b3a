package docs

import (
	"bytes"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// GenMarkdownTree writes <command_path>.md for cmd and every subcommand.
func GenMarkdownTree(cmd *cobra.Command, dir string) error {
	return genTree(cmd, dir, markdownFilename, GenMarkdown)
}

func markdownFilename(cmd *cobra.Command) string {
	return joinedPath(cmd, "_") + ".md"
}

// GenMarkdown writes the Markdown page for a single command.
func GenMarkdown(cmd *cobra.Command, w io.Writer) error {
	cmd.InitDefaultHelpFlag()

	buf := new(bytes.Buffer)
	fmt.Fprintf(buf, "## %s\n\n", cmd.CommandPath())
	if cmd.Short != "" {
		buf.WriteString(cmd.Short + "\n\n")
	}

	if cmd.Runnable() {
		buf.WriteString("### Synopsis\n\n")
		if cmd.Long != "" {
			buf.WriteString(cmd.Long + "\n\n")
		}
		fmt.Fprintf(buf, "```\n%s\n```\n\n", cmd.UseLine())
	}

	if cmd.Example != "" {
		fmt.Fprintf(buf, "### Examples\n\n```\n%s\n```\n\n", cmd.Example)
	}

	if subs := visibleCommands(cmd); len(subs) > 0 {
		buf.WriteString("### Subcommands\n\n")
		for _, c := range subs {
			fmt.Fprintf(buf, "* [%s](%s) - %s\n", c.CommandPath(), markdownFilename(c), c.Short)
		}
		buf.WriteString("\n")
	}

	markdownFlags(buf, "Options", collectFlags(cmd.NonInheritedFlags()))
	markdownFlags(buf, "Options inherited from parent commands", collectFlags(cmd.InheritedFlags()))

	if cmd.HasParent() {
		parent := cmd.Parent()
		fmt.Fprintf(buf, "### See also\n\n* [%s](%s) - %s\n", parent.CommandPath(), markdownFilename(parent), parent.Short)
	}

	_, err := buf.WriteTo(w)
	return err
}

func markdownFlags(buf *bytes.Buffer, title string, flags []flagLine) {
	if len(flags) == 0 {
		return
	}
	fmt.Fprintf(buf, "### %s\n\n", title)
	buf.WriteString("| Flag | Description |\n|------|-------------|\n")
	for _, f := range flags {
		name := "`--" + f.Name
		if f.Type != "" {
			name += " " + f.Type
		}
		name += "`"
		if f.Shorthand != "" {
			name = "`-" + f.Shorthand + "`, " + name
		}
		usage := f.Usage
		if f.Default != "" {
			usage += fmt.Sprintf(" (default `%s`)", f.Default)
		}
		fmt.Fprintf(buf, "| %s | %s |\n", name, usage)
	}
	buf.WriteString("\n")
}
