package docs

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cpuguy83/go-md2man/v2/md2man"
	"github.com/spf13/cobra"
)

// ManHeader carries the .TH metadata of a man page.
type ManHeader struct {
	Section string
	Date    *time.Time
	Manual  string
}

// GenManTree writes <command-path>.<section> man pages for cmd and every
// subcommand.
func GenManTree(cmd *cobra.Command, header *ManHeader, dir string) error {
	header = withManDefaults(header)
	filename := func(c *cobra.Command) string {
		return joinedPath(c, "-") + "." + header.Section
	}
	return genTree(cmd, dir, filename, func(c *cobra.Command, w io.Writer) error {
		return GenMan(c, header, w)
	})
}

func withManDefaults(h *ManHeader) *ManHeader {
	out := ManHeader{Section: "1", Manual: "gitprompt manual"}
	if h != nil {
		if h.Section != "" {
			out.Section = h.Section
		}
		if h.Manual != "" {
			out.Manual = h.Manual
		}
		out.Date = h.Date
	}
	return &out
}

// GenMan writes the roff man page for a single command.
func GenMan(cmd *cobra.Command, header *ManHeader, w io.Writer) error {
	_, err := w.Write(md2man.Render(manMarkdown(cmd, withManDefaults(header))))
	return err
}

// manMarkdown builds the md2man source for cmd.
func manMarkdown(cmd *cobra.Command, header *ManHeader) []byte {
	cmd.InitDefaultHelpFlag()

	buf := new(bytes.Buffer)
	name := cmd.CommandPath()

	date := ""
	if header.Date != nil {
		date = header.Date.Format("Jan 2006")
	}
	fmt.Fprintf(buf, "%% %s(%s) %s | %s\n\n",
		strings.ToUpper(joinedPath(cmd, "-")), header.Section, date, header.Manual)

	fmt.Fprintf(buf, "# NAME\n%s \\- %s\n\n", name, cmd.Short)

	buf.WriteString("# SYNOPSIS\n**" + name + "**")
	if cmd.HasAvailableFlags() {
		buf.WriteString(" [OPTIONS]")
	}
	if cmd.HasAvailableSubCommands() {
		buf.WriteString(" [COMMAND]")
	}
	buf.WriteString("\n\n")

	if cmd.Long != "" {
		buf.WriteString("# DESCRIPTION\n")
		// Indented blocks keep their layout in roff.
		for _, line := range strings.Split(cmd.Long, "\n") {
			if strings.HasPrefix(line, "  ") {
				buf.WriteString("    " + line + "\n")
			} else {
				buf.WriteString(line + "\n")
			}
		}
		buf.WriteString("\n")
	}

	if subs := visibleCommands(cmd); len(subs) > 0 {
		buf.WriteString("# COMMANDS\n")
		for _, c := range subs {
			fmt.Fprintf(buf, "**%s**\n: %s\n\n", c.Name(), c.Short)
		}
	}

	flags := append(collectFlags(cmd.NonInheritedFlags()), collectFlags(cmd.InheritedFlags())...)
	if len(flags) > 0 {
		buf.WriteString("# OPTIONS\n")
		for _, f := range flags {
			if f.Shorthand != "" {
				fmt.Fprintf(buf, "**-%s**, ", f.Shorthand)
			}
			fmt.Fprintf(buf, "**--%s**", f.Name)
			if f.Type != "" {
				fmt.Fprintf(buf, " *%s*", f.Type)
			}
			buf.WriteString("\n: " + f.Usage)
			if f.Default != "" {
				fmt.Fprintf(buf, " (default: %s)", f.Default)
			}
			buf.WriteString("\n\n")
		}
	}

	if cmd.Example != "" {
		buf.WriteString("# EXAMPLES\n```\n" + cmd.Example + "\n```\n\n")
	}

	var related []string
	if cmd.HasParent() {
		related = append(related, fmt.Sprintf("**%s(%s)**", joinedPath(cmd.Parent(), "-"), header.Section))
	}
	for _, c := range visibleCommands(cmd) {
		related = append(related, fmt.Sprintf("**%s(%s)**", joinedPath(c, "-"), header.Section))
	}
	if len(related) > 0 {
		buf.WriteString("# SEE ALSO\n" + strings.Join(related, ", ") + "\n")
	}

	return buf.Bytes()
}
