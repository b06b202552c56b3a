package prompt

import (
	"strconv"
	"strings"

	"github.com/muesli/termenv"
)

// Segment identifies a colored piece of the prompt line.
type Segment int

const (
	SegmentLabel Segment = iota
	SegmentBehind
	SegmentAhead
	SegmentSeparator
	SegmentStaged
	SegmentConflicts
	SegmentChanged
	SegmentUntracked
	SegmentClean
	SegmentReset
)

// Shell selects how color sequences are wrapped so the prompt renderer does
// not count them toward the visible width.
type Shell string

const (
	ShellZsh   Shell = "zsh"   // %{...%}
	ShellBash  Shell = "bash"  // \001...\002 readline markers
	ShellPlain Shell = "plain" // raw escape sequences
	ShellNone  Shell = "none"  // no color at all
)

// Shells lists the accepted Shell values.
var Shells = []Shell{ShellZsh, ShellBash, ShellPlain, ShellNone}

// Valid reports whether s is a known shell flavor.
func (s Shell) Valid() bool {
	for _, known := range Shells {
		if s == known {
			return true
		}
	}
	return false
}

func boldColor(c termenv.ANSIColor) string {
	return termenv.CSI + c.Sequence(false) + ";" + termenv.BoldSeq + "m"
}

var resetSeq = termenv.CSI + termenv.ResetSeq + "m"

// colors pairs each segment with its SGR sequence.
var colors = map[Segment]string{
	SegmentLabel:     resetSeq,
	SegmentBehind:    boldColor(termenv.ANSIRed),
	SegmentAhead:     boldColor(termenv.ANSICyan),
	SegmentSeparator: boldColor(termenv.ANSIBlack),
	SegmentStaged:    boldColor(termenv.ANSIYellow),
	SegmentConflicts: boldColor(termenv.ANSIRed),
	SegmentChanged:   boldColor(termenv.ANSIBlue),
	SegmentUntracked: boldColor(termenv.ANSIMagenta),
	SegmentClean:     boldColor(termenv.ANSIGreen),
	SegmentReset:     resetSeq,
}

// Palette maps each segment to the directive written before it.
type Palette map[Segment]string

// NewPalette wraps the color table for the given shell.
// Unknown shells get the zsh wrapping.
func NewPalette(shell Shell) Palette {
	var start, end string
	switch shell {
	case ShellNone:
		return Palette{}
	case ShellPlain:
	case ShellBash:
		start, end = "\001", "\002"
	default:
		start, end = "%{", "%}"
	}

	p := make(Palette, len(colors))
	for seg, seq := range colors {
		p[seg] = start + seq + end
	}
	return p
}

// Format lays out a report as a single newline-terminated line:
//
//	label [<behind] [>ahead] / [-staged] [!conflicts] [+changed] [_untracked] [=] " :: "
func Format(r Report, p Palette) string {
	var b strings.Builder

	b.WriteString(p[SegmentLabel])
	b.WriteString(r.Label)

	marker := func(seg Segment, sym string, n int) {
		if n > 0 {
			b.WriteString(p[seg])
			b.WriteString(sym)
			b.WriteString(strconv.Itoa(n))
		}
	}

	marker(SegmentBehind, "<", r.Divergence.Behind)
	marker(SegmentAhead, ">", r.Divergence.Ahead)

	b.WriteString(p[SegmentSeparator])
	b.WriteString("/")

	marker(SegmentStaged, "-", r.Counts.Staged)
	marker(SegmentConflicts, "!", r.Counts.Conflicts)
	marker(SegmentChanged, "+", r.Counts.Changed)
	marker(SegmentUntracked, "_", r.Counts.Untracked)

	if r.Counts.Clean() {
		b.WriteString(p[SegmentClean])
		b.WriteString("=")
	}

	b.WriteString(p[SegmentSeparator])
	b.WriteString(" :: ")
	b.WriteString(p[SegmentReset])
	b.WriteString("\n")

	return b.String()
}
