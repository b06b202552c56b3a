package prompt

const (
	// DefaultFallbackBranch labels a repository whose HEAD has no commit yet.
	DefaultFallbackBranch = "master"

	// DefaultAbbrev is used when core.abbrev is unset or invalid.
	DefaultAbbrev = 8
)

// Options tunes labeling and presentation.
type Options struct {
	FallbackBranch string
	DefaultAbbrev  int
	Shell          Shell
}

// DefaultOptions reproduces the stock prompt.
func DefaultOptions() Options {
	return Options{
		FallbackBranch: DefaultFallbackBranch,
		DefaultAbbrev:  DefaultAbbrev,
		Shell:          ShellZsh,
	}
}

// Palette returns the color directives for the configured shell.
func (o Options) Palette() Palette {
	return NewPalette(o.Shell)
}
