// Package iostreams provides the standard streams commands write to.
package iostreams

import (
	"io"
	"os"

	"github.com/schmitthub/gitprompt/internal/logger"
)

// IOStreams provides access to standard input/output/error streams.
// It follows the GitHub CLI pattern for testable I/O.
type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer

	// Logger receives diagnostics; it never writes to Out.
	Logger Logger
}

// NewIOStreams creates an IOStreams connected to standard streams.
func NewIOStreams() *IOStreams {
	return &IOStreams{
		In:     os.Stdin,
		Out:    os.Stdout,
		ErrOut: os.Stderr,
		Logger: logger.Logger{},
	}
}
