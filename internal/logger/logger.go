package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogFileName is the name of the rotated log file inside the logs directory.
const LogFileName = "gitprompt.log"

var (
	// Log is the global logger instance. It discards everything until Init
	// or InitWithFile is called.
	Log = zerolog.Nop()

	// fileWriter is the file output for logging (with rotation)
	fileWriter *lumberjack.Logger

	// repoRoot is attached to every entry once known
	repoRoot   string
	repoRootMu sync.RWMutex
)

// SetContext records the repository root for subsequent log entries.
// Pass an empty string to clear. Thread-safe.
func SetContext(root string) {
	repoRootMu.Lock()
	defer repoRootMu.Unlock()
	repoRoot = root
}

// ClearContext clears the repository context.
func ClearContext() {
	SetContext("")
}

func addContext(event *zerolog.Event) *zerolog.Event {
	repoRootMu.RLock()
	root := repoRoot
	repoRootMu.RUnlock()
	if root != "" {
		event = event.Str("repo", root)
	}
	return event
}

// LoggingConfig holds configuration for file-based logging.
// This mirrors config.LoggingSettings but is duplicated here
// to avoid circular imports.
type LoggingConfig struct {
	FileEnabled *bool
	MaxSizeMB   int
	MaxAgeDays  int
	MaxBackups  int
}

// IsFileEnabled returns whether file logging is enabled.
// Defaults to false: a prompt helper runs on every keystroke-return.
func (c *LoggingConfig) IsFileEnabled() bool {
	if c.FileEnabled == nil {
		return false
	}
	return *c.FileEnabled
}

// GetMaxSizeMB returns the max size in MB, defaulting to 50 if not set.
func (c *LoggingConfig) GetMaxSizeMB() int {
	if c.MaxSizeMB <= 0 {
		return 50
	}
	return c.MaxSizeMB
}

// GetMaxAgeDays returns the max age in days, defaulting to 7 if not set.
func (c *LoggingConfig) GetMaxAgeDays() int {
	if c.MaxAgeDays <= 0 {
		return 7
	}
	return c.MaxAgeDays
}

// GetMaxBackups returns the max backups, defaulting to 3 if not set.
func (c *LoggingConfig) GetMaxBackups() int {
	if c.MaxBackups <= 0 {
		return 3
	}
	return c.MaxBackups
}

// consoleLevel keeps stderr quiet unless debugging: anything printed there
// lands in the user's terminal next to the prompt.
func consoleLevel(debug bool) zerolog.Level {
	if debug {
		return zerolog.DebugLevel
	}
	return zerolog.WarnLevel
}

func newConsoleWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    false,
	}
}

// Init initializes console-only logging on stderr.
func Init(debug bool) {
	InitWriter(os.Stderr, debug)
}

// InitWriter initializes console-only logging on out.
func InitWriter(out io.Writer, debug bool) {
	Log = zerolog.New(newConsoleWriter(out)).
		Level(consoleLevel(debug)).
		With().
		Timestamp().
		Logger()
}

// InitWithFile initializes the logger with optional file output.
// The file receives Info and above (Debug with debug set) as JSON; the
// console keeps its own, stricter level.
// If logsDir is empty or cfg indicates file logging is disabled,
// this behaves like Init (console-only).
func InitWithFile(debug bool, logsDir string, cfg *LoggingConfig) error {
	if logsDir == "" || cfg == nil || !cfg.IsFileEnabled() {
		Init(debug)
		return nil
	}

	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	fileWriter = &lumberjack.Logger{
		Filename:   filepath.Join(logsDir, LogFileName),
		MaxSize:    cfg.GetMaxSizeMB(),  // MB
		MaxAge:     cfg.GetMaxAgeDays(), // days
		MaxBackups: cfg.GetMaxBackups(),
		LocalTime:  true,
		Compress:   false,
	}

	fileLevel := zerolog.InfoLevel
	if debug {
		fileLevel = zerolog.DebugLevel
	}

	console := &zerolog.FilteredLevelWriter{
		Writer: zerolog.LevelWriterAdapter{Writer: newConsoleWriter(os.Stderr)},
		Level:  consoleLevel(debug),
	}
	multi := zerolog.MultiLevelWriter(console, fileWriter)

	Log = zerolog.New(multi).
		Level(fileLevel).
		With().
		Timestamp().
		Logger()

	return nil
}

// CloseFileWriter closes the file writer if it exists.
// Call this on program shutdown for clean log file closure.
func CloseFileWriter() error {
	if fileWriter != nil {
		err := fileWriter.Close()
		fileWriter = nil // Prevent double-close and writes to closed file
		return err
	}
	return nil
}

// GetLogFilePath returns the path to the current log file, or empty string if file logging is disabled.
func GetLogFilePath() string {
	if fileWriter != nil {
		return fileWriter.Filename
	}
	return ""
}

// Debug logs a debug message
func Debug() *zerolog.Event {
	return addContext(Log.Debug())
}

// Info logs an info message
func Info() *zerolog.Event {
	return addContext(Log.Info())
}

// Warn logs a warning message
func Warn() *zerolog.Event {
	return addContext(Log.Warn())
}

// Error logs an error message
func Error() *zerolog.Event {
	return addContext(Log.Error())
}

// Logger adapts the package-level functions to an interface value so
// callers can take a logger as a dependency.
type Logger struct{}

func (Logger) Debug() *zerolog.Event { return Debug() }
func (Logger) Info() *zerolog.Event  { return Info() }
func (Logger) Warn() *zerolog.Event  { return Warn() }
func (Logger) Error() *zerolog.Event { return Error() }
