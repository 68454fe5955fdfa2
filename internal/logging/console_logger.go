package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Options configures a ConsoleLogger.
type Options struct {
	// Verbose enables Verbose() output. Overrides Level.
	Verbose bool
	// Level is a zerolog level name ("debug", "info", "warn", "error").
	// Empty means "info".
	Level string
	// Out receives human readable output. Defaults to os.Stderr.
	Out io.Writer
	// NoColor disables ANSI colors on Out.
	NoColor bool
	// FilePath, when set, also appends JSON lines to this file.
	// Parent directories are created as needed.
	FilePath string
}

// ConsoleLogger writes log messages to stderr through zerolog.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	zl   zerolog.Logger
	file *os.File
}

// NewConsoleLogger creates a ConsoleLogger on stderr.
// If verbose is true, Verbose() calls will produce output.
// If verbose is false, Verbose() calls are no-ops.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	l, _ := New(Options{Verbose: verbose})
	return l
}

// New creates a ConsoleLogger from opts. The returned logger must be closed
// when FilePath is set.
func New(opts Options) (*ConsoleLogger, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = parsed
	}
	if opts.Verbose {
		level = zerolog.DebugLevel
	}

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	console := zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = zerolog.SyncWriter(out)
		w.NoColor = opts.NoColor
		w.TimeFormat = time.Kitchen
	})

	l := &ConsoleLogger{}
	var writer io.Writer = console
	if opts.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.FilePath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		l.file = f
		writer = zerolog.MultiLevelWriter(console, f)
	}

	l.zl = zerolog.New(writer).
		With().
		Timestamp().
		Logger().
		Level(level)
	return l, nil
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(msg string, kv ...any) {
	l.zl.Debug().Fields(kv).Msg(msg)
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(msg string, kv ...any) {
	l.zl.Info().Fields(kv).Msg(msg)
}

// Warn logs recoverable problems.
func (l *ConsoleLogger) Warn(msg string, kv ...any) {
	l.zl.Warn().Fields(kv).Msg(msg)
}

// Error logs error messages.
func (l *ConsoleLogger) Error(msg string, kv ...any) {
	l.zl.Error().Fields(kv).Msg(msg)
}

// Close releases the log file, if any.
func (l *ConsoleLogger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
