// Package logging provides structured logging for skillhub using slog.
// Commands log to stderr so stdout stays clean for summaries and JSON.
package logging

import (
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

// Level aliases for convenience.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var (
	mu            sync.RWMutex
	defaultLogger *slog.Logger
)

// Options configures the logger behavior.
type Options struct {
	Level slog.Level
	// Output defaults to os.Stderr.
	Output io.Writer
	JSON   bool
	// AddSource includes source file and line in log output.
	AddSource bool
}

// DefaultOptions returns options suitable for CLI usage. Syncs are often
// triggered from hooks, so only warnings surface by default.
func DefaultOptions() Options {
	return Options{
		Level:  LevelWarn,
		Output: os.Stderr,
	}
}

// ForFlags returns options for the global --verbose and --debug flags.
// Debug wins over verbose and adds source locations.
func ForFlags(w io.Writer, verbose, debug bool) Options {
	opts := DefaultOptions()
	if w != nil {
		opts.Output = w
	}
	switch {
	case debug:
		opts.Level = LevelDebug
		opts.AddSource = true
	case verbose:
		opts.Level = LevelInfo
	}
	return opts
}

// New creates a logger with the given options.
func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	handlerOpts := &slog.HandlerOptions{
		Level:     opts.Level,
		AddSource: opts.AddSource,
	}
	if opts.JSON {
		return slog.New(slog.NewJSONHandler(out, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(out, handlerOpts))
}

// Default returns the process logger, creating one from DefaultOptions on
// first use.
func Default() *slog.Logger {
	mu.RLock()
	l := defaultLogger
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if defaultLogger == nil {
		defaultLogger = New(DefaultOptions())
	}
	return defaultLogger
}

// SetDefault replaces the process logger, including slog's default.
func SetDefault(logger *slog.Logger) {
	mu.Lock()
	defaultLogger = logger
	mu.Unlock()
	slog.SetDefault(logger)
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// Debug logs at debug level using the default logger.
func Debug(msg string, args ...any) { Default().Debug(msg, args...) }

// Info logs at info level using the default logger.
func Info(msg string, args ...any) { Default().Info(msg, args...) }

// Warn logs at warn level using the default logger.
func Warn(msg string, args ...any) { Default().Warn(msg, args...) }

// Error logs at error level using the default logger.
func Error(msg string, args ...any) { Default().Error(msg, args...) }

// Timer logs the elapsed time of an operation at debug level when the
// returned func is called.
//
//	defer logging.Timer("sync")()
func Timer(op string) func() {
	start := time.Now()
	return func() {
		Debug("operation finished", Operation(op), slog.Duration(KeyDuration, time.Since(start)))
	}
}

// Attribute keys shared by every package.
const (
	KeyPlatform  = "platform"
	KeySkill     = "skill"
	KeyScope     = "scope"
	KeySource    = "source"
	KeyStatus    = "status"
	KeyPath      = "path"
	KeyOperation = "operation"
	KeyCount     = "count"
	KeyError     = "error"
	KeyDuration  = "duration"
)

// Platform returns a slog attribute for the target platform.
func Platform(p string) slog.Attr { return slog.String(KeyPlatform, p) }

// Skill returns a slog attribute for a skill, usually its @scope/name.
func Skill(name string) slog.Attr { return slog.String(KeySkill, name) }

// Scope returns a slog attribute for a source scope.
func Scope(s string) slog.Attr { return slog.String(KeyScope, s) }

// Source returns a slog attribute for a source location (URL or directory).
func Source(s string) slog.Attr { return slog.String(KeySource, s) }

// Status returns a slog attribute for a fetch or install status.
func Status(s string) slog.Attr { return slog.String(KeyStatus, s) }

// Path returns a slog attribute for a file or directory path.
func Path(p string) slog.Attr { return slog.String(KeyPath, p) }

// Operation returns a slog attribute naming the operation being performed.
func Operation(op string) slog.Attr { return slog.String(KeyOperation, op) }

// Err returns an error attribute. A nil error yields an empty attribute,
// which slog omits.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any(KeyError, err)
}

// Count returns a slog attribute for a number of items.
func Count(n int) slog.Attr { return slog.Int(KeyCount, n) }
