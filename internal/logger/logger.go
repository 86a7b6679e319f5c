// Package logger builds the structured JSON logger shared by the server, the CLI and the middleware.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Logger is a thin wrapper around charmbracelet's logger so callers depend on one type.
type Logger struct {
	*log.Logger
}

// New returns a JSON logger writing to w. Timestamps are rendered in loc using RFC3339Nano.
// An unknown level falls back to info.
func New(w io.Writer, level string, loc *time.Location) *Logger {
	if loc == nil {
		loc = time.UTC
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	base := log.NewWithOptions(w, log.Options{
		Formatter:       log.JSONFormatter,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339Nano,
		TimeFunction:    func(t time.Time) time.Time { return t.In(loc) },
		Level:           lvl,
	})
	return &Logger{Logger: base}
}

// Default writes info-level JSON to stdout in UTC.
func Default() *Logger {
	return New(os.Stdout, "info", time.UTC)
}

// Nop discards everything. Intended for tests and optional collaborators.
func Nop() *Logger {
	return New(io.Discard, "error", time.UTC)
}

// With returns a child logger carrying the given key/value pairs on every entry.
func (l *Logger) With(keyvals ...any) *Logger {
	return &Logger{Logger: l.Logger.With(keyvals...)}
}

// Component tags entries with the subsystem that produced them.
func (l *Logger) Component(name string) *Logger {
	return l.With("component", name)
}
