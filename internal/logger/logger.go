// Package logger holds the structured logger shared by the engine packages.
//
// The level is taken from the LOG_LEVEL environment variable (debug, info,
// warn, error) and defaults to warn so that the interactive actor loop stays
// quiet.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

var (
	current atomic.Pointer[slog.Logger]
	level   slog.LevelVar
)

func init() {
	level.Set(ParseLevel(os.Getenv("LOG_LEVEL")))
	current.Store(NewShared(os.Stderr))
}

// ParseLevel maps a textual level onto slog.Level, unknown values map to warn.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// New creates a text logger writing to w.
func New(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewShared creates a text logger writing to w whose level follows SetLevel.
func NewShared(w io.Writer) *slog.Logger {
	return New(w, &level)
}

// Default returns the shared logger.
func Default() *slog.Logger {
	return current.Load()
}

// SetDefault replaces the shared logger; nil is ignored.
func SetDefault(l *slog.Logger) {
	if l != nil {
		current.Store(l)
	}
}

// SetLevel changes the level of every logger built with NewShared, the
// initial default included. The installed default logger is kept.
func SetLevel(l slog.Level) {
	level.Set(l)
}
