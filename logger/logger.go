// Package logger builds the slog loggers the engine writes through,
// mapping the 0-5 verbosity scale onto slog levels.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// LevelTrace sits below slog.LevelDebug; per-step schedule traces are
// logged at this level and only shown at verbosity 4 and above.
const LevelTrace = slog.LevelDebug - 4

// New returns a logger for the given verbosity writing to w. A nil
// writer defaults to stderr.
func New(verbosity int, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level(verbosity)})
	return slog.New(h)
}

// Discard returns a logger that drops everything; used by tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 4}))
}

func level(verbosity int) slog.Level {
	switch {
	case verbosity <= 0:
		return slog.LevelWarn
	case verbosity == 1:
		return slog.LevelInfo
	case verbosity <= 3:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}
