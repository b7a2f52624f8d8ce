package statistics

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// StatWriter emits the engine's key/value statistics, stamping every
// line with the run id so output from repeated runs can be told
// apart.
type StatWriter struct {
	log   *slog.Logger
	runID string
}

// NewStatWriter creates a writer over the given logger with a fresh
// run id.
func NewStatWriter(log *slog.Logger) *StatWriter {
	return &StatWriter{log: log, runID: uuid.NewString()}
}

// RunID returns the run identifier.
func (w *StatWriter) RunID() string { return w.runID }

// Log writes one statistic.
func (w *StatWriter) Log(key, value string) {
	w.log.Info("stat", "run", w.runID, "key", key, "value", value)
}

// Logf formats and writes one statistic.
func (w *StatWriter) Logf(key, format string, args ...any) {
	w.Log(key, fmt.Sprintf(format, args...))
}
