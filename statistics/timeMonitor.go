package statistics

import (
	"time"

	"psym/fault"
)

// TimeMonitor tracks wall-clock time against the configured limit.
// The scheduler polls it between steps; a timeout is never raised
// mid-step.
type TimeMonitor struct {
	start time.Time
	limit time.Duration
}

// NewTimeMonitor starts the clock. A zero limit disables the check.
func NewTimeMonitor(limit time.Duration) *TimeMonitor {
	return &TimeMonitor{start: time.Now(), limit: limit}
}

// Start returns the instant the monitor was created.
func (t *TimeMonitor) Start() time.Time { return t.start }

// Runtime returns the elapsed wall-clock time.
func (t *TimeMonitor) Runtime() time.Duration { return time.Since(t.start) }

// CheckTimeout returns a Timeout fault once the limit is exceeded.
func (t *TimeMonitor) CheckTimeout() error {
	if t.limit <= 0 {
		return nil
	}
	if elapsed := t.Runtime(); elapsed > t.limit {
		return &fault.Timeout{Limit: t.limit, Elapsed: elapsed}
	}
	return nil
}
