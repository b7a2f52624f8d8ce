package statistics

import (
	"runtime"

	"psym/fault"
)

// MemoryMonitor samples the Go heap against the configured limit.
type MemoryMonitor struct {
	limitMB float64
	maxMB   float64
}

// NewMemoryMonitor creates a monitor. A zero limit disables the
// check.
func NewMemoryMonitor(limitMB float64) *MemoryMonitor {
	return &MemoryMonitor{limitMB: limitMB}
}

// LimitMB returns the configured limit.
func (m *MemoryMonitor) LimitMB() float64 { return m.limitMB }

// MemSpentMB samples current heap use in megabytes and tracks the
// maximum.
func (m *MemoryMonitor) MemSpentMB() float64 {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	spent := float64(ms.HeapAlloc) / (1024 * 1024)
	if spent > m.maxMB {
		m.maxMB = spent
	}
	return spent
}

// MaxMemSpentMB returns the largest sample seen.
func (m *MemoryMonitor) MaxMemSpentMB() float64 { return m.maxMB }

// CheckLimit returns a Memout fault once the limit is exceeded.
func (m *MemoryMonitor) CheckLimit() error {
	if m.limitMB <= 0 {
		return nil
	}
	if spent := m.MemSpentMB(); spent > m.limitMB {
		return &fault.Memout{LimitMB: m.limitMB, SpentMB: spent}
	}
	return nil
}
