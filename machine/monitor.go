package machine

import "psym/solver"

// A Monitor is a specification machine: it observes announced events
// instead of receiving scheduled messages, and its hot states carry
// liveness obligations checked when execution finishes.
type Monitor struct {
	Machine
}

// NewMonitor creates a monitor of the given kind starting in start.
func NewMonitor(ctx *solver.Context, kind string, start *State) *Monitor {
	m := New(ctx, kind, 0, start)
	return &Monitor{Machine: *m}
}

// A HotState is a hot control state a monitor occupies under a guard.
type HotState struct {
	State *State
	Guard solver.Guard
}

// HotStates returns the guarded hot states the monitor currently
// occupies.
func (m *Monitor) HotStates() []HotState {
	out := []HotState{}
	for _, st := range m.CurrentState().GetGuardedValues() {
		if st.Value != nil && st.Value.Hot {
			out = append(out, HotState{State: st.Value, Guard: st.Guard})
		}
	}
	return out
}
