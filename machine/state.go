package machine

import (
	"psym/solver"
	vs "psym/valuesummary"
)

// A Handler reacts to an event delivered to a machine in some state.
// It runs under the given path condition and may send, create
// machines, change state, halt, or make nondeterministic choices
// through the machine's scheduler.
type Handler func(m *Machine, pc solver.Guard, payload vs.Summary)

// A State is one control location of a machine.
type State struct {
	Name string
	// Hot marks a liveness obligation: a monitor resting in a hot
	// state when execution finishes is a liveness violation.
	Hot bool
	// Entry runs when the machine enters the state, including machine
	// start.
	Entry Handler
	// Handlers maps event tags to reactions. An event delivered in a
	// state with no handler for it is a model error.
	Handlers map[*Event]Handler
}

// NewState returns a state with an empty handler table.
func NewState(name string) *State {
	return &State{Name: name, Handlers: map[*Event]Handler{}}
}

// NewHotState returns a hot state with an empty handler table.
func NewHotState(name string) *State {
	s := NewState(name)
	s.Hot = true
	return s
}

// On registers a handler for ev and returns the state for chaining.
func (s *State) On(ev *Event, h Handler) *State {
	s.Handlers[ev] = h
	return s
}

// OnEntry registers the entry handler and returns the state.
func (s *State) OnEntry(h Handler) *State {
	s.Entry = h
	return s
}

func (s *State) String() string {
	if s == nil {
		return "<nil state>"
	}
	return s.Name
}

// SnapshotRef implements valuesummary.SnapshotHandle.
func (s *State) SnapshotRef() (string, string, int) {
	return "state", s.Name, 0
}
