package machine

import (
	"psym/solver"
	vs "psym/valuesummary"
)

// A Program is the state-machine program the scheduler explores. It
// is produced outside the core (by the source-language compiler or by
// hand in tests) and consumed here.
type Program interface {
	// Start returns the main entry machine.
	Start() *Machine

	// Monitors returns the specification monitors, started before the
	// main machine.
	Monitors() []*Monitor

	// Listeners maps each announced event to the monitors observing
	// it.
	Listeners() map[*Event][]*Monitor
}

// SchedulerContext is the scheduler surface machines call back into:
// nondeterministic choices, machine allocation, announcements, and
// the configuration toggles that change buffer behavior. The concrete
// scheduler implements it; keeping the dependency as an interface
// breaks the machine/scheduler cycle.
type SchedulerContext interface {
	// NextBoolean yields a symbolic boolean choice under pc.
	NextBoolean(pc solver.Guard) vs.Prim[bool]

	// NextInteger yields a symbolic choice in [0, bound) under pc.
	NextInteger(bound vs.Prim[int], pc solver.Guard) vs.Prim[int]

	// NextElement yields a symbolic pick from a list, set, or map
	// summary under pc.
	NextElement(container vs.Summary, pc solver.Guard) vs.Summary

	// AllocateMachine mints a fresh machine of the given kind under
	// pc, bumping the per-kind instance counter.
	AllocateMachine(pc solver.Guard, kind string, ctor func(index int) *Machine) vs.Prim[*Machine]

	// Announce broadcasts an event to listening monitors only.
	Announce(event vs.Prim[*Event], payload vs.Union)

	// Unblock wakes sleep-set entries for the given clock.
	Unblock(clock VectorClock)

	// TrackClocks reports whether vector clocks are maintained.
	TrackClocks() bool

	// UseSleepSets reports whether sleep-set pruning is on.
	UseSleepSets() bool

	// MaxInternalSteps bounds one event-to-completion dispatch;
	// zero means unbounded.
	MaxInternalSteps() int
}
