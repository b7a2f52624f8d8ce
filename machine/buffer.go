package machine

import (
	"psym/solver"
	vs "psym/valuesummary"
)

// An EventBuffer holds the messages a machine has sent but the
// scheduler has not yet delivered. The queue implementation preserves
// send order per guard; the bag implementation hands the scheduler a
// fresh symbolic pick each time.
type EventBuffer interface {
	// Add enqueues a message under its own universe.
	Add(m Message)

	// IsEmpty reports whether the buffer holds no message under any
	// guard.
	IsEmpty() bool

	// EnabledUniverse returns the guard under which a head message
	// exists.
	EnabledUniverse() solver.Guard

	// Peek returns the head message restricted to pc without removing
	// it.
	Peek(pc solver.Guard) Message

	// Remove dequeues and returns the head message under pc; outside
	// pc the buffer is unchanged.
	Remove(pc solver.Guard) Message

	// SatisfiesPredUnderGuard applies pred to the head message under
	// the buffer's enabled universe.
	SatisfiesPredUnderGuard(pred func(Message) vs.Prim[bool]) vs.Prim[bool]

	// HasCreateMachineUnderGuard reports whether the head is a
	// machine-creation message.
	HasCreateMachineUnderGuard() vs.Prim[bool]

	// HasSyncEventUnderGuard reports whether the head carries a sync
	// event.
	HasSyncEventUnderGuard() vs.Prim[bool]

	// Elements exposes the buffered messages for snapshots.
	Elements() vs.List[Message]

	// SetElements replaces the buffered messages from a snapshot.
	SetElements(vs.List[Message])
}
