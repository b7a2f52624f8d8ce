// Package machine implements the execution layer the scheduler
// drives: machines with symbolic local state, their event buffers,
// messages, and vector clocks.
package machine

// An Event is a named message tag. Events are interned by the program
// under test; handle equality is event equality.
type Event struct {
	Name string
	// Sync events are delivered before any other pending message is
	// scheduled.
	Sync bool
}

// CreateMachine is the reserved event that starts a freshly allocated
// machine. It is prioritized over every other pending message.
var CreateMachine = &Event{Name: "createMachine"}

// NewEvent returns a fresh asynchronous event tag.
func NewEvent(name string) *Event { return &Event{Name: name} }

// NewSyncEvent returns a fresh synchronous event tag.
func NewSyncEvent(name string) *Event { return &Event{Name: name, Sync: true} }

func (e *Event) String() string {
	if e == nil {
		return "<nil event>"
	}
	return e.Name
}

// SnapshotRef implements valuesummary.SnapshotHandle.
func (e *Event) SnapshotRef() (string, string, int) {
	return "event", e.Name, 0
}
