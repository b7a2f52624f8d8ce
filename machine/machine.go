package machine

import (
	"fmt"

	"psym/solver"
	vs "psym/valuesummary"
)

// A Machine is one communicating state machine of the program under
// test. Its identity is (kind, index) and is stable for the run; all
// of its state is symbolic. Machines are shared between the scheduler
// and every summary holding a handle to them.
type Machine struct {
	kind  string
	index int

	ctx   *solver.Context
	sched SchedulerContext

	start   *State
	current vs.Prim[*State]
	halted  vs.Prim[bool]

	// Program-declared symbolic fields, addressable by index.
	fields []vs.Summary

	buffer EventBuffer
	clock  VectorClock

	// Internal steps taken by the current event-to-completion
	// dispatch; bounded by the scheduler configuration.
	internalSteps int
}

// New creates a machine of the given kind and instance index that
// starts in start. The buffer is a FIFO queue until the scheduler
// switches it to bag semantics at allocation.
func New(ctx *solver.Context, kind string, index int, start *State) *Machine {
	m := &Machine{
		kind:    kind,
		index:   index,
		ctx:     ctx,
		start:   start,
		current: vs.NewPrim(ctx, start),
		halted:  vs.NewPrim(ctx, false),
		clock:   NewVectorClock(ctx.True()),
	}
	m.buffer = NewEventQueue(ctx)
	return m
}

// Kind returns the machine's class name.
func (m *Machine) Kind() string { return m.kind }

// Index returns the per-class instance index.
func (m *Machine) Index() int { return m.index }

// Context returns the solver context the machine is anchored to.
func (m *Machine) Context() *solver.Context { return m.ctx }

// SetScheduler attaches the scheduler the machine reports to.
func (m *Machine) SetScheduler(s SchedulerContext) { m.sched = s }

// Scheduler returns the attached scheduler context.
func (m *Machine) Scheduler() SchedulerContext { return m.sched }

// Buffer returns the machine's event buffer.
func (m *Machine) Buffer() EventBuffer { return m.buffer }

// UseBagSemantics switches the (still empty) buffer to a bag.
func (m *Machine) UseBagSemantics() {
	m.buffer = NewEventBag(m.ctx)
}

// Clock returns the machine's vector clock.
func (m *Machine) Clock() VectorClock { return m.clock }

// IncrementClock bumps the machine's own clock component under pc.
func (m *Machine) IncrementClock(pc solver.Guard) {
	m.clock = m.clock.Increment(pc, m)
}

// CurrentState returns the guarded control state.
func (m *Machine) CurrentState() vs.Prim[*State] { return m.current }

// HasHalted reports, per guard, whether the machine has halted.
func (m *Machine) HasHalted() vs.Prim[bool] { return m.halted }

// AddField appends a symbolic field and returns its index.
func (m *Machine) AddField(initial vs.Summary) int {
	m.fields = append(m.fields, initial)
	return len(m.fields) - 1
}

// Field returns the field at index i.
func (m *Machine) Field(i int) vs.Summary { return m.fields[i] }

// SetField replaces the field at index i under pc.
func (m *Machine) SetField(i int, pc solver.Guard, value vs.Summary) {
	m.fields[i] = m.fields[i].UpdateUnderGuard(pc, value)
}

// GetLocalState captures the machine's full symbolic state in a fixed
// layout: control state, halt flag, clock, buffered messages, then
// the program fields.
func (m *Machine) GetLocalState() []vs.Summary {
	out := []vs.Summary{m.current, m.halted, m.clock, m.buffer.Elements()}
	out = append(out, m.fields...)
	return out
}

// SetLocalState restores a capture produced by GetLocalState.
func (m *Machine) SetLocalState(state []vs.Summary) {
	m.current = state[0].(vs.Prim[*State])
	m.halted = state[1].(vs.Prim[bool])
	m.clock = state[2].(VectorClock)
	m.buffer.SetElements(state[3].(vs.List[Message]))
	m.fields = append([]vs.Summary{}, state[4:]...)
}

// Reset returns the machine to its pre-start shape: start state, not
// halted, zero clock, empty buffer, empty fields.
func (m *Machine) Reset() {
	m.current = vs.NewPrim(m.ctx, m.start)
	m.halted = vs.NewPrim(m.ctx, false)
	m.clock = NewVectorClock(m.ctx.True())
	m.buffer.SetElements(vs.NewList[Message](m.ctx.True()))
	m.fields = nil
}

// Send enqueues an event to target under pc, stamping the sender's
// clock.
func (m *Machine) Send(pc solver.Guard, target vs.Prim[*Machine], ev *Event, payload vs.Union) {
	if ev == nil {
		panic(&vs.InvariantError{Message: "cannot send a nil event"})
	}
	if m.sched.TrackClocks() {
		m.IncrementClock(pc)
	}
	if m.sched.UseSleepSets() {
		m.sched.Unblock(m.clock)
	}
	msg := NewMessage(vs.PrimUnder(pc, ev), vs.Restrict(target, pc), vs.Restrict(payload, pc), m.clock.Restrict(pc).(VectorClock))
	m.buffer.Add(msg)
}

// CreateMachineOf allocates a machine of the given kind under pc and
// enqueues its creation step.
func (m *Machine) CreateMachineOf(pc solver.Guard, kind string, ctor func(index int) *Machine, payload vs.Union) vs.Prim[*Machine] {
	created := m.sched.AllocateMachine(pc, kind, ctor)
	if m.sched.TrackClocks() {
		m.IncrementClock(pc)
	}
	msg := NewMessage(vs.PrimUnder(pc, CreateMachine), created, vs.Restrict(payload, pc), m.clock.Restrict(pc).(VectorClock))
	m.buffer.Add(msg)
	return created
}

// Goto moves the machine to state under pc and runs the state's entry
// handler.
func (m *Machine) Goto(pc solver.Guard, state *State, payload vs.Summary) {
	m.current = vs.UpdateUnderGuard[vs.Summary](m.current, pc, vs.PrimUnder(pc, state)).(vs.Prim[*State])
	if state.Entry != nil {
		m.step(func() { state.Entry(m, pc, payload) })
	}
}

// Halt stops the machine under pc. Pending messages to a halted
// machine are purged by the scheduler.
func (m *Machine) Halt(pc solver.Guard) {
	m.halted = vs.UpdateUnderGuard[vs.Summary](m.halted, pc, vs.PrimUnder(pc, true)).(vs.Prim[bool])
}

// step runs one internal transition, enforcing the per-dispatch bound.
func (m *Machine) step(run func()) {
	m.internalSteps++
	if max := m.sched.MaxInternalSteps(); max > 0 && m.internalSteps > max {
		panic(&vs.ModelError{
			Message: fmt.Sprintf("machine %s exceeded %d internal steps in one dispatch", m, max),
		})
	}
	run()
}

// ProcessEventToCompletion delivers a message to the machine under
// guard and runs handlers until the machine is quiescent again.
func (m *Machine) ProcessEventToCompletion(guard solver.Guard, msg Message) {
	notHalted := vs.FalseGuard(m.halted)
	if notHalted.IsZero() {
		return
	}
	alive := guard.And(notHalted)
	if alive.IsFalse() || !alive.IsSat() {
		return
	}
	m.internalSteps = 0
	for _, ev := range msg.Event().GetGuardedValues() {
		g := ev.Guard.And(alive)
		if g.IsFalse() {
			continue
		}
		if ev.Value == CreateMachine {
			m.startUnder(g, msg.Payload())
			continue
		}
		m.deliver(g, ev.Value, msg.Payload())
	}
}

// startUnder runs the start state's entry handler; used for the
// machine-creation step.
func (m *Machine) startUnder(pc solver.Guard, payload vs.Summary) {
	if m.start.Entry != nil {
		m.step(func() { m.start.Entry(m, pc, payload) })
	}
}

// deliver routes an event to the handler of every guarded current
// state. A state without a handler for the event is a model error.
func (m *Machine) deliver(pc solver.Guard, ev *Event, payload vs.Summary) {
	for _, st := range m.current.GetGuardedValues() {
		g := st.Guard.And(pc)
		if g.IsFalse() {
			continue
		}
		h, ok := st.Value.Handlers[ev]
		if !ok {
			panic(&vs.ModelError{
				Message: fmt.Sprintf("machine %s has no handler for event %s in state %s", m, ev, st.Value),
				Guard:   g,
			})
		}
		handlerGuard := g
		m.step(func() { h(m, handlerGuard, payload) })
	}
}

func (m *Machine) String() string {
	return fmt.Sprintf("%s(%d)", m.kind, m.index)
}

// SnapshotRef implements valuesummary.SnapshotHandle.
func (m *Machine) SnapshotRef() (string, string, int) {
	return "machine", m.kind, m.index
}
