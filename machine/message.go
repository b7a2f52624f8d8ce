package machine

import (
	"fmt"

	"psym/solver"
	vs "psym/valuesummary"
)

// A Message is a pending delivery: a guarded event tag, a guarded
// target machine, a tagged payload, and the sender's vector clock at
// send time. Messages are value summaries so that event buffers can
// hold them in guarded lists.
type Message struct {
	event   vs.Prim[*Event]
	target  vs.Prim[*Machine]
	payload vs.Union
	clock   VectorClock
}

// NewMessage builds a message. A message carrying more than one event
// tag is an invariant violation.
func NewMessage(event vs.Prim[*Event], target vs.Prim[*Machine], payload vs.Union, clock VectorClock) Message {
	if len(event.GetValues()) > 1 {
		panic(&vs.InvariantError{Message: fmt.Sprintf("handling multiple events together is not supported: %s", event)})
	}
	return Message{event: event, target: target, payload: payload, clock: clock}
}

// Event returns the guarded event tag.
func (m Message) Event() vs.Prim[*Event] { return m.event }

// Target returns the guarded target machine.
func (m Message) Target() vs.Prim[*Machine] { return m.target }

// Payload returns the tagged payload.
func (m Message) Payload() vs.Union { return m.payload }

// Clock returns the sender clock recorded at send time.
func (m Message) Clock() VectorClock { return m.clock }

// HasNilEvent reports whether some entry carries a nil event tag.
func (m Message) HasNilEvent() bool {
	for _, e := range m.event.GetGuardedValues() {
		if e.Value == nil {
			return true
		}
	}
	return false
}

// IsCreateMachine reports, per guard, whether the message is a
// machine-creation step.
func (m Message) IsCreateMachine() vs.Prim[bool] {
	return boolOver(m.event.Universe(), m.event.GetGuardFor(CreateMachine))
}

// IsSyncEvent reports, per guard, whether the message carries a sync
// event.
func (m Message) IsSyncEvent() vs.Prim[bool] {
	var sync solver.Guard
	for _, e := range m.event.GetGuardedValues() {
		if e.Value != nil && e.Value.Sync {
			sync = sync.Or(e.Guard)
		}
	}
	return boolOver(m.event.Universe(), sync)
}

// CanRun reports, per guard, whether the message can be delivered:
// its target has not halted.
func (m Message) CanRun() vs.Prim[bool] {
	halted := m.TargetHalted()
	return vs.BoolNot(halted)
}

// TargetHalted reports, per guard, whether the target has halted.
func (m Message) TargetHalted() vs.Prim[bool] {
	domain := m.target.Universe()
	var halted solver.Guard
	for _, t := range m.target.GetGuardedValues() {
		if t.Value == nil {
			continue
		}
		halted = halted.Or(t.Guard.And(vs.TrueGuard(t.Value.HasHalted())))
	}
	return boolOver(domain, halted)
}

func (m Message) Universe() solver.Guard { return m.event.Universe() }

func (m Message) IsEmptyVS() bool { return m.event.IsEmptyVS() }

func (m Message) Restrict(g solver.Guard) vs.Summary {
	if g.IsTrue() {
		return m
	}
	return Message{
		event:   vs.Restrict(m.event, g),
		target:  vs.Restrict(m.target, g),
		payload: vs.Restrict(m.payload, g),
		clock:   m.clock.Restrict(g).(VectorClock),
	}
}

func (m Message) Merge(others ...vs.Summary) vs.Summary {
	out := m
	for _, o := range others {
		om, ok := o.(Message)
		if !ok {
			panic(&vs.InvariantError{Message: fmt.Sprintf("merging %T into Message", o)})
		}
		out.event = vs.Merge2(out.event, om.event)
		out.target = vs.Merge2(out.target, om.target)
		out.payload = vs.Merge2(out.payload, om.payload)
		out.clock = out.clock.Merge(om.clock).(VectorClock)
	}
	return out
}

func (m Message) UpdateUnderGuard(g solver.Guard, update vs.Summary) vs.Summary {
	if g.IsZero() || g.IsFalse() {
		return m
	}
	return m.Restrict(g.Not()).Merge(update.Restrict(g))
}

func (m Message) SymbolicEquals(other vs.Summary, pc solver.Guard) vs.Prim[bool] {
	om, ok := other.(Message)
	if !ok {
		panic(&vs.InvariantError{Message: fmt.Sprintf("comparing Message with %T", other)})
	}
	eq := vs.BoolAnd(m.event.SymbolicEquals(om.event, pc), m.target.SymbolicEquals(om.target, pc))
	return vs.BoolAnd(eq, m.payload.SymbolicEquals(om.payload, pc))
}

func (m Message) Concretize(pc solver.Guard) *vs.GuardedValue[any] {
	ev := m.event.Concretize(pc)
	if ev == nil {
		return nil
	}
	tgt := m.target.Concretize(ev.Guard)
	if tgt == nil {
		return &vs.GuardedValue[any]{Guard: ev.Guard, Value: []any{ev.Value, nil}}
	}
	return &vs.GuardedValue[any]{
		Guard: tgt.Guard,
		Value: []any{fmt.Sprint(ev.Value), fmt.Sprint(tgt.Value)},
	}
}

func (m Message) Snapshot(e *vs.SnapshotEncoder) {
	m.event.Snapshot(e)
	m.target.Snapshot(e)
	m.payload.Snapshot(e)
	m.clock.Snapshot(e)
}

// DecodeMessage reads back a message written by Snapshot.
func DecodeMessage(d *vs.SnapshotDecoder) (Message, error) {
	event, err := vs.DecodePrim[*Event](d)
	if err != nil {
		return Message{}, err
	}
	target, err := vs.DecodePrim[*Machine](d)
	if err != nil {
		return Message{}, err
	}
	payload, err := vs.DecodeUnion(d, decodeAnyPayload)
	if err != nil {
		return Message{}, err
	}
	clock, err := DecodeVectorClock(d)
	if err != nil {
		return Message{}, err
	}
	return Message{event: event, target: target, payload: payload, clock: clock}, nil
}

// decodeAnyPayload reads every union payload back as an integer
// primitive, whatever its tag; payloads of any other shape do not
// decode.
func decodeAnyPayload(d *vs.SnapshotDecoder, t *vs.UnionType) (vs.Summary, error) {
	return vs.DecodePrim[int](d)
}

func (m Message) String() string {
	return fmt.Sprintf("Message{event: %s, target: %s}", m.event, m.target)
}

// boolOver builds a boolean summary over domain with cond true.
func boolOver(domain, cond solver.Guard) vs.Prim[bool] {
	t := vs.BoolTrueUnder(domain.And(cond))
	var f vs.Prim[bool]
	if cond.IsZero() {
		f = vs.PrimUnder(domain, false)
	} else {
		f = vs.PrimUnder(domain.And(cond.Not()), false)
	}
	return t.Merge(f).(vs.Prim[bool])
}
