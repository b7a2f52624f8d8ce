package machine

import (
	"psym/solver"
	vs "psym/valuesummary"
)

// EventQueue is the FIFO event buffer: the head is always the oldest
// message alive under the queried guard. The peeked head is cached
// until the queue is mutated.
type EventQueue struct {
	elements vs.List[Message]
	peek     *Message
}

// NewEventQueue returns an empty queue anchored to ctx.
func NewEventQueue(ctx *solver.Context) *EventQueue {
	return &EventQueue{elements: vs.NewList[Message](ctx.True())}
}

func (q *EventQueue) Add(m Message) {
	q.elements = q.elements.Add(m)
	q.resetPeek()
}

func (q *EventQueue) IsEmpty() bool {
	g := q.elements.NonEmptyUniverse()
	return g.IsZero() || !g.IsSat()
}

func (q *EventQueue) EnabledUniverse() solver.Guard {
	return q.elements.NonEmptyUniverse()
}

func (q *EventQueue) resetPeek() { q.peek = nil }

func (q *EventQueue) peekHead() Message {
	if q.peek == nil {
		enabled := q.EnabledUniverse()
		head := q.elements.Get(vs.PrimUnder(enabled, 0))
		q.peek = &head
	}
	return *q.peek
}

func (q *EventQueue) Peek(pc solver.Guard) Message {
	return q.peekHead().Restrict(pc).(Message)
}

func (q *EventQueue) Remove(pc solver.Guard) Message {
	head := q.Peek(pc)
	q.elements = vs.UpdateUnderGuard(q.elements, pc, q.elements.RemoveAt(vs.PrimUnder(pc, 0)))
	q.resetPeek()
	return head
}

func (q *EventQueue) SatisfiesPredUnderGuard(pred func(Message) vs.Prim[bool]) vs.Prim[bool] {
	head := q.peekHead()
	return vs.Restrict(pred(head), head.Universe())
}

func (q *EventQueue) HasCreateMachineUnderGuard() vs.Prim[bool] {
	return q.SatisfiesPredUnderGuard(Message.IsCreateMachine)
}

func (q *EventQueue) HasSyncEventUnderGuard() vs.Prim[bool] {
	return q.SatisfiesPredUnderGuard(Message.IsSyncEvent)
}

func (q *EventQueue) Elements() vs.List[Message] { return q.elements }

func (q *EventQueue) SetElements(elements vs.List[Message]) {
	q.elements = elements
	q.resetPeek()
}
