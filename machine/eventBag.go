package machine

import (
	"psym/solver"
	vs "psym/valuesummary"
)

// EventBag is the unordered event buffer: the head is a fresh
// symbolic pick over every buffered message, so delivery order is a
// search choice rather than send order. The pick is cached until the
// bag is mutated, keeping Peek and the following Remove consistent.
type EventBag struct {
	ctx      *solver.Context
	elements vs.List[Message]

	peek      *Message
	peekIndex vs.Prim[int]
}

// NewEventBag returns an empty bag anchored to ctx.
func NewEventBag(ctx *solver.Context) *EventBag {
	return &EventBag{ctx: ctx, elements: vs.NewList[Message](ctx.True())}
}

func (b *EventBag) Add(m Message) {
	b.elements = b.elements.Add(m)
	b.resetPeek()
}

func (b *EventBag) IsEmpty() bool {
	g := b.elements.NonEmptyUniverse()
	return g.IsZero() || !g.IsSat()
}

func (b *EventBag) EnabledUniverse() solver.Guard {
	return b.elements.NonEmptyUniverse()
}

func (b *EventBag) resetPeek() {
	b.peek = nil
	b.peekIndex = vs.Prim[int]{}
}

// pickHead chooses, with fresh choice variables, one buffered message
// per guard.
func (b *EventBag) pickHead() Message {
	if b.peek != nil {
		return *b.peek
	}
	size := b.elements.Size()
	candidates := []vs.Summary{}
	for i := 0; i < vs.IntMaxValue(size); i++ {
		in := vs.TrueGuard(b.elements.InRange(vs.PrimUnder(b.elements.Universe(), i)))
		if in.IsZero() || in.IsFalse() {
			continue
		}
		candidates = append(candidates, vs.PrimUnder(in, i))
	}
	index := vs.NondetChoice(b.ctx, candidates).(vs.Prim[int])
	head := b.elements.Get(index)
	b.peek = &head
	b.peekIndex = index
	return head
}

func (b *EventBag) Peek(pc solver.Guard) Message {
	return b.pickHead().Restrict(pc).(Message)
}

func (b *EventBag) Remove(pc solver.Guard) Message {
	head := b.Peek(pc)
	index := vs.Restrict(b.peekIndex, pc)
	b.elements = vs.UpdateUnderGuard(b.elements, index.Universe(), b.elements.RemoveAt(index))
	b.resetPeek()
	return head
}

func (b *EventBag) SatisfiesPredUnderGuard(pred func(Message) vs.Prim[bool]) vs.Prim[bool] {
	head := b.pickHead()
	return vs.Restrict(pred(head), head.Universe())
}

func (b *EventBag) HasCreateMachineUnderGuard() vs.Prim[bool] {
	return b.SatisfiesPredUnderGuard(Message.IsCreateMachine)
}

func (b *EventBag) HasSyncEventUnderGuard() vs.Prim[bool] {
	return b.SatisfiesPredUnderGuard(Message.IsSyncEvent)
}

func (b *EventBag) Elements() vs.List[Message] { return b.elements }

func (b *EventBag) SetElements(elements vs.List[Message]) {
	b.elements = elements
	b.resetPeek()
}
