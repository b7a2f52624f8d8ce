package scheduler

import (
	"psym/machine"
	"psym/solver"
	vs "psym/valuesummary"
)

// A MessageOrder is a partial order over pending messages: LessThan
// returns the guard under which a must be scheduled before b. The
// candidate-sender filter eliminates, pairwise, heads that another
// head strictly precedes.
type MessageOrder interface {
	LessThan(a, b machine.Message) vs.Prim[bool]
}

// ReceiverQueueOrder orders messages headed to the same machine by
// their position in that receiver's queue, read off the send-time
// vector clocks.
type ReceiverQueueOrder struct{}

func (ReceiverQueueOrder) LessThan(a, b machine.Message) vs.Prim[bool] {
	sameTarget := a.Target().SymbolicEquals(b.Target(), a.Universe().And(b.Universe()))
	same := vs.TrueGuard(sameTarget)
	if same.IsZero() || same.IsFalse() {
		return vs.PrimUnder(a.Universe().And(b.Universe()), false)
	}
	before := a.Clock().HappensBefore(b.Clock(), same)
	return vs.BoolAnd(sameTarget, before)
}

// InterleaveOrder orders messages whose event classes are configured
// not to be reordered past each other. With no configuration it is
// the identity partial order and the filter is a no-op.
type InterleaveOrder struct {
	// before[x][y] means an x-tagged message precedes a y-tagged one.
	before map[*machine.Event]map[*machine.Event]bool
}

// NewInterleaveOrder returns the identity order.
func NewInterleaveOrder() *InterleaveOrder {
	return &InterleaveOrder{before: map[*machine.Event]map[*machine.Event]bool{}}
}

// AddPair declares that x-tagged messages precede y-tagged ones.
func (o *InterleaveOrder) AddPair(x, y *machine.Event) {
	set, ok := o.before[x]
	if !ok {
		set = map[*machine.Event]bool{}
		o.before[x] = set
	}
	set[y] = true
}

func (o *InterleaveOrder) LessThan(a, b machine.Message) vs.Prim[bool] {
	domain := a.Universe().And(b.Universe())
	var under solver.Guard
	for _, ea := range a.Event().GetGuardedValues() {
		set, ok := o.before[ea.Value]
		if !ok {
			continue
		}
		for _, eb := range b.Event().GetGuardedValues() {
			if set[eb.Value] {
				under = under.Or(ea.Guard.And(eb.Guard))
			}
		}
	}
	return vs.PrimUnder(domain.And(under), true).Merge(
		vs.PrimUnder(safeMinus(domain, under), false)).(vs.Prim[bool])
}

// safeMinus returns domain minus g, tolerating the zero guard.
func safeMinus(domain, g solver.Guard) solver.Guard {
	if g.IsZero() {
		return domain
	}
	return domain.And(g.Not())
}
