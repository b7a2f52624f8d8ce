package scheduler

import (
	"testing"

	"psym/config"
	"psym/examples"
	"psym/logger"
	"psym/machine"
	"psym/solver"
	vs "psym/valuesummary"
)

func newTestScheduler(t *testing.T, opts ...config.Option) *Scheduler {
	t.Helper()
	engine, err := solver.NewBDDEngine(2048)
	if err != nil {
		t.Fatalf("creating BDD engine: %v", err)
	}
	ctx := solver.NewContext(engine)
	return New(ctx, config.With(opts...), examples.Empty(ctx), logger.Discard())
}

func TestNextBooleanCoversBothOutcomes(t *testing.T) {
	s := newTestScheduler(t)
	b := s.NextBoolean(s.ctx.True())

	if !vs.IsEverTrue(b) || !vs.IsEverFalse(b) {
		t.Errorf("a boolean choice should make both outcomes reachable, got %s", b)
	}
	if !b.Universe().IsTrue() {
		t.Errorf("the outcomes should partition the path condition")
	}
	if s.ChoiceDepth() != 1 {
		t.Errorf("a choice should advance the choice depth, got %d", s.ChoiceDepth())
	}
	if c := s.schedule.ChoiceAt(0); c == nil || c.Kind != ChoiceBool {
		t.Errorf("the choice should be recorded as a boolean decision")
	}
}

func TestNextIntegerCoversRange(t *testing.T) {
	s := newTestScheduler(t)
	bound := vs.NewPrim(s.ctx, 3)

	n := s.NextInteger(bound, s.ctx.True())
	for v := 0; v < 3; v++ {
		if g := n.GetGuardFor(v); g.IsZero() || !g.IsSat() {
			t.Errorf("value %d in [0,3) should be reachable", v)
		}
	}
	if g := n.GetGuardFor(3); !g.IsZero() && g.IsSat() {
		t.Errorf("the bound itself should not be reachable")
	}
}

func TestNextIntegerZeroBoundActsAsOne(t *testing.T) {
	s := newTestScheduler(t)
	bound := vs.NewPrim(s.ctx, 0)

	n := s.NextInteger(bound, s.ctx.True())
	if g := n.GetGuardFor(0); g.IsZero() || !g.Equals(s.ctx.True()) {
		t.Errorf("a zero bound should behave as bound one, got %s", n)
	}
}

func TestNextIntegerGuardedBound(t *testing.T) {
	s := newTestScheduler(t)
	g := s.ctx.FreshVar()
	bound := vs.Merge2(vs.PrimUnder(g, 1), vs.PrimUnder(g.Not(), 2))

	n := s.NextInteger(bound, s.ctx.True())
	if got := n.GetGuardFor(1); !got.IsZero() && got.And(g).IsSat() {
		t.Errorf("value 1 should be unreachable where the bound is 1")
	}
}

func TestNextElementPicksFromList(t *testing.T) {
	s := newTestScheduler(t)
	l := vs.NewList[vs.Prim[int]](s.ctx.True())
	l = l.Add(vs.NewPrim(s.ctx, 10))
	l = l.Add(vs.NewPrim(s.ctx, 20))

	picked := s.NextElement(l, s.ctx.True()).(vs.Prim[int])
	for _, v := range []int{10, 20} {
		if g := picked.GetGuardFor(v); g.IsZero() || !g.IsSat() {
			t.Errorf("element %d should be reachable, got %s", v, picked)
		}
	}
}

func TestInterleaveOrderDefaultsToIdentity(t *testing.T) {
	engine, err := solver.NewBDDEngine(256)
	if err != nil {
		t.Fatalf("creating BDD engine: %v", err)
	}
	ctx := solver.NewContext(engine)
	st := machine.NewState("s")
	a := machine.New(ctx, "A", 0, st)
	e1 := machine.NewEvent("E1")
	e2 := machine.NewEvent("E2")
	clock := machine.NewVectorClock(ctx.True())
	m1 := machine.NewMessage(vs.NewPrim(ctx, e1), vs.NewPrim(ctx, a), vs.EmptyUnion(), clock)
	m2 := machine.NewMessage(vs.NewPrim(ctx, e2), vs.NewPrim(ctx, a), vs.EmptyUnion(), clock)

	o := NewInterleaveOrder()
	if vs.IsEverTrue(o.LessThan(m1, m2)) {
		t.Errorf("the unconfigured interleave order should relate nothing")
	}

	o.AddPair(e1, e2)
	if !vs.TrueGuard(o.LessThan(m1, m2)).IsTrue() {
		t.Errorf("a configured pair should order the messages")
	}
	if vs.IsEverTrue(o.LessThan(m2, m1)) {
		t.Errorf("the configured order should not be symmetric")
	}
}

func TestReceiverQueueOrderUsesClocks(t *testing.T) {
	engine, err := solver.NewBDDEngine(256)
	if err != nil {
		t.Fatalf("creating BDD engine: %v", err)
	}
	ctx := solver.NewContext(engine)
	st := machine.NewState("s")
	target := machine.New(ctx, "T", 0, st)
	sender := machine.New(ctx, "S", 0, st)

	early := machine.NewVectorClock(ctx.True()).Increment(ctx.True(), sender)
	late := early.Increment(ctx.True(), sender)

	ev := machine.NewEvent("E")
	m1 := machine.NewMessage(vs.NewPrim(ctx, ev), vs.NewPrim(ctx, target), vs.EmptyUnion(), early)
	m2 := machine.NewMessage(vs.NewPrim(ctx, ev), vs.NewPrim(ctx, target), vs.EmptyUnion(), late)

	o := ReceiverQueueOrder{}
	if !vs.TrueGuard(o.LessThan(m1, m2)).IsTrue() {
		t.Errorf("the earlier queue position should be scheduled first")
	}
	if vs.IsEverTrue(o.LessThan(m2, m1)) {
		t.Errorf("the receiver order should be strict")
	}
}
