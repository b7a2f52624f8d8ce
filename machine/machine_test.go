package machine

import (
	"testing"

	"psym/solver"
	vs "psym/valuesummary"
)

func newCtx(t *testing.T) *solver.Context {
	t.Helper()
	engine, err := solver.NewBDDEngine(512)
	if err != nil {
		t.Fatalf("creating BDD engine: %v", err)
	}
	return solver.NewContext(engine)
}

// mockScheduler satisfies SchedulerContext with just enough behavior
// for buffer and dispatch tests.
type mockScheduler struct {
	ctx       *solver.Context
	allocated []*Machine
	announced []*Event
	clocks    bool
	sleep     bool
}

func (m *mockScheduler) NextBoolean(pc solver.Guard) vs.Prim[bool] {
	return vs.NondetChoice(m.ctx, []vs.Summary{
		vs.PrimUnder(pc, true),
		vs.PrimUnder(pc, false),
	}).(vs.Prim[bool])
}

func (m *mockScheduler) NextInteger(bound vs.Prim[int], pc solver.Guard) vs.Prim[int] {
	return vs.PrimUnder(pc, 0)
}

func (m *mockScheduler) NextElement(container vs.Summary, pc solver.Guard) vs.Summary {
	return container
}

func (m *mockScheduler) AllocateMachine(pc solver.Guard, kind string, ctor func(int) *Machine) vs.Prim[*Machine] {
	created := ctor(len(m.allocated))
	created.SetScheduler(m)
	m.allocated = append(m.allocated, created)
	return vs.PrimUnder(pc, created)
}

func (m *mockScheduler) Announce(event vs.Prim[*Event], payload vs.Union) {
	for _, e := range event.GetGuardedValues() {
		m.announced = append(m.announced, e.Value)
	}
}

func (m *mockScheduler) Unblock(clock VectorClock) {}

func (m *mockScheduler) TrackClocks() bool { return m.clocks }

func (m *mockScheduler) UseSleepSets() bool { return m.sleep }

func (m *mockScheduler) MaxInternalSteps() int { return 100 }

func newTestMachine(t *testing.T, ctx *solver.Context, start *State) (*Machine, *mockScheduler) {
	t.Helper()
	sched := &mockScheduler{ctx: ctx}
	m := New(ctx, "Test", 0, start)
	m.SetScheduler(sched)
	return m, sched
}

func TestQueueKeepsSendOrder(t *testing.T) {
	ctx := newCtx(t)
	idle := NewState("idle")
	m, _ := newTestMachine(t, ctx, idle)
	target, _ := newTestMachine(t, ctx, idle)

	e1 := NewEvent("E1")
	e2 := NewEvent("E2")
	m.Send(ctx.True(), vs.NewPrim(ctx, target), e1, vs.EmptyUnion())
	m.Send(ctx.True(), vs.NewPrim(ctx, target), e2, vs.EmptyUnion())

	head := m.Buffer().Peek(ctx.True())
	if !head.Event().GetGuardFor(e1).IsTrue() {
		t.Fatalf("head should be the first send, got %s", head)
	}

	m.Buffer().Remove(ctx.True())
	head = m.Buffer().Peek(ctx.True())
	if !head.Event().GetGuardFor(e2).IsTrue() {
		t.Fatalf("after a dequeue the head should be the second send, got %s", head)
	}

	m.Buffer().Remove(ctx.True())
	if !m.Buffer().IsEmpty() {
		t.Errorf("buffer should be empty after both dequeues")
	}
}

func TestGuardedSendSplitsQueue(t *testing.T) {
	ctx := newCtx(t)
	g := ctx.FreshVar()
	idle := NewState("idle")
	m, _ := newTestMachine(t, ctx, idle)
	target, _ := newTestMachine(t, ctx, idle)

	e1 := NewEvent("E1")
	e2 := NewEvent("E2")
	m.Send(g, vs.PrimUnder(g, target), e1, vs.EmptyUnion())
	m.Send(g.Not(), vs.PrimUnder(g.Not(), target), e2, vs.EmptyUnion())

	head := m.Buffer().Peek(ctx.True())
	if !head.Event().GetGuardFor(e1).Equals(g) {
		t.Errorf("head should be E1 exactly under g")
	}
	if !head.Event().GetGuardFor(e2).Equals(g.Not()) {
		t.Errorf("head should be E2 exactly under !g")
	}
}

func TestCreateMachinePredicates(t *testing.T) {
	ctx := newCtx(t)
	idle := NewState("idle")
	m, _ := newTestMachine(t, ctx, idle)

	m.CreateMachineOf(ctx.True(), "Child", func(index int) *Machine {
		return New(ctx, "Child", index, idle)
	}, vs.EmptyUnion())

	isCreate := m.Buffer().HasCreateMachineUnderGuard()
	if !vs.TrueGuard(isCreate).IsTrue() {
		t.Errorf("the enqueued creation step should read as a create message")
	}
}

func TestHaltStopsDelivery(t *testing.T) {
	ctx := newCtx(t)
	delivered := 0
	ev := NewEvent("E")
	st := NewState("s")
	st.On(ev, func(m *Machine, pc solver.Guard, payload vs.Summary) {
		delivered++
	})
	m, _ := newTestMachine(t, ctx, st)
	sender, _ := newTestMachine(t, ctx, st)

	msg := NewMessage(vs.NewPrim(ctx, ev), vs.NewPrim(ctx, m), vs.EmptyUnion(), sender.Clock())

	m.ProcessEventToCompletion(ctx.True(), msg)
	if delivered != 1 {
		t.Fatalf("expected one delivery, got %d", delivered)
	}

	m.Halt(ctx.True())
	m.ProcessEventToCompletion(ctx.True(), msg)
	if delivered != 1 {
		t.Errorf("a halted machine should not receive events")
	}
}

func TestUnhandledEventIsModelError(t *testing.T) {
	ctx := newCtx(t)
	st := NewState("s")
	m, _ := newTestMachine(t, ctx, st)
	ev := NewEvent("E")
	msg := NewMessage(vs.NewPrim(ctx, ev), vs.NewPrim(ctx, m), vs.EmptyUnion(), m.Clock())

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected a model error for an unhandled event")
		} else if _, ok := r.(*vs.ModelError); !ok {
			t.Fatalf("expected *ModelError, got %T", r)
		}
	}()
	m.ProcessEventToCompletion(ctx.True(), msg)
}

func TestLocalStateRoundTrip(t *testing.T) {
	ctx := newCtx(t)
	idle := NewState("idle")
	m, _ := newTestMachine(t, ctx, idle)
	m.AddField(vs.NewPrim(ctx, 41))

	saved := m.GetLocalState()
	m.SetField(0, ctx.True(), vs.NewPrim(ctx, 42))
	m.Halt(ctx.True())

	m.SetLocalState(saved)
	field := m.Field(0).(vs.Prim[int])
	if !field.GetGuardFor(41).IsTrue() {
		t.Errorf("restoring should roll the field back to 41, got %s", field)
	}
	if vs.IsEverTrue(m.HasHalted()) {
		t.Errorf("restoring should roll back the halt")
	}
}

func TestVectorClockHappensBefore(t *testing.T) {
	ctx := newCtx(t)
	idle := NewState("idle")
	a, _ := newTestMachine(t, ctx, idle)

	c1 := NewVectorClock(ctx.True()).Increment(ctx.True(), a)
	c2 := c1.Increment(ctx.True(), a)

	before := c1.HappensBefore(c2, ctx.True())
	if !vs.TrueGuard(before).IsTrue() {
		t.Errorf("one increment should order the clocks")
	}
	after := c2.HappensBefore(c1, ctx.True())
	if vs.IsEverTrue(after) {
		t.Errorf("the ordering should be strict")
	}
	self := c1.HappensBefore(c1, ctx.True())
	if vs.IsEverTrue(self) {
		t.Errorf("a clock should not precede itself")
	}
}

func TestSendBumpsClock(t *testing.T) {
	ctx := newCtx(t)
	idle := NewState("idle")
	m, sched := newTestMachine(t, ctx, idle)
	sched.clocks = true
	target, _ := newTestMachine(t, ctx, idle)

	m.Send(ctx.True(), vs.NewPrim(ctx, target), NewEvent("E"), vs.EmptyUnion())

	count := m.Clock().Get(m)
	if !count.GetGuardFor(1).IsTrue() {
		t.Errorf("the sender's clock component should be 1 after one send, got %s", count)
	}
}
