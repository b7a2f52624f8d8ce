package valuesummary

import (
	"testing"

	"psym/solver"
)

func newCtx(t *testing.T) *solver.Context {
	t.Helper()
	engine, err := solver.NewBDDEngine(512)
	if err != nil {
		t.Fatalf("creating BDD engine: %v", err)
	}
	return solver.NewContext(engine)
}

// assertEquivalent checks structural equality over the full universe.
func assertEquivalent(t *testing.T, a, b Summary) {
	t.Helper()
	ua, ub := a.Universe(), b.Universe()
	if !ua.Equals(ub) {
		t.Fatalf("universes differ: %s vs %s", a, b)
	}
	if a.IsEmptyVS() && b.IsEmptyVS() {
		return
	}
	eq := TrueGuard(a.SymbolicEquals(b, ua))
	if !eq.Equals(ua) {
		t.Fatalf("summaries differ under part of the universe: %s vs %s", a, b)
	}
}

func forked(ctx *solver.Context) (Prim[int], solver.Guard) {
	g := ctx.FreshVar()
	a := Merge2(PrimUnder(g, 1), PrimUnder(g.Not(), 2))
	return a, g
}

func TestPrimRestrictIdentity(t *testing.T) {
	ctx := newCtx(t)
	a, _ := forked(ctx)

	assertEquivalent(t, Restrict(a, ctx.True()), a)

	if !Restrict(a, ctx.False()).IsEmptyVS() {
		t.Errorf("restricting to false should empty the summary")
	}
}

func TestPrimRestrictComposes(t *testing.T) {
	ctx := newCtx(t)
	a, _ := forked(ctx)
	g := ctx.FreshVar()
	h := ctx.FreshVar()

	lhs := Restrict(Restrict(a, g), h)
	rhs := Restrict(a, g.And(h))
	assertEquivalent(t, lhs, rhs)
}

func TestPrimRestrictMergeRoundTrip(t *testing.T) {
	ctx := newCtx(t)
	a, _ := forked(ctx)
	g := ctx.FreshVar()

	rebuilt := Merge2(Restrict(a, g), Restrict(a, g.Not()))
	assertEquivalent(t, rebuilt, a)
}

func TestPrimUpdateUnderGuard(t *testing.T) {
	ctx := newCtx(t)
	a, _ := forked(ctx)
	b := NewPrim(ctx, 7)
	g := ctx.FreshVar()

	lhs := UpdateUnderGuard(a, g, b)
	rhs := Merge2(Restrict(a, g.Not()), Restrict(b, g))
	assertEquivalent(t, lhs, rhs)
}

func TestPrimSymbolicEqualsSelf(t *testing.T) {
	ctx := newCtx(t)
	a, _ := forked(ctx)

	eq := a.SymbolicEquals(a, ctx.True())
	if !TrueGuard(eq).Equals(a.Universe()) {
		t.Errorf("a == a should hold on the whole universe")
	}
}

func TestPrimMergeCanonicalizes(t *testing.T) {
	ctx := newCtx(t)
	g := ctx.FreshVar()
	h := g.Not().And(ctx.FreshVar())

	merged := Merge2(PrimUnder(g, 5), PrimUnder(h, 5))
	values := merged.GetGuardedValues()
	if len(values) != 1 {
		t.Fatalf("expected equal values to merge into one entry, got %d", len(values))
	}
	if !values[0].Guard.Equals(g.Or(h)) {
		t.Errorf("merged guard should be the disjunction of the inputs")
	}
}

func TestPrimGetGuardFor(t *testing.T) {
	ctx := newCtx(t)
	a, g := forked(ctx)

	if !a.GetGuardFor(1).Equals(g) {
		t.Errorf("guard for 1 should be g")
	}
	if !a.GetGuardFor(3).IsFalse() {
		t.Errorf("guard for an absent value should be false")
	}
}

func TestBoolHelpers(t *testing.T) {
	ctx := newCtx(t)
	g := ctx.FreshVar()
	b := Merge2(PrimUnder(g, true), PrimUnder(g.Not(), false))

	if !IsEverTrue(b) || !IsEverFalse(b) {
		t.Errorf("forked boolean should be sometimes true and sometimes false")
	}
	if !TrueGuard(BoolNot(b)).Equals(g.Not()) {
		t.Errorf("negation should flip the true guard")
	}
	both := BoolAnd(b, BoolNot(b))
	if IsEverTrue(both) {
		t.Errorf("b & !b should never be true")
	}
}

func TestIntHelpers(t *testing.T) {
	ctx := newCtx(t)
	g := ctx.FreshVar()
	a := Merge2(PrimUnder(g, 1), PrimUnder(g.Not(), 3))

	if IntMaxValue(a) != 3 {
		t.Errorf("expected max value 3, got %d", IntMaxValue(a))
	}

	bumped := IntAdd(a, 1)
	if !bumped.GetGuardFor(2).Equals(g) {
		t.Errorf("adding one should shift 1 to 2 under g")
	}

	lt := IntLessThan(2, a)
	if !TrueGuard(lt).Equals(g.Not()) {
		t.Errorf("2 < a should hold exactly under !g")
	}
}

func TestNondetChoiceCoversCandidates(t *testing.T) {
	ctx := newCtx(t)
	choices := []Summary{NewPrim(ctx, 1), NewPrim(ctx, 2), NewPrim(ctx, 3)}

	chosen := NondetChoice(ctx, choices).(Prim[int])
	if !chosen.Universe().IsTrue() {
		t.Fatalf("choice over total candidates should be total")
	}
	for v := 1; v <= 3; v++ {
		if g := chosen.GetGuardFor(v); g.IsZero() || !g.IsSat() {
			t.Errorf("candidate %d should be reachable", v)
		}
	}
	// Pairwise disjointness of outcomes.
	for _, a := range chosen.GetGuardedValues() {
		for _, b := range chosen.GetGuardedValues() {
			if a.Value != b.Value && a.Guard.And(b.Guard).IsSat() {
				t.Errorf("outcomes %d and %d overlap", a.Value, b.Value)
			}
		}
	}
}
