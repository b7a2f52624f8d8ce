package solver

import "testing"

func engines(t *testing.T) map[string]Engine {
	t.Helper()
	bdd, err := NewBDDEngine(256)
	if err != nil {
		t.Fatalf("creating BDD engine: %v", err)
	}
	return map[string]Engine{
		"bdd": bdd,
		"sat": NewFormulaEngine(),
	}
}

func TestEngineConstants(t *testing.T) {
	for name, e := range engines(t) {
		if !e.Equal(e.True(), e.True()) {
			t.Errorf("%s: True is not equal to itself", name)
		}
		if e.Equal(e.True(), e.False()) {
			t.Errorf("%s: True equals False", name)
		}
		if e.IsSat(e.False()) {
			t.Errorf("%s: False is satisfiable", name)
		}
		if !e.IsSat(e.True()) {
			t.Errorf("%s: True is not satisfiable", name)
		}
	}
}

func TestEngineAlgebra(t *testing.T) {
	for name, e := range engines(t) {
		a := e.FreshVar()
		b := e.FreshVar()

		if !e.IsSat(e.And(a, b)) {
			t.Errorf("%s: a & b should be satisfiable", name)
		}
		if e.IsSat(e.And(a, e.Not(a))) {
			t.Errorf("%s: a & !a should be unsatisfiable", name)
		}
		if !e.Equal(e.Or(a, e.Not(a)), e.True()) {
			t.Errorf("%s: a | !a should be true", name)
		}
		if !e.Equal(e.And(a, b), e.And(b, a)) {
			t.Errorf("%s: conjunction should commute", name)
		}
		if !e.Equal(e.Not(e.Not(a)), a) {
			t.Errorf("%s: double negation should cancel", name)
		}
	}
}

func TestGuardOperations(t *testing.T) {
	ctx := NewContext(NewFormulaEngine())
	g := ctx.FreshVar()
	h := ctx.FreshVar()

	if got := g.And(ctx.True()); !got.Equals(g) {
		t.Errorf("g & true should equal g")
	}
	if got := g.Or(ctx.False()); !got.Equals(g) {
		t.Errorf("g | false should equal g")
	}
	if !g.And(g.Not()).IsFalse() {
		t.Errorf("g & !g should be false")
	}
	if !g.And(h).Implies(g).IsTrue() {
		t.Errorf("g & h should imply g")
	}

	var zero Guard
	if !zero.IsFalse() {
		t.Errorf("zero guard should read as false")
	}
	if got := zero.Or(g); !got.Equals(g) {
		t.Errorf("zero | g should equal g")
	}
	if !zero.And(g).IsFalse() {
		t.Errorf("zero & g should be false")
	}
}

func TestStatsCounters(t *testing.T) {
	ctx := NewContext(NewFormulaEngine())
	g := ctx.FreshVar()
	h := ctx.FreshVar()

	g.And(h)
	g.Or(h)
	g.Not()
	g.IsSat()

	stats := ctx.Stats()
	if stats.AndOps != 1 || stats.OrOps != 1 || stats.NotOps != 1 || stats.IsSatOps != 1 {
		t.Errorf("expected one of each operation, got %+v", stats)
	}
	if stats.IsSatTrue != 1 {
		t.Errorf("expected the sat query to be satisfiable, got %+v", stats)
	}
}

func TestAutoSwitchInvoked(t *testing.T) {
	ctx := NewContext(NewFormulaEngine())
	calls := 0
	ctx.SetAutoSwitch(func(*Context) { calls++ })

	g := ctx.FreshVar()
	g.And(ctx.True())
	g.IsSat()

	if calls == 0 {
		t.Errorf("auto-switch callback was never invoked")
	}
}
