package valuesummary

import (
	"testing"
)

func TestMapPutGet(t *testing.T) {
	ctx := newCtx(t)
	m := NewMap[string, Prim[int]](ctx.True())

	m = m.Put(NewPrim(ctx, "a"), NewPrim(ctx, 1))
	m = m.Put(NewPrim(ctx, "b"), NewPrim(ctx, 2))

	got := m.Get(ctx.True(), "a")
	if !got.GetGuardFor(1).IsTrue() {
		t.Errorf(`value for "a" should be 1, got %s`, got)
	}
	if !TrueGuard(m.ContainsKey("b")).IsTrue() {
		t.Errorf(`map should contain "b"`)
	}
	if TrueGuard(m.ContainsKey("c")).IsSat() {
		t.Errorf(`map should not contain "c"`)
	}
}

func TestMapPutReplaces(t *testing.T) {
	ctx := newCtx(t)
	m := NewMap[string, Prim[int]](ctx.True())

	m = m.Put(NewPrim(ctx, "a"), NewPrim(ctx, 1))
	m = m.Put(NewPrim(ctx, "a"), NewPrim(ctx, 9))

	if !m.Size().GetGuardFor(1).IsTrue() {
		t.Errorf("rebinding a key should not grow the map")
	}
	got := m.Get(ctx.True(), "a")
	if !got.GetGuardFor(9).IsTrue() {
		t.Errorf("rebinding should replace the value, got %s", got)
	}
}

func TestMapPutUnderGuard(t *testing.T) {
	ctx := newCtx(t)
	g := ctx.FreshVar()
	m := NewMap[string, Prim[int]](ctx.True())

	m = m.Put(PrimUnder(g, "a"), PrimUnder(g, 1))

	if !TrueGuard(m.ContainsKey("a")).Equals(g) {
		t.Errorf(`"a" should be bound exactly under g`)
	}
	got := m.Get(g, "a")
	if !got.GetGuardFor(1).Equals(g) {
		t.Errorf("guarded lookup should see 1 under g, got %s", got)
	}
}

func TestMapMissingKeyIsModelError(t *testing.T) {
	ctx := newCtx(t)
	m := NewMap[string, Prim[int]](ctx.True())
	m = m.Put(NewPrim(ctx, "a"), NewPrim(ctx, 1))

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected a model error for a missing key")
		} else if _, ok := r.(*ModelError); !ok {
			t.Fatalf("expected *ModelError, got %T", r)
		}
	}()
	m.Get(ctx.True(), "missing")
}

func TestMapRemove(t *testing.T) {
	ctx := newCtx(t)
	m := NewMap[string, Prim[int]](ctx.True())
	m = m.Put(NewPrim(ctx, "a"), NewPrim(ctx, 1))
	m = m.Put(NewPrim(ctx, "b"), NewPrim(ctx, 2))

	m = m.Remove("a")

	if TrueGuard(m.ContainsKey("a")).IsSat() {
		t.Errorf(`"a" should be unbound after removal`)
	}
	got := m.Get(ctx.True(), "b")
	if !got.GetGuardFor(2).IsTrue() {
		t.Errorf(`"b" should survive the removal of "a"`)
	}
}
