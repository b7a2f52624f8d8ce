package valuesummary

import (
	"testing"
)

func TestListAddThenGet(t *testing.T) {
	ctx := newCtx(t)
	l := NewList[Prim[int]](ctx.True())
	x := NewPrim(ctx, 42)

	l = l.Add(x)
	got := l.Get(PrimUnder(ctx.True(), 0))
	assertEquivalent(t, got, x)
}

func TestListAddUnderGuard(t *testing.T) {
	ctx := newCtx(t)
	g := ctx.FreshVar()
	l := NewList[Prim[int]](ctx.True())

	l = l.Add(PrimUnder(g, 5))

	size := l.Size()
	if !size.GetGuardFor(1).Equals(g) {
		t.Errorf("size should be 1 exactly under g")
	}
	if !size.GetGuardFor(0).Equals(g.Not()) {
		t.Errorf("size should be 0 exactly under !g")
	}

	got := l.Get(PrimUnder(g, 0))
	if !got.GetGuardFor(5).Equals(g) {
		t.Errorf("element should be 5 under g, got %s", got)
	}
}

func TestListSymbolicSizes(t *testing.T) {
	ctx := newCtx(t)
	g := ctx.FreshVar()
	l := NewList[Prim[int]](ctx.True())
	l = l.Add(NewPrim(ctx, 1))
	l = l.Add(PrimUnder(g, 2))

	// Under g the list is [1 2], under !g it is [1].
	if !l.NonEmptyUniverse().IsTrue() {
		t.Errorf("list should be nonempty everywhere")
	}
	got := l.Get(PrimUnder(g, 1))
	if !got.GetGuardFor(2).Equals(g) {
		t.Errorf("second element should exist only under g")
	}
}

func TestListInsertShifts(t *testing.T) {
	ctx := newCtx(t)
	l := NewList[Prim[int]](ctx.True())
	l = l.Add(NewPrim(ctx, 1))
	l = l.Add(NewPrim(ctx, 3))

	l = l.Insert(PrimUnder(ctx.True(), 1), NewPrim(ctx, 2))

	for i, want := range []int{1, 2, 3} {
		got := l.Get(PrimUnder(ctx.True(), i))
		if !got.GetGuardFor(want).IsTrue() {
			t.Errorf("position %d: want %d, got %s", i, want, got)
		}
	}
}

func TestListRemoveAtShifts(t *testing.T) {
	ctx := newCtx(t)
	l := NewList[Prim[int]](ctx.True())
	for _, v := range []int{1, 2, 3} {
		l = l.Add(NewPrim(ctx, v))
	}

	l = l.RemoveAt(PrimUnder(ctx.True(), 1))

	if !l.Size().GetGuardFor(2).IsTrue() {
		t.Errorf("size should shrink to 2")
	}
	for i, want := range []int{1, 3} {
		got := l.Get(PrimUnder(ctx.True(), i))
		if !got.GetGuardFor(want).IsTrue() {
			t.Errorf("position %d: want %d, got %s", i, want, got)
		}
	}
}

func TestListContainsAndIndexOf(t *testing.T) {
	ctx := newCtx(t)
	l := NewList[Prim[int]](ctx.True())
	l = l.Add(NewPrim(ctx, 1))
	l = l.Add(NewPrim(ctx, 2))

	if !TrueGuard(l.Contains(NewPrim(ctx, 2))).IsTrue() {
		t.Errorf("list should contain 2")
	}
	if TrueGuard(l.Contains(NewPrim(ctx, 9))).IsSat() {
		t.Errorf("list should not contain 9")
	}
	idx := l.IndexOf(NewPrim(ctx, 2))
	if !idx.GetGuardFor(1).IsTrue() {
		t.Errorf("index of 2 should be 1, got %s", idx)
	}
}

func TestListGetOutOfRangeIsModelError(t *testing.T) {
	ctx := newCtx(t)
	l := NewList[Prim[int]](ctx.True())
	l = l.Add(NewPrim(ctx, 1))

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected a model error for an out-of-range get")
		}
		if _, ok := r.(*ModelError); !ok {
			t.Fatalf("expected *ModelError, got %T", r)
		}
	}()
	l.Get(PrimUnder(ctx.True(), 3))
}

func TestListMergeRoundTrip(t *testing.T) {
	ctx := newCtx(t)
	g := ctx.FreshVar()
	l := NewList[Prim[int]](ctx.True())
	l = l.Add(NewPrim(ctx, 1))
	l = l.Add(PrimUnder(g, 2))

	rebuilt := Merge2(Restrict(l, g), Restrict(l, g.Not()))
	assertEquivalent(t, rebuilt, l)
}
