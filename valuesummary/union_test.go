package valuesummary

import (
	"testing"
)

func TestUnionTypeInterning(t *testing.T) {
	a := GetUnionType("Payload", []string{"x", "y"})
	b := GetUnionType("Payload", []string{"x", "y"})
	c := GetUnionType("Payload", nil)

	if a != b {
		t.Errorf("equal descriptors should intern to the same handle")
	}
	if a == c {
		t.Errorf("descriptors with and without fields should differ")
	}
}

func TestUnionTagsAndPayloads(t *testing.T) {
	ctx := newCtx(t)
	g := ctx.FreshVar()
	intType := GetUnionType("int", nil)
	strType := GetUnionType("string", nil)

	u := Merge2(
		Restrict(UnionOf(intType, NewPrim(ctx, 4)), g),
		Restrict(UnionOf(strType, NewPrim(ctx, "s")), g.Not()),
	)

	if !u.HasTag(intType).Equals(g) {
		t.Errorf("int variant should be carried exactly under g")
	}
	payload := u.Payload(g, intType).(Prim[int])
	if !payload.GetGuardFor(4).Equals(g) {
		t.Errorf("int payload should be 4 under g, got %s", payload)
	}
}

func TestUnionPayloadMismatchIsModelError(t *testing.T) {
	ctx := newCtx(t)
	intType := GetUnionType("int", nil)
	strType := GetUnionType("string", nil)

	u := UnionOf(intType, NewPrim(ctx, 4))

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected a model error for a payload type mismatch")
		} else if _, ok := r.(*ModelError); !ok {
			t.Fatalf("expected *ModelError, got %T", r)
		}
	}()
	u.Payload(ctx.True(), strType)
}

func TestUnionRestrictMergeRoundTrip(t *testing.T) {
	ctx := newCtx(t)
	g := ctx.FreshVar()
	intType := GetUnionType("int", nil)

	u := UnionOf(intType, Merge2(PrimUnder(g, 1), PrimUnder(g.Not(), 2)))
	rebuilt := Merge2(Restrict(u, g), Restrict(u, g.Not()))
	assertEquivalent(t, rebuilt, u)
}
