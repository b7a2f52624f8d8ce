package valuesummary

import (
	"testing"
)

func TestSnapshotPrimRoundTrip(t *testing.T) {
	ctx := newCtx(t)
	g := ctx.FreshVar()
	p := Merge2(PrimUnder(g, 1), PrimUnder(g.Not(), 2))

	enc := NewSnapshotEncoder()
	p.Snapshot(enc)

	dec := NewSnapshotDecoder(enc.Bytes(), enc.GuardTable())
	back, err := DecodePrim[int](dec)
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}
	assertEquivalent(t, back, p)
}

func TestSnapshotListRoundTrip(t *testing.T) {
	ctx := newCtx(t)
	g := ctx.FreshVar()
	l := NewList[Prim[string]](ctx.True())
	l = l.Add(NewPrim(ctx, "a"))
	l = l.Add(PrimUnder(g, "b"))

	enc := NewSnapshotEncoder()
	l.Snapshot(enc)

	dec := NewSnapshotDecoder(enc.Bytes(), enc.GuardTable())
	back, err := DecodeList(dec, DecodePrim[string])
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}
	assertEquivalent(t, back, l)
}

func TestSnapshotMapRoundTrip(t *testing.T) {
	ctx := newCtx(t)
	m := NewMap[string, Prim[int]](ctx.True())
	m = m.Put(NewPrim(ctx, "a"), NewPrim(ctx, 1))

	enc := NewSnapshotEncoder()
	m.Snapshot(enc)

	dec := NewSnapshotDecoder(enc.Bytes(), enc.GuardTable())
	back, err := DecodeMap[string](dec, DecodePrim[int])
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}
	assertEquivalent(t, back, m)
}

func TestSnapshotUnionRoundTrip(t *testing.T) {
	ctx := newCtx(t)
	intType := GetUnionType("int", nil)
	u := UnionOf(intType, NewPrim(ctx, 4))

	enc := NewSnapshotEncoder()
	u.Snapshot(enc)

	dec := NewSnapshotDecoder(enc.Bytes(), enc.GuardTable())
	back, err := DecodeUnion(dec, func(d *SnapshotDecoder, tag *UnionType) (Summary, error) {
		return DecodePrim[int](d)
	})
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}
	assertEquivalent(t, back, u)
}
