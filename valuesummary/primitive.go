package valuesummary

import (
	"fmt"
	"strings"

	"psym/solver"
)

// Prim is a value summary over guarded concrete scalars: booleans,
// integers, strings, and handles (machines, events, states). Entries
// keep first-insertion order, which makes iteration deterministic
// across a run.
type Prim[T comparable] struct {
	entries []GuardedValue[T]
}

// NewPrim returns a summary holding value under the constant true
// guard of ctx.
func NewPrim[T comparable](ctx *solver.Context, value T) Prim[T] {
	return Prim[T]{entries: []GuardedValue[T]{{Guard: ctx.True(), Value: value}}}
}

// PrimUnder returns a summary holding value under g. A false guard
// yields the empty summary.
func PrimUnder[T comparable](g solver.Guard, value T) Prim[T] {
	if g.IsFalse() {
		return Prim[T]{}
	}
	return Prim[T]{entries: []GuardedValue[T]{{Guard: g, Value: value}}}
}

// GetGuardedValues enumerates the entries in insertion order.
func (p Prim[T]) GetGuardedValues() []GuardedValue[T] { return p.entries }

// GetValues returns the distinct concrete values in insertion order.
func (p Prim[T]) GetValues() []T {
	out := make([]T, 0, len(p.entries))
	for _, e := range p.entries {
		out = append(out, e.Value)
	}
	return out
}

// GetGuardFor returns the guard under which the summary holds value,
// or the zero guard when the value does not occur.
func (p Prim[T]) GetGuardFor(value T) solver.Guard {
	var g solver.Guard
	for _, e := range p.entries {
		if e.Value == value {
			g = g.Or(e.Guard)
		}
	}
	return g
}

func (p Prim[T]) Universe() solver.Guard {
	var g solver.Guard
	for _, e := range p.entries {
		g = g.Or(e.Guard)
	}
	return g
}

func (p Prim[T]) IsEmptyVS() bool { return len(p.entries) == 0 }

func (p Prim[T]) Restrict(g solver.Guard) Summary {
	if g.IsTrue() {
		return p
	}
	out := Prim[T]{}
	for _, e := range p.entries {
		ng := e.Guard.And(g)
		if !ng.IsFalse() {
			out.entries = append(out.entries, GuardedValue[T]{Guard: ng, Value: e.Value})
		}
	}
	return out
}

func (p Prim[T]) Merge(others ...Summary) Summary {
	out := Prim[T]{entries: append([]GuardedValue[T]{}, p.entries...)}
	for _, o := range others {
		op, ok := o.(Prim[T])
		if !ok {
			panic(invariantf("merging %T into %T", o, p))
		}
		for _, e := range op.entries {
			out = out.addEntry(e)
		}
	}
	return out
}

// addEntry inserts an entry, canonicalizing with an existing entry for
// the same value.
func (p Prim[T]) addEntry(e GuardedValue[T]) Prim[T] {
	if e.Guard.IsFalse() {
		return p
	}
	for i, old := range p.entries {
		if old.Value == e.Value {
			p.entries[i].Guard = old.Guard.Or(e.Guard)
			return p
		}
	}
	p.entries = append(p.entries, e)
	return p
}

func (p Prim[T]) UpdateUnderGuard(g solver.Guard, update Summary) Summary {
	if g.IsZero() || g.IsFalse() {
		return p
	}
	return p.Restrict(g.Not()).Merge(update.Restrict(g))
}

func (p Prim[T]) SymbolicEquals(other Summary, pc solver.Guard) Prim[bool] {
	op, ok := other.(Prim[T])
	if !ok {
		panic(invariantf("comparing %T with %T", p, other))
	}
	var equal solver.Guard
	for _, a := range p.entries {
		for _, b := range op.entries {
			if a.Value == b.Value {
				equal = equal.Or(a.Guard.And(b.Guard))
			}
		}
	}
	domain := pc.And(p.Universe()).And(op.Universe())
	return boolUnder(domain, equal)
}

func (p Prim[T]) String() string {
	var b strings.Builder
	b.WriteString("Prim[")
	for i, e := range p.entries {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v @g%d", e.Value, e.Guard.NodeID())
	}
	b.WriteString("]")
	return b.String()
}

// boolUnder builds the canonical boolean summary that is true under
// domain & cond and false under domain & !cond.
func boolUnder(domain, cond solver.Guard) Prim[bool] {
	out := Prim[bool]{}
	if domain.IsZero() || domain.IsFalse() {
		return out
	}
	t := domain.And(cond)
	f := domain
	if !cond.IsZero() {
		f = domain.And(cond.Not())
	}
	if !t.IsZero() && !t.IsFalse() {
		out.entries = append(out.entries, GuardedValue[bool]{Guard: t, Value: true})
	}
	if !f.IsFalse() {
		out.entries = append(out.entries, GuardedValue[bool]{Guard: f, Value: false})
	}
	return out
}

func invariantf(format string, args ...any) *InvariantError {
	return &InvariantError{Message: fmt.Sprintf(format, args...)}
}
