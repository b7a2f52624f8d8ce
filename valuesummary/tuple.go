package valuesummary

import (
	"strings"

	"psym/solver"
)

// Tuple is a fixed-arity product of summaries sharing one universe.
type Tuple struct {
	universe solver.Guard
	fields   []Summary
}

// NewTuple builds a tuple over the given fields, each restricted to
// the shared universe.
func NewTuple(universe solver.Guard, fields ...Summary) Tuple {
	restricted := make([]Summary, len(fields))
	for i, f := range fields {
		restricted[i] = f.Restrict(universe)
	}
	return Tuple{universe: universe, fields: restricted}
}

// Arity returns the number of fields.
func (t Tuple) Arity() int { return len(t.fields) }

// Field returns the summary at the given position. An index outside
// the arity is a model error.
func (t Tuple) Field(i int) Summary {
	if i < 0 || i >= len(t.fields) {
		panic(TupleIndexError(i, len(t.fields)))
	}
	return t.fields[i]
}

// SetField replaces the field at position i under g.
func (t Tuple) SetField(i int, g solver.Guard, x Summary) Tuple {
	if i < 0 || i >= len(t.fields) {
		panic(TupleIndexError(i, len(t.fields)))
	}
	fields := append([]Summary{}, t.fields...)
	fields[i] = fields[i].UpdateUnderGuard(g, x)
	return Tuple{universe: t.universe, fields: fields}
}

func (t Tuple) Universe() solver.Guard { return t.universe }

func (t Tuple) IsEmptyVS() bool { return t.universe.IsZero() || t.universe.IsFalse() }

func (t Tuple) Restrict(g solver.Guard) Summary {
	if g.IsTrue() {
		return t
	}
	fields := make([]Summary, len(t.fields))
	for i, f := range t.fields {
		fields[i] = f.Restrict(g)
	}
	return Tuple{universe: t.universe.And(g), fields: fields}
}

func (t Tuple) Merge(others ...Summary) Summary {
	universe := t.universe
	fields := append([]Summary{}, t.fields...)
	for _, o := range others {
		ot, ok := o.(Tuple)
		if !ok {
			panic(invariantf("merging %T into %T", o, t))
		}
		if ot.IsEmptyVS() {
			continue
		}
		if len(fields) == 0 {
			universe = ot.universe
			fields = append([]Summary{}, ot.fields...)
			continue
		}
		if len(ot.fields) != len(fields) {
			panic(invariantf("merging tuples of arity %d and %d", len(ot.fields), len(fields)))
		}
		universe = universe.Or(ot.universe)
		for i := range fields {
			fields[i] = fields[i].Merge(ot.fields[i])
		}
	}
	return Tuple{universe: universe, fields: fields}
}

func (t Tuple) UpdateUnderGuard(g solver.Guard, update Summary) Summary {
	if g.IsZero() || g.IsFalse() {
		return t
	}
	return t.Restrict(g.Not()).Merge(update.Restrict(g))
}

func (t Tuple) SymbolicEquals(other Summary, pc solver.Guard) Prim[bool] {
	ot, ok := other.(Tuple)
	if !ok {
		panic(invariantf("comparing %T with %T", t, other))
	}
	domain := pc.And(t.universe).And(ot.universe)
	if len(t.fields) != len(ot.fields) {
		return boolUnder(domain, solver.Guard{})
	}
	equal := domain
	for i := range t.fields {
		equal = equal.And(TrueGuard(t.fields[i].SymbolicEquals(ot.fields[i], domain)))
		if equal.IsFalse() {
			break
		}
	}
	return boolUnder(domain, equal)
}

func (t Tuple) String() string {
	var b strings.Builder
	b.WriteString("Tuple(")
	for i, f := range t.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.String())
	}
	b.WriteString(")")
	return b.String()
}
