package valuesummary

import (
	"psym/solver"
)

// Set is a list-backed value summary with the invariant that no
// in-range prefix holds two equal elements under any guard: Add only
// takes effect under the guard where the element is absent.
type Set[T Summary] struct {
	elements List[T]
}

// NewSet returns an empty set defined under universe.
func NewSet[T Summary](universe solver.Guard) Set[T] {
	return Set[T]{elements: NewList[T](universe)}
}

// SetOver wraps an existing element list. The caller is responsible
// for the no-duplicates invariant.
func SetOver[T Summary](elements List[T]) Set[T] {
	return Set[T]{elements: elements}
}

// Elements returns the backing list.
func (s Set[T]) Elements() List[T] { return s.elements }

// Size returns the guarded size of the set.
func (s Set[T]) Size() Prim[int] { return s.elements.Size() }

func (s Set[T]) Universe() solver.Guard { return s.elements.Universe() }

func (s Set[T]) IsEmptyVS() bool { return s.elements.IsEmptyVS() }

// NonEmptyUniverse returns the guard under which the set is nonempty.
func (s Set[T]) NonEmptyUniverse() solver.Guard { return s.elements.NonEmptyUniverse() }

func (s Set[T]) Restrict(g solver.Guard) Summary {
	if g.IsTrue() {
		return s
	}
	return Set[T]{elements: Restrict(s.elements, g)}
}

func (s Set[T]) Merge(others ...Summary) Summary {
	lists := make([]Summary, 0, len(others))
	for _, o := range others {
		os, ok := o.(Set[T])
		if !ok {
			panic(invariantf("merging %T into %T", o, s))
		}
		lists = append(lists, os.elements)
	}
	return Set[T]{elements: s.elements.Merge(lists...).(List[T])}
}

func (s Set[T]) UpdateUnderGuard(g solver.Guard, update Summary) Summary {
	if g.IsZero() || g.IsFalse() {
		return s
	}
	return s.Restrict(g.Not()).Merge(update.Restrict(g))
}

// SymbolicEquals holds where the two sets contain the same elements,
// regardless of insertion order.
func (s Set[T]) SymbolicEquals(other Summary, pc solver.Guard) Prim[bool] {
	os, ok := other.(Set[T])
	if !ok {
		panic(invariantf("comparing %T with %T", s, other))
	}
	if s.elements.Size().IsEmptyVS() {
		if os.IsEmptyVS() {
			return BoolTrueUnder(pc)
		}
		return Prim[bool]{}
	}
	equal := pc
	for i, item := range s.elements.Items() {
		in := s.elements.inRangeGuard(i)
		if in.IsZero() || in.IsFalse() {
			continue
		}
		sub := TrueGuard(os.Contains(Restrict(item, in))).Or(in.Not())
		equal = equal.And(sub)
	}
	for i, item := range os.elements.Items() {
		in := os.elements.inRangeGuard(i)
		if in.IsZero() || in.IsFalse() {
			continue
		}
		sub := TrueGuard(s.Contains(Restrict(item, in))).Or(in.Not())
		equal = equal.And(sub)
	}
	domain := pc.And(s.Universe()).And(os.Universe())
	return boolUnder(domain, equal)
}

// Contains reports, per guard, whether the set holds x.
func (s Set[T]) Contains(x T) Prim[bool] {
	return s.elements.Contains(x)
}

// Add inserts x under the guard where it is absent; elsewhere the set
// is unchanged. Idempotent.
func (s Set[T]) Add(x T) Set[T] {
	absent := FalseGuard(s.Contains(Restrict(x, s.Universe())))
	if absent.IsZero() || absent.IsFalse() {
		return s
	}
	added := s.elements.Add(Restrict(x, absent))
	return Set[T]{elements: UpdateUnderGuard(s.elements, absent, added)}
}

// Remove drops x under the guard where it is present; elsewhere the
// set is unchanged.
func (s Set[T]) Remove(x T) Set[T] {
	idx := s.elements.IndexOf(x)
	idx = Restrict(idx, TrueGuard(s.elements.InRange(idx)))
	if idx.IsEmptyVS() {
		return s
	}
	removed := s.elements.RemoveAt(idx)
	return Set[T]{elements: UpdateUnderGuard(s.elements, idx.Universe(), removed)}
}

// Get returns the element at a guarded position.
func (s Set[T]) Get(index Prim[int]) T {
	return s.elements.Get(index)
}

func (s Set[T]) String() string {
	return "Set" + s.elements.String()
}
