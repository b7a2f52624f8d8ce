package valuesummary

import (
	"fmt"
	"strings"

	"psym/solver"
)

// List is a value summary over guarded sequences: a guarded integer
// size plus an indexed slice of element summaries. The element at
// index i is meaningful only under the guard that the size exceeds i;
// slots past the size may hold stale restrictions of older values,
// which no operation observes.
type List[T Summary] struct {
	size  Prim[int]
	items []T
}

// NewList returns an empty list defined under universe.
func NewList[T Summary](universe solver.Guard) List[T] {
	return List[T]{size: PrimUnder(universe, 0)}
}

// Size returns the guarded size of the list.
func (l List[T]) Size() Prim[int] { return l.size }

// Items exposes the raw element slots. Used by the set wrapper, the
// codec and the event buffers; elements are only meaningful under
// their in-range guards.
func (l List[T]) Items() []T { return l.items }

func (l List[T]) Universe() solver.Guard { return l.size.Universe() }

func (l List[T]) IsEmptyVS() bool { return l.size.IsEmptyVS() }

// NonEmptyUniverse returns the guard under which the list has at
// least one element.
func (l List[T]) NonEmptyUniverse() solver.Guard {
	var g solver.Guard
	for _, e := range l.size.entries {
		if e.Value > 0 {
			g = g.Or(e.Guard)
		}
	}
	return g
}

// inRangeGuard returns the guard under which index i is a valid
// position.
func (l List[T]) inRangeGuard(i int) solver.Guard {
	var g solver.Guard
	for _, e := range l.size.entries {
		if e.Value > i {
			g = g.Or(e.Guard)
		}
	}
	return g
}

func (l List[T]) Restrict(g solver.Guard) Summary {
	if g.IsTrue() {
		return l
	}
	out := List[T]{size: Restrict(l.size, g)}
	max := IntMaxValue(out.size)
	for i := 0; i < max; i++ {
		out.items = append(out.items, Restrict(l.items[i], g))
	}
	return out
}

func (l List[T]) Merge(others ...Summary) Summary {
	out := List[T]{
		size:  l.size,
		items: append([]T{}, l.items...),
	}
	for _, o := range others {
		ol, ok := o.(List[T])
		if !ok {
			panic(invariantf("merging %T into %T", o, l))
		}
		out.size = Merge2(out.size, ol.size)
		for i, item := range ol.items {
			if i < len(out.items) {
				out.items[i] = Merge2(out.items[i], item)
			} else {
				out.items = append(out.items, item)
			}
		}
	}
	return out
}

func (l List[T]) UpdateUnderGuard(g solver.Guard, update Summary) Summary {
	if g.IsZero() || g.IsFalse() {
		return l
	}
	return l.Restrict(g.Not()).Merge(update.Restrict(g))
}

func (l List[T]) SymbolicEquals(other Summary, pc solver.Guard) Prim[bool] {
	ol, ok := other.(List[T])
	if !ok {
		panic(invariantf("comparing %T with %T", l, other))
	}
	var equal solver.Guard
	for _, gs := range l.size.entries {
		og := ol.size.GetGuardFor(gs.Value)
		g := gs.Guard.And(og)
		if g.IsZero() || g.IsFalse() {
			continue
		}
		cur := g
		for i := 0; i < gs.Value; i++ {
			cur = cur.And(TrueGuard(l.items[i].SymbolicEquals(ol.items[i], g)))
			if cur.IsFalse() {
				break
			}
		}
		equal = equal.Or(cur)
	}
	domain := pc.And(l.Universe()).And(ol.Universe())
	return boolUnder(domain, equal)
}

// Add appends x at the guarded end of the list, under x's universe.
func (l List[T]) Add(x T) List[T] {
	u := x.Universe()
	if u.IsZero() || u.IsFalse() {
		return l
	}
	sizeHere := Restrict(l.size, u)
	out := List[T]{
		size:  UpdateUnderGuard(l.size, u, IntAdd(sizeHere, 1)),
		items: append([]T{}, l.items...),
	}
	for _, e := range sizeHere.entries {
		if e.Value == len(out.items) {
			out.items = append(out.items, Restrict(x, e.Guard))
		} else {
			out.items[e.Value] = UpdateUnderGuard(out.items[e.Value], e.Guard, x)
		}
	}
	return out
}

// Get selects the element at a guarded index. An index that is out of
// range under a satisfiable guard is a model error; an empty index
// yields an empty element.
func (l List[T]) Get(index Prim[int]) T {
	var zero T
	if index.IsEmptyVS() {
		return zero
	}
	restricted := Restrict(l, index.Universe())
	outOfRange := FalseGuard(restricted.InRange(index))
	if !outOfRange.IsZero() && outOfRange.IsSat() {
		panic(InvalidIndexError(IntMaxValue(index), l, outOfRange))
	}
	parts := []T{}
	for _, e := range index.entries {
		parts = append(parts, Restrict(l.items[e.Value], e.Guard))
	}
	return MergeAll(parts)
}

// Set replaces the element at a guarded index.
func (l List[T]) Set(index Prim[int], x T) List[T] {
	u := index.Universe()
	if u.IsZero() || u.IsFalse() {
		return l
	}
	restricted := Restrict(l, u)
	outOfRange := FalseGuard(restricted.InRange(index))
	if !outOfRange.IsZero() && outOfRange.IsSat() {
		panic(InvalidIndexError(IntMaxValue(index), l, outOfRange))
	}
	items := append([]T{}, l.items...)
	for _, e := range index.entries {
		items[e.Value] = UpdateUnderGuard(items[e.Value], e.Guard, x)
	}
	return List[T]{size: l.size, items: items}
}

// Insert shifts elements at and after the guarded index up by one and
// places x at the index.
func (l List[T]) Insert(index Prim[int], x T) List[T] {
	u := index.Universe().And(x.Universe())
	if u.IsZero() || u.IsFalse() {
		return l
	}
	var zero T
	sizeHere := Restrict(l.size, u)
	out := List[T]{
		size:  UpdateUnderGuard(l.size, u, IntAdd(sizeHere, 1)),
		items: append([]T{}, l.items...),
	}
	if IntMaxValue(sizeHere) == len(out.items) {
		out.items = append(out.items, zero)
	}
	for _, e := range index.entries {
		g := e.Guard.And(u)
		if g.IsFalse() {
			continue
		}
		for j := len(out.items) - 1; j > e.Value; j-- {
			out.items[j] = UpdateUnderGuard(out.items[j], g, out.items[j-1])
		}
		out.items[e.Value] = UpdateUnderGuard(out.items[e.Value], g, x)
	}
	return out
}

// RemoveAt shifts elements after the guarded index down by one and
// shrinks the size.
func (l List[T]) RemoveAt(index Prim[int]) List[T] {
	u := index.Universe()
	if u.IsZero() || u.IsFalse() {
		return l
	}
	restricted := Restrict(l, u)
	outOfRange := FalseGuard(restricted.InRange(index))
	if !outOfRange.IsZero() && outOfRange.IsSat() {
		panic(InvalidIndexError(IntMaxValue(index), l, outOfRange))
	}
	out := List[T]{
		size:  UpdateUnderGuard(l.size, u, IntAdd(Restrict(l.size, u), -1)),
		items: append([]T{}, l.items...),
	}
	for _, e := range index.entries {
		for j := e.Value; j+1 < len(out.items); j++ {
			out.items[j] = UpdateUnderGuard(out.items[j], e.Guard, out.items[j+1])
		}
	}
	return out
}

// InRange reports, per guard, whether the index is a valid position.
func (l List[T]) InRange(index Prim[int]) Prim[bool] {
	domain := index.Universe().And(l.Universe())
	var in solver.Guard
	for _, ei := range index.entries {
		if ei.Value < 0 {
			continue
		}
		in = in.Or(ei.Guard.And(l.inRangeGuard(ei.Value)))
	}
	return boolUnder(domain, in)
}

// Contains reports, per guard, whether some in-range element equals x.
func (l List[T]) Contains(x T) Prim[bool] {
	domain := l.Universe().And(x.Universe())
	var eq solver.Guard
	for i, item := range l.items {
		in := l.inRangeGuard(i)
		if in.IsZero() || in.IsFalse() {
			continue
		}
		eq = eq.Or(TrueGuard(item.SymbolicEquals(x, in)))
	}
	return boolUnder(domain, eq)
}

// IndexOf returns the guarded position of the first in-range element
// equal to x; absent where no element matches.
func (l List[T]) IndexOf(x T) Prim[int] {
	remaining := l.Universe().And(x.Universe())
	out := Prim[int]{}
	for i, item := range l.items {
		if remaining.IsZero() || remaining.IsFalse() {
			break
		}
		in := l.inRangeGuard(i)
		if in.IsZero() || in.IsFalse() {
			continue
		}
		g := remaining.And(TrueGuard(item.SymbolicEquals(x, remaining.And(in))))
		if g.IsZero() || g.IsFalse() {
			continue
		}
		out = out.addEntry(GuardedValue[int]{Guard: g, Value: i})
		remaining = remaining.And(g.Not())
	}
	return out
}

func (l List[T]) String() string {
	var b strings.Builder
	b.WriteString("List[")
	for i, e := range l.size.entries {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "#%d: [", e.Value)
		for j := 0; j < e.Value; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(l.items[j].Restrict(e.Guard).String())
		}
		b.WriteString("]")
	}
	b.WriteString("]")
	return b.String()
}
