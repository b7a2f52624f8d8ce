package valuesummary

import "psym/solver"

// Concretization of value summaries: used by state caching to
// enumerate the concrete states a symbolic state stands for, and by
// the statistics collector to count concrete messages.

func (p Prim[T]) Concretize(pc solver.Guard) *GuardedValue[any] {
	for _, e := range p.entries {
		g := e.Guard.And(pc)
		if !g.IsFalse() {
			return &GuardedValue[any]{Guard: g, Value: e.Value}
		}
	}
	return nil
}

func (l List[T]) Concretize(pc solver.Guard) *GuardedValue[any] {
	sz := l.size.Concretize(pc)
	if sz == nil {
		return nil
	}
	g := sz.Guard
	n := sz.Value.(int)
	values := make([]any, 0, n)
	for i := 0; i < n; i++ {
		c := l.items[i].Concretize(g)
		if c == nil {
			values = append(values, nil)
			continue
		}
		g = c.Guard
		values = append(values, c.Value)
	}
	return &GuardedValue[any]{Guard: g, Value: values}
}

func (s Set[T]) Concretize(pc solver.Guard) *GuardedValue[any] {
	return s.elements.Concretize(pc)
}

func (m Map[K, V]) Concretize(pc solver.Guard) *GuardedValue[any] {
	keys := m.keys.Concretize(pc)
	if keys == nil {
		return nil
	}
	values := m.values.Concretize(keys.Guard)
	if values == nil {
		return nil
	}
	return &GuardedValue[any]{
		Guard: values.Guard,
		Value: []any{keys.Value, values.Value},
	}
}

func (t Tuple) Concretize(pc solver.Guard) *GuardedValue[any] {
	g := pc.And(t.universe)
	if g.IsZero() || g.IsFalse() {
		return nil
	}
	values := make([]any, 0, len(t.fields))
	for _, f := range t.fields {
		c := f.Concretize(g)
		if c == nil {
			values = append(values, nil)
			continue
		}
		g = c.Guard
		values = append(values, c.Value)
	}
	return &GuardedValue[any]{Guard: g, Value: values}
}

func (u Union) Concretize(pc solver.Guard) *GuardedValue[any] {
	tag := u.tag.Concretize(pc)
	if tag == nil {
		return nil
	}
	t := tag.Value.(*UnionType)
	g := tag.Guard
	p, ok := u.payloads[t]
	if !ok {
		return &GuardedValue[any]{Guard: g, Value: []any{t.String(), nil}}
	}
	c := p.Concretize(g)
	if c == nil {
		return &GuardedValue[any]{Guard: g, Value: []any{t.String(), nil}}
	}
	return &GuardedValue[any]{Guard: c.Guard, Value: []any{t.String(), c.Value}}
}

// CountConcrete counts the concrete shapes of the given summaries
// under pc, taken jointly: each iteration pins one shape for every
// summary, then excludes the selecting guard and repeats.
func CountConcrete(pc solver.Guard, summaries ...Summary) int {
	if len(summaries) == 0 {
		return 0
	}
	count := 0
	iterPc := pc
	for !iterPc.IsZero() && !iterPc.IsFalse() {
		g := iterPc
		complete := true
		for _, s := range summaries {
			c := s.Concretize(g)
			if c == nil {
				complete = false
				break
			}
			g = c.Guard
		}
		if !complete {
			break
		}
		count++
		iterPc = iterPc.And(g.Not())
	}
	return count
}
