package valuesummary

import "psym/solver"

// ElementContainer is implemented by the container variants whose
// elements can be picked nondeterministically.
type ElementContainer interface {
	Summary
	// ElementChoices enumerates the guarded elements under pc, one
	// summary per position, each restricted to its in-range guard.
	ElementChoices(pc solver.Guard) []Summary
}

func (l List[T]) ElementChoices(pc solver.Guard) []Summary {
	out := []Summary{}
	for i, item := range l.items {
		g := l.inRangeGuard(i).And(pc)
		if g.IsZero() || g.IsFalse() {
			continue
		}
		out = append(out, item.Restrict(g))
	}
	return out
}

func (s Set[T]) ElementChoices(pc solver.Guard) []Summary {
	return s.elements.ElementChoices(pc)
}

// Map choices range over the keys, matching how a nondeterministic
// pick from a dictionary is used by programs.
func (m Map[K, V]) ElementChoices(pc solver.Guard) []Summary {
	return m.keys.ElementChoices(pc)
}
