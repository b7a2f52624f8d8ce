package valuesummary

import (
	"psym/solver"
)

// Map is a value summary over guarded dictionaries: a parallel pair
// of a key list (unique per guard) and a value list. Key i and value
// i are meaningful under the same in-range guard.
type Map[K comparable, V Summary] struct {
	keys   List[Prim[K]]
	values List[V]
}

// NewMap returns an empty map defined under universe.
func NewMap[K comparable, V Summary](universe solver.Guard) Map[K, V] {
	return Map[K, V]{keys: NewList[Prim[K]](universe), values: NewList[V](universe)}
}

// Keys returns the guarded key list.
func (m Map[K, V]) Keys() List[Prim[K]] { return m.keys }

// Values returns the guarded value list.
func (m Map[K, V]) Values() List[V] { return m.values }

// Size returns the guarded number of entries.
func (m Map[K, V]) Size() Prim[int] { return m.keys.Size() }

func (m Map[K, V]) Universe() solver.Guard { return m.keys.Universe() }

func (m Map[K, V]) IsEmptyVS() bool { return m.keys.IsEmptyVS() }

func (m Map[K, V]) Restrict(g solver.Guard) Summary {
	if g.IsTrue() {
		return m
	}
	return Map[K, V]{
		keys:   Restrict(m.keys, g),
		values: Restrict(m.values, g),
	}
}

func (m Map[K, V]) Merge(others ...Summary) Summary {
	keyLists := make([]Summary, 0, len(others))
	valueLists := make([]Summary, 0, len(others))
	for _, o := range others {
		om, ok := o.(Map[K, V])
		if !ok {
			panic(invariantf("merging %T into %T", o, m))
		}
		keyLists = append(keyLists, om.keys)
		valueLists = append(valueLists, om.values)
	}
	return Map[K, V]{
		keys:   m.keys.Merge(keyLists...).(List[Prim[K]]),
		values: m.values.Merge(valueLists...).(List[V]),
	}
}

func (m Map[K, V]) UpdateUnderGuard(g solver.Guard, update Summary) Summary {
	if g.IsZero() || g.IsFalse() {
		return m
	}
	return m.Restrict(g.Not()).Merge(update.Restrict(g))
}

// SymbolicEquals holds where the two maps bind the same keys to equal
// values.
func (m Map[K, V]) SymbolicEquals(other Summary, pc solver.Guard) Prim[bool] {
	om, ok := other.(Map[K, V])
	if !ok {
		panic(invariantf("comparing %T with %T", m, other))
	}
	equal := pc
	for i, key := range m.keys.Items() {
		in := m.keys.inRangeGuard(i)
		if in.IsZero() || in.IsFalse() {
			continue
		}
		for _, ke := range key.entries {
			g := ke.Guard.And(in)
			if g.IsFalse() {
				continue
			}
			has := TrueGuard(om.ContainsKey(ke.Value))
			same := TrueGuard(m.values.Items()[i].SymbolicEquals(om.getUnchecked(ke.Value), g))
			equal = equal.And(has.And(same).Or(g.Not()))
		}
	}
	sameSize := TrueGuard(m.keys.Size().SymbolicEquals(om.keys.Size(), pc))
	equal = equal.And(sameSize)
	domain := pc.And(m.Universe()).And(om.Universe())
	return boolUnder(domain, equal)
}

// ContainsKey reports, per guard, whether the map binds key.
func (m Map[K, V]) ContainsKey(key K) Prim[bool] {
	domain := m.Universe()
	var present solver.Guard
	for i, k := range m.keys.Items() {
		in := m.keys.inRangeGuard(i)
		if in.IsZero() || in.IsFalse() {
			continue
		}
		present = present.Or(in.And(k.GetGuardFor(key)))
	}
	return boolUnder(domain, present)
}

// keyIndex returns the guarded position of key in the key list;
// absent where the key is unbound.
func (m Map[K, V]) keyIndex(key K) Prim[int] {
	out := Prim[int]{}
	for i, k := range m.keys.Items() {
		in := m.keys.inRangeGuard(i)
		if in.IsZero() || in.IsFalse() {
			continue
		}
		g := in.And(k.GetGuardFor(key))
		if g.IsZero() || g.IsFalse() {
			continue
		}
		out = out.addEntry(GuardedValue[int]{Guard: g, Value: i})
	}
	return out
}

// getUnchecked returns the value bound to key, empty where unbound.
func (m Map[K, V]) getUnchecked(key K) V {
	return m.values.Get(m.keyIndex(key))
}

// GetGuarded returns the value bound to key together with the guard
// under which the binding exists. Outside that guard the value is
// empty; no model error is raised.
func (m Map[K, V]) GetGuarded(key K) (V, solver.Guard) {
	idx := m.keyIndex(key)
	return m.values.Get(idx), idx.Universe()
}

// ConcreteKeys returns the distinct concrete keys occurring anywhere
// in the key list, in first-occurrence order.
func (m Map[K, V]) ConcreteKeys() []K {
	seen := map[K]bool{}
	out := []K{}
	for _, k := range m.keys.Items() {
		for _, e := range k.entries {
			if !seen[e.Value] {
				seen[e.Value] = true
				out = append(out, e.Value)
			}
		}
	}
	return out
}

// Get returns the value bound to key. A lookup that misses under a
// satisfiable guard within pc is a model error.
func (m Map[K, V]) Get(pc solver.Guard, key K) V {
	missing := pc.And(FalseGuard(m.ContainsKey(key)))
	if !missing.IsZero() && missing.IsSat() {
		panic(MissingKeyError(key, missing))
	}
	idx := Restrict(m.keyIndex(key), pc)
	return m.values.Get(idx)
}

// Put binds key to value under value's universe: where the key is
// already bound the value is replaced, elsewhere the pair is appended
// to both parallel lists.
func (m Map[K, V]) Put(key Prim[K], value V) Map[K, V] {
	out := m
	for _, ke := range key.entries {
		g := ke.Guard.And(value.Universe())
		if g.IsFalse() {
			continue
		}
		bound := g.And(TrueGuard(out.ContainsKey(ke.Value)))
		unbound := g
		if !bound.IsZero() && !bound.IsFalse() {
			idx := Restrict(out.keyIndex(ke.Value), bound)
			out = Map[K, V]{
				keys:   out.keys,
				values: out.values.Set(idx, Restrict(value, bound)),
			}
			unbound = g.And(bound.Not())
		}
		if unbound.IsFalse() {
			continue
		}
		out = Map[K, V]{
			keys:   out.keys.Add(PrimUnder(unbound, ke.Value)),
			values: out.values.Add(Restrict(value, unbound)),
		}
	}
	return out
}

// Remove unbinds key where it is bound; elsewhere the map is
// unchanged.
func (m Map[K, V]) Remove(key K) Map[K, V] {
	idx := m.keyIndex(key)
	if idx.IsEmptyVS() {
		return m
	}
	return Map[K, V]{
		keys:   UpdateUnderGuard(m.keys, idx.Universe(), m.keys.RemoveAt(idx)),
		values: UpdateUnderGuard(m.values, idx.Universe(), m.values.RemoveAt(idx)),
	}
}

func (m Map[K, V]) String() string {
	return "Map{keys: " + m.keys.String() + ", values: " + m.values.String() + "}"
}
