package machine

import (
	"fmt"

	"psym/solver"
	vs "psym/valuesummary"
)

// A VectorClock counts, per machine, how many sends the owner has
// observed. Clocks order sends for the partial-order reductions: the
// receiver-queue order compares clocks of messages headed to the same
// target, and sleep sets are keyed by clock fingerprints.
type VectorClock struct {
	counts vs.Map[*Machine, vs.Prim[int]]
}

// NewVectorClock returns the zero clock defined under universe.
func NewVectorClock(universe solver.Guard) VectorClock {
	return VectorClock{counts: vs.NewMap[*Machine, vs.Prim[int]](universe)}
}

// Get returns the guarded count for m, zero where m is absent.
func (c VectorClock) Get(m *Machine) vs.Prim[int] {
	val, bound := c.counts.GetGuarded(m)
	domain := c.counts.Universe()
	var fresh vs.Prim[int]
	if bound.IsZero() {
		fresh = vs.PrimUnder(domain, 0)
	} else {
		fresh = vs.PrimUnder(domain.And(bound.Not()), 0)
	}
	return val.Merge(fresh).(vs.Prim[int])
}

// Increment bumps the count for m under pc.
func (c VectorClock) Increment(pc solver.Guard, m *Machine) VectorClock {
	cur := vs.Restrict(c.Get(m), pc)
	return VectorClock{counts: c.counts.Put(vs.PrimUnder(pc, m), vs.IntAdd(cur, 1))}
}

// HappensBefore reports, per guard, whether c is componentwise at
// most other and strictly below it somewhere.
func (c VectorClock) HappensBefore(other VectorClock, pc solver.Guard) vs.Prim[bool] {
	domain := pc.And(c.counts.Universe()).And(other.counts.Universe())
	le := domain
	var lt solver.Guard
	keys := c.counts.ConcreteKeys()
	seen := map[*Machine]bool{}
	for _, k := range keys {
		seen[k] = true
	}
	for _, k := range other.counts.ConcreteKeys() {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	for _, k := range keys {
		a, b := c.Get(k), other.Get(k)
		below := vs.TrueGuard(vs.IntLessThanVS(a, b))
		eq := vs.TrueGuard(a.SymbolicEquals(b, domain))
		le = le.And(below.Or(eq))
		lt = lt.Or(below)
	}
	return boolOver(domain, le.And(lt))
}

func (c VectorClock) Universe() solver.Guard { return c.counts.Universe() }

func (c VectorClock) IsEmptyVS() bool { return c.counts.IsEmptyVS() }

func (c VectorClock) Restrict(g solver.Guard) vs.Summary {
	if g.IsTrue() {
		return c
	}
	return VectorClock{counts: vs.Restrict(c.counts, g)}
}

func (c VectorClock) Merge(others ...vs.Summary) vs.Summary {
	maps := make([]vs.Summary, 0, len(others))
	for _, o := range others {
		oc, ok := o.(VectorClock)
		if !ok {
			panic(&vs.InvariantError{Message: fmt.Sprintf("merging %T into VectorClock", o)})
		}
		maps = append(maps, oc.counts)
	}
	return VectorClock{counts: c.counts.Merge(maps...).(vs.Map[*Machine, vs.Prim[int]])}
}

func (c VectorClock) UpdateUnderGuard(g solver.Guard, update vs.Summary) vs.Summary {
	if g.IsZero() || g.IsFalse() {
		return c
	}
	return c.Restrict(g.Not()).Merge(update.Restrict(g))
}

func (c VectorClock) SymbolicEquals(other vs.Summary, pc solver.Guard) vs.Prim[bool] {
	oc, ok := other.(VectorClock)
	if !ok {
		panic(&vs.InvariantError{Message: fmt.Sprintf("comparing VectorClock with %T", other)})
	}
	return c.counts.SymbolicEquals(oc.counts, pc)
}

func (c VectorClock) Concretize(pc solver.Guard) *vs.GuardedValue[any] {
	return c.counts.Concretize(pc)
}

func (c VectorClock) Snapshot(e *vs.SnapshotEncoder) {
	c.counts.Snapshot(e)
}

// DecodeVectorClock reads back a clock written by Snapshot.
func DecodeVectorClock(d *vs.SnapshotDecoder) (VectorClock, error) {
	counts, err := vs.DecodeMap[*Machine](d, vs.DecodePrim[int])
	if err != nil {
		return VectorClock{}, err
	}
	return VectorClock{counts: counts}, nil
}

// Fingerprint renders one concrete shape of the clock under pc,
// used as a sleep-set key.
func (c VectorClock) Fingerprint(pc solver.Guard) string {
	g := pc.And(c.counts.Universe())
	if g.IsZero() || g.IsFalse() {
		return ""
	}
	cv := c.counts.Concretize(g)
	if cv == nil {
		return ""
	}
	return fmt.Sprint(cv.Value)
}

func (c VectorClock) String() string {
	return "Clock" + c.counts.String()
}
