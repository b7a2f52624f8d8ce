package valuesummary

import "psym/solver"

// Helper operations over integer summaries. The surface mirrors what
// the scheduler needs for choice bounds and list sizes.

// IntAdd returns the summary shifted by the concrete delta.
func IntAdd(a Prim[int], delta int) Prim[int] {
	out := Prim[int]{}
	for _, e := range a.entries {
		out = out.addEntry(GuardedValue[int]{Guard: e.Guard, Value: e.Value + delta})
	}
	return out
}

// IntAddVS returns the pointwise sum of two integer summaries.
func IntAddVS(a, b Prim[int]) Prim[int] {
	out := Prim[int]{}
	for _, ea := range a.entries {
		for _, eb := range b.entries {
			g := ea.Guard.And(eb.Guard)
			if !g.IsFalse() {
				out = out.addEntry(GuardedValue[int]{Guard: g, Value: ea.Value + eb.Value})
			}
		}
	}
	return out
}

// IntLessThan compares a concrete bound against an integer summary.
func IntLessThan(lhs int, rhs Prim[int]) Prim[bool] {
	domain := rhs.Universe()
	var under solver.Guard
	for _, e := range rhs.entries {
		if lhs < e.Value {
			under = under.Or(e.Guard)
		}
	}
	return boolUnder(domain, under)
}

// IntLessThanVS returns the pointwise comparison of two integer
// summaries.
func IntLessThanVS(a, b Prim[int]) Prim[bool] {
	domain := a.Universe().And(b.Universe())
	var under solver.Guard
	for _, ea := range a.entries {
		for _, eb := range b.entries {
			if ea.Value < eb.Value {
				under = under.Or(ea.Guard.And(eb.Guard))
			}
		}
	}
	return boolUnder(domain, under)
}

// IntMaxValue returns the largest concrete value the summary can take,
// or zero for the empty summary.
func IntMaxValue(a Prim[int]) int {
	max := 0
	for i, e := range a.entries {
		if i == 0 || e.Value > max {
			max = e.Value
		}
	}
	return max
}

// IntEquals compares an integer summary against a concrete value.
func IntEquals(a Prim[int], v int) Prim[bool] {
	domain := a.Universe()
	eq := a.GetGuardFor(v)
	return boolUnder(domain, eq)
}
