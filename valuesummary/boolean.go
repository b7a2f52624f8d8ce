package valuesummary

import "psym/solver"

// Helper operations over boolean summaries, mirroring the shape of
// the integer helpers in integer.go.

// BoolTrueUnder returns the boolean summary that is true under g and
// nowhere else.
func BoolTrueUnder(g solver.Guard) Prim[bool] {
	return PrimUnder(g, true)
}

// TrueGuard returns the guard under which b is true.
func TrueGuard(b Prim[bool]) solver.Guard { return b.GetGuardFor(true) }

// FalseGuard returns the guard under which b is false.
func FalseGuard(b Prim[bool]) solver.Guard { return b.GetGuardFor(false) }

// IsEverTrue reports whether b is true under some satisfiable guard.
func IsEverTrue(b Prim[bool]) bool {
	g := TrueGuard(b)
	return !g.IsZero() && g.IsSat()
}

// IsEverFalse reports whether b is false under some satisfiable guard.
func IsEverFalse(b Prim[bool]) bool {
	g := FalseGuard(b)
	return !g.IsZero() && g.IsSat()
}

// BoolAnd returns the pointwise conjunction of two boolean summaries.
func BoolAnd(a, b Prim[bool]) Prim[bool] {
	domain := a.Universe().And(b.Universe())
	both := TrueGuard(a).And(TrueGuard(b))
	return boolUnder(domain, both)
}

// BoolOr returns the pointwise disjunction of two boolean summaries.
func BoolOr(a, b Prim[bool]) Prim[bool] {
	domain := a.Universe().And(b.Universe())
	either := TrueGuard(a).Or(TrueGuard(b))
	return boolUnder(domain, either)
}

// BoolNot flips the values of a boolean summary, leaving guards
// untouched.
func BoolNot(a Prim[bool]) Prim[bool] {
	out := Prim[bool]{}
	for _, e := range a.entries {
		out = out.addEntry(GuardedValue[bool]{Guard: e.Guard, Value: !e.Value})
	}
	return out
}
