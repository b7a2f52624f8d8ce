// Package valuesummary implements the symbolic value representation
// used by the scheduler: every value is a disjunction of guarded
// concrete alternatives, and all operations preserve the canonical
// form (pairwise disjoint guards, no false-guarded entries, equal
// values merged).
package valuesummary

import "psym/solver"

// Summary is the capability set shared by every value summary
// variant. Implementations are value-semantic: every operation
// returns a fresh summary and never mutates its receiver.
type Summary interface {
	// Restrict conjoins every entry guard with g and drops entries
	// that become false. Restricting to true is the identity.
	Restrict(g solver.Guard) Summary

	// Merge unions the entries of the receiver and the arguments and
	// canonicalizes the result. The caller must guarantee that the
	// universes of all inputs are pairwise disjoint; restricting one
	// input to g and the other to !g is the idiom.
	Merge(others ...Summary) Summary

	// UpdateUnderGuard replaces the receiver with update under g:
	// the result equals self.Restrict(!g).Merge(update.Restrict(g)).
	UpdateUnderGuard(g solver.Guard, update Summary) Summary

	// SymbolicEquals returns a boolean summary that is true under
	// exactly the guard within pc (and both universes) where the two
	// summaries are structurally equal, and false elsewhere in the
	// intersected universe.
	SymbolicEquals(other Summary, pc solver.Guard) Prim[bool]

	// Universe returns the disjunction of all entry guards.
	Universe() solver.Guard

	// IsEmptyVS reports whether the summary has no entries.
	IsEmptyVS() bool

	// Concretize picks one concrete shape of the summary that is
	// possible under pc, returning the guard selecting it and a plain
	// Go rendering of the value. Returns nil when nothing is possible
	// under pc. Repeatedly concretizing while excluding the returned
	// guard enumerates every concrete shape.
	Concretize(pc solver.Guard) *GuardedValue[any]

	// Snapshot writes the summary to a run-local binary encoding.
	// Guards are written as indices into the encoder's guard table.
	Snapshot(e *SnapshotEncoder)

	String() string
}

// GuardedValue pairs a guard with the concrete value it selects.
type GuardedValue[T any] struct {
	Guard solver.Guard
	Value T
}

// Restrict restricts a summary without losing its concrete type.
func Restrict[S Summary](s S, g solver.Guard) S {
	return s.Restrict(g).(S)
}

// Merge2 merges two summaries of the same concrete type.
func Merge2[S Summary](a, b S) S {
	return a.Merge(b).(S)
}

// UpdateUnderGuard updates a summary without losing its concrete type.
func UpdateUnderGuard[S Summary](s S, g solver.Guard, update S) S {
	return s.UpdateUnderGuard(g, update).(S)
}

// MergeAll merges a non-empty slice of summaries of one concrete type.
func MergeAll[S Summary](summaries []S) S {
	rest := make([]Summary, 0, len(summaries)-1)
	for _, s := range summaries[1:] {
		rest = append(rest, s)
	}
	return summaries[0].Merge(rest...).(S)
}
