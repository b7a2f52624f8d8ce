package valuesummary

import (
	"fmt"

	"psym/solver"
)

// InvariantError reports a broken value summary invariant: merging
// mismatched variants, overlapping guards, a nil or multi-tag event.
// It indicates a bug in the engine or the program harness, not
// in the modeled program, and is never recovered inside a step.
type InvariantError struct {
	Message string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("valuesummary: invariant violation: %s", e.Message)
}

// ModelError reports an error in the modeled program itself: an
// invalid index, a missing map key, a union payload of an unexpected
// type. Model errors are reported as program assertion failures by
// the search loop.
type ModelError struct {
	Message string
	// The path condition under which the error occurs.
	Guard solver.Guard
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("model error: %s", e.Message)
}

// InvalidIndexError builds the model error for an out-of-range access
// into a sequence or set.
func InvalidIndexError(index int, container Summary, g solver.Guard) *ModelError {
	return &ModelError{
		Message: fmt.Sprintf("invalid index %d into %s, expected 0 <= index < size", index, container),
		Guard:   g,
	}
}

// MissingKeyError builds the model error for a lookup of an absent
// map key.
func MissingKeyError(key any, g solver.Guard) *ModelError {
	return &ModelError{
		Message: fmt.Sprintf("key %v not found in map", key),
		Guard:   g,
	}
}

// TupleIndexError builds the model error for a field access outside a
// tuple's arity.
func TupleIndexError(index, arity int) *ModelError {
	return &ModelError{
		Message: fmt.Sprintf("invalid field access at index %d in a tuple of arity %d", index, arity),
	}
}
