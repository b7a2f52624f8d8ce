// Package fault defines the error taxonomy of the search: program
// bugs, resource exhaustion, and liveness violations. Every fault
// bubbles to the outermost search loop; nothing is recovered inside a
// scheduler step.
package fault

import (
	"fmt"
	"time"

	"psym/solver"
)

// BugFound reports a program assertion failure, together with the
// path condition under which it holds.
type BugFound struct {
	Message string
	Guard   solver.Guard
}

func (e *BugFound) Error() string {
	return fmt.Sprintf("bug found: %s", e.Message)
}

// Liveness reports a monitor resting in a hot state when execution
// finished. It is a bug with a dedicated rendering.
type Liveness struct {
	Monitor string
	State   string
	Guard   solver.Guard
	// Partial is set when the execution hit the step bound instead of
	// finishing, making the violation potential rather than definite.
	Partial bool
}

func (e *Liveness) Error() string {
	if e.Partial {
		return fmt.Sprintf("monitor %s detected potential liveness bug in hot state %s", e.Monitor, e.State)
	}
	return fmt.Sprintf("monitor %s detected liveness bug in hot state %s at the end of program execution", e.Monitor, e.State)
}

// Timeout reports that the wall-clock limit was exceeded. It always
// terminates the search.
type Timeout struct {
	Limit   time.Duration
	Elapsed time.Duration
}

func (e *Timeout) Error() string {
	return fmt.Sprintf("time limit of %.1fs reached after %.1fs", e.Limit.Seconds(), e.Elapsed.Seconds())
}

// Memout reports that the memory limit was exceeded.
type Memout struct {
	LimitMB float64
	SpentMB float64
}

func (e *Memout) Error() string {
	return fmt.Sprintf("max memory limit reached: %.1f MB of %.1f MB", e.SpentMB, e.LimitMB)
}
