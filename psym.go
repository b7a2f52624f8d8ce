// Package psym is a symbolic scheduler for state-machine programs: it
// explores every reachable interleaving and value choice of a program
// of communicating machines, representing sets of executions as
// guarded summaries so that one logical step can stand for
// exponentially many concrete runs.
package psym

import (
	"errors"
	"fmt"
	"log/slog"

	"psym/config"
	"psym/fault"
	"psym/logger"
	"psym/machine"
	"psym/scheduler"
	"psym/solver"
	vs "psym/valuesummary"
)

// Status classifies a finished search.
type Status string

const (
	StatusOk      Status = "ok"
	StatusBug     Status = "bug"
	StatusTimeout Status = "timeout"
	StatusMemout  Status = "memout"
	StatusFault   Status = "fault"
)

// ExitCode maps a status to the process exit code contract: 0 for a
// clean search, 2 for bugs, resource exhaustion, and engine faults.
// Exit code 1 is reserved for the out-of-scope compiler.
func (s Status) ExitCode() int {
	if s == StatusOk {
		return 0
	}
	return 2
}

// Result is the outcome of one search.
type Result struct {
	Status Status
	// Err carries the fault for every status but ok.
	Err error
	// Scheduler gives access to the schedule and statistics of the
	// finished search.
	Scheduler *scheduler.Scheduler
}

// RunSearch explores the program to termination under the given
// configuration. Statistics are flushed on every exit path, including
// faults panicking out of machine handlers.
func RunSearch(ctx *solver.Context, cfg config.Config, p machine.Program, log *slog.Logger) (result Result) {
	if ctx == nil {
		ctx = solver.NewDefaultContext()
	}
	if log == nil {
		log = logger.New(cfg.Verbosity, nil)
	}
	sch := scheduler.New(ctx, cfg, p, log)
	result.Scheduler = sch

	defer func() {
		if r := recover(); r != nil {
			result.Status, result.Err = classifyPanic(r)
		}
		sch.Result = string(result.Status)
		sch.PrintStats()
	}()

	err := sch.DoSearch()
	result.Status, result.Err = classifyError(err)
	return result
}

func classifyError(err error) (Status, error) {
	if err == nil {
		return StatusOk, nil
	}
	var timeout *fault.Timeout
	var memout *fault.Memout
	switch {
	case errors.As(err, &timeout):
		return StatusTimeout, err
	case errors.As(err, &memout):
		return StatusMemout, err
	default:
		// Bugs, liveness violations, and model errors all report as
		// bugs.
		return StatusBug, err
	}
}

func classifyPanic(r any) (Status, error) {
	switch e := r.(type) {
	case *fault.BugFound:
		return StatusBug, e
	case *fault.Liveness:
		return StatusBug, e
	case *fault.Timeout:
		return StatusTimeout, e
	case *fault.Memout:
		return StatusMemout, e
	case *vs.ModelError:
		return StatusBug, e
	case *vs.InvariantError:
		return StatusFault, e
	case error:
		return StatusFault, e
	default:
		return StatusFault, fmt.Errorf("engine fault: %v", r)
	}
}
