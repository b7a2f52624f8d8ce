package solver

import (
	"fmt"
	"time"
)

// A Context owns a boolean engine together with its statistics. Every
// guard is anchored to the context that minted it.
//
// The context is threaded through the scheduler explicitly so that
// tests can run with alternative engines. Sharing a context between
// concurrently running searches is not supported.
type Context struct {
	engine Engine
	stats  Stats

	// Invoked after every timing sample. Used to switch between
	// engines based on observed solver cost. Never semantically
	// visible to guard operations.
	autoSwitch func(*Context)
}

// NewContext creates a context over the given engine.
func NewContext(engine Engine) *Context {
	return &Context{engine: engine}
}

// NewDefaultContext creates a context over a BDD engine with the
// default variable budget.
func NewDefaultContext() *Context {
	engine, err := NewBDDEngine(DefaultVarBudget)
	if err != nil {
		panic(fmt.Sprintf("solver: %v", err))
	}
	return NewContext(engine)
}

// Engine returns the underlying engine.
func (c *Context) Engine() Engine { return c.engine }

// Stats returns a snapshot of the operation counters.
func (c *Context) Stats() Stats { return c.stats }

// SetAutoSwitch registers the engine auto-switch callback. Passing nil
// clears it.
func (c *Context) SetAutoSwitch(f func(*Context)) { c.autoSwitch = f }

// SwitchEngine replaces the engine. The caller must guarantee that no
// guard minted by the previous engine is used afterwards; this is only
// safe between searches.
func (c *Context) SwitchEngine(engine Engine) { c.engine = engine }

// True returns the constant true guard.
func (c *Context) True() Guard { return Guard{ctx: c, node: c.engine.True()} }

// False returns the constant false guard.
func (c *Context) False() Guard { return Guard{ctx: c, node: c.engine.False()} }

// FreshVar returns a guard for a fresh boolean variable. Fresh
// variables represent nondeterministic choices; each one is used for a
// single choice point.
func (c *Context) FreshVar() Guard {
	start := time.Now()
	n := c.engine.FreshVar()
	c.sampleCreate(time.Since(start))
	return Guard{ctx: c, node: n}
}

// Cleanup releases solver memory where the engine supports it. Invoked
// by the scheduler when memory use crosses the configured threshold.
func (c *Context) Cleanup() {
	if r, ok := c.engine.(interface{ Cleanup() }); ok {
		r.Cleanup()
	}
}

func (c *Context) sampleCreate(d time.Duration) {
	c.stats.recordCreate(d)
	if c.autoSwitch != nil {
		c.autoSwitch(c)
	}
}

func (c *Context) sampleSolve(d time.Duration) {
	c.stats.recordSolve(d)
	if c.autoSwitch != nil {
		c.autoSwitch(c)
	}
}
