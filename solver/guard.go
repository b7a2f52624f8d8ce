package solver

import "time"

// A Guard is a path condition: a handle to a boolean formula in the
// engine owned by its context. Guards are value types and are shared
// freely; no operation mutates its operands.
//
// The zero Guard is the unanchored constant false. And with it yields
// the zero guard and Or with it yields the other operand, but it
// cannot be negated: negation needs an engine to build the true node,
// and the zero guard has none.
type Guard struct {
	ctx  *Context
	node Node
}

// Context returns the context the guard is anchored to, or nil for the
// zero guard.
func (g Guard) Context() *Context { return g.ctx }

// NodeID returns the engine identifier for the guard's node. Only
// valid within the run that produced the guard.
func (g Guard) NodeID() int {
	if g.ctx == nil {
		return 0
	}
	return g.ctx.engine.NodeID(g.node)
}

// IsZero reports whether the guard is the unanchored zero value.
func (g Guard) IsZero() bool { return g.ctx == nil }

// And returns the conjunction of two guards.
func (g Guard) And(h Guard) Guard {
	if g.ctx == nil {
		return g
	}
	if h.ctx == nil {
		return h
	}
	start := time.Now()
	n := g.ctx.engine.And(g.node, h.node)
	g.ctx.stats.AndOps++
	g.ctx.sampleCreate(time.Since(start))
	return Guard{ctx: g.ctx, node: n}
}

// Or returns the disjunction of two guards.
func (g Guard) Or(h Guard) Guard {
	if g.ctx == nil {
		return h
	}
	if h.ctx == nil {
		return g
	}
	start := time.Now()
	n := g.ctx.engine.Or(g.node, h.node)
	g.ctx.stats.OrOps++
	g.ctx.sampleCreate(time.Since(start))
	return Guard{ctx: g.ctx, node: n}
}

// Not returns the negation of the guard. Negating the zero guard is an
// invariant violation: the caller holds a guard that was never
// anchored to an engine.
func (g Guard) Not() Guard {
	if g.ctx == nil {
		panic("solver: Not on unanchored zero guard")
	}
	start := time.Now()
	n := g.ctx.engine.Not(g.node)
	g.ctx.stats.NotOps++
	g.ctx.sampleCreate(time.Since(start))
	return Guard{ctx: g.ctx, node: n}
}

// Implies returns !g | h.
func (g Guard) Implies(h Guard) Guard {
	if g.ctx == nil {
		if h.ctx == nil {
			return h
		}
		return h.ctx.True()
	}
	return g.Not().Or(h)
}

// IsTrue reports whether the guard is the constant true.
func (g Guard) IsTrue() bool {
	if g.ctx == nil {
		return false
	}
	return g.ctx.engine.Equal(g.node, g.ctx.engine.True())
}

// IsFalse reports whether the guard is the constant false.
func (g Guard) IsFalse() bool {
	if g.ctx == nil {
		return true
	}
	return g.ctx.engine.Equal(g.node, g.ctx.engine.False())
}

// IsSat reports whether the guard has a satisfying assignment.
func (g Guard) IsSat() bool {
	if g.ctx == nil {
		return false
	}
	start := time.Now()
	sat := g.ctx.engine.IsSat(g.node)
	g.ctx.stats.IsSatOps++
	if sat {
		g.ctx.stats.IsSatTrue++
	}
	g.ctx.sampleSolve(time.Since(start))
	return sat
}

// Equals reports whether two guards denote the same boolean function.
// Guards from different contexts are never equal.
func (g Guard) Equals(h Guard) bool {
	if g.ctx == nil || h.ctx == nil {
		return g.IsFalse() && h.IsFalse()
	}
	if g.ctx != h.ctx {
		return false
	}
	return g.ctx.engine.Equal(g.node, h.node)
}
