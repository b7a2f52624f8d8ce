package solver

import (
	"fmt"

	"github.com/crillab/gophersat/bf"
)

// FormulaEngine implements the boolean algebra on top of unreduced
// boolean formulas, discharging satisfiability queries to a SAT
// solver. Creation is cheap and solving is expensive, the opposite
// trade-off of the BDD engine; the auto-switch callback is the place
// to pick between them.
type FormulaEngine struct {
	nextVar  int
	nextNode int
}

type satNode struct {
	id int
	f  bf.Formula
	// Cached satisfiability: 0 unknown, 1 sat, 2 unsat. Formulas are
	// immutable, so the first answer stays valid.
	sat uint8
}

// NewFormulaEngine creates an empty formula engine.
func NewFormulaEngine() *FormulaEngine {
	return &FormulaEngine{}
}

func (e *FormulaEngine) node(f bf.Formula) *satNode {
	e.nextNode++
	return &satNode{id: e.nextNode, f: f}
}

func (e *FormulaEngine) True() Node  { return &satNode{id: 0, f: bf.True, sat: 1} }
func (e *FormulaEngine) False() Node { return &satNode{id: -1, f: bf.False, sat: 2} }

func (e *FormulaEngine) FreshVar() Node {
	e.nextVar++
	return e.node(bf.Var(fmt.Sprintf("v%d", e.nextVar)))
}

func (e *FormulaEngine) And(a, b Node) Node {
	return e.node(bf.And(a.(*satNode).f, b.(*satNode).f))
}

func (e *FormulaEngine) Or(a, b Node) Node {
	return e.node(bf.Or(a.(*satNode).f, b.(*satNode).f))
}

func (e *FormulaEngine) Not(a Node) Node {
	return e.node(bf.Not(a.(*satNode).f))
}

func (e *FormulaEngine) IsSat(a Node) bool {
	n := a.(*satNode)
	if n.sat == 0 {
		if bf.Solve(n.f) != nil {
			n.sat = 1
		} else {
			n.sat = 2
		}
	}
	return n.sat == 1
}

func (e *FormulaEngine) Equal(a, b Node) bool {
	an, bn := a.(*satNode), b.(*satNode)
	if an == bn {
		return true
	}
	// The constants carry fixed ids (0 true, -1 false) and every other
	// node has a positive id, so two constants compare by id.
	if an.id <= 0 && bn.id <= 0 {
		return an.id == bn.id
	}
	// a == b iff neither a & !b nor b & !a is satisfiable.
	if bf.Solve(bf.And(an.f, bf.Not(bn.f))) != nil {
		return false
	}
	return bf.Solve(bf.And(bn.f, bf.Not(an.f))) == nil
}

func (e *FormulaEngine) NodeID(a Node) int { return a.(*satNode).id }

func (e *FormulaEngine) VarCount() int  { return e.nextVar }
func (e *FormulaEngine) NodeCount() int { return e.nextNode }

func (e *FormulaEngine) Name() string { return "sat" }
