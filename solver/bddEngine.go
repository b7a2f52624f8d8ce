package solver

import (
	"fmt"

	"github.com/dalzilio/rudd"
)

// DefaultVarBudget is the number of BDD variables preallocated by the
// default engine. rudd fixes the variable count when the diagram is
// created, so fresh choice variables are handed out from this budget;
// exhausting it is an engine fault.
const DefaultVarBudget = 1 << 14

// BDDEngine implements the boolean algebra on top of a reduced ordered
// BDD. Nodes are canonical, so equality is pointer-level and IsSat is
// a comparison against the false terminal.
type BDDEngine struct {
	bdd     *rudd.BDD
	nextVar int
	budget  int
}

// NewBDDEngine creates a BDD engine with the given variable budget.
func NewBDDEngine(varBudget int) (*BDDEngine, error) {
	if varBudget <= 0 {
		return nil, fmt.Errorf("solver: variable budget must be positive, got %d", varBudget)
	}
	bdd, err := rudd.New(varBudget, rudd.Nodesize(1<<18), rudd.Cachesize(1<<16))
	if err != nil {
		return nil, fmt.Errorf("solver: creating BDD: %w", err)
	}
	return &BDDEngine{bdd: bdd, budget: varBudget}, nil
}

func (e *BDDEngine) True() Node  { return e.bdd.True() }
func (e *BDDEngine) False() Node { return e.bdd.False() }

func (e *BDDEngine) FreshVar() Node {
	if e.nextVar >= e.budget {
		panic(fmt.Sprintf("solver: BDD variable budget of %d exhausted", e.budget))
	}
	n := e.bdd.Ithvar(e.nextVar)
	e.nextVar++
	return n
}

func (e *BDDEngine) And(a, b Node) Node { return e.bdd.And(a.(rudd.Node), b.(rudd.Node)) }
func (e *BDDEngine) Or(a, b Node) Node  { return e.bdd.Or(a.(rudd.Node), b.(rudd.Node)) }
func (e *BDDEngine) Not(a Node) Node    { return e.bdd.Not(a.(rudd.Node)) }

func (e *BDDEngine) IsSat(a Node) bool {
	return !e.bdd.Equal(a.(rudd.Node), e.bdd.False())
}

func (e *BDDEngine) Equal(a, b Node) bool {
	return e.bdd.Equal(a.(rudd.Node), b.(rudd.Node))
}

func (e *BDDEngine) NodeID(a Node) int {
	n := a.(rudd.Node)
	if n == nil {
		return -1
	}
	return *n
}

func (e *BDDEngine) VarCount() int { return e.nextVar }

func (e *BDDEngine) NodeCount() int {
	count := 0
	e.bdd.Allnodes(func(id, level, low, high int) error {
		count++
		return nil
	})
	return count
}

func (e *BDDEngine) Name() string { return "bdd" }
