package solver

// A Node is an opaque handle into a boolean engine. Nodes are only
// meaningful to the engine that produced them and are never owned by
// the caller.
type Node any

// An Engine implements the boolean algebra that guards are built on.
//
// Engines must be total over the five core operations and must report
// IsSat exactly: IsSat(n) is false if and only if n is equivalent to
// the constant false. No operation mutates its inputs.
type Engine interface {
	// The constant true node. Two calls return equal nodes.
	True() Node
	// The constant false node.
	False() Node

	// FreshVar allocates a new boolean variable and returns the node
	// representing it. Variables are never reused within an engine.
	FreshVar() Node

	And(a, b Node) Node
	Or(a, b Node) Node
	Not(a Node) Node

	// IsSat reports whether the node has at least one satisfying
	// assignment.
	IsSat(a Node) bool

	// Equal reports whether two nodes denote the same boolean function.
	Equal(a, b Node) bool

	// NodeID returns a run-stable identifier for the node. Identifiers
	// are only valid within the engine that produced them; they are
	// used by the snapshot codec.
	NodeID(a Node) int

	// VarCount returns the number of variables allocated so far.
	VarCount() int
	// NodeCount returns the number of live nodes, if the engine tracks
	// them, or the number of distinct nodes created.
	NodeCount() int

	Name() string
}
