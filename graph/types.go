package graph

// Edge is an outgoing connection from one node to another, gated by a
// threat: the edge is traversable in a trial only while its threat is on.
type Edge struct {
	// To is the destination node index.
	To int
	// ThreatID names the threat that gates this edge.
	ThreatID string
}

// Threat is a registered activation event shared by zero or more edges.
// Rate is the mean number of days between activations of an exponential
// clock; Rate == 0 means the threat is always on.
type Threat struct {
	Rate float64
}

// Node is one vertex of the threat graph.
type Node struct {
	// StartRate, when non-nil, makes this node a start node: it becomes
	// "started" spontaneously under its own exponential clock (or
	// immediately, if *StartRate == 0).
	StartRate *float64
	// Coincidence is the number of distinct incoming active edges
	// required before this node is admitted to the spanning tree.
	// Coincidence <= 1 means the ordinary "any one edge suffices" rule.
	Coincidence int
	// Edges lists this node's outgoing edges.
	Edges []Edge
}

// HasStart reports whether n spontaneously starts under its own clock.
func (n Node) HasStart() bool {
	return n.StartRate != nil
}

// StartAt returns a pointer to rate, for use as a Node's StartRate or as
// Builder.AddNode's startRate argument.
func StartAt(rate float64) *float64 {
	return &rate
}

// Graph is the immutable threat-graph topology produced by a Builder.
type Graph struct {
	Nodes   []Node
	Threats map[string]Threat
	End     map[int]bool
	Age     float64

	// reverseAdjacency[i] lists node indices with an edge into i. It is
	// built once by Finalize and used for topology diagnostics (e.g.
	// nodenet's "node is never reachable" warnings), not by the hot
	// aging/checking loop, which only ever walks a node's own outgoing
	// Edges.
	reverseAdjacency [][]int
}

// NodeCount returns the number of nodes in g.
func (g *Graph) NodeCount() int { return len(g.Nodes) }

// IsEnd reports whether node i is a terminal node.
func (g *Graph) IsEnd(i int) bool { return g.End[i] }

// Predecessors returns the node indices with an edge into i. Valid only
// after Finalize has been called on the Builder that produced g.
func (g *Graph) Predecessors(i int) []int { return g.reverseAdjacency[i] }
