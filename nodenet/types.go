package nodenet

// EchoRecord is the inline {Rate} form of an echo spec: the
// questionnaire's own rate-estimation logic is out of scope, so the
// engine only ever needs the resulting Rate.
type EchoRecord struct {
	Rate float64
}

// EchoSpec is one of Simple (the literal "worst case" answer),
// CatalogKey (a lookup into a lazily-loaded Catalog), or Record (an
// inline rate), mirroring the node-net schema's "simple | catalog_key |
// record" union for the "echo" trace-data key.
type EchoSpec struct {
	Simple     bool
	CatalogKey string
	Record     *EchoRecord
}

// FoxtrotRecord is the inline {Rate} form of a foxtrot spec.
type FoxtrotRecord struct {
	Rate float64
}

// FoxtrotSpec is one of Simple or Record, mirroring the node-net
// schema's "simple | record" union for "foxtrot" (foxtrot has no
// catalog variant).
type FoxtrotSpec struct {
	Simple bool
	Record *FoxtrotRecord
}

// NodeData is a node-net node's "trace data": a tagged union of Start,
// Echo, Foxtrot, End and Common.
type NodeData struct {
	// Start, when non-nil, makes this node a threat-graph start node
	// with the given start rate.
	Start *float64
	Echo  *EchoSpec
	// Foxtrot is mutually exclusive with Echo in practice. Expand reads
	// echo/foxtrot rates from edges only; a node's Echo and Foxtrot are
	// carried through unchanged.
	Foxtrot *FoxtrotSpec
	End     bool
	// Common, when non-empty, makes every edge into this node use one
	// threat shared with every edge into any other node carrying the same
	// Common value (common-mode coupling).
	Common string
}

// NodeProjection is the per-node result attached by Project: the
// minimum MTTC (and, if involvement was requested, MTTI) across every
// threat-graph node sharing this node-net node's id, plus the
// concatenated sample lists.
type NodeProjection struct {
	MTTC        float64
	MTTCSamples []float64
	// MTTI is nil when Project was not given involvement results.
	MTTI        *float64
	MTTISamples []float64
}

// Node is one node-net vertex.
type Node struct {
	ID   string
	Data NodeData

	// Result is nil until Project annotates it; it is the only field
	// Project ever sets; every other field round-trips unchanged.
	Result *NodeProjection
}

// EdgeData is a node-net edge's trace data.
type EdgeData struct {
	Echo    *EchoSpec
	Foxtrot *FoxtrotSpec
}

// Edge is one node-net edge.
type Edge struct {
	ID       string
	From, To string
	Data     EdgeData
}

// NodeNet is the domain-facing graph of components and interfaces prior
// to expansion into a threat graph.
type NodeNet struct {
	Nodes []Node
	Edges []Edge
}

// Clone returns a copy of nn with its own node and edge slices, Start
// rates and Results; echo/foxtrot spec pointers are shared with nn.
func (nn *NodeNet) Clone() *NodeNet {
	out := &NodeNet{
		Nodes: make([]Node, len(nn.Nodes)),
		Edges: make([]Edge, len(nn.Edges)),
	}
	for i, n := range nn.Nodes {
		out.Nodes[i] = n
		if n.Data.Start != nil {
			rate := *n.Data.Start
			out.Nodes[i].Data.Start = &rate
		}
		if n.Result != nil {
			rc := *n.Result
			rc.MTTCSamples = append([]float64(nil), n.Result.MTTCSamples...)
			if n.Result.MTTI != nil {
				mtti := *n.Result.MTTI
				rc.MTTI = &mtti
			}
			rc.MTTISamples = append([]float64(nil), n.Result.MTTISamples...)
			out.Nodes[i].Result = &rc
		}
	}
	copy(out.Edges, nn.Edges)
	return out
}
