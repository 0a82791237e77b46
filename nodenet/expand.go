package nodenet

import (
	"fmt"

	"github.com/katalvlaran/mttc/graph"
)

// SimpleEchoRate and SimpleFoxtrotRate are the rates substituted for a
// "simple" (literal, canonical worst-case) echo/foxtrot answer. The
// actual questionnaire's rate-estimation logic lives in the external
// ECHO tooling; these are stand-in constants so Expand can still
// produce a runnable graph from a "simple"-tagged node-net.
const (
	SimpleEchoRate    = 7.0
	SimpleFoxtrotRate = 14.0
)

// Mapping records, for each node-net node id, the threat-graph node
// indices generated for it (len 1 in the implemented 1:1 case; see
// Expand's doc comment).
type Mapping struct {
	NodeIndex map[string][]int
}

// Expand translates a NodeNet into a threat graph. cat may be nil if no
// node/edge uses a catalog-key echo spec; Expand reports
// ErrCatalogRequired through its warning list otherwise.
//
// Only the 1:1 case is implemented: each node-net node produces exactly
// one threat-graph node. A node-net node fanning out into several
// threat-graph nodes is a modeling detail of the external ECHO
// expansion; callers needing that pre-expand their NodeNet before
// calling Expand.
//
// Duplicate node ids and edges referencing unknown ids are reported
// through the returned warning list and otherwise skipped.
func Expand(nn *NodeNet, cat *Catalog) (*graph.Graph, *Mapping, []string) {
	b := graph.NewBuilder()
	mapping := &Mapping{NodeIndex: make(map[string][]int, len(nn.Nodes))}
	var warnings []string

	seen := make(map[string]bool, len(nn.Nodes))
	idxOf := make(map[string]int, len(nn.Nodes))
	commonByID := make(map[string]string, len(nn.Nodes))

	for _, n := range nn.Nodes {
		if seen[n.ID] {
			warnings = append(warnings, fmt.Sprintf("%s: %q", ErrDuplicateNodeID, n.ID))
			continue
		}
		seen[n.ID] = true

		idx := b.AddNode(n.Data.Start, 0)
		idxOf[n.ID] = idx
		mapping.NodeIndex[n.ID] = []int{idx}
		commonByID[n.ID] = n.Data.Common
		if n.Data.End {
			b.MarkEnd(idx)
		}
	}

	commonThreat := make(map[string]string)

	for _, e := range nn.Edges {
		from, okFrom := idxOf[e.From]
		to, okTo := idxOf[e.To]
		if !okFrom || !okTo {
			warnings = append(warnings, fmt.Sprintf("%s: edge %q (%s->%s)", ErrUnknownEdgeEndpoint, e.ID, e.From, e.To))
			continue
		}

		rate, err := resolveRate(e.Data.Echo, e.Data.Foxtrot, cat)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("edge %q: %v", e.ID, err))
			continue
		}

		threatID := "edge:" + e.ID
		if common := commonByID[e.To]; common != "" {
			shared, ok := commonThreat[common]
			if !ok {
				shared = "common:" + common
				commonThreat[common] = shared
				b.AddThreat(shared, rate)
			}
			threatID = shared
		} else {
			b.AddThreat(threatID, rate)
		}

		b.AddEdge(from, to, threatID)
	}

	for _, w := range b.Warnings() {
		warnings = append(warnings, w)
	}

	g := b.Finalize()

	// An end node with neither an incoming edge nor a start rate can
	// never be reached; every history would censor. Worth flagging at
	// expansion time rather than after a long doubling search fails.
	idOf := make(map[int]string, len(idxOf))
	for id, idx := range idxOf {
		idOf[idx] = id
	}
	for idx := range g.Nodes {
		if g.IsEnd(idx) && !g.Nodes[idx].HasStart() && len(g.Predecessors(idx)) == 0 {
			warnings = append(warnings, fmt.Sprintf("node %q: end node has no incoming edges and no start rate", idOf[idx]))
		}
	}

	return g, mapping, warnings
}

// resolveRate resolves an echo or foxtrot spec into a threat rate. echo
// takes priority if both are present.
func resolveRate(echo *EchoSpec, foxtrot *FoxtrotSpec, cat *Catalog) (float64, error) {
	switch {
	case echo != nil:
		return resolveEcho(echo, cat)
	case foxtrot != nil:
		return resolveFoxtrot(foxtrot)
	default:
		return 0, ErrEmptyTraceData
	}
}

func resolveEcho(s *EchoSpec, cat *Catalog) (float64, error) {
	switch {
	case s.Record != nil:
		return s.Record.Rate, nil
	case s.CatalogKey != "":
		if cat == nil {
			return 0, ErrCatalogRequired
		}
		entry, err := cat.entry(s.CatalogKey)
		if err != nil {
			return 0, err
		}
		return entry.Rate, nil
	case s.Simple:
		return SimpleEchoRate, nil
	default:
		return 0, ErrEmptyTraceData
	}
}

func resolveFoxtrot(s *FoxtrotSpec) (float64, error) {
	switch {
	case s.Record != nil:
		return s.Record.Rate, nil
	case s.Simple:
		return SimpleFoxtrotRate, nil
	default:
		return 0, ErrEmptyTraceData
	}
}
