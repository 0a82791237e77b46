package graphgen

import (
	"fmt"

	"github.com/katalvlaran/mttc/graph"
	"github.com/katalvlaran/mttc/nodenet"
)

func nodeID(i int) string { return fmt.Sprintf("n%d", i) }

// Chain builds a node-net of n nodes 0 -> 1 -> ... -> (n-1), node 0
// starting immediately, every edge gated by an inline echo record of
// rate days, and the last node marked end. Every edge's threat ages from
// time zero in parallel, so a chain of n nodes has the analytic mean
// compromise time rate*(1 + 1/2 + ... + 1/(n-1)), the mean of the maximum
// of n-1 independent exponentials, which makes it the workhorse fixture
// for estimator accuracy tests.
func Chain(n int, rate float64) *nodenet.NodeNet {
	nn := &nodenet.NodeNet{Nodes: make([]nodenet.Node, n)}
	for i := 0; i < n; i++ {
		data := nodenet.NodeData{}
		if i == 0 {
			data.Start = graph.StartAt(0)
		}
		if i == n-1 {
			data.End = true
		}
		nn.Nodes[i] = nodenet.Node{ID: nodeID(i), Data: data}
	}
	for i := 0; i < n-1; i++ {
		nn.Edges = append(nn.Edges, nodenet.Edge{
			ID:   threatID("chain", i),
			From: nodeID(i), To: nodeID(i + 1),
			Data: nodenet.EdgeData{Echo: &nodenet.EchoSpec{Record: &nodenet.EchoRecord{Rate: rate}}},
		})
	}
	return nn
}

// Diamond builds a node-net with one start node fanning out to two
// independent paths that converge on one end node, each path gated by
// its own rate. The two paths are independent from the origin's single
// activation onward, since each leg's threat is distinct.
func Diamond(rate float64) *nodenet.NodeNet {
	nn := &nodenet.NodeNet{
		Nodes: []nodenet.Node{
			{ID: "start", Data: nodenet.NodeData{Start: graph.StartAt(0)}},
			{ID: "left", Data: nodenet.NodeData{}},
			{ID: "right", Data: nodenet.NodeData{}},
			{ID: "end", Data: nodenet.NodeData{End: true}},
		},
	}
	nn.Edges = []nodenet.Edge{
		{ID: "sl", From: "start", To: "left", Data: nodenet.EdgeData{Echo: &nodenet.EchoSpec{Record: &nodenet.EchoRecord{Rate: rate}}}},
		{ID: "sr", From: "start", To: "right", Data: nodenet.EdgeData{Echo: &nodenet.EchoSpec{Record: &nodenet.EchoRecord{Rate: rate}}}},
		{ID: "le", From: "left", To: "end", Data: nodenet.EdgeData{Echo: &nodenet.EchoSpec{Record: &nodenet.EchoRecord{Rate: rate}}}},
		{ID: "re", From: "right", To: "end", Data: nodenet.EdgeData{Echo: &nodenet.EchoSpec{Record: &nodenet.EchoRecord{Rate: rate}}}},
	}
	return nn
}

// TwoStarts builds two independent start nodes, each with a single
// direct edge into a shared end node. The analytic MTTC is
// rate*(1 - 1/(n+1)) for n == 2 starts: the minimum of two independent
// exponentials.
func TwoStarts(rate float64) *nodenet.NodeNet {
	nn := &nodenet.NodeNet{
		Nodes: []nodenet.Node{
			{ID: "a1", Data: nodenet.NodeData{Start: graph.StartAt(0)}},
			{ID: "a2", Data: nodenet.NodeData{Start: graph.StartAt(0)}},
			{ID: "end", Data: nodenet.NodeData{End: true}},
		},
	}
	nn.Edges = []nodenet.Edge{
		{ID: "e1", From: "a1", To: "end", Data: nodenet.EdgeData{Echo: &nodenet.EchoSpec{Record: &nodenet.EchoRecord{Rate: rate}}}},
		{ID: "e2", From: "a2", To: "end", Data: nodenet.EdgeData{Echo: &nodenet.EchoSpec{Record: &nodenet.EchoRecord{Rate: rate}}}},
	}
	return nn
}

// CycleWithEscape builds A<->B with B also reaching end node C, start at
// A. A and B have equal involvement times; A's MTTC is 0 and B's is the
// rate of the A->B edge.
func CycleWithEscape(cycleRate, escapeRate float64) *nodenet.NodeNet {
	nn := &nodenet.NodeNet{
		Nodes: []nodenet.Node{
			{ID: "a", Data: nodenet.NodeData{Start: graph.StartAt(0)}},
			{ID: "b", Data: nodenet.NodeData{}},
			{ID: "c", Data: nodenet.NodeData{End: true}},
		},
	}
	nn.Edges = []nodenet.Edge{
		{ID: "ab", From: "a", To: "b", Data: nodenet.EdgeData{Echo: &nodenet.EchoSpec{Record: &nodenet.EchoRecord{Rate: cycleRate}}}},
		{ID: "ba", From: "b", To: "a", Data: nodenet.EdgeData{Echo: &nodenet.EchoSpec{Record: &nodenet.EchoRecord{Rate: cycleRate}}}},
		{ID: "bc", From: "b", To: "c", Data: nodenet.EdgeData{Echo: &nodenet.EchoSpec{Record: &nodenet.EchoRecord{Rate: escapeRate}}}},
	}
	return nn
}

// UnreachableEnd builds a single edge a->c with no start rate on a, so
// c is never reachable; used to exercise FindTime's ErrNoAchievablePath
// path.
func UnreachableEnd(rate float64) *nodenet.NodeNet {
	nn := &nodenet.NodeNet{
		Nodes: []nodenet.Node{
			{ID: "a", Data: nodenet.NodeData{}},
			{ID: "c", Data: nodenet.NodeData{End: true}},
		},
	}
	nn.Edges = []nodenet.Edge{
		{ID: "ac", From: "a", To: "c", Data: nodenet.EdgeData{Echo: &nodenet.EchoSpec{Record: &nodenet.EchoRecord{Rate: rate}}}},
	}
	return nn
}
