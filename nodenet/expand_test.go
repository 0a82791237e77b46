package nodenet_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mttc/graph"
	"github.com/katalvlaran/mttc/nodenet"
)

func TestExpand_SimpleChain(t *testing.T) {
	nn := &nodenet.NodeNet{
		Nodes: []nodenet.Node{
			{ID: "a", Data: nodenet.NodeData{Start: graph.StartAt(0)}},
			{ID: "b", Data: nodenet.NodeData{}},
			{ID: "c", Data: nodenet.NodeData{End: true}},
		},
		Edges: []nodenet.Edge{
			{ID: "ab", From: "a", To: "b", Data: nodenet.EdgeData{Echo: &nodenet.EchoSpec{Record: &nodenet.EchoRecord{Rate: 30}}}},
			{ID: "bc", From: "b", To: "c", Data: nodenet.EdgeData{Foxtrot: &nodenet.FoxtrotSpec{Record: &nodenet.FoxtrotRecord{Rate: 15}}}},
		},
	}

	g, mapping, warnings := nodenet.Expand(nn, nil)
	require.Empty(t, warnings)
	require.Equal(t, 3, g.NodeCount())
	require.Len(t, mapping.NodeIndex["a"], 1)
	require.True(t, g.IsEnd(mapping.NodeIndex["c"][0]))

	aIdx := mapping.NodeIndex["a"][0]
	require.True(t, g.Nodes[aIdx].HasStart())
	require.Len(t, g.Nodes[aIdx].Edges, 1)
}

func TestExpand_DuplicateNodeIDWarns(t *testing.T) {
	nn := &nodenet.NodeNet{
		Nodes: []nodenet.Node{
			{ID: "a", Data: nodenet.NodeData{Start: graph.StartAt(0)}},
			{ID: "a", Data: nodenet.NodeData{End: true}},
		},
	}
	g, mapping, warnings := nodenet.Expand(nn, nil)
	require.Len(t, warnings, 1)
	require.Equal(t, 1, g.NodeCount())
	require.Len(t, mapping.NodeIndex["a"], 1)
}

func TestExpand_UnknownEdgeEndpointWarns(t *testing.T) {
	nn := &nodenet.NodeNet{
		Nodes: []nodenet.Node{{ID: "a", Data: nodenet.NodeData{Start: graph.StartAt(0)}}},
		Edges: []nodenet.Edge{
			{ID: "e1", From: "a", To: "missing", Data: nodenet.EdgeData{Echo: &nodenet.EchoSpec{Simple: true}}},
		},
	}
	g, _, warnings := nodenet.Expand(nn, nil)
	require.NotEmpty(t, warnings)
	require.Equal(t, 0, len(g.Nodes[0].Edges))
}

func TestExpand_CommonKeySharesThreat(t *testing.T) {
	nn := &nodenet.NodeNet{
		Nodes: []nodenet.Node{
			{ID: "a1", Data: nodenet.NodeData{Start: graph.StartAt(0)}},
			{ID: "a2", Data: nodenet.NodeData{Start: graph.StartAt(0)}},
			{ID: "shared", Data: nodenet.NodeData{End: true, Common: "cve-1234"}},
		},
		Edges: []nodenet.Edge{
			{ID: "e1", From: "a1", To: "shared", Data: nodenet.EdgeData{Echo: &nodenet.EchoSpec{Simple: true}}},
			{ID: "e2", From: "a2", To: "shared", Data: nodenet.EdgeData{Echo: &nodenet.EchoSpec{Simple: true}}},
		},
	}
	g, mapping, warnings := nodenet.Expand(nn, nil)
	require.Empty(t, warnings)

	a1 := mapping.NodeIndex["a1"][0]
	a2 := mapping.NodeIndex["a2"][0]
	require.Equal(t, g.Nodes[a1].Edges[0].ThreatID, g.Nodes[a2].Edges[0].ThreatID)
	require.Len(t, g.Threats, 1)
}

func TestExpand_WarnsOnOrphanedEndNode(t *testing.T) {
	nn := &nodenet.NodeNet{
		Nodes: []nodenet.Node{
			{ID: "a", Data: nodenet.NodeData{Start: graph.StartAt(0)}},
			{ID: "island", Data: nodenet.NodeData{End: true}},
		},
	}
	_, _, warnings := nodenet.Expand(nn, nil)
	require.Len(t, warnings, 1)
	require.Contains(t, warnings[0], "island")
}

func TestExpand_CatalogKeyRequiresCatalog(t *testing.T) {
	nn := &nodenet.NodeNet{
		Nodes: []nodenet.Node{
			{ID: "a", Data: nodenet.NodeData{Start: graph.StartAt(0)}},
			{ID: "b", Data: nodenet.NodeData{End: true}},
		},
		Edges: []nodenet.Edge{
			{ID: "e1", From: "a", To: "b", Data: nodenet.EdgeData{Echo: &nodenet.EchoSpec{CatalogKey: "cve-1"}}},
		},
	}
	g, _, warnings := nodenet.Expand(nn, nil)
	require.NotEmpty(t, warnings)
	require.Equal(t, 0, len(g.Nodes[0].Edges))
}
