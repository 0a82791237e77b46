package graph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mttc/graph"
)

func TestBuilder_SkipsAndWarnsOnBadReferences(t *testing.T) {
	b := graph.NewBuilder()
	a := b.AddNode(graph.StartAt(0), 0)
	c := b.AddNode(nil, 0)
	b.AddThreat("ok", 10)

	b.AddEdge(a, c, "ok")
	b.AddEdge(a, 99, "ok")      // unknown target
	b.AddEdge(-1, c, "ok")      // unknown source
	b.AddEdge(a, c, "missing")  // unregistered threat
	b.MarkEnd(42)               // out of range

	g := b.Finalize()
	require.Len(t, b.Warnings(), 4)
	require.Len(t, g.Nodes[a].Edges, 1)
	require.Empty(t, g.End)
}

func TestBuilder_CoincidenceNormalizedToOne(t *testing.T) {
	b := graph.NewBuilder()
	i := b.AddNode(nil, 0)
	j := b.AddNode(nil, -3)
	k := b.AddNode(nil, 2)
	g := b.Finalize()

	require.Equal(t, 1, g.Nodes[i].Coincidence)
	require.Equal(t, 1, g.Nodes[j].Coincidence)
	require.Equal(t, 2, g.Nodes[k].Coincidence)
}

func TestFinalize_BuildsReverseAdjacency(t *testing.T) {
	b := graph.NewBuilder()
	a := b.AddNode(nil, 0)
	c := b.AddNode(nil, 0)
	d := b.AddNode(nil, 0)
	b.AddThreat("t", 5)
	b.AddEdge(a, d, "t")
	b.AddEdge(c, d, "t")
	b.AddEdge(d, d, "t") // self-loops are legal
	g := b.Finalize()

	require.ElementsMatch(t, []int{a, c, d}, g.Predecessors(d))
	require.Empty(t, g.Predecessors(a))
}

func TestTrialState_ResetClearsEverything(t *testing.T) {
	b := graph.NewBuilder()
	a := b.AddNode(graph.StartAt(0), 0)
	c := b.AddNode(nil, 2)
	b.AddThreat("t", 0)
	b.AddEdge(a, c, "t")
	b.MarkEnd(c)
	g := b.Finalize()

	st := graph.NewTrialState(g)
	st.Started[a] = true
	st.HitTime[a] = 3.5
	st.InvolvedTime[a] = 4.5
	st.CoincidenceRemaining[c] = 0
	st.SetThreatOn("t")
	st.Hit = true
	g.Age = 12

	st.Reset()

	require.False(t, st.Started[a])
	require.False(t, graph.HasHitTime(st.HitTime[a]))
	require.False(t, graph.HasHitTime(st.InvolvedTime[a]))
	require.Equal(t, 2, st.CoincidenceRemaining[c])
	require.False(t, st.ThreatIsOn("t"))
	require.False(t, st.Hit)
	require.Equal(t, 0.0, g.Age)
}

func TestTrialState_ThreatIndexIsDeterministic(t *testing.T) {
	build := func() *graph.Graph {
		b := graph.NewBuilder()
		b.AddNode(nil, 0)
		for _, id := range []string{"zeta", "alpha", "mid"} {
			b.AddThreat(id, 1)
		}
		return b.Finalize()
	}
	s1 := graph.NewTrialState(build())
	s2 := graph.NewTrialState(build())
	require.Equal(t, s1.ThreatIDs(), s2.ThreatIDs())
}

func TestUnsetSentinelIsNeverAValidTime(t *testing.T) {
	require.False(t, graph.HasHitTime(graph.Unset()))
	require.True(t, graph.HasHitTime(0))
	require.True(t, graph.HasHitTime(1e9))
}
