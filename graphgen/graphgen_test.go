package graphgen_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mttc/graph"
	"github.com/katalvlaran/mttc/graphgen"
	"github.com/katalvlaran/mttc/nodenet"
	"github.com/katalvlaran/mttc/rngstream"
	"github.com/katalvlaran/mttc/sampler"
)

func expand(t *testing.T, nn *nodenet.NodeNet) (*graph.Graph, *nodenet.Mapping) {
	t.Helper()
	g, mapping, warnings := nodenet.Expand(nn, nil)
	require.Empty(t, warnings)
	return g, mapping
}

func TestChainShape(t *testing.T) {
	nn := graphgen.Chain(3, 30)
	require.Len(t, nn.Nodes, 3)
	require.Len(t, nn.Edges, 2)
	require.NotNil(t, nn.Nodes[0].Data.Start)
	require.True(t, nn.Nodes[2].Data.End)

	g, mapping := expand(t, nn)
	require.Equal(t, 3, g.NodeCount())
	require.True(t, g.IsEnd(mapping.NodeIndex["n2"][0]))
}

func TestDiamondShape(t *testing.T) {
	nn := graphgen.Diamond(30)
	require.Len(t, nn.Nodes, 4)
	require.Len(t, nn.Edges, 4)

	g, _ := expand(t, nn)
	require.Equal(t, 4, g.NodeCount())
}

func TestCycleWithEscapeRoundTripsThroughSampler(t *testing.T) {
	nn := graphgen.CycleWithEscape(0, 30)
	g, mapping, warnings := nodenet.Expand(nn, nil)
	require.Empty(t, warnings)

	horizon := 300.0
	cc := sampler.ConvergenceCriteria{Window: 100, TTolerance: 0.05}
	res, err := sampler.FindMean(rngstream.Root(9), g, 100, cc, true, true, &horizon)
	require.NoError(t, err)

	a := mapping.NodeIndex["a"][0]
	b := mapping.NodeIndex["b"][0]
	c := mapping.NodeIndex["c"][0]
	// The A<->B cycle legs are rate 0, so B is hit the same simulated
	// step A starts; both land within the first step of every history,
	// far below the escape edge's 30-day timescale.
	require.Equal(t, res.NodeResults[a].MTTC, res.NodeResults[b].MTTC)
	require.Less(t, res.NodeResults[a].MTTC, 5.0)
	require.Greater(t, res.NodeResults[c].MTTC, 10.0)
	// Involvement happens only when the escape edge fires, identically
	// for both cycle members.
	require.InDelta(t, res.NodeResults[a].MTTI, res.NodeResults[b].MTTI, res.NodeResults[a].MTTI*0.01+1e-9)
}

func TestUnreachableEndFailsTheDoublingSearch(t *testing.T) {
	nn := graphgen.UnreachableEnd(30)
	g, _, warnings := nodenet.Expand(nn, nil)
	require.Empty(t, warnings)

	_, err := sampler.FindTime(rngstream.Root(2), g, 0.5, 20, sampler.DefaultFindTimeCriteria())
	require.ErrorIs(t, err, sampler.ErrNoAchievablePath)
}

func TestRandomSparseDeterministicBySeed(t *testing.T) {
	a, err := graphgen.RandomSparse(12, 0.3, graphgen.WithSeed(5))
	require.NoError(t, err)
	b, err := graphgen.RandomSparse(12, 0.3, graphgen.WithSeed(5))
	require.NoError(t, err)

	require.Equal(t, len(a.Edges), len(b.Edges))
	for i := range a.Edges {
		require.Equal(t, a.Edges[i], b.Edges[i])
	}
}

func TestRandomSparseAlwaysHasAStartAndAnEnd(t *testing.T) {
	nn, err := graphgen.RandomSparse(8, 0.1, graphgen.WithSeed(1), graphgen.WithStartProbability(0))
	require.NoError(t, err)

	starts := 0
	ends := 0
	for _, n := range nn.Nodes {
		if n.Data.Start != nil {
			starts++
		}
		if n.Data.End {
			ends++
		}
	}
	require.GreaterOrEqual(t, starts, 1)
	require.Equal(t, 1, ends)
}

func TestRandomSparseRejectsBadArguments(t *testing.T) {
	_, err := graphgen.RandomSparse(1, 0.5)
	require.Error(t, err)
	_, err = graphgen.RandomSparse(5, 1.5)
	require.Error(t, err)
}
