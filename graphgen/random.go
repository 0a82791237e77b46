package graphgen

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/mttc/graph"
	"github.com/katalvlaran/mttc/nodenet"
)

// RandomSparseOption customizes RandomSparse.
type RandomSparseOption func(*randomSparseConfig)

type randomSparseConfig struct {
	rng       *rand.Rand
	rateMin   float64
	rateMax   float64
	startProb float64
}

// WithSeed freezes RandomSparse's edge inclusion and rate draws to a
// deterministic *rand.Rand built from seed.
func WithSeed(seed int64) RandomSparseOption {
	return func(c *randomSparseConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithRateRange overrides the [min,max) range edge rates are drawn
// uniformly from. Default is [5, 60).
func WithRateRange(min, max float64) RandomSparseOption {
	return func(c *randomSparseConfig) { c.rateMin, c.rateMax = min, max }
}

// WithStartProbability overrides the probability each node independently
// becomes a start node (rate 0). Default is 1/n, so a graph of n nodes
// has roughly one start node in expectation.
func WithStartProbability(p float64) RandomSparseOption {
	return func(c *randomSparseConfig) { c.startProb = p }
}

// RandomSparse builds an Erdos-Renyi-style node-net over n nodes:
// each ordered pair (i, j), i != j, gets an independent edge with
// probability p, and the last node is always marked end so the fixture
// has somewhere to converge on. Rate and which nodes start are drawn
// from the same rng, so a fixed seed reproduces an identical node-net.
func RandomSparse(n int, p float64, opts ...RandomSparseOption) (*nodenet.NodeNet, error) {
	if n < 2 {
		return nil, fmt.Errorf("graphgen: RandomSparse needs n >= 2, got %d", n)
	}
	if p < 0 || p > 1 {
		return nil, fmt.Errorf("graphgen: RandomSparse needs 0 <= p <= 1, got %g", p)
	}

	cfg := &randomSparseConfig{rateMin: 5, rateMax: 60, startProb: 1.0 / float64(n)}
	for _, o := range opts {
		o(cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewSource(1))
	}

	nn := &nodenet.NodeNet{Nodes: make([]nodenet.Node, n)}
	anyStart := false
	for i := 0; i < n; i++ {
		data := nodenet.NodeData{}
		if cfg.rng.Float64() < cfg.startProb {
			data.Start = graph.StartAt(0)
			anyStart = true
		}
		if i == n-1 {
			data.End = true
		}
		nn.Nodes[i] = nodenet.Node{ID: nodeID(i), Data: data}
	}
	if !anyStart {
		nn.Nodes[0].Data.Start = graph.StartAt(0)
	}

	edgeCount := 0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if cfg.rng.Float64() >= p {
				continue
			}
			rate := cfg.rateMin + cfg.rng.Float64()*(cfg.rateMax-cfg.rateMin)
			nn.Edges = append(nn.Edges, nodenet.Edge{
				ID:   threatID("rnd", edgeCount),
				From: nodeID(i), To: nodeID(j),
				Data: nodenet.EdgeData{Echo: &nodenet.EchoSpec{Record: &nodenet.EchoRecord{Rate: rate}}},
			})
			edgeCount++
		}
	}
	return nn, nil
}
