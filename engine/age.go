package engine

import (
	"math"

	"github.com/katalvlaran/mttc/graph"
	"github.com/katalvlaran/mttc/rngstream"
)

// Engine runs the aging and path-checking operations against a single
// worker's private Stream. An Engine is not safe for concurrent use;
// give each worker goroutine its own Engine built on its own derived
// Stream (see rngstream.Stream.Derive).
type Engine struct {
	rng *rngstream.Stream
}

// New returns an Engine that draws its randomness from rng.
func New(rng *rngstream.Stream) *Engine {
	return &Engine{rng: rng}
}

// AgeModel advances st by dt days: every threat not yet on is flipped
// on with probability 1-exp(-dt/rate) (or immediately, if its rate is
// zero); the same rule applies to every node with a start rate, setting
// Started. g.Age is then incremented by dt.
//
// AgeModel never revises an already-on threat or already-started node
// back off: activation is monotonic within a history. dt == 0 performs
// only the rate-zero admission rule, since 1-exp(-0/rate) == 0 for any
// positive rate.
func (e *Engine) AgeModel(g *graph.Graph, st *graph.TrialState, dt float64) {
	for _, id := range st.ThreatIDs() {
		if st.ThreatIsOn(id) {
			continue
		}
		rate := st.ThreatRate(id)
		if rate == 0 {
			st.SetThreatOn(id)
			continue
		}
		if e.rng.Float64() < activationProb(dt, rate) {
			st.SetThreatOn(id)
		}
	}

	for i, n := range g.Nodes {
		if st.Started[i] || !n.HasStart() {
			continue
		}
		rate := *n.StartRate
		if rate == 0 {
			st.Started[i] = true
			continue
		}
		if e.rng.Float64() < activationProb(dt, rate) {
			st.Started[i] = true
		}
	}

	g.Age += dt
}

// activationProb is the probability an exponential clock of mean rate
// fires at least once during an interval of length dt.
func activationProb(dt, rate float64) float64 {
	return 1 - math.Exp(-dt/rate)
}
