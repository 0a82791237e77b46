package graph

import (
	"math"
	"sort"
)

// HasHitTime reports whether t is a valid (assigned) hit/involved time, as
// opposed to the Unset sentinel.
func HasHitTime(t float64) bool { return !math.IsNaN(t) }

// Unset is the sentinel value for an as-yet-unassigned hit/involved time.
// NaN is never a valid simulated age, and math.IsNaN is the one correct
// way to test for it (NaN != NaN), so callers should use HasHitTime
// instead of comparing directly.
func Unset() float64 { return math.NaN() }

// TrialState holds the mutable, per-history simulation state for one
// Graph: which threats and nodes have activated, and when each node was
// first reached (hit) and first lay on a complete path (involved).
//
// TrialState is owned by a single worker goroutine at a time; the engine
// never mutates two TrialStates belonging to the same Graph concurrently
// from different goroutines, so no locking is needed here — the topology
// it reads (the *Graph) is immutable and safe to share.
type TrialState struct {
	g *Graph

	threatIDs   []string
	threatIndex map[string]int

	ThreatOn []bool

	Started              []bool
	HitTime              []float64
	InvolvedTime         []float64
	CoincidenceRemaining []int

	Hit bool
}

// NewTrialState allocates a TrialState sized for g and resets it.
func NewTrialState(g *Graph) *TrialState {
	st := &TrialState{
		g:                    g,
		Started:              make([]bool, len(g.Nodes)),
		HitTime:              make([]float64, len(g.Nodes)),
		InvolvedTime:         make([]float64, len(g.Nodes)),
		CoincidenceRemaining: make([]int, len(g.Nodes)),
	}
	st.threatIDs = sortedThreatIDs(g)
	st.ThreatOn = make([]bool, len(st.threatIDs))
	st.threatIndex = make(map[string]int, len(st.threatIDs))
	for i, id := range st.threatIDs {
		st.threatIndex[id] = i
	}
	st.Reset()
	return st
}

// Reset clears every per-trial field (activation flags, hit/involved
// times, coincidence counters, the graph-level Hit flag) and zeroes Age.
// Topology (g.Nodes, g.Threats, g.End) is never touched.
func (st *TrialState) Reset() {
	for i := range st.ThreatOn {
		st.ThreatOn[i] = false
	}
	for i := range st.Started {
		st.Started[i] = false
		st.HitTime[i] = math.NaN()
		st.InvolvedTime[i] = math.NaN()
		st.CoincidenceRemaining[i] = st.g.Nodes[i].Coincidence
	}
	st.Hit = false
	st.g.Age = 0
}

// ThreatIsOn reports whether the named threat is currently active.
func (st *TrialState) ThreatIsOn(id string) bool {
	idx, ok := st.threatIndex[id]
	return ok && st.ThreatOn[idx]
}

// SetThreatOn marks the named threat active. Unknown ids are a no-op: a
// Graph's edges never reference a threat id that was not registered with
// Builder.AddThreat (unknown references are warned-and-skipped at build
// time), so this only ever affects a real threat.
func (st *TrialState) SetThreatOn(id string) {
	if idx, ok := st.threatIndex[id]; ok {
		st.ThreatOn[idx] = true
	}
}

// ThreatIDs returns the stable, sorted list of threat ids backing
// ThreatOn's dense index. Order is lexicographic, so it is identical
// across TrialStates built from the same Graph.
func (st *TrialState) ThreatIDs() []string { return st.threatIDs }

// ThreatRate returns the rate registered for threat id.
func (st *TrialState) ThreatRate(id string) float64 { return st.g.Threats[id].Rate }

func sortedThreatIDs(g *Graph) []string {
	ids := make([]string, 0, len(g.Threats))
	for id := range g.Threats {
		ids = append(ids, id)
	}
	// Deterministic order decouples TrialState's internal slice layout
	// from Go's randomized map iteration: two TrialStates built from the
	// same Graph must assign threats to indices identically, or identical
	// seeds stop reproducing identical trial sequences.
	sort.Strings(ids)
	return ids
}
