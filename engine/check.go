package engine

import (
	"github.com/katalvlaran/mttc/graph"
)

// CheckOptions controls CheckModel's forward/backward passes.
type CheckOptions struct {
	// StopAtHit exits the forward pass as soon as an end node is first
	// reached in this call, skipping any further edge processing.
	StopAtHit bool

	// Involvement additionally runs the backward involvement-closure
	// pass after the forward pass (only when the forward pass did not
	// early-exit via StopAtHit).
	Involvement bool

	// CoincidenceOnTarget switches the coincidence gate from the legacy
	// split-counter semantics (the default: each arrival drains the
	// target's CoincidenceRemaining, but admission is decided by the
	// source's own remaining) to the AND-gate most callers expect:
	// decrement and test the target's counter. The legacy default
	// exists for result parity with earlier models built on it.
	CoincidenceOnTarget bool
}

// CheckModel runs one forward spanning-tree pass over g's currently
// active edges, assigning HitTime/InvolvedTime to newly reached nodes
// and (when opts.Involvement is set) closing the involvement set with a
// backward pass. It returns st.Hit, the graph-level flag recording
// whether any end node has ever been reached in this history.
//
// CheckModel does not reset st: it is meant to be called once per
// simulated step, interleaved with AgeModel, and relies on HitTime,
// InvolvedTime and Started persisting across calls within one history.
func (e *Engine) CheckModel(g *graph.Graph, st *graph.TrialState, opts CheckOptions) bool {
	n := g.NodeCount()
	inS := make([]bool, n)
	s := make([]int, 0, n)

	enter := func(i int) {
		inS[i] = true
		s = append(s, i)
		st.CoincidenceRemaining[i] = g.Nodes[i].Coincidence
		if !graph.HasHitTime(st.HitTime[i]) {
			st.HitTime[i] = g.Age
			if g.IsEnd(i) {
				if !graph.HasHitTime(st.InvolvedTime[i]) {
					st.InvolvedTime[i] = g.Age
				}
				st.Hit = true
			}
		}
	}

	for i := 0; i < n; i++ {
		// Counters restart every pass, so a gate counts distinct incoming
		// edges within one pass, not the same edge once per call.
		st.CoincidenceRemaining[i] = g.Nodes[i].Coincidence
		if graph.HasHitTime(st.HitTime[i]) || graph.HasHitTime(st.InvolvedTime[i]) || st.Started[i] {
			enter(i)
		}
	}

	steps := 0
	earlyExit := false
outer:
	for idx := 0; idx < len(s); idx++ {
		u := s[idx]
		for _, edge := range g.Nodes[u].Edges {
			steps++
			if steps > MaxCheckSteps {
				break outer
			}
			if !st.ThreatIsOn(edge.ThreatID) {
				continue
			}
			target := edge.To
			if !inS[target] {
				if admitted := e.tryAdmit(g, st, opts, u, target); admitted {
					enter(target)
					if opts.StopAtHit && g.IsEnd(target) {
						earlyExit = true
						break outer
					}
				}
			}
			if graph.HasHitTime(st.InvolvedTime[target]) && !graph.HasHitTime(st.InvolvedTime[u]) {
				st.InvolvedTime[u] = g.Age
			}
		}
	}

	if opts.Involvement && !earlyExit {
		e.closeInvolvement(g, st, s)
	}

	return st.Hit
}

// tryAdmit applies the coincidence gate for an edge from u to target and
// reports whether target should be admitted to the spanning tree this
// edge. Targets with no coincidence requirement (Coincidence <= 1)
// always admit on the first qualifying edge.
//
// The legacy semantics drain the target's counter but decide admission
// by the *source's* remaining: two different counters. A source with no
// coincidence requirement of its own therefore admits any target
// immediately, however many arrivals the target nominally needs. That
// mismatch is preserved verbatim as the default for result parity with
// earlier models; CoincidenceOnTarget applies the AND-gate to the
// target's own counter instead.
func (e *Engine) tryAdmit(g *graph.Graph, st *graph.TrialState, opts CheckOptions, u, target int) bool {
	if g.Nodes[target].Coincidence <= 1 {
		return true
	}
	if opts.CoincidenceOnTarget {
		st.CoincidenceRemaining[target]--
		return st.CoincidenceRemaining[target] <= 0
	}
	st.CoincidenceRemaining[target]--
	return g.Nodes[u].Coincidence <= 1 || st.CoincidenceRemaining[u] <= 0
}

// closeInvolvement runs the backward involvement-closure pass: any node
// in s without an InvolvedTime that has an active-edge successor already
// marked involved becomes involved at the current age. Repeats until a
// full reverse sweep induces no change, or up to len(s) sweeps.
func (e *Engine) closeInvolvement(g *graph.Graph, st *graph.TrialState, s []int) {
	for sweep := 0; sweep < len(s); sweep++ {
		changed := false
		for i := len(s) - 1; i >= 0; i-- {
			u := s[i]
			if graph.HasHitTime(st.InvolvedTime[u]) {
				continue
			}
			for _, edge := range g.Nodes[u].Edges {
				if !st.ThreatIsOn(edge.ThreatID) {
					continue
				}
				if graph.HasHitTime(st.InvolvedTime[edge.To]) {
					st.InvolvedTime[u] = g.Age
					changed = true
					break
				}
			}
		}
		if !changed {
			break
		}
	}
}
