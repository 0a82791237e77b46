package engine

import (
	"github.com/katalvlaran/mttc/graph"
)

// HistoryOptions bundles the parameters of one bounded trial.
type HistoryOptions struct {
	// T is the simulated horizon, in days.
	T float64
	// Dt is the simulated step size, in days.
	Dt float64
	// Check is forwarded unchanged to every CheckModel call this
	// history makes.
	Check CheckOptions
}

// RunHistory runs n = floor(T/Dt) + 2 steps of (CheckModel, AgeModel)
// against g and st, starting from st's current state (it does not reset
// st; call st.Reset first for a fresh trial). If Check.StopAtHit is set
// and an end node is reached, RunHistory returns immediately after that
// step's CheckModel call without running the remaining steps.
//
// RunHistory returns the final value of st.Hit.
func RunHistory(e *Engine, g *graph.Graph, st *graph.TrialState, opts HistoryOptions) bool {
	steps := 2
	if opts.Dt > 0 {
		steps += int(opts.T / opts.Dt)
	}

	hit := false
	for i := 0; i < steps; i++ {
		hit = e.CheckModel(g, st, opts.Check)
		if opts.Check.StopAtHit && hit {
			return true
		}
		e.AgeModel(g, st, opts.Dt)
	}
	return hit
}
