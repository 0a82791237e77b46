// Package sampler implements the two adaptive Monte Carlo samplers built
// on top of package engine: FindTime, which hunts for the time at which
// a completed attack path exists with a requested probability, and
// FindMean, which estimates the expected compromise/involvement time
// while correcting for right-censored trials via a Fubini-identity
// survival-curve integration.
//
// Both samplers fan independent histories out across worker goroutines
// (see parallel.go) and merge results deterministically by trial index,
// so a given (seed, bundle, trial index) triple always produces the
// same outcome regardless of how goroutines happen to be scheduled.
package sampler

import "errors"

// ErrNoAchievablePath is returned by FindTime when the doubling search
// exhausts its safety cap without ever observing enough hits to clear
// the requested probability.
var ErrNoAchievablePath = errors.New("sampler: no achievable path within search horizon")

// ErrNotConverged is returned alongside a best-effort result when a
// safety cap on the number of bundles/trials fires before the
// convergence criteria are satisfied.
var ErrNotConverged = errors.New("sampler: convergence criteria not met before safety cap")

// ConvergenceCriteria tunes when FindTime and FindMean declare their
// estimates stable and stop spending trials.
type ConvergenceCriteria struct {
	// Window is the number of trailing bundles/trials the range checks
	// are taken over.
	Window int
	// PTolerance bounds the spread of hit-fraction estimates. Ignored by
	// FindMean.
	PTolerance float64
	// TTolerance bounds the spread of time estimates.
	TTolerance float64
}

// DefaultFindTimeCriteria returns FindTime's documented defaults: window
// 20, p tolerance 0.05, t tolerance 0.05.
func DefaultFindTimeCriteria() ConvergenceCriteria {
	return ConvergenceCriteria{Window: 20, PTolerance: 0.05, TTolerance: 0.05}
}

// DefaultFindMeanCriteria returns FindMean's documented defaults: window
// 50, p tolerance 0.005 (unused), t tolerance 0.01.
func DefaultFindMeanCriteria() ConvergenceCriteria {
	return ConvergenceCriteria{Window: 50, PTolerance: 0.005, TTolerance: 0.01}
}

// Progress is reported through an optional OnProgress hook so long
// running hunts can surface a heartbeat, in the style of a traversal's
// OnVisit/OnEnqueue hooks rather than an injected logger.
type Progress struct {
	Phase     string // "doubling", "hunt", or "mean"
	Iteration int
	Estimate  float64
}

func rangeOf(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	lo, hi := xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	return hi - lo
}
