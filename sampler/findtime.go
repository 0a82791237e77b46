package sampler

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/mttc/engine"
	"github.com/katalvlaran/mttc/graph"
	"github.com/katalvlaran/mttc/rngstream"
)

const (
	maxDoublings  = 100
	maxHuntRounds = 10_000
)

// bundlePoint is one (hit fraction, step size) observation from a
// phase-2 hunt bundle.
type bundlePoint struct{ p, t float64 }

// TimeResult is FindTime's output.
type TimeResult struct {
	// Time is t*, the estimated time at which a completed path exists
	// with the requested probability.
	Time float64
	// Converged reports whether the convergence criteria were satisfied
	// before maxHuntRounds fired. When false, Time is still the best
	// estimate available (the mean of the last window of bundle times).
	Converged bool
	// Bundles is the total number of phase-2 bundles run.
	Bundles int
}

// FindTimeOption configures FindTime beyond its required arguments.
type FindTimeOption func(*findTimeConfig)

type findTimeConfig struct {
	onProgress func(Progress)
}

// WithFindTimeProgress registers a heartbeat hook called once per
// doubling iteration and once per hunt bundle.
func WithFindTimeProgress(fn func(Progress)) FindTimeOption {
	return func(c *findTimeConfig) { c.onProgress = fn }
}

// FindTime locates t* such that Pr[a completed path exists by t*] ~= p,
// running huntDepth-sized bundles of single-step, stop-at-hit histories
// under root's randomness.
//
// Phase 1 doubles the step size from 10 days until a bundle clears
// huntDepth*p hits, or gives up after 100 doublings with
// ErrNoAchievablePath, so an unreachable end node surfaces as an error
// rather than an endless hunt.
//
// Phase 2 fits a least-squares line through the last cc.Window
// (hit-fraction, step) bundle outcomes, anchored at the origin, and uses
// it to home in on the step size whose hit fraction lands on p, scaling
// the bundle depth up as the estimate stabilizes. It stops once the last
// cc.Window bundles' hit fractions cluster within cc.PTolerance of p and
// their step sizes cluster within cc.TTolerance of each other (relative
// to the current step), returning the mean of the last window's steps.
func FindTime(root *rngstream.Stream, g *graph.Graph, p float64, huntDepth int, cc ConvergenceCriteria, opts ...FindTimeOption) (*TimeResult, error) {
	cfg := &findTimeConfig{}
	for _, o := range opts {
		o(cfg)
	}

	if checkInstantPath(g) {
		return &TimeResult{Time: 0, Converged: true}, nil
	}

	var bundleLabel uint64
	runBundle := func(dt float64, depth int) int {
		label := bundleLabel
		bundleLabel++
		results := runParallel(root, g, depth, label, func(e *engine.Engine, st *graph.TrialState, _ int) interface{} {
			return engine.RunHistory(e, g, st, engine.HistoryOptions{
				T: dt, Dt: dt,
				Check: engine.CheckOptions{StopAtHit: true},
			})
		})
		hits := 0
		for _, r := range results {
			if r.(bool) {
				hits++
			}
		}
		return hits
	}

	dt := 10.0
	achieved := false
	for i := 0; i < maxDoublings; i++ {
		hits := runBundle(dt, huntDepth)
		if cfg.onProgress != nil {
			cfg.onProgress(Progress{Phase: "doubling", Iteration: i, Estimate: dt})
		}
		if float64(hits) > float64(huntDepth)*p {
			achieved = true
			break
		}
		dt *= 2
	}
	if !achieved {
		return nil, ErrNoAchievablePath
	}
	if dt == 0 {
		return &TimeResult{Time: 0, Converged: true}, nil
	}

	history := make([]bundlePoint, 0, maxHuntRounds)
	depth := huntDepth

	for bundle := 0; bundle < maxHuntRounds; bundle++ {
		hits := runBundle(dt, depth)
		pCur := float64(hits) / float64(depth)
		history = append(history, bundlePoint{pCur, dt})

		if cfg.onProgress != nil {
			cfg.onProgress(Progress{Phase: "hunt", Iteration: bundle, Estimate: dt})
		}

		if len(history) >= cc.Window+1 {
			window := history[len(history)-cc.Window:]

			ps := make([]float64, 0, cc.Window+1)
			ts := make([]float64, 0, cc.Window)
			for _, h := range window {
				ps = append(ps, h.p)
				ts = append(ts, math.Abs((dt-h.t)/dt))
			}
			ps = append(ps, p)

			if rangeOf(ps) < cc.PTolerance && rangeOf(ts) < cc.TTolerance {
				sum := 0.0
				for _, h := range window {
					sum += h.t
				}
				return &TimeResult{Time: sum / float64(cc.Window), Converged: true, Bundles: len(history)}, nil
			}
		}

		switch {
		case hits == 0:
			dt *= 1.2
		case hits == depth:
			dt *= 1 - cc.TTolerance
		default:
			dt = regressNextStep(history, cc.Window, p)
		}

		if len(history) >= 2 {
			prev := history[len(history)-2].p
			deltaP := math.Abs(pCur - prev)
			scale := 1.0
			if pCur > 0 {
				scale = 1 + deltaP/pCur
			}
			if scale > 1.2 {
				scale = 1.2
			}
			depth = int(float64(depth) * scale)
			if depth < 1 {
				depth = 1
			}
		}
	}

	best := 0.0
	if n := min(cc.Window, len(history)); n > 0 {
		for _, h := range history[len(history)-n:] {
			best += h.t
		}
		best /= float64(n)
	}
	return &TimeResult{Time: best, Converged: false, Bundles: len(history)}, ErrNotConverged
}

// regressNextStep fits t = m*p + b by ordinary least squares over the
// last window bundle outcomes plus the literal anchor point (0,0), and
// evaluates it at the requested probability target.
func regressNextStep(history []bundlePoint, window int, target float64) float64 {
	n := window
	if n > len(history) {
		n = len(history)
	}
	recent := history[len(history)-n:]

	ps := make([]float64, 0, n+1)
	ts := make([]float64, 0, n+1)
	ps = append(ps, 0)
	ts = append(ts, 0)
	for _, h := range recent {
		ps = append(ps, h.p)
		ts = append(ts, h.t)
	}

	b, m := stat.LinearRegression(ps, ts, nil, false)
	next := m*target + b
	if next <= 0 {
		next = recent[len(recent)-1].t
	}
	return next
}

// checkInstantPath reports whether g already has a completed path at
// age 0 using only rate-zero activations (no randomness involved), the
// "trivial instant path" special case.
func checkInstantPath(g *graph.Graph) bool {
	st := graph.NewTrialState(g)
	// dt == 0 only ever admits rate-zero threats/start nodes (see
	// Engine.AgeModel), so no draw from the stream can change the
	// outcome here; any fixed stream will do.
	e := engine.New(rngstream.Root(1))
	e.AgeModel(g, st, 0)
	return e.CheckModel(g, st, engine.CheckOptions{StopAtHit: true})
}
