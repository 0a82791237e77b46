package sampler

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/mttc/engine"
	"github.com/katalvlaran/mttc/graph"
	"github.com/katalvlaran/mttc/rngstream"
)

// MaxBundles bounds the number of trials FindMean will run before giving
// up and returning its best-effort estimate with ErrNotConverged.
const MaxBundles = 10_000

// defaultMeanHuntDepth is the bundle depth FindMean uses for the inner
// FindTime call that derives a timeframe when the caller doesn't supply
// one.
const defaultMeanHuntDepth = 200

// NodeResult holds one node's per-history sample lists and Fubini
// expectations.
type NodeResult struct {
	// MTTC is the Fubini-expectation estimate of this node's hit time.
	MTTC        float64
	MTTCSamples []float64
	// SampleMean is the plain arithmetic mean of MTTCSamples, a
	// diagnostic addition (never substituted for MTTC) useful for
	// sanity-checking how much the censoring correction moved the
	// estimate.
	SampleMean float64

	// MTTI/MTTISamples are populated only when FindMean was run with
	// involvement requested.
	MTTI        float64
	MTTISamples []float64
}

// MeanResult is FindMean's output.
type MeanResult struct {
	// MTTC is the graph-level Fubini-expectation estimate of the
	// earliest end-node compromise time.
	MTTC float64
	// Converged reports whether the running mean stabilized before
	// MaxBundles fired.
	Converged bool
	// Trials is the number of histories actually run.
	Trials int
	// RunningMeans is the running expectation after each trial, in
	// order; useful for plotting convergence.
	RunningMeans []float64

	// NodeResults is populated only when FindMean was run with
	// NodeDetails requested, indexed by node index.
	NodeResults []NodeResult
	// MinMTTC/MaxMTTC (and MinMTTI/MaxMTTI, when involvement was
	// requested) are the extrema across NodeResults, for downstream
	// colour scaling. When min == max, Min is substituted with 0 so a
	// uniform graph doesn't divide by zero in a colour gradient.
	MinMTTC, MaxMTTC float64
	MinMTTI, MaxMTTI float64
}

// FindMeanOption configures FindMean beyond its required arguments.
type FindMeanOption func(*findMeanConfig)

type findMeanConfig struct {
	onProgress func(Progress)
}

// WithFindMeanProgress registers a heartbeat hook called once per trial.
func WithFindMeanProgress(fn func(Progress)) FindMeanOption {
	return func(c *findMeanConfig) { c.onProgress = fn }
}

// FindMean estimates the expected compromise time (and, if involvement
// is requested, involvement time) of g by running independent bounded
// histories until the running Fubini-corrected mean stabilizes.
//
// resolution sets the step size as a fraction of the horizon: if
// timeframe is nil, the horizon is first derived from
// FindTime(root, g, 1-1/(resolution+1), ...), then step = horizon /
// resolution. nodeDetails, when true, additionally collects and
// Fubini-corrects per-node sample lists.
func FindMean(root *rngstream.Stream, g *graph.Graph, resolution int, cc ConvergenceCriteria, nodeDetails, involvement bool, timeframe *float64, opts ...FindMeanOption) (*MeanResult, error) {
	cfg := &findMeanConfig{}
	for _, o := range opts {
		o(cfg)
	}

	if resolution < 1 {
		return nil, fmt.Errorf("find_mean: resolution must be >= 1, got %d", resolution)
	}

	horizon, err := resolveHorizon(root, g, resolution, timeframe)
	if err != nil {
		return nil, fmt.Errorf("find_mean: %w", err)
	}
	dt := horizon / float64(resolution)

	n := g.NodeCount()
	samples := make([]float64, 0, MaxBundles)
	var nodeHit, nodeInvolved [][]float64
	if nodeDetails {
		nodeHit = make([][]float64, n)
		nodeInvolved = make([][]float64, n)
	}

	runningMeans := make([]float64, 0, MaxBundles)
	var bundleLabel uint64
	total := 0
	converged := false

	for total < MaxBundles && !converged {
		batch := batchSize(cc.Window, MaxBundles-total)
		label := bundleLabel
		bundleLabel++

		results := runParallel(root, g, batch, label, func(e *engine.Engine, st *graph.TrialState, _ int) interface{} {
			engine.RunHistory(e, g, st, engine.HistoryOptions{
				T: horizon, Dt: dt,
				Check: engine.CheckOptions{Involvement: involvement},
			})
			return snapshotTrial(g, st)
		})

		for _, r := range results {
			snap := r.(trialSnapshot)
			total++
			if !snap.censored {
				samples = append(samples, snap.compromiseTime)
			}
			if nodeDetails {
				for i := 0; i < n; i++ {
					if graph.HasHitTime(snap.hitTime[i]) {
						nodeHit[i] = append(nodeHit[i], snap.hitTime[i])
					}
					if involvement && graph.HasHitTime(snap.involvedTime[i]) {
						nodeInvolved[i] = append(nodeInvolved[i], snap.involvedTime[i])
					}
				}
			}

			mu := fubiniExpectation(samples, total)
			runningMeans = append(runningMeans, mu)

			if cfg.onProgress != nil {
				cfg.onProgress(Progress{Phase: "mean", Iteration: total, Estimate: mu})
			}

			if len(runningMeans) >= cc.Window && meanConverged(runningMeans, cc) {
				converged = true
				break
			}
		}
	}

	result := &MeanResult{
		MTTC:         lastOrZero(runningMeans),
		Converged:    converged,
		Trials:       total,
		RunningMeans: runningMeans,
	}
	if nodeDetails {
		populateNodeResults(result, nodeHit, nodeInvolved, total, involvement)
	}

	if !converged {
		return result, ErrNotConverged
	}
	return result, nil
}

// resolveHorizon returns the caller-supplied timeframe, or derives one
// from FindTime when timeframe is nil.
func resolveHorizon(root *rngstream.Stream, g *graph.Graph, resolution int, timeframe *float64) (float64, error) {
	if timeframe != nil {
		return *timeframe, nil
	}
	p := 1 - 1/(float64(resolution)+1)
	tr, err := FindTime(root, g, p, defaultMeanHuntDepth, DefaultFindTimeCriteria())
	if err != nil {
		return 0, fmt.Errorf("deriving timeframe: %w", err)
	}
	// A zero horizon is meaningful, not degenerate: it means a completed
	// path already exists from rate-zero activations alone, and running
	// zero-step histories pins every hit time at exactly 0.
	return tr.Time, nil
}

// meanConverged reports whether the last cc.Window running means all lie
// within cc.TTolerance (relative to the latest mean) of each other.
func meanConverged(runningMeans []float64, cc ConvergenceCriteria) bool {
	window := runningMeans[len(runningMeans)-cc.Window:]
	last := runningMeans[len(runningMeans)-1]
	ratios := make([]float64, len(window))
	for i, mu := range window {
		if last == 0 {
			ratios[i] = 0
			continue
		}
		ratios[i] = math.Abs((last - mu) / last)
	}
	return rangeOf(ratios) < cc.TTolerance
}

func batchSize(window, remaining int) int {
	b := window
	if b < 1 {
		b = 1
	}
	if b > 256 {
		b = 256
	}
	if b > remaining {
		b = remaining
	}
	if b < 1 {
		b = 1
	}
	return b
}

func lastOrZero(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return xs[len(xs)-1]
}

func statMeanOrZero(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

// trialSnapshot captures the pieces of a finished TrialState that
// survive past the goroutine that ran the trial (TrialState itself is
// reused by its worker on the next trial).
type trialSnapshot struct {
	censored       bool
	compromiseTime float64
	hitTime        []float64
	involvedTime   []float64
}

// snapshotTrial records the earliest HitTime among g's end nodes as the
// trial's compromise time, or marks the trial censored if no end node
// was ever reached.
func snapshotTrial(g *graph.Graph, st *graph.TrialState) trialSnapshot {
	earliest := math.Inf(1)
	found := false
	for i, isEnd := range g.End {
		if !isEnd || !graph.HasHitTime(st.HitTime[i]) {
			continue
		}
		if !found || st.HitTime[i] < earliest {
			earliest = st.HitTime[i]
			found = true
		}
	}
	return trialSnapshot{
		censored:       !found,
		compromiseTime: earliest,
		hitTime:        append([]float64(nil), st.HitTime...),
		involvedTime:   append([]float64(nil), st.InvolvedTime...),
	}
}

// populateNodeResults computes each node's Fubini expectation and the
// min/max aggregates used for colour scaling. Nodes that were never
// reached in any trial contribute no expectation and are excluded from
// the min/max scan: a never-hit node is not "compromised at day 0", it
// simply has no estimate, and its sample list stays empty to say so.
func populateNodeResults(result *MeanResult, nodeHit, nodeInvolved [][]float64, total int, involvement bool) {
	n := len(nodeHit)
	result.NodeResults = make([]NodeResult, n)
	minMTTC, maxMTTC := math.Inf(1), math.Inf(-1)
	minMTTI, maxMTTI := math.Inf(1), math.Inf(-1)

	for i := 0; i < n; i++ {
		nr := NodeResult{MTTCSamples: nodeHit[i]}
		if len(nodeHit[i]) > 0 {
			nr.MTTC = fubiniExpectation(nodeHit[i], total)
			nr.SampleMean = statMeanOrZero(nodeHit[i])
			if nr.MTTC < minMTTC {
				minMTTC = nr.MTTC
			}
			if nr.MTTC > maxMTTC {
				maxMTTC = nr.MTTC
			}
		}
		if involvement {
			nr.MTTISamples = nodeInvolved[i]
			if len(nodeInvolved[i]) > 0 {
				nr.MTTI = fubiniExpectation(nodeInvolved[i], total)
				if nr.MTTI < minMTTI {
					minMTTI = nr.MTTI
				}
				if nr.MTTI > maxMTTI {
					maxMTTI = nr.MTTI
				}
			}
		}
		result.NodeResults[i] = nr
	}

	// No reached node at all leaves the aggregates at their zero values.
	if !math.IsInf(maxMTTC, -1) {
		if minMTTC == maxMTTC {
			minMTTC = 0
		}
		result.MinMTTC, result.MaxMTTC = minMTTC, maxMTTC
	}
	if involvement && !math.IsInf(maxMTTI, -1) {
		if minMTTI == maxMTTI {
			minMTTI = 0
		}
		result.MinMTTI, result.MaxMTTI = minMTTI, maxMTTI
	}
}
