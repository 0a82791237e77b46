package sampler

import (
	"runtime"

	channerics "github.com/niceyeti/channerics/channels"

	"github.com/katalvlaran/mttc/engine"
	"github.com/katalvlaran/mttc/graph"
	"github.com/katalvlaran/mttc/rngstream"
)

// trialResult tags a worker's output with the trial index it belongs
// to, so results can be reassembled in index order regardless of which
// worker finished first.
type trialResult struct {
	index int
	value interface{}
}

// trialFn runs one trial on a freshly-reset st using e, and returns
// whatever the caller wants recorded for that trial.
type trialFn func(e *engine.Engine, st *graph.TrialState, trialIdx int) interface{}

// runParallel runs n independent trials of fn against g, fanned out over
// runtime.GOMAXPROCS(0) worker goroutines, each owning its own
// *graph.TrialState so no mutable trial state is ever shared. Every
// trial gets its own *engine.Engine built on a Stream derived from
// (root, bundleLabel, trial index) alone, so the result for a given
// trial index is identical no matter which goroutine happens to process
// it; results land in index order without a separate sort step after
// the merge.
func runParallel(root *rngstream.Stream, g *graph.Graph, n int, bundleLabel uint64, fn trialFn) []interface{} {
	if n <= 0 {
		return nil
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	done := make(chan struct{})
	defer close(done)

	indices := make(chan int)
	go func() {
		defer close(indices)
		for i := 0; i < n; i++ {
			select {
			case indices <- i:
			case <-done:
				return
			}
		}
	}()

	workerChans := make([]<-chan trialResult, 0, workers)
	for w := 0; w < workers; w++ {
		out := make(chan trialResult)
		go func() {
			defer close(out)
			st := graph.NewTrialState(g)
			for idx := range indices {
				st.Reset()
				e := engine.New(root.Derive(trialLabel(bundleLabel, idx)))
				v := fn(e, st, idx)
				select {
				case out <- trialResult{index: idx, value: v}:
				case <-done:
					return
				}
			}
		}()
		workerChans = append(workerChans, out)
	}

	merged := channerics.Merge(done, workerChans...)
	results := make([]interface{}, n)
	for i := 0; i < n; i++ {
		r := <-merged
		results[r.index] = r.value
	}
	return results
}

// trialLabel mixes a bundle label and a trial index into a single
// Derive label, keeping every trial's stream independent of every other
// trial's and of every other bundle's.
func trialLabel(bundleLabel uint64, idx int) uint64 {
	return bundleLabel*2_147_483_647 + uint64(idx)
}
