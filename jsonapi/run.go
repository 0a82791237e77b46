package jsonapi

import (
	"encoding/json"
	"fmt"

	"github.com/katalvlaran/mttc/nodenet"
	"github.com/katalvlaran/mttc/rngstream"
	"github.com/katalvlaran/mttc/sampler"
)

// defaultResolution is the horizon subdivision used when the caller
// does not override it: fine enough that the step size never dominates
// the estimate's error at the default convergence tolerances.
const defaultResolution = 100

// Option configures Run beyond its input string.
type Option func(*config)

type config struct {
	seed        int64
	resolution  int
	cc          sampler.ConvergenceCriteria
	catalogPath string
	timeframe   *float64
	involvement bool
}

// WithSeed fixes the campaign seed. The default (0) maps to the
// rngstream package's stable default, so unseeded runs are still
// reproducible.
func WithSeed(seed int64) Option {
	return func(c *config) { c.seed = seed }
}

// WithResolution overrides the number of simulated steps the horizon is
// divided into.
func WithResolution(resolution int) Option {
	return func(c *config) { c.resolution = resolution }
}

// WithCriteria overrides the mean-time sampler's convergence criteria.
func WithCriteria(cc sampler.ConvergenceCriteria) Option {
	return func(c *config) { c.cc = cc }
}

// WithCatalog points expansion at an echo.json-shaped catalog file,
// loaded lazily on the first catalog-key lookup.
func WithCatalog(path string) Option {
	return func(c *config) { c.catalogPath = path }
}

// WithTimeframe supplies the simulation horizon directly, skipping the
// quantile hunt that would otherwise derive one.
func WithTimeframe(days float64) Option {
	return func(c *config) { c.timeframe = &days }
}

// WithoutInvolvement drops the backward involvement pass and the mtti
// outputs, roughly halving per-step work on large graphs.
func WithoutInvolvement() Option {
	return func(c *config) { c.involvement = false }
}

// Run executes the full pipeline on a JSON node-net and returns the
// same node-net with top-level "mttc", "mtti" and "histories"
// aggregates and a per-node "results" object added.
//
// Expansion warnings (duplicate ids, dangling edges, unresolvable
// trace data) do not fail the run; they are carried in the output's
// "warnings" list and the offending element is skipped, so a partially
// malformed model still yields an estimate for the part that parses.
// A non-converged campaign is likewise not an error at this boundary:
// the best-effort estimate is returned and "histories" records how
// many trials it rests on.
func Run(input string, opts ...Option) (string, error) {
	cfg := &config{
		resolution: defaultResolution,
		// A longer stability window than the in-process default:
		// boundary callers get one shot at the estimate, so favor a
		// longer stability streak before declaring convergence.
		cc:          sampler.ConvergenceCriteria{Window: 100, PTolerance: 0.01, TTolerance: 0.01},
		involvement: true,
	}
	for _, o := range opts {
		o(cfg)
	}

	var wn wireNet
	if err := json.Unmarshal([]byte(input), &wn); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadInput, err)
	}

	nn := wn.toNodeNet()
	var cat *nodenet.Catalog
	if cfg.catalogPath != "" {
		cat = nodenet.NewCatalog(cfg.catalogPath)
	}
	g, mapping, warnings := nodenet.Expand(nn, cat)

	root := rngstream.Root(cfg.seed)
	mr, err := sampler.FindMean(root, g, cfg.resolution, cfg.cc, true, cfg.involvement, cfg.timeframe)
	if err != nil && mr == nil {
		return "", fmt.Errorf("jsonapi: %w", err)
	}

	projected := nodenet.Project(nn, mapping, mr)
	wn.annotate(projected)

	wn.MTTC = &mr.MTTC
	if cfg.involvement {
		// End-node involvement coincides with end-node compromise, so
		// the graph-level involvement aggregate is the compromise mean.
		mtti := mr.MTTC
		wn.MTTI = &mtti
	}
	trials := mr.Trials
	wn.Histories = &trials
	wn.Warnings = warnings

	out, err := json.Marshal(&wn)
	if err != nil {
		return "", fmt.Errorf("jsonapi: encoding result: %w", err)
	}
	return string(out), nil
}
