// Package mttc estimates Mean Time To Compromise (MTTC) and Mean Time To
// Involvement (MTTI) for a modeled cyber-physical system via Monte Carlo
// simulation over a directed, cyclic threat graph.
//
// 🚀 What is mttc?
//
//	A small, dependency-light simulation engine that brings together:
//
//	  • graph      — immutable threat-graph topology + per-trial state
//	  • engine     — stochastic aging and the forward/backward path checker
//	  • sampler    — the quantile-time and mean-time adaptive samplers
//	  • rngstream  — deterministic, splittable per-worker PRNG streams
//	  • nodenet    — the node-net ⇄ threat-graph translation boundary
//	  • jsonapi    — a string-in/string-out JSON facade over the above
//	  • graphgen   — deterministic fixture generators for tests and examples
//
// ✨ Why this shape?
//
//   - Deterministic   — identical seeds reproduce identical trial sequences
//   - Total on well-formed graphs — malformed references are reported and
//     skipped, never panicked on
//   - Extensible      — progress hooks (sampler.WithFindTimeProgress,
//     sampler.WithFindMeanProgress) report long hunts without a logger
//   - Pure Go         — no cgo
//
// Quick ASCII example — a chain with one branch:
//
//	    A──►B──►D (end)
//	         └─►C──►D
//
//	A starts immediately; B and C each gate on an independent threat;
//	D is hit as soon as either path activates.
package mttc
