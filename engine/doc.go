// Package engine implements the stochastic core of a simulation
// campaign: aging the threat graph forward by a time increment
// (AgeModel), checking which nodes are reached and involved in a
// completed attack path (CheckModel), and composing the two into a
// single bounded trial (RunHistory).
//
// All three operations take an explicit *graph.Graph (read-only
// topology) and *graph.TrialState (mutable per-trial state) pair, and
// draw from the *rngstream.Stream the Engine was built on (see New).
// Beyond that Stream, nothing in this package retains state between
// calls, so a single Engine value can be reused across trials as long
// as its Stream is not shared with another goroutine.
package engine

// MaxCheckSteps bounds the total number of edges CheckModel's forward
// pass will examine in one call, guarding against runaway
// iteration on pathological coincidence configurations.
const MaxCheckSteps = 1_000_000_000
