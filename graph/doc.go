// Package graph defines the threat graph: an immutable, directed,
// possibly-cyclic topology of nodes connected by threat-gated edges, plus
// the mutable per-trial state the simulation engine ages and checks.
//
// A Graph is built once via Builder and then read-only for the lifetime
// of a simulation campaign; TrialState is reset and reused across many
// independent histories to avoid per-trial allocation.
//
// Node and threat indices are dense, zero-based ints rather than string
// keys: the engine's hot loop (aging + path-checking, run once per
// simulated day per trial, over thousands of trials) is dominated by
// slice scans over this per-trial state, so TrialState is a set of
// parallel slices rather than a map of per-node structs. A map shape
// optimizes for mutating an evolving named graph; nothing here ever
// mutates topology after Finalize.
//
// Errors:
//
//	ErrUnknownNode   - an edge or end-marker referenced a node index out of range.
//	ErrUnknownThreat - an edge referenced a threat id that was never registered.
package graph

import "errors"

// ErrUnknownNode indicates a reference to a node index that does not exist.
var ErrUnknownNode = errors.New("graph: unknown node index")

// ErrUnknownThreat indicates a reference to a threat id that was never added.
var ErrUnknownThreat = errors.New("graph: unknown threat id")
