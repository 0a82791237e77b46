// Package nodenet implements the expansion boundary between the
// domain-facing node-net (components and interfaces carrying
// questionnaire answers) and the engine's threat graph, plus the result
// projection that maps per-node simulation results back onto the
// node-net.
//
// The real "ECHO" questionnaire expansion is an external collaborator:
// this package implements a 1:1 translation that satisfies its contract
// (every node-net node maps to a threat-graph node tagged with its
// originating id; edges reference threat ids unique to their location
// unless a "common" key couples them) without attempting to model the
// actual questionnaire semantics, which stay in the external tooling.
package nodenet

import "errors"

// ErrDuplicateNodeID is reported through Expand's warning list when a
// node-net carries two nodes with the same id; the second occurrence is
// skipped.
var ErrDuplicateNodeID = errors.New("nodenet: duplicate node id")

// ErrUnknownEdgeEndpoint is reported through Expand's warning list when
// an edge references a node id that was never declared; the edge is
// skipped.
var ErrUnknownEdgeEndpoint = errors.New("nodenet: edge references unknown node id")

// ErrEmptyTraceData indicates a node or edge supplied neither an echo
// nor a foxtrot spec where one was required.
var ErrEmptyTraceData = errors.New("nodenet: empty trace data")

// ErrCatalogRequired indicates an echo spec named a catalog key but
// Expand was called with a nil Catalog.
var ErrCatalogRequired = errors.New("nodenet: catalog key used without a catalog")
