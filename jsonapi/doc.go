// Package jsonapi is the string-in/string-out facade over the whole
// pipeline: unmarshal a node-net, expand it into a threat graph, run the
// mean-time sampler with per-node details and involvement, project the
// results back onto the node-net, and marshal it out again with
// top-level mttc/mtti/histories aggregates and per-node results.
//
// It exists for callers embedding the engine behind a foreign-function
// or message boundary where passing Go structs is not an option. Go
// callers composing the pipeline themselves should use nodenet and
// sampler directly and skip the serialization round trip.
package jsonapi

import "errors"

// ErrBadInput wraps any JSON syntax or shape problem in the input
// string. The underlying decode error is attached via %w.
var ErrBadInput = errors.New("jsonapi: malformed node-net input")
