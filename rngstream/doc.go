// Package rngstream provides deterministic, splittable pseudo-random
// number streams for parallel Monte Carlo workers.
//
// A campaign is seeded once via Root(seed). Each worker, bundle, or trial
// that needs its own independent stream derives a child from a parent via
// Derive(label); derivation never touches the parent's own draw sequence,
// so the same (seed, label) pair always reproduces the same child stream
// regardless of how many siblings were derived before or after it.
//
// The mixing function is the SplitMix64 avalanche finalizer (Vigna 2014),
// kept in its own package so anything that needs reproducible per-worker
// streams shares one implementation instead of each reinventing it.
package rngstream
