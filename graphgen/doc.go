// Package graphgen builds deterministic nodenet.NodeNet fixtures for
// tests and examples: chains, diamonds, cycles-with-an-escape, and
// Erdos-Renyi-style random sparse graphs.
//
// The simulation engine itself never depends on these generators: they
// exist as ordinary fixture-building test tooling, exercised by this
// module's own tests and Example functions. The stochastic ones take
// functional options and a seedable *rand.Rand so every fixture is
// reproducible.
package graphgen

import "fmt"

func threatID(prefix string, i int) string {
	return fmt.Sprintf("%s-%d", prefix, i)
}
