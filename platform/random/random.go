// Package random provides the randomness source used for simulated values
// (trend fillers, growth figures, owner assignment). Services take a Source
// so tests can pin the output with a seed.
package random

import "math/rand/v2"

// Source yields pseudo-random numbers.
type Source interface {
	IntN(n int) int
	Float64() float64
}

type global struct{}

func (global) IntN(n int) int   { return rand.IntN(n) }
func (global) Float64() float64 { return rand.Float64() }

// Default returns the process-wide source. It is safe for concurrent use.
func Default() Source {
	return global{}
}

// Seeded returns a deterministic source. It is not safe for concurrent use.
func Seeded(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
