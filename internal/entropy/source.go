// Package entropy provides the seeded random source every stochastic
// operation draws from. All randomness in a run flows through one Source
// so a fixed seed reproduces the run exactly.
package entropy

import (
	"math"
	"math/rand"
)

// Source wraps a seeded generator. Not safe for concurrent use; the
// simulation is single-threaded by contract.
type Source struct {
	rng *rand.Rand
}

// NewSource creates a Source from a seed.
func NewSource(seed int64) *Source {
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

// Float returns a uniform float64 in [0, 1).
func (s *Source) Float() float64 {
	return s.rng.Float64()
}

// Uniform returns a uniform float64 in [lo, hi).
func (s *Source) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*s.rng.Float64()
}

// NormalClipped draws from N(mean, std) and clamps the result to [lo, hi].
func (s *Source) NormalClipped(mean, std, lo, hi float64) float64 {
	v := mean + std*s.rng.NormFloat64()
	return math.Min(hi, math.Max(lo, v))
}

// Intn returns a uniform int in [0, n).
func (s *Source) Intn(n int) int {
	return s.rng.Intn(n)
}

// Perm returns a random permutation of [0, n).
func (s *Source) Perm(n int) []int {
	return s.rng.Perm(n)
}

// Seed64 returns a fresh seed derived from the source, for sub-generators.
func (s *Source) Seed64() int64 {
	return s.rng.Int63()
}
