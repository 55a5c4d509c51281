package utils

import "math/rand/v2"

// RNG wraps math/rand/v2 with deterministic seeding
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG from seed
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Bool returns true with probability density
func (r *RNG) Bool(density float64) bool {
	return r.r.Float64() < density
}

// Seed returns a per-cell seed callback producing Alive with probability density
func (r *RNG) Seed(density float64) func() bool {
	return func() bool { return r.Bool(density) }
}

// IntN returns a value in [0, n)
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}
