package culture

import "math/rand"

// Rand is the random source consumed by every stochastic decision in a turn
// (archetype assignment, evolution tie-breaks, AI rolls, seeding). *rand.Rand
// satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns a deterministic source for the given seed.
func NewRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}

// roll reports whether a draw from rng falls under p. Probabilities at or
// below zero never succeed and never consume a draw.
func roll(rng Rand, p float64) bool {
	if p <= 0 {
		return false
	}
	return rng.Float64() < p
}
