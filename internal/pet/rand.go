package pet

import "math/rand"

// Rand is the random source consumed by the engine.
// *rand.Rand satisfies it; tests supply scripted sequences.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns a seeded source.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// chance reports whether a roll falls under p.
func chance(r Rand, p float64) bool {
	return r.Float64() < p
}

// pick returns a uniformly chosen element of options.
func pick[T any](r Rand, options []T) T {
	return options[r.Intn(len(options))]
}
