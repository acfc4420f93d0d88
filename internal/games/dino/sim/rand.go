package sim

import (
	"math/rand"
	"time"
)

// Source is the random draw the simulation consumes.
// *rand.Rand satisfies it.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// NewSource returns a seeded source. Seed 0 means use current time.
func NewSource(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// between returns a uniform draw in [lo, hi).
func between(rng Source, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
