package core

import "math/rand"

// Rand is the random source consumed by the board: orientation, column, colors
// and the overflow relief color are all drawn through it.
// *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a seeded source.
func NewRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}
