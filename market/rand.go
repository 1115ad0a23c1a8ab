package market

import (
	"math/rand/v2"
)

// RandSource is the randomness every generator draws from. *rand.Rand from
// math/rand/v2 satisfies it.
type RandSource interface {
	Float64() float64
	IntN(n int) int
}

// NewRand returns a deterministic source for the given seed.
func NewRand(seed uint64) RandSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewUnseeded returns a source seeded from the runtime's entropy.
func NewUnseeded() RandSource {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
