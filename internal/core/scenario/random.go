package scenario

import (
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"
)

// NewRand returns a PCG generator seeded with seed. The stream label is
// hashed into the generator's increment so that two scenarios sharing a
// seed still draw independent sequences.
func NewRand(seed uint64, stream string) *rand.Rand {
	return rand.New(rand.NewPCG(seed, xxhash.Sum64String(stream)))
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}
