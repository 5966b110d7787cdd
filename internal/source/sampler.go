package source

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/dshills/multipick/internal/option"
)

// DefaultMaxSample is the exclusive upper bound of the random prefix length.
const DefaultMaxSample = 3000

// Sampler returns how many leading options to serve from a list of length n.
// Results outside [0, n] are clamped.
type Sampler func(n int) int

// RandomSampler draws a length uniformly from [0, limit) and clamps it to n.
// A nil rng uses a PCG source seeded from the clock.
func RandomSampler(limit int, rng *rand.Rand) Sampler {
	if limit <= 0 {
		limit = DefaultMaxSample
	}
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}

	var mu sync.Mutex
	return func(n int) int {
		mu.Lock()
		k := rng.IntN(limit)
		mu.Unlock()
		return min(k, n)
	}
}

// FixedSampler always serves k options, or fewer if the list is shorter.
func FixedSampler(k int) Sampler {
	return func(n int) int {
		return min(k, n)
	}
}

// FullSampler serves the whole list.
func FullSampler(n int) int {
	return n
}

// prefix returns a copy of the sampled prefix of list. The result is never nil.
func prefix(list []option.Option, sample Sampler) []option.Option {
	k := sample(len(list))
	if k < 0 {
		k = 0
	}
	if k > len(list) {
		k = len(list)
	}
	out := make([]option.Option, k)
	copy(out, list[:k])
	return out
}
