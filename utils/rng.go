package utils

import (
	"math/rand/v2"
	"time"
)

// NewRNG returns a PCG-backed generator. The same seed always yields the same
// sequence; a zero seed is replaced with the current time.
func NewRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), 0))
}
