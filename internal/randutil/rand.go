// Package randutil derives reproducible random sources from int64 seeds.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// The two 64-bit PCG seeds are derived here so that every call site gets the
// same sequence for the same seed.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Derive returns an independent stream for the given seed. Streams with
// different ids do not share draws, so one consumer cannot shift another's
// sequence.
func Derive(seed int64, stream uint64) *rand.Rand {
	u := uint64(seed) ^ mix(stream+1)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// SeedOrNow returns seed, or a time-based seed when seed is 0.
func SeedOrNow(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
