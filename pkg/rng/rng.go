// Package rng provides the deterministic pseudo-random source used by all
// game math. It is not cryptographically secure: acceptable for
// entertainment math, never for authentication tokens or any
// security-sensitive value. The Source interface isolates the generator so
// a certified RNG can replace it without touching resolver logic.
package rng

import (
	"crypto/sha256"
	"encoding/binary"
)

// Source is a deterministic random stream. All engine draws go through a
// single Source per round so the full outcome replays from one seed.
type Source interface {
	// Next advances the stream and returns a float in [0, 1).
	Next() float64

	// Range returns an inclusive integer in [min, max].
	Range(min, max int) int
}

// Linear congruential recurrence constants (Numerical Recipes).
const (
	lcgMultiplier = 1664525
	lcgIncrement  = 1013904223
	lcgModulus    = 1 << 32
)

// Generator is a seeded linear congruential generator.
type Generator struct {
	state uint64
}

// NewGenerator creates a generator from an integer seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{state: uint64(seed) % lcgModulus}
}

// NewGeneratorFromString creates a generator from a string seed. The seed
// is hashed and a fixed-width prefix of the digest becomes the integer
// seed, so the mapping does not depend on string encoding or length.
func NewGeneratorFromString(seed string) *Generator {
	sum := sha256.Sum256([]byte(seed))
	return NewGenerator(int64(binary.BigEndian.Uint64(sum[:8]) % lcgModulus))
}

// Next advances the internal state and returns a float in [0, 1).
func (g *Generator) Next() float64 {
	g.state = (lcgMultiplier*g.state + lcgIncrement) % lcgModulus
	return float64(g.state) / float64(lcgModulus)
}

// Range returns an inclusive integer in [min, max].
func (g *Generator) Range(min, max int) int {
	if max <= min {
		return min
	}
	n := min + int(g.Next()*float64(max-min+1))
	if n > max {
		return max
	}
	return n
}

// Pick returns a uniformly chosen element of list.
func Pick[T any](src Source, list []T) T {
	return list[src.Range(0, len(list)-1)]
}

// PickUnique returns n distinct elements of list, sampled without
// replacement by repeatedly picking and removing from a working copy.
func PickUnique[T any](src Source, list []T, n int) []T {
	if n > len(list) {
		n = len(list)
	}
	working := make([]T, len(list))
	copy(working, list)

	picked := make([]T, 0, n)
	for i := 0; i < n; i++ {
		idx := src.Range(0, len(working)-1)
		picked = append(picked, working[idx])
		working = append(working[:idx], working[idx+1:]...)
	}
	return picked
}
