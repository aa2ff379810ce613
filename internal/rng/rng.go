// Package rng provides the random byte source used by the CXNN instruction.
package rng

import "math/rand/v2"

// Source produces random bytes. A source created with a seed always produces
// the same sequence.
type Source struct {
	rnd  *rand.Rand
	seed uint64
}

// New returns a source seeded with the given seed.
func New(seed uint64) *Source {
	return &Source{
		rnd:  rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)),
		seed: seed,
	}
}

// NewRandom returns a source seeded from runtime entropy.
func NewRandom() *Source {
	return New(rand.Uint64())
}

// NewFromOptional returns a seeded source if seed is set, otherwise a source
// seeded from runtime entropy.
func NewFromOptional(seed *uint64) *Source {
	if seed == nil {
		return NewRandom()
	}
	return New(*seed)
}

// NextByte returns the next random byte.
func (s *Source) NextByte() byte {
	return byte(s.rnd.Uint32())
}

// Seed returns the seed the source was created with.
func (s *Source) Seed() uint64 {
	return s.seed
}
