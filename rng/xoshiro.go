package rng

import "math/bits"

// splitMix64 expands a single 64-bit seed into the xoshiro256++ state.
// Seeding through SplitMix64 is the initialization recommended by the
// xoshiro authors and is what every solidstat port uses, so the derived
// state (and therefore every downstream sequence) matches cross-port.
type splitMix64 struct {
	state uint64
}

func (s *splitMix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// xoshiro256 implements the xoshiro256++ generator.
// Reference: https://prng.di.unimi.it/xoshiro256plusplus.c
type xoshiro256 struct {
	state [4]uint64
}

func newXoshiro256(seed uint64) *xoshiro256 {
	sm := splitMix64{state: seed}
	return &xoshiro256{
		state: [4]uint64{sm.next(), sm.next(), sm.next(), sm.next()},
	}
}

func (x *xoshiro256) nextU64() uint64 {
	result := bits.RotateLeft64(x.state[0]+x.state[3], 23) + x.state[0]

	t := x.state[1] << 17

	x.state[2] ^= x.state[0]
	x.state[3] ^= x.state[1]
	x.state[1] ^= x.state[2]
	x.state[0] ^= x.state[3]

	x.state[2] ^= t
	x.state[3] = bits.RotateLeft64(x.state[3], 45)

	return result
}

// FNV-1a parameters (64-bit).
const (
	fnvOffsetBasis = 0xcbf29ce484222325
	fnvPrime       = 0x00000100000001b3
)

// hashSeed maps a string seed onto a 64-bit numeric seed using FNV-1a.
// Every port hashes string seeds the same way, byte by byte.
func hashSeed(s string) uint64 {
	h := uint64(fnvOffsetBasis)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= fnvPrime
	}
	return h
}
