// Package rng provides a deterministic pseudo-random generator shared by all
// solidstat ports. Given the same seed, every port produces bit-identical
// integer streams and float streams equal to within documented tolerance,
// which is what makes the randomized estimators conformance-testable.
//
// A Rng instance is not safe for concurrent use; callers own its state and
// must serialize access themselves.
package rng

import (
	"errors"
	"fmt"
	"time"
)

// ErrEmptySequence is returned when an operation needs at least one element.
var ErrEmptySequence = errors.New("rng: sequence is empty")

// Rng is a deterministic random number generator backed by xoshiro256++.
type Rng struct {
	inner *xoshiro256
}

// New creates a Rng seeded from the current time. Use one of the seeded
// constructors whenever reproducibility matters.
func New() *Rng {
	return FromSeed(time.Now().UnixNano())
}

// FromSeed creates a Rng from an integer seed. The same seed always produces
// the same sequence.
func FromSeed(seed int64) *Rng {
	return &Rng{inner: newXoshiro256(uint64(seed))}
}

// FromString creates a Rng from a string seed. The string is hashed with
// FNV-1a, so named seeds ("experiment-alpha") are stable across ports.
func FromString(seed string) *Rng {
	return &Rng{inner: newXoshiro256(hashSeed(seed))}
}

// UniformFloat returns a uniform float64 in [0, 1), using the upper 53 bits
// of the generator output for full mantissa precision.
func (r *Rng) UniformFloat() float64 {
	return float64(r.inner.nextU64()>>11) * (1.0 / float64(uint64(1)<<53))
}

// UniformFloatRange returns a uniform float64 in [min, max).
// Returns min when min >= max.
func (r *Rng) UniformFloatRange(min, max float64) float64 {
	if min >= max {
		return min
	}
	return min + (max-min)*r.UniformFloat()
}

// UniformInt returns a uniform int64 in [min, max). Returns min when
// min >= max.
//
// Modulo reduction introduces a bias that is negligible for statistical use
// but makes this unsuitable for cryptographic purposes.
func (r *Rng) UniformInt(min, max int64) int64 {
	if min >= max {
		return min
	}
	// uint64 subtraction gives the correct unsigned distance for all int64 pairs
	span := uint64(max) - uint64(min)
	return min + int64(r.inner.nextU64()%span)
}

// UniformBool returns true with probability 0.5.
func (r *Rng) UniformBool() bool {
	return r.UniformFloat() < 0.5
}

// Shuffle returns a shuffled copy of x using a backwards Fisher-Yates walk.
// The input is not modified. Returns ErrEmptySequence for an empty input.
func Shuffle[T any](r *Rng, x []T) ([]T, error) {
	if len(x) == 0 {
		return nil, ErrEmptySequence
	}
	out := make([]T, len(x))
	copy(out, x)
	for i := len(out) - 1; i > 0; i-- {
		j := int(r.UniformInt(0, int64(i+1)))
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// Sample returns k elements drawn without replacement, preserving the order
// of first appearance (selection sampling). When k >= len(x) the whole
// sequence is returned. k must be positive.
func Sample[T any](r *Rng, x []T, k int) ([]T, error) {
	if k <= 0 {
		return nil, fmt.Errorf("rng: sample size must be positive, got %d", k)
	}
	n := len(x)
	if k >= n {
		out := make([]T, n)
		copy(out, x)
		return out, nil
	}

	out := make([]T, 0, k)
	remaining := k
	for i := 0; i < n && remaining > 0; i++ {
		available := n - i
		// select this element with probability remaining/available
		if r.UniformFloat()*float64(available) < float64(remaining) {
			out = append(out, x[i])
			remaining--
		}
	}
	return out, nil
}

// Resample returns k elements drawn with replacement (bootstrap sampling).
// k must be positive and x must be non-empty.
func Resample[T any](r *Rng, x []T, k int) ([]T, error) {
	if k <= 0 {
		return nil, fmt.Errorf("rng: resample size must be positive, got %d", k)
	}
	if len(x) == 0 {
		return nil, ErrEmptySequence
	}
	out := make([]T, k)
	n := int64(len(x))
	for i := range out {
		out[i] = x[r.UniformInt(0, n)]
	}
	return out, nil
}

// ShuffleFloats is Shuffle specialized to float64 slices.
func (r *Rng) ShuffleFloats(x []float64) ([]float64, error) {
	return Shuffle(r, x)
}

// SampleFloats is Sample specialized to float64 slices.
func (r *Rng) SampleFloats(x []float64, k int) ([]float64, error) {
	return Sample(r, x, k)
}

// ResampleFloats is Resample specialized to float64 slices.
func (r *Rng) ResampleFloats(x []float64, k int) ([]float64, error) {
	return Resample(r, x, k)
}
