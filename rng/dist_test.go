package rng

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistributions_Deterministic(t *testing.T) {
	dists := map[string]Distribution{
		"additive":  NewAdditive(0, 1),
		"multiplic": NewMultiplic(0, 1),
		"exp":       NewExp(2),
		"power":     NewPower(1, 3),
		"uniform":   NewUniform(-1, 1),
	}

	for name, d := range dists {
		t.Run(name, func(t *testing.T) {
			a := d.Samples(FromString("dist-seed"), 50)
			b := d.Samples(FromString("dist-seed"), 50)
			assert.Equal(t, a, b)
		})
	}
}

func TestAdditive_SamplesAreFinite(t *testing.T) {
	d := NewAdditive(10, 2)
	r := FromSeed(99)
	for _, v := range d.Samples(r, 1000) {
		require.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}
}

func TestMultiplic_SamplesArePositive(t *testing.T) {
	d := NewMultiplic(0, 0.5)
	r := FromSeed(99)
	for _, v := range d.Samples(r, 1000) {
		require.Greater(t, v, 0.0)
	}
}

func TestExp_SamplesAreNonNegative(t *testing.T) {
	d := NewExp(1.5)
	r := FromSeed(99)
	for _, v := range d.Samples(r, 1000) {
		require.GreaterOrEqual(t, v, 0.0)
		require.False(t, math.IsInf(v, 0))
	}
}

func TestPower_SamplesRespectMinimum(t *testing.T) {
	d := NewPower(2, 1.5)
	r := FromSeed(99)
	for _, v := range d.Samples(r, 1000) {
		require.GreaterOrEqual(t, v, 2.0)
		require.False(t, math.IsInf(v, 0))
	}
}

func TestUniform_SamplesInRange(t *testing.T) {
	d := NewUniform(-3, 5)
	r := FromSeed(99)
	for _, v := range d.Samples(r, 1000) {
		require.GreaterOrEqual(t, v, -3.0)
		require.Less(t, v, 5.0)
	}
}

func TestDistributionConstructors_RejectBadParameters(t *testing.T) {
	assert.Panics(t, func() { NewAdditive(0, 0) })
	assert.Panics(t, func() { NewAdditive(0, -1) })
	assert.Panics(t, func() { NewMultiplic(0, 0) })
	assert.Panics(t, func() { NewExp(0) })
	assert.Panics(t, func() { NewPower(0, 1) })
	assert.Panics(t, func() { NewPower(1, 0) })
	assert.Panics(t, func() { NewUniform(2, 2) })
	assert.Panics(t, func() { NewUniform(3, 1) })
}
