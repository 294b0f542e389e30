package robust

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCenter_HandValues(t *testing.T) {
	cases := []struct {
		name string
		x    []float64
		want float64
	}{
		{"odd run", []float64{1, 2, 3}, 2},
		{"two values", []float64{1, 2}, 1.5},
		{"single value", []float64{7}, 7},
		{"negative values", []float64{-3, -1, -2}, -2},
		{"unsorted", []float64{5, 1, 3, 2, 4}, 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Center(c.x)
			require.NoError(t, err)
			assert.InDelta(t, c.want, got, 1e-12)
		})
	}
}

func TestSpread_HandValues(t *testing.T) {
	got, err := Spread([]float64{1, 2, 3})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-12)

	got, err = Spread([]float64{1, 3})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got, 1e-12)
}

func TestSpread_AllEqualFailsSparity(t *testing.T) {
	_, err := Spread([]float64{4, 4, 4})
	requireViolation(t, err, AssumptionSparity, SubjectX)
}

func TestRelSpread(t *testing.T) {
	got, err := RelSpread([]float64{1, 2, 3})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got, 1e-12)

	// negative center: spread over |center|
	got, err = RelSpread([]float64{-1, -2, -3})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got, 1e-12)

	_, err = RelSpread([]float64{-1, 1})
	requireViolation(t, err, AssumptionDomain, SubjectX)
}

func TestShift_HandValues(t *testing.T) {
	got, err := Shift([]float64{4, 5, 6}, []float64{1, 2, 3})
	require.NoError(t, err)
	assert.InDelta(t, 3.0, got, 1e-12)

	got, err = Shift([]float64{1, 2, 3}, []float64{1, 2, 3})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, got, 1e-12)

	got, err = Shift([]float64{10}, []float64{4})
	require.NoError(t, err)
	assert.InDelta(t, 6.0, got, 1e-12)
}

func TestShift_Antisymmetric(t *testing.T) {
	x := []float64{3.2, 5.1, 4.4, 7.9, 6.0}
	y := []float64{1.1, 2.8, 0.5}

	xy, err := Shift(x, y)
	require.NoError(t, err)
	yx, err := Shift(y, x)
	require.NoError(t, err)
	assert.InDelta(t, xy, -yx, 1e-12)
}

func TestRatio_HandValues(t *testing.T) {
	got, err := Ratio([]float64{2, 4, 6}, []float64{1, 2, 3})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got, 1e-9)

	got, err = Ratio([]float64{5, 7, 11}, []float64{5, 7, 11})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-9)
}

func TestAvgSpread(t *testing.T) {
	got, err := AvgSpread([]float64{1, 2, 3}, []float64{1, 2, 3})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-12)

	// same sample on both sides collapses to its own spread
	x := []float64{2, 3, 5, 8, 13}
	spread, err := Spread(x)
	require.NoError(t, err)
	avg, err := AvgSpread(x, x)
	require.NoError(t, err)
	assert.InDelta(t, spread, avg, 1e-12)
}

func TestDisparity(t *testing.T) {
	got, err := Disparity([]float64{4, 5, 6}, []float64{1, 2, 3})
	require.NoError(t, err)
	assert.InDelta(t, 3.0, got, 1e-12)
}

func TestCenter_LocationEquivariant(t *testing.T) {
	x := []float64{1.5, 2.25, 8, 3, 5.5}
	base, err := Center(x)
	require.NoError(t, err)

	shifted := make([]float64, len(x))
	for i, v := range x {
		shifted[i] = v + 100
	}
	got, err := Center(shifted)
	require.NoError(t, err)
	assert.InDelta(t, base+100, got, 1e-9)
}

func TestSpread_ScaleEquivariant(t *testing.T) {
	x := []float64{1.5, 2.25, 8, 3, 5.5}
	base, err := Spread(x)
	require.NoError(t, err)

	scaled := make([]float64, len(x))
	for i, v := range x {
		scaled[i] = v * 3
	}
	got, err := Spread(scaled)
	require.NoError(t, err)
	assert.InDelta(t, base*3, got, 1e-9)
}

func TestEstimators_ValidityViolations(t *testing.T) {
	_, err := Center(nil)
	requireViolation(t, err, AssumptionValidity, SubjectX)

	_, err = Center([]float64{1, math.NaN()})
	requireViolation(t, err, AssumptionValidity, SubjectX)

	_, err = Spread([]float64{math.Inf(1)})
	requireViolation(t, err, AssumptionValidity, SubjectX)

	_, err = Shift([]float64{1, 2}, []float64{math.Inf(-1)})
	requireViolation(t, err, AssumptionValidity, SubjectY)

	// the first sample is checked before the second
	_, err = Shift(nil, []float64{math.NaN()})
	requireViolation(t, err, AssumptionValidity, SubjectX)
}

func TestRatio_PositivityViolations(t *testing.T) {
	_, err := Ratio([]float64{-1, 2}, []float64{1})
	requireViolation(t, err, AssumptionPositivity, SubjectX)

	_, err = Ratio([]float64{1}, []float64{0})
	requireViolation(t, err, AssumptionPositivity, SubjectY)

	// both negative: x is reported first
	_, err = Ratio([]float64{-1}, []float64{-1})
	requireViolation(t, err, AssumptionPositivity, SubjectX)

	// validity outranks positivity
	_, err = Ratio([]float64{-1}, nil)
	requireViolation(t, err, AssumptionValidity, SubjectY)
}

func TestAvgSpread_SparityViolations(t *testing.T) {
	_, err := AvgSpread([]float64{2, 2}, []float64{1, 3})
	requireViolation(t, err, AssumptionSparity, SubjectX)

	_, err = AvgSpread([]float64{1, 3}, []float64{2, 2})
	requireViolation(t, err, AssumptionSparity, SubjectY)

	_, err = Disparity([]float64{2, 2}, []float64{1, 3})
	requireViolation(t, err, AssumptionSparity, SubjectX)
}
