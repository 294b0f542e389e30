package conformance

import (
	"testing"

	"github.com/solidstat/solidstat/robust"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInput(t *testing.T) {
	in, err := DecodeInput(map[string]any{
		"x":       []any{1.0, 2.0, "Infinity"},
		"y":       []any{3.0},
		"misrate": 0.05,
		"seed":    "alpha",
		"n":       7.0,
	})
	require.NoError(t, err)

	assert.Len(t, in.X, 3)
	assert.Equal(t, []float64{3}, in.Y)
	assert.True(t, in.HasMisrate)
	assert.Equal(t, 0.05, in.Misrate)
	assert.Equal(t, "alpha", in.Seed)
	assert.True(t, in.HasN)
	assert.Equal(t, 7, in.N)
	assert.False(t, in.HasM)
}

func TestDecodeInput_MisrateStringEncoding(t *testing.T) {
	in, err := DecodeInput(map[string]any{"x": []any{1.0}, "misrate": "NaN"})
	require.NoError(t, err)
	assert.True(t, in.HasMisrate)
	assert.NotEqual(t, in.Misrate, in.Misrate, "NaN must decode as NaN")
}

func TestDecodeInput_DefaultMisrate(t *testing.T) {
	in, err := DecodeInput(map[string]any{"x": []any{1.0}})
	require.NoError(t, err)
	assert.False(t, in.HasMisrate)
	assert.Equal(t, robust.DefaultMisrate, in.misrate())
}

func TestDecodeInput_RejectsUnknownFields(t *testing.T) {
	_, err := DecodeInput(map[string]any{"x": []any{1.0}, "extra": 1})
	assert.Error(t, err)
}

func TestExecute_PointEstimators(t *testing.T) {
	out, err := Execute("center", &Input{X: []float64{1, 2, 3}})
	require.NoError(t, err)
	assert.Equal(t, []float64{2}, out)

	out, err = Execute("shift", &Input{X: []float64{4, 5, 6}, Y: []float64{1, 2, 3}})
	require.NoError(t, err)
	assert.InDelta(t, 3.0, out[0], 1e-12)
}

func TestExecute_NormalizesOperationNames(t *testing.T) {
	in := &Input{X: []float64{1, 2, 3}}

	kebab, err := Execute("rel-spread", in)
	require.NoError(t, err)
	snake, err := Execute("rel_spread", in)
	require.NoError(t, err)
	assert.Equal(t, snake, kebab)
}

func TestExecute_Bounds(t *testing.T) {
	in := &Input{X: []float64{1, 3}, Misrate: 0.5, HasMisrate: true}
	out, err := Execute("center-bounds", in)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3}, out)
}

func TestExecute_Margins(t *testing.T) {
	out, err := Execute("signed-rank-margin", &Input{N: 5, Misrate: 0.25, HasMisrate: true})
	require.NoError(t, err)
	assert.Equal(t, []float64{6}, out)

	out, err = Execute("min-misrate-one-sample", &Input{N: 5})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.0625}, out)
}

func TestExecute_RngOperations(t *testing.T) {
	out, err := Execute("rng-uniform-float", &Input{Seed: "alpha", N: 10})
	require.NoError(t, err)
	require.Len(t, out, 10)

	again, err := Execute("rng-uniform-float", &Input{Seed: "alpha", N: 10})
	require.NoError(t, err)
	assert.Equal(t, out, again)

	shuffled, err := Execute("rng-shuffle", &Input{Seed: "s", X: []float64{1, 2, 3, 4}})
	require.NoError(t, err)
	assert.ElementsMatch(t, []float64{1, 2, 3, 4}, shuffled)

	sampled, err := Execute("rng-sample", &Input{Seed: "s", X: []float64{1, 2, 3, 4}, N: 2})
	require.NoError(t, err)
	assert.Len(t, sampled, 2)
}

func TestExecute_PropagatesViolations(t *testing.T) {
	_, err := Execute("spread", &Input{X: []float64{4, 4}})
	var ae *robust.AssumptionError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, robust.AssumptionSparity, ae.Violation.ID)
}

func TestExecute_UnknownOperation(t *testing.T) {
	_, err := Execute("kurtosis", &Input{X: []float64{1}})
	assert.ErrorContains(t, err, "unknown operation")
}
