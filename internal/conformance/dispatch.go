package conformance

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/solidstat/solidstat/rng"
	"github.com/solidstat/solidstat/robust"
)

// Input is a decoded fixture input. Optional fields keep their presence
// flags so the dispatcher can distinguish "absent" from zero values.
type Input struct {
	X          []float64
	Y          []float64
	Misrate    float64
	HasMisrate bool
	Seed       string
	N          int
	M          int
	HasN       bool
	HasM       bool
}

// rawInput is the wire shape fed to mapstructure before value parsing.
type rawInput struct {
	X       []any   `mapstructure:"x"`
	Y       []any   `mapstructure:"y"`
	Misrate any     `mapstructure:"misrate"`
	Seed    *string `mapstructure:"seed"`
	N       *int    `mapstructure:"n"`
	M       *int    `mapstructure:"m"`
}

// DecodeInput converts a generic fixture input map into a typed Input,
// resolving the string encodings of non-finite values.
func DecodeInput(data map[string]any) (*Input, error) {
	var raw rawInput
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &raw,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("building input decoder: %w", err)
	}
	if err := decoder.Decode(data); err != nil {
		return nil, fmt.Errorf("decoding input: %w", err)
	}

	in := &Input{}
	if raw.X != nil {
		if in.X, err = ParseValues(raw.X); err != nil {
			return nil, fmt.Errorf("input x: %w", err)
		}
	}
	if raw.Y != nil {
		if in.Y, err = ParseValues(raw.Y); err != nil {
			return nil, fmt.Errorf("input y: %w", err)
		}
	}
	if raw.Misrate != nil {
		if in.Misrate, err = ParseValue(raw.Misrate); err != nil {
			return nil, fmt.Errorf("input misrate: %w", err)
		}
		in.HasMisrate = true
	}
	if raw.Seed != nil {
		in.Seed = *raw.Seed
	}
	if raw.N != nil {
		in.N = *raw.N
		in.HasN = true
	}
	if raw.M != nil {
		in.M = *raw.M
		in.HasM = true
	}
	return in, nil
}

func (in *Input) misrate() float64 {
	if in.HasMisrate {
		return in.Misrate
	}
	return robust.DefaultMisrate
}

// Execute runs the named operation against the decoded input and returns the
// result values: one element for point estimates and margins, two for
// bounds, and full sequences for generator operations. Operation names
// accept both kebab-case (directory names) and snake_case (suite function
// names).
func Execute(name string, in *Input) ([]float64, error) {
	switch strings.ReplaceAll(name, "-", "_") {
	case "center":
		return scalar(robust.Center(in.X))
	case "spread":
		return scalar(robust.Spread(in.X))
	case "rel_spread":
		return scalar(robust.RelSpread(in.X))
	case "shift":
		return scalar(robust.Shift(in.X, in.Y))
	case "ratio":
		return scalar(robust.Ratio(in.X, in.Y))
	case "avg_spread":
		return scalar(robust.AvgSpread(in.X, in.Y))
	case "disparity":
		return scalar(robust.Disparity(in.X, in.Y))

	case "center_bounds":
		return pair(robust.CenterBounds(in.X, in.misrate()))
	case "spread_bounds":
		return pair(robust.SpreadBounds(in.X, in.misrate(), in.Seed))
	case "shift_bounds":
		return pair(robust.ShiftBounds(in.X, in.Y, in.misrate()))
	case "ratio_bounds":
		return pair(robust.RatioBounds(in.X, in.Y, in.misrate()))
	case "avg_spread_bounds":
		return pair(robust.AvgSpreadBounds(in.X, in.Y, in.misrate(), in.Seed))
	case "disparity_bounds":
		return pair(robust.DisparityBounds(in.X, in.Y, in.misrate(), in.Seed))

	case "signed_rank_margin":
		m, err := robust.SignedRankMargin(in.N, in.misrate())
		return scalar(float64(m), err)
	case "pairwise_margin":
		m, err := robust.PairwiseMargin(in.N, in.M, in.misrate())
		return scalar(float64(m), err)
	case "sign_margin":
		m, err := robust.SignMarginRandomized(in.N, in.misrate(), rng.FromString(in.Seed))
		return scalar(float64(m), err)
	case "min_misrate_one_sample":
		return scalar(robust.MinAchievableMisrateOneSample(in.N, robust.SubjectX))
	case "min_misrate_two_sample":
		return scalar(robust.MinAchievableMisrateTwoSample(in.N, in.M))

	case "rng_uniform_float":
		r := rng.FromString(in.Seed)
		out := make([]float64, in.N)
		for i := range out {
			out[i] = r.UniformFloat()
		}
		return out, nil
	case "rng_shuffle":
		return rng.FromString(in.Seed).ShuffleFloats(in.X)
	case "rng_sample":
		return rng.FromString(in.Seed).SampleFloats(in.X, in.N)
	case "rng_resample":
		return rng.FromString(in.Seed).ResampleFloats(in.X, in.N)
	}
	return nil, fmt.Errorf("unknown operation %q", name)
}

func scalar(v float64, err error) ([]float64, error) {
	if err != nil {
		return nil, err
	}
	return []float64{v}, nil
}

func pair(iv robust.Interval, err error) ([]float64, error) {
	if err != nil {
		return nil, err
	}
	return []float64{iv.Lower, iv.Upper}, nil
}
