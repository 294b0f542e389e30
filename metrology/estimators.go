package metrology

import "github.com/solidstat/solidstat/robust"

// Center estimates the central value of x; the result keeps the sample's
// unit.
func Center(x *Sample) (Measurement, error) {
	if err := checkNonWeighted("center", x); err != nil {
		return Measurement{}, err
	}
	v, err := robust.Center(x.Values)
	if err != nil {
		return Measurement{}, err
	}
	return Measurement{Value: v, Unit: x.Unit}, nil
}

// Spread estimates the dispersion of x; the result keeps the sample's unit.
func Spread(x *Sample) (Measurement, error) {
	if err := checkNonWeighted("spread", x); err != nil {
		return Measurement{}, err
	}
	v, err := robust.Spread(x.Values)
	if err != nil {
		return Measurement{}, err
	}
	return Measurement{Value: v, Unit: x.Unit}, nil
}

// RelSpread estimates relative dispersion; the result is a dimensionless
// number.
func RelSpread(x *Sample) (Measurement, error) {
	if err := checkNonWeighted("rel_spread", x); err != nil {
		return Measurement{}, err
	}
	v, err := robust.RelSpread(x.Values)
	if err != nil {
		return Measurement{}, err
	}
	return Measurement{Value: v, Unit: NumberUnit}, nil
}

// Shift estimates the typical difference between x and y, expressed in the
// finer of the two units.
func Shift(x, y *Sample) (Measurement, error) {
	if err := checkNonWeighted("shift", x); err != nil {
		return Measurement{}, err
	}
	if err := checkNonWeighted("shift", y); err != nil {
		return Measurement{}, err
	}
	x, y, err := preparePair(x, y)
	if err != nil {
		return Measurement{}, err
	}
	v, err := robust.Shift(x.Values, y.Values)
	if err != nil {
		return Measurement{}, err
	}
	return Measurement{Value: v, Unit: x.Unit}, nil
}

// Ratio estimates how many times larger x is than y; the result carries
// RatioUnit.
func Ratio(x, y *Sample) (Measurement, error) {
	if err := checkNonWeighted("ratio", x); err != nil {
		return Measurement{}, err
	}
	if err := checkNonWeighted("ratio", y); err != nil {
		return Measurement{}, err
	}
	x, y, err := preparePair(x, y)
	if err != nil {
		return Measurement{}, err
	}
	v, err := robust.Ratio(x.Values, y.Values)
	if err != nil {
		return Measurement{}, err
	}
	return Measurement{Value: v, Unit: RatioUnit}, nil
}

// AvgSpread estimates the pooled variability of x and y in the finer unit.
func AvgSpread(x, y *Sample) (Measurement, error) {
	if err := checkNonWeighted("avg_spread", x); err != nil {
		return Measurement{}, err
	}
	if err := checkNonWeighted("avg_spread", y); err != nil {
		return Measurement{}, err
	}
	x, y, err := preparePair(x, y)
	if err != nil {
		return Measurement{}, err
	}
	v, err := robust.AvgSpread(x.Values, y.Values)
	if err != nil {
		return Measurement{}, err
	}
	return Measurement{Value: v, Unit: x.Unit}, nil
}

// Disparity estimates the normalized effect size between x and y; the
// result carries DisparityUnit.
func Disparity(x, y *Sample) (Measurement, error) {
	if err := checkNonWeighted("disparity", x); err != nil {
		return Measurement{}, err
	}
	if err := checkNonWeighted("disparity", y); err != nil {
		return Measurement{}, err
	}
	x, y, err := preparePair(x, y)
	if err != nil {
		return Measurement{}, err
	}
	v, err := robust.Disparity(x.Values, y.Values)
	if err != nil {
		return Measurement{}, err
	}
	return Measurement{Value: v, Unit: DisparityUnit}, nil
}

// CenterBounds returns misrate-indexed bounds on Center(x).
func CenterBounds(x *Sample, misrate float64) (Bounds, error) {
	if err := checkNonWeighted("center_bounds", x); err != nil {
		return Bounds{}, err
	}
	iv, err := robust.CenterBounds(x.Values, misrate)
	if err != nil {
		return Bounds{}, err
	}
	return Bounds{Lower: iv.Lower, Upper: iv.Upper, Unit: x.Unit}, nil
}

// SpreadBounds returns misrate-indexed bounds on Spread(x); the seed makes
// the pairing randomization reproducible.
func SpreadBounds(x *Sample, misrate float64, seed string) (Bounds, error) {
	if err := checkNonWeighted("spread_bounds", x); err != nil {
		return Bounds{}, err
	}
	iv, err := robust.SpreadBounds(x.Values, misrate, seed)
	if err != nil {
		return Bounds{}, err
	}
	return Bounds{Lower: iv.Lower, Upper: iv.Upper, Unit: x.Unit}, nil
}

// ShiftBounds returns misrate-indexed bounds on Shift(x, y) in the finer
// unit.
func ShiftBounds(x, y *Sample, misrate float64) (Bounds, error) {
	if err := checkNonWeighted("shift_bounds", x); err != nil {
		return Bounds{}, err
	}
	if err := checkNonWeighted("shift_bounds", y); err != nil {
		return Bounds{}, err
	}
	x, y, err := preparePair(x, y)
	if err != nil {
		return Bounds{}, err
	}
	iv, err := robust.ShiftBounds(x.Values, y.Values, misrate)
	if err != nil {
		return Bounds{}, err
	}
	return Bounds{Lower: iv.Lower, Upper: iv.Upper, Unit: x.Unit}, nil
}

// RatioBounds returns misrate-indexed bounds on Ratio(x, y).
func RatioBounds(x, y *Sample, misrate float64) (Bounds, error) {
	if err := checkNonWeighted("ratio_bounds", x); err != nil {
		return Bounds{}, err
	}
	if err := checkNonWeighted("ratio_bounds", y); err != nil {
		return Bounds{}, err
	}
	x, y, err := preparePair(x, y)
	if err != nil {
		return Bounds{}, err
	}
	iv, err := robust.RatioBounds(x.Values, y.Values, misrate)
	if err != nil {
		return Bounds{}, err
	}
	return Bounds{Lower: iv.Lower, Upper: iv.Upper, Unit: RatioUnit}, nil
}

// AvgSpreadBounds returns misrate-indexed bounds on AvgSpread(x, y) in the
// finer unit.
func AvgSpreadBounds(x, y *Sample, misrate float64, seed string) (Bounds, error) {
	if err := checkNonWeighted("avg_spread_bounds", x); err != nil {
		return Bounds{}, err
	}
	if err := checkNonWeighted("avg_spread_bounds", y); err != nil {
		return Bounds{}, err
	}
	x, y, err := preparePair(x, y)
	if err != nil {
		return Bounds{}, err
	}
	iv, err := robust.AvgSpreadBounds(x.Values, y.Values, misrate, seed)
	if err != nil {
		return Bounds{}, err
	}
	return Bounds{Lower: iv.Lower, Upper: iv.Upper, Unit: x.Unit}, nil
}

// DisparityBounds returns misrate-indexed bounds on Disparity(x, y).
func DisparityBounds(x, y *Sample, misrate float64, seed string) (Bounds, error) {
	if err := checkNonWeighted("disparity_bounds", x); err != nil {
		return Bounds{}, err
	}
	if err := checkNonWeighted("disparity_bounds", y); err != nil {
		return Bounds{}, err
	}
	x, y, err := preparePair(x, y)
	if err != nil {
		return Bounds{}, err
	}
	iv, err := robust.DisparityBounds(x.Values, y.Values, misrate, seed)
	if err != nil {
		return Bounds{}, err
	}
	return Bounds{Lower: iv.Lower, Upper: iv.Upper, Unit: DisparityUnit}, nil
}
