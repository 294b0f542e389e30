package robust

import "math"

// Center estimates the central value of x as the median of all pairwise
// averages (x[i] + x[j]) / 2 (Hodges-Lehmann). More robust than the mean,
// more statistically efficient than the median.
func Center(x []float64) (float64, error) {
	if err := checkValidity(x, SubjectX); err != nil {
		return 0, err
	}
	return fastCenter(x), nil
}

// Spread estimates the dispersion of x as the median of all pairwise
// absolute differences |x[i] - x[j]| (Shamos). A sample whose spread is zero
// carries no dispersion information and fails the sparity assumption.
func Spread(x []float64) (float64, error) {
	if err := checkValidity(x, SubjectX); err != nil {
		return 0, err
	}
	spread := fastSpread(x)
	if spread <= 0 {
		return 0, NewSparityError(SubjectX)
	}
	return spread, nil
}

// RelSpread measures relative dispersion: Spread divided by |Center|. A
// robust alternative to the coefficient of variation, undefined when the
// center is zero.
func RelSpread(x []float64) (float64, error) {
	if err := checkValidity(x, SubjectX); err != nil {
		return 0, err
	}
	center := fastCenter(x)
	if center == 0 {
		return 0, NewDomainError(SubjectX)
	}
	return fastSpread(x) / math.Abs(center), nil
}

// Shift measures the typical difference between elements of x and y as the
// median of all pairwise differences x[i] - y[j]. Positive means x is
// typically larger.
func Shift(x, y []float64) (float64, error) {
	if err := checkValidity(x, SubjectX); err != nil {
		return 0, err
	}
	if err := checkValidity(y, SubjectY); err != nil {
		return 0, err
	}
	result, err := fastShiftQuantiles(x, y, []float64{0.5}, false)
	if err != nil {
		return 0, err
	}
	return result[0], nil
}

// Ratio measures how many times larger x typically is than y: the
// exponential of the shift between the log-transformed samples, which equals
// the median of all pairwise ratios x[i] / y[j]. Both samples must be
// strictly positive.
func Ratio(x, y []float64) (float64, error) {
	if err := checkValidity(x, SubjectX); err != nil {
		return 0, err
	}
	if err := checkValidity(y, SubjectY); err != nil {
		return 0, err
	}
	if err := checkPositivity(x, SubjectX); err != nil {
		return 0, err
	}
	if err := checkPositivity(y, SubjectY); err != nil {
		return 0, err
	}
	logResult, err := fastShiftQuantiles(logSlice(x), logSlice(y), []float64{0.5}, false)
	if err != nil {
		return 0, err
	}
	return math.Exp(logResult[0]), nil
}

// AvgSpread measures the typical variability of the pooled samples: the
// size-weighted average (n*Spread(x) + m*Spread(y)) / (n+m).
func AvgSpread(x, y []float64) (float64, error) {
	if err := checkValidity(x, SubjectX); err != nil {
		return 0, err
	}
	if err := checkValidity(y, SubjectY); err != nil {
		return 0, err
	}
	spreadX := fastSpread(x)
	if spreadX <= 0 {
		return 0, NewSparityError(SubjectX)
	}
	spreadY := fastSpread(y)
	if spreadY <= 0 {
		return 0, NewSparityError(SubjectY)
	}
	n := float64(len(x))
	m := float64(len(y))
	return (n*spreadX + m*spreadY) / (n + m), nil
}

// Disparity measures effect size: Shift normalized by AvgSpread. A robust
// alternative to Cohen's d.
func Disparity(x, y []float64) (float64, error) {
	avgSpread, err := AvgSpread(x, y)
	if err != nil {
		return 0, err
	}
	shift, err := fastShiftQuantiles(x, y, []float64{0.5}, false)
	if err != nil {
		return 0, err
	}
	return shift[0] / avgSpread, nil
}
