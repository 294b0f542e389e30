package robust

import (
	"math"
	"sort"

	"github.com/solidstat/solidstat/rng"
)

// Interval is a pair of bounds with Lower <= Upper. An interval produced at
// misrate p misleads (fails to contain the estimated quantity) with
// probability at most p under the estimator's assumptions.
type Interval struct {
	Lower float64
	Upper float64
}

// ShiftBounds returns distribution-free bounds on Shift(x, y). The interval
// excludes PairwiseMargin extreme pairwise differences, split evenly between
// the tails.
func ShiftBounds(x, y []float64, misrate float64) (Interval, error) {
	if err := checkValidity(x, SubjectX); err != nil {
		return Interval{}, err
	}
	if err := checkValidity(y, SubjectY); err != nil {
		return Interval{}, err
	}
	if err := checkMisrate(misrate); err != nil {
		return Interval{}, err
	}

	n := len(x)
	m := len(y)
	minMisrate, err := MinAchievableMisrateTwoSample(n, m)
	if err != nil {
		return Interval{}, err
	}
	if misrate < minMisrate {
		return Interval{}, NewDomainError(SubjectMisrate)
	}

	xs := append([]float64(nil), x...)
	ys := append([]float64(nil), y...)
	sort.Float64s(xs)
	sort.Float64s(ys)

	total := int64(n) * int64(m)
	if total == 1 {
		value := xs[0] - ys[0]
		return Interval{Lower: value, Upper: value}, nil
	}

	margin, err := PairwiseMargin(n, m, misrate)
	if err != nil {
		return Interval{}, err
	}
	halfMargin := minInt64(int64(margin)/2, (total-1)/2)
	kLeft := halfMargin
	kRight := (total - 1) - halfMargin

	denominator := float64(total - 1)
	p := []float64{float64(kLeft) / denominator, float64(kRight) / denominator}

	bounds, err := fastShiftQuantiles(xs, ys, p, true)
	if err != nil {
		return Interval{}, err
	}
	return Interval{
		Lower: math.Min(bounds[0], bounds[1]),
		Upper: math.Max(bounds[0], bounds[1]),
	}, nil
}

// RatioBounds returns distribution-free bounds on Ratio(x, y) by
// exponentiating shift bounds in log space. Both samples must be strictly
// positive.
func RatioBounds(x, y []float64, misrate float64) (Interval, error) {
	if err := checkValidity(x, SubjectX); err != nil {
		return Interval{}, err
	}
	if err := checkValidity(y, SubjectY); err != nil {
		return Interval{}, err
	}
	if err := checkMisrate(misrate); err != nil {
		return Interval{}, err
	}

	minMisrate, err := MinAchievableMisrateTwoSample(len(x), len(y))
	if err != nil {
		return Interval{}, err
	}
	if misrate < minMisrate {
		return Interval{}, NewDomainError(SubjectMisrate)
	}

	if err := checkPositivity(x, SubjectX); err != nil {
		return Interval{}, err
	}
	if err := checkPositivity(y, SubjectY); err != nil {
		return Interval{}, err
	}

	logBounds, err := ShiftBounds(logSlice(x), logSlice(y), misrate)
	if err != nil {
		return Interval{}, err
	}
	return Interval{
		Lower: math.Exp(logBounds.Lower),
		Upper: math.Exp(logBounds.Upper),
	}, nil
}

// CenterBounds returns exact distribution-free bounds on Center(x): order
// statistics of the pairwise-average multiset at ranks set by the
// signed-rank margin.
func CenterBounds(x []float64, misrate float64) (Interval, error) {
	if err := checkValidity(x, SubjectX); err != nil {
		return Interval{}, err
	}
	if err := checkMisrate(misrate); err != nil {
		return Interval{}, err
	}

	n := len(x)
	if n < 2 {
		return Interval{}, NewDomainError(SubjectX)
	}

	minMisrate, err := MinAchievableMisrateOneSample(n, SubjectX)
	if err != nil {
		return Interval{}, err
	}
	if misrate < minMisrate {
		return Interval{}, NewDomainError(SubjectMisrate)
	}

	totalPairs := int64(n) * int64(n+1) / 2

	margin, err := SignedRankMargin(n, misrate)
	if err != nil {
		return Interval{}, err
	}
	halfMargin := minInt64(int64(margin)/2, (totalPairs-1)/2)

	kLeft := halfMargin + 1
	kRight := totalPairs - halfMargin

	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)

	lo, hi := fastCenterQuantileBounds(sorted, kLeft, kRight)
	return Interval{Lower: lo, Upper: hi}, nil
}

// SpreadBounds returns distribution-free bounds on Spread(x) from the
// absolute differences of floor(n/2) randomly drawn disjoint pairs, with the
// sign margin deciding how many extreme ones to exclude.
//
// The seed drives both the randomized margin tie-break and the pairing
// shuffle; an empty seed uses a time-based generator.
func SpreadBounds(x []float64, misrate float64, seed string) (Interval, error) {
	if err := checkValidity(x, SubjectX); err != nil {
		return Interval{}, err
	}
	if err := checkMisrate(misrate); err != nil {
		return Interval{}, err
	}

	n := len(x)
	m := n / 2
	minMisrate, err := MinAchievableMisrateOneSample(m, SubjectX)
	if err != nil {
		return Interval{}, err
	}
	if misrate < minMisrate {
		return Interval{}, NewDomainError(SubjectMisrate)
	}

	if n < 2 {
		return Interval{}, NewSparityError(SubjectX)
	}
	if fastSpread(x) <= 0 {
		return Interval{}, NewSparityError(SubjectX)
	}

	r := newBoundsRng(seed)
	margin, err := SignMarginRandomized(m, misrate, r)
	if err != nil {
		return Interval{}, err
	}
	halfMargin := minInt64(int64(margin)/2, int64(m-1)/2)

	kLeft := halfMargin + 1
	kRight := int64(m) - halfMargin

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	shuffled, err := rng.Shuffle(r, indices)
	if err != nil {
		return Interval{}, err
	}

	diffs := make([]float64, m)
	for i := 0; i < m; i++ {
		diffs[i] = math.Abs(x[shuffled[2*i]] - x[shuffled[2*i+1]])
	}
	sort.Float64s(diffs)

	return Interval{Lower: diffs[kLeft-1], Upper: diffs[kRight-1]}, nil
}

// AvgSpreadBounds returns distribution-free bounds on AvgSpread(x, y) by a
// Bonferroni combination: each sample gets spread bounds at misrate/2, and
// the endpoints are combined with the size weights n/(n+m) and m/(n+m). The
// same seed feeds both per-sample computations.
func AvgSpreadBounds(x, y []float64, misrate float64, seed string) (Interval, error) {
	if err := checkValidity(x, SubjectX); err != nil {
		return Interval{}, err
	}
	if err := checkValidity(y, SubjectY); err != nil {
		return Interval{}, err
	}
	if err := checkMisrate(misrate); err != nil {
		return Interval{}, err
	}

	n := len(x)
	m := len(y)
	if n < 2 {
		return Interval{}, NewDomainError(SubjectX)
	}
	if m < 2 {
		return Interval{}, NewDomainError(SubjectY)
	}

	alpha := misrate / 2
	minX, err := MinAchievableMisrateOneSample(n/2, SubjectX)
	if err != nil {
		return Interval{}, err
	}
	minY, err := MinAchievableMisrateOneSample(m/2, SubjectY)
	if err != nil {
		return Interval{}, err
	}
	if alpha < minX || alpha < minY {
		return Interval{}, NewDomainError(SubjectMisrate)
	}

	if fastSpread(x) <= 0 {
		return Interval{}, NewSparityError(SubjectX)
	}
	if fastSpread(y) <= 0 {
		return Interval{}, NewSparityError(SubjectY)
	}

	boundsX, err := SpreadBounds(x, alpha, seed)
	if err != nil {
		return Interval{}, err
	}
	boundsY, err := SpreadBounds(y, alpha, seed)
	if err != nil {
		return Interval{}, err
	}

	weightX := float64(n) / float64(n+m)
	weightY := float64(m) / float64(n+m)
	return Interval{
		Lower: weightX*boundsX.Lower + weightY*boundsY.Lower,
		Upper: weightX*boundsX.Upper + weightY*boundsY.Upper,
	}, nil
}

// DisparityBounds returns distribution-free bounds on Disparity(x, y). The
// misrate is split between the shift and avg-spread components: each keeps
// its minimal achievable share and the excess is divided evenly. The
// interval division can produce infinite endpoints when the avg-spread
// interval touches or crosses zero.
func DisparityBounds(x, y []float64, misrate float64, seed string) (Interval, error) {
	if err := checkValidity(x, SubjectX); err != nil {
		return Interval{}, err
	}
	if err := checkValidity(y, SubjectY); err != nil {
		return Interval{}, err
	}
	if err := checkMisrate(misrate); err != nil {
		return Interval{}, err
	}

	n := len(x)
	m := len(y)
	if n < 2 {
		return Interval{}, NewDomainError(SubjectX)
	}
	if m < 2 {
		return Interval{}, NewDomainError(SubjectY)
	}

	minShift, err := MinAchievableMisrateTwoSample(n, m)
	if err != nil {
		return Interval{}, err
	}
	minX, err := MinAchievableMisrateOneSample(n/2, SubjectX)
	if err != nil {
		return Interval{}, err
	}
	minY, err := MinAchievableMisrateOneSample(m/2, SubjectY)
	if err != nil {
		return Interval{}, err
	}
	minAvg := 2 * math.Max(minX, minY)

	if misrate < minShift+minAvg {
		return Interval{}, NewDomainError(SubjectMisrate)
	}

	extra := misrate - (minShift + minAvg)
	alphaShift := minShift + extra/2
	alphaAvg := minAvg + extra/2

	if fastSpread(x) <= 0 {
		return Interval{}, NewSparityError(SubjectX)
	}
	if fastSpread(y) <= 0 {
		return Interval{}, NewSparityError(SubjectY)
	}

	sb, err := ShiftBounds(x, y, alphaShift)
	if err != nil {
		return Interval{}, err
	}
	ab, err := AvgSpreadBounds(x, y, alphaAvg, seed)
	if err != nil {
		return Interval{}, err
	}

	return divideInterval(sb, ab), nil
}

// divideInterval computes the range of s/a over s in the shift interval and
// a in the avg-spread interval.
func divideInterval(s, a Interval) Interval {
	la, ua := a.Lower, a.Upper
	ls, us := s.Lower, s.Upper

	if la > 0 {
		r1 := ls / la
		r2 := ls / ua
		r3 := us / la
		r4 := us / ua
		return Interval{
			Lower: math.Min(math.Min(r1, r2), math.Min(r3, r4)),
			Upper: math.Max(math.Max(r1, r2), math.Max(r3, r4)),
		}
	}

	if ua <= 0 {
		switch {
		case ls == 0 && us == 0:
			return Interval{Lower: 0, Upper: 0}
		case ls >= 0:
			return Interval{Lower: 0, Upper: math.Inf(1)}
		case us <= 0:
			return Interval{Lower: math.Inf(-1), Upper: 0}
		}
		return Interval{Lower: math.Inf(-1), Upper: math.Inf(1)}
	}

	// ua > 0 and la <= 0: the divisor interval reaches zero from above.
	switch {
	case ls > 0:
		return Interval{Lower: ls / ua, Upper: math.Inf(1)}
	case us < 0:
		return Interval{Lower: math.Inf(-1), Upper: us / ua}
	case ls == 0 && us == 0:
		return Interval{Lower: 0, Upper: 0}
	case ls == 0 && us > 0:
		return Interval{Lower: 0, Upper: math.Inf(1)}
	case ls < 0 && us == 0:
		return Interval{Lower: math.Inf(-1), Upper: 0}
	}
	return Interval{Lower: math.Inf(-1), Upper: math.Inf(1)}
}

// newBoundsRng builds the generator for randomized bounds: seeded and
// reproducible when seed is non-empty, time-based otherwise.
func newBoundsRng(seed string) *rng.Rng {
	if seed == "" {
		return rng.New()
	}
	return rng.FromString(seed)
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
