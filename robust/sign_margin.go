package robust

import (
	"math"

	"github.com/solidstat/solidstat/rng"
)

// SignMarginRandomized returns how many extreme order statistics a
// spread bound must exclude, derived from inverting the Binomial(n, 0.5)
// CDF. The binomial support is too coarse to hit most misrates exactly, so
// the margin is randomized between the two straddling values with the
// probability that makes the expected coverage exact.
//
// The generator drives only the tie-break draw; a fixed seed makes the
// margin reproducible.
func SignMarginRandomized(n int, misrate float64, r *rng.Rng) (int, error) {
	if n < 1 {
		return 0, NewDomainError(SubjectX)
	}
	if err := checkMisrate(misrate); err != nil {
		return 0, err
	}

	minMisrate, err := MinAchievableMisrateOneSample(n, SubjectX)
	if err != nil {
		return 0, err
	}
	if misrate < minMisrate {
		return 0, NewDomainError(SubjectMisrate)
	}

	target := misrate / 2
	if target <= 0 {
		return 0, nil
	}
	if target >= 1 {
		return n * 2, nil
	}

	rLow, logCdfLow, logPmfHigh := binomCdfSplit(n, target)
	logTarget := math.Log(target)

	logNum := math.Inf(-1)
	if logTarget > logCdfLow {
		logNum = logSubExp(logTarget, logCdfLow)
	}

	var p float64
	if isFinite(logPmfHigh) && isFinite(logNum) {
		p = math.Exp(logNum - logPmfHigh)
	}
	p = math.Min(math.Max(p, 0), 1)

	k := rLow
	if r.UniformFloat() < p {
		k = rLow + 1
	}
	return k * 2, nil
}

// binomCdfSplit walks the Binomial(n, 0.5) CDF in log space and returns the
// largest k with CDF(k) <= target, that CDF value, and the log-PMF of k+1.
func binomCdfSplit(n int, target float64) (rLow int, logCdfLow, logPmfHigh float64) {
	logTarget := math.Log(target)
	logPmf := -float64(n) * math.Ln2
	logCdf := logPmf

	if logCdf > logTarget {
		return 0, logCdf, logPmf
	}

	for k := 1; k <= n; k++ {
		logPmfNext := logPmf + math.Log(float64(n-k+1)) - math.Log(float64(k))
		logCdfNext := logAddExp(logCdf, logPmfNext)
		if logCdfNext > logTarget {
			return rLow, logCdf, logPmfNext
		}
		rLow = k
		logPmf = logPmfNext
		logCdf = logCdfNext
	}
	return rLow, logCdf, math.Inf(-1)
}

// logAddExp computes log(exp(a) + exp(b)) without overflow.
func logAddExp(a, b float64) float64 {
	if math.IsInf(a, -1) {
		return b
	}
	if math.IsInf(b, -1) {
		return a
	}
	m := math.Max(a, b)
	return m + math.Log(math.Exp(a-m)+math.Exp(b-m))
}

// logSubExp computes log(exp(a) - exp(b)) for a >= b; -Inf when the
// difference underflows.
func logSubExp(a, b float64) float64 {
	if math.IsInf(b, -1) {
		return a
	}
	diff := math.Exp(b - a)
	if diff >= 1 {
		return math.Inf(-1)
	}
	return a + math.Log(1-diff)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
