package robust

import "math"

// signedRankMaxExactSize is the largest n handled by the exact subset-sum
// walk: the 2^n total must fit in a uint64.
const signedRankMaxExactSize = 63

// SignedRankMargin returns how many extreme pairwise averages a one-sample
// bound must exclude so that the interval misleads with probability at most
// misrate. The margin comes from the null distribution of the Wilcoxon
// signed-rank statistic: an exact counting DP for n <= 63, Edgeworth
// inversion with a kurtosis term beyond.
//
// The result is always even: twice the one-sided margin at misrate/2.
func SignedRankMargin(n int, misrate float64) (int, error) {
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

	if n <= signedRankMaxExactSize {
		return signedRankMarginExact(n, misrate/2) * 2, nil
	}
	return signedRankMarginApprox(n, misrate/2)
}

// signedRankMarginExact counts subset sums of 1..n to build the exact
// signed-rank CDF, returning the smallest statistic value with CDF(w) >= p.
func signedRankMarginExact(n int, p float64) int {
	total := uint64(1) << n
	maxW := int64(n) * int64(n+1) / 2

	count := make([]uint64, maxW+1)
	count[0] = 1
	for i := 1; i <= n; i++ {
		maxWi := int64(i) * int64(i+1) / 2
		if maxWi > maxW {
			maxWi = maxW
		}
		for w := maxWi; w >= int64(i); w-- {
			count[w] += count[w-int64(i)]
		}
	}

	var cumulative uint64
	for w := int64(0); w <= maxW; w++ {
		cumulative += count[w]
		if float64(cumulative)/float64(total) >= p {
			return int(w)
		}
	}
	return int(maxW)
}

// signedRankMarginApprox inverts the Edgeworth CDF by binary search on the
// statistic value.
func signedRankMarginApprox(n int, p float64) (int, error) {
	maxW := int64(n) * int64(n+1) / 2
	a := int64(0)
	b := maxW
	for a < b-1 {
		c := (a + b) / 2
		if signedRankEdgeworthCdf(n, c) < p {
			a = c
		} else {
			b = c
		}
	}

	raw := a
	if signedRankEdgeworthCdf(n, b) < p {
		raw = b
	}

	margin := raw * 2
	if margin > int64(math.MaxInt32) {
		return 0, NewDomainError(SubjectX)
	}
	return int(margin), nil
}

// signedRankEdgeworthCdf approximates P(W <= w) for the signed-rank statistic
// under the null, with a +0.5 continuity correction and a single
// kurtosis-driven Edgeworth term.
func signedRankEdgeworthCdf(n int, w int64) float64 {
	mu := float64(n) * float64(n+1) / 4.0
	sigma2 := float64(n) * float64(n+1) * float64(2*n+1) / 24.0
	sigma := math.Sqrt(sigma2)

	z := (float64(w) - mu + 0.5) / sigma
	phi := math.Exp(-z*z/2) / math.Sqrt(2*math.Pi)
	Phi := gaussCdf(z)

	kappa4 := signedRankCentralMoment4(n) - 3*sigma2*sigma2
	e3 := kappa4 / (24 * sigma2 * sigma2)

	z2 := z * z
	f3 := -phi * (z2*z - 3*z)

	edgeworth := Phi + e3*f3
	return math.Min(math.Max(edgeworth, 0), 1)
}

// signedRankCentralMoment4 is E[(W - mu)^4] for the null signed-rank
// statistic.
func signedRankCentralMoment4(n int) float64 {
	nf := float64(n)
	n2 := nf * nf
	n3 := n2 * nf
	n4 := n2 * n2
	n5 := n4 * nf
	return (9*n5 + 45*n4 + 65*n3 + 15*n2 - 14*nf) / 480.0
}
