package robust

import "math"

const (
	// pairwiseMaxExactSize caps the Loeffler recurrence; above it the
	// Edgeworth inversion takes over.
	pairwiseMaxExactSize = 400

	// maxExactBinomN is the largest n for which C(n, k) fits in a float64
	// mantissa when built by exact multiplication.
	maxExactBinomN = 65
)

// PairwiseMargin returns how many extreme pairwise differences a two-sample
// bound must exclude so that the interval misleads with probability at most
// misrate. The margin is derived from the null distribution of the
// Mann-Whitney dominance count: exact via Loeffler's recurrence for
// n+m <= 400, Edgeworth inversion beyond that.
//
// The result is always even: the two-sided margin is twice the one-sided
// margin at misrate/2.
func PairwiseMargin(n, m int, misrate float64) (int, error) {
	if n < 1 {
		return 0, NewDomainError(SubjectX)
	}
	if m < 1 {
		return 0, NewDomainError(SubjectY)
	}
	if err := checkMisrate(misrate); err != nil {
		return 0, err
	}

	minMisrate, err := MinAchievableMisrateTwoSample(n, m)
	if err != nil {
		return 0, err
	}
	if misrate < minMisrate {
		return 0, NewDomainError(SubjectMisrate)
	}

	if n+m <= pairwiseMaxExactSize {
		return pairwiseMarginExact(n, m, misrate/2) * 2, nil
	}
	return pairwiseMarginApprox(n, m, misrate/2) * 2, nil
}

// pairwiseMarginExact walks the exact Mann-Whitney PMF via Loeffler's (1982)
// partition recurrence until the left-tail CDF reaches p, returning the last
// statistic value still inside the tail.
func pairwiseMarginExact(n, m int, p float64) int {
	total := binomialCoefficient(n+m, m)

	pmf := []float64{1}
	sigma := []float64{0}

	cdf := 1.0 / total
	if cdf >= p {
		return 0
	}

	for u := 1; ; u++ {
		if len(sigma) <= u {
			value := 0
			for d := 1; d <= n; d++ {
				if u%d == 0 && u >= d {
					value += d
				}
			}
			for d := m + 1; d <= m+n; d++ {
				if u%d == 0 && u >= d {
					value -= d
				}
			}
			sigma = append(sigma, float64(value))
		}

		sum := 0.0
		for i := 0; i < u; i++ {
			sum += pmf[i] * sigma[u-i]
		}
		sum /= float64(u)
		pmf = append(pmf, sum)

		cdf += sum / total
		if cdf >= p {
			return u
		}
		if sum == 0 {
			return len(pmf) - 1
		}
	}
}

// pairwiseMarginApprox inverts the Edgeworth CDF by binary search on the
// statistic value, returning the largest u with CDF(u) < p.
func pairwiseMarginApprox(n, m int, p float64) int {
	a := int64(0)
	b := int64(n) * int64(m)
	for a < b-1 {
		c := (a + b) / 2
		if pairwiseEdgeworthCdf(n, m, c) < p {
			a = c
		} else {
			b = c
		}
	}
	if pairwiseEdgeworthCdf(n, m, b) < p {
		return int(b)
	}
	return int(a)
}

// pairwiseEdgeworthCdf approximates P(U <= u) for the Mann-Whitney statistic
// under the null, using an Edgeworth expansion through the 6th central moment
// (Fix and Hodges, 1955) with a -0.5 continuity correction.
func pairwiseEdgeworthCdf(n, m int, u int64) float64 {
	nf := float64(n)
	mf := float64(m)
	nm := nf * mf
	mu := nm / 2.0
	su := math.Sqrt(nm * (nf + mf + 1) / 12.0)

	z := (float64(u) - mu - 0.5) / su
	phi := math.Exp(-z*z/2) / math.Sqrt(2*math.Pi)
	Phi := gaussCdf(z)

	n2 := nf * nf
	n3 := n2 * nf
	n4 := n2 * n2
	m2 := mf * mf
	m3 := m2 * mf
	m4 := m2 * m2

	mu2 := (nm * (nf + mf + 1)) / 12.0
	mu4 := (nm * (nf + mf + 1) *
		(5*mf*nf*(mf+nf) -
			2*(m2+n2) +
			3*mf*nf -
			2*(nf+mf))) / 240.0
	mu6 := (nm * (nf + mf + 1) *
		(35*m2*n2*(m2+n2) +
			70*m3*n3 -
			42*mf*nf*(m3+n3) -
			14*m2*n2*(nf+mf) +
			16*(n4+m4) -
			52*nf*mf*(n2+m2) -
			43*n2*m2 +
			32*(m3+n3) +
			14*mf*nf*(nf+mf) +
			8*(n2+m2) +
			16*nf*mf -
			8*(nf+mf))) / 4032.0

	mu2sq := mu2 * mu2
	mu2cu := mu2sq * mu2
	excess := mu4 / mu2sq

	e3 := (excess - 3) / 24.0
	e5 := (mu6/mu2cu - 15*excess + 30) / 720.0
	e7 := 35 * (excess - 3) * (excess - 3) / 40320.0

	z2 := z * z
	z3 := z2 * z
	z5 := z3 * z2
	z7 := z5 * z2

	f3 := -phi * (z3 - 3*z)
	f5 := -phi * (z5 - 10*z3 + 15*z)
	f7 := -phi * (z7 - 21*z5 + 105*z3 - 105*z)

	edgeworth := Phi + e3*f3 + e5*f5 + e7*f7
	return math.Max(0, math.Min(edgeworth, 1))
}

// binomialCoefficient computes C(n, k) as a float64, exactly for n below
// maxExactBinomN and through log-space Stirling factorials above.
func binomialCoefficient(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	if n < maxExactBinomN {
		if k > n-k {
			k = n - k
		}
		result := int64(1)
		for i := 0; i < k; i++ {
			result = result * int64(n-i) / int64(i+1)
		}
		return float64(result)
	}
	return math.Exp(logBinomial(float64(n), float64(k)))
}

func logBinomial(n, k float64) float64 {
	return logFactorial(n) - logFactorial(k) - logFactorial(n-k)
}

// logFactorial computes log(n!) = log(Gamma(n+1)) via Stirling's series.
// Small arguments are lifted with the Gamma recurrence first, where the
// series alone loses precision.
func logFactorial(n float64) float64 {
	if n < 1e-5 {
		return 0
	}
	x := n + 1
	switch {
	case x < 1:
		return stirlingLogGamma(x+3) - math.Log(x*(x+1)*(x+2))
	case x < 2:
		return stirlingLogGamma(x+2) - math.Log(x*(x+1))
	case x < 3:
		return stirlingLogGamma(x+1) - math.Log(x)
	}
	return stirlingLogGamma(x)
}

// stirlingLogGamma evaluates log(Gamma(x)) by Stirling's approximation with
// Bernoulli-number corrections through B10.
func stirlingLogGamma(x float64) float64 {
	result := x*math.Log(x) - x + math.Log(2*math.Pi/x)/2

	const (
		b2  = 1.0 / 6
		b4  = -1.0 / 30
		b6  = 1.0 / 42
		b8  = -1.0 / 30
		b10 = 5.0 / 66
	)

	x2 := x * x
	x3 := x2 * x
	x5 := x3 * x2
	x7 := x5 * x2
	x9 := x7 * x2

	result += b2/(2*x) +
		b4/(12*x3) +
		b6/(30*x5) +
		b8/(56*x7) +
		b10/(90*x9)

	return result
}
