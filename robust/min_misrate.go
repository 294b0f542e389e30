package robust

import "math"

// MinAchievableMisrateOneSample returns the smallest misrate a one-sample
// bound can honor with n observations: 2^(1-n), the probability that all n
// signs agree. Requesting a smaller misrate is a domain violation because no
// distribution-free interval can be that confident.
//
// The subject names the sample being checked so that violations are reported
// against the right argument.
func MinAchievableMisrateOneSample(n int, subject Subject) (float64, error) {
	if n < 1 {
		return 0, NewDomainError(subject)
	}
	return math.Pow(2, float64(1-n)), nil
}

// MinAchievableMisrateTwoSample returns the smallest misrate a two-sample
// bound can honor: 2/C(n+m, n), twice the probability of the most extreme
// arrangement of the pooled sample.
func MinAchievableMisrateTwoSample(n, m int) (float64, error) {
	if n < 1 {
		return 0, NewDomainError(SubjectX)
	}
	if m < 1 {
		return 0, NewDomainError(SubjectY)
	}
	return 2 / binomialCoefficient(n+m, n), nil
}
