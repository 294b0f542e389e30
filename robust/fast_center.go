package robust

import (
	"math"
	"sort"
)

// relativeEpsilon is the convergence tolerance of the pairwise-average value
// search, relative to the magnitude of the bracket endpoints.
const relativeEpsilon = 1e-14

// fastCenter computes the median of all pairwise averages (x[i] + x[j]) / 2,
// i <= j, without materializing the n(n+1)/2 multiset. The input must be
// non-empty and finite.
func fastCenter(values []float64) float64 {
	n := len(values)
	if n == 1 {
		return values[0]
	}
	if n == 2 {
		return (values[0] + values[1]) / 2
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	totalPairs := int64(n) * int64(n+1) / 2
	kLow := (totalPairs + 1) / 2
	kHigh := (totalPairs + 2) / 2

	lo := findPairAverageByRank(sorted, kLow)
	if kHigh == kLow {
		return lo
	}
	hi := findPairAverageByRank(sorted, kHigh)
	return (lo + hi) / 2
}

// fastCenterQuantileBounds extracts the pairwise averages at ranks marginLo
// and marginHi (1-based, clamped to the valid range), returned in order.
func fastCenterQuantileBounds(sorted []float64, marginLo, marginHi int64) (lo, hi float64) {
	n := len(sorted)
	totalPairs := int64(n) * int64(n+1) / 2

	if marginLo < 1 {
		marginLo = 1
	}
	if marginLo > totalPairs {
		marginLo = totalPairs
	}
	if marginHi < 1 {
		marginHi = 1
	}
	if marginHi > totalPairs {
		marginHi = totalPairs
	}

	lo = findPairAverageByRank(sorted, marginLo)
	hi = findPairAverageByRank(sorted, marginHi)
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi
}

// countPairAveragesLE counts pairs i <= j whose average is at most target,
// with a single backwards-moving pointer. The input must be sorted.
func countPairAveragesLE(sorted []float64, target float64) int64 {
	n := len(sorted)
	var count int64
	// j never resets: the threshold 2*target - sorted[i] only decreases
	j := n - 1

	for i := 0; i < n; i++ {
		threshold := 2*target - sorted[i]
		for j >= 0 && sorted[j] > threshold {
			j--
		}
		if j >= i {
			count += int64(j - i + 1)
		}
	}
	return count
}

// findPairAverageByRank finds the k-th smallest pairwise average (1-based)
// by bisecting the value range until the bracket collapses to relative
// epsilon, then reconciling against actual pair averages near the bracket so
// the result is an exact member of the multiset.
func findPairAverageByRank(sorted []float64, k int64) float64 {
	n := len(sorted)
	totalPairs := int64(n) * int64(n+1) / 2

	if n == 1 || k == 1 {
		return sorted[0]
	}
	if k == totalPairs {
		return sorted[n-1]
	}

	lo := sorted[0]
	hi := sorted[n-1]
	const eps = relativeEpsilon

	for hi-lo > eps*math.Max(1.0, math.Max(math.Abs(lo), math.Abs(hi))) {
		mid := (lo + hi) / 2
		if countPairAveragesLE(sorted, mid) >= k {
			hi = mid
		} else {
			lo = mid
		}
	}

	target := (lo + hi) / 2
	var candidates []float64

	for i := 0; i < n; i++ {
		threshold := 2*target - sorted[i]

		left := i
		right := n
		for left < right {
			m := (left + right) / 2
			if sorted[m] < threshold-eps {
				left = m + 1
			} else {
				right = m
			}
		}

		if left < n && left >= i && math.Abs(sorted[left]-threshold) < eps*math.Max(1.0, math.Abs(threshold)) {
			candidates = append(candidates, (sorted[i]+sorted[left])/2)
		}
		if left > i {
			avgBefore := (sorted[i] + sorted[left-1]) / 2
			if avgBefore <= target+eps {
				candidates = append(candidates, avgBefore)
			}
		}
	}

	if len(candidates) == 0 {
		return target
	}
	sort.Float64s(candidates)

	for _, candidate := range candidates {
		if countPairAveragesLE(sorted, candidate) >= k {
			return candidate
		}
	}
	return target
}
