package robust

import (
	"math"
	"sort"
)

// fastSpread computes the median of all pairwise absolute differences
// |x[i] - x[j]|, i < j, in O(n log n log(range/ulp)) without materializing
// the multiset. Returns 0 for fewer than two values; callers turn that into
// a sparity violation.
func fastSpread(values []float64) float64 {
	n := len(values)
	if n <= 1 {
		return 0
	}
	if n == 2 {
		return math.Abs(values[1] - values[0])
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	total := int64(n) * int64(n-1) / 2
	kLow := (total + 1) / 2
	kHigh := (total + 2) / 2

	lo := selectKthAbsDiff(sorted, kLow)
	if kHigh == kLow {
		return lo
	}
	hi := selectKthAbsDiff(sorted, kHigh)
	return (lo + hi) / 2
}

// selectKthAbsDiff finds the k-th smallest difference sorted[j] - sorted[i],
// i < j, (1-based) by binary search over the value range with an exact
// counting oracle. The input must be sorted ascending.
func selectKthAbsDiff(sorted []float64, k int64) float64 {
	n := len(sorted)

	searchMin := sorted[1] - sorted[0]
	for t := 2; t < n; t++ {
		if gap := sorted[t] - sorted[t-1]; gap < searchMin {
			searchMin = gap
		}
	}
	searchMax := sorted[n-1] - sorted[0]

	prevMin := math.Inf(-1)
	prevMax := math.Inf(1)

	for iter := 0; iter < maxSelectIterations && searchMin != searchMax; iter++ {
		mid := searchMin + (searchMax-searchMin)*0.5
		countLE, closestBelow, closestAbove := countAbsDiffNeighbors(sorted, mid)

		if closestBelow == closestAbove {
			return closestBelow
		}

		if searchMin == prevMin && searchMax == prevMax {
			if countLE >= k {
				return closestBelow
			}
			return closestAbove
		}
		prevMin = searchMin
		prevMax = searchMax

		if countLE >= k {
			searchMax = closestBelow
		} else {
			searchMin = closestAbove
		}
	}
	return searchMin
}

// countAbsDiffNeighbors counts ordered pairs i < j with
// sorted[j] - sorted[i] <= threshold and tracks the closest actual
// differences on either side.
func countAbsDiffNeighbors(sorted []float64, threshold float64) (count int64, maxBelow, minAbove float64) {
	n := len(sorted)
	maxBelow = math.Inf(-1)
	minAbove = math.Inf(1)

	i := 0
	for j := 0; j < n; j++ {
		for i < j && sorted[j]-sorted[i] > threshold {
			i++
		}
		count += int64(j - i)

		if i < j {
			if diff := sorted[j] - sorted[i]; diff > maxBelow {
				maxBelow = diff
			}
		}
		if i > 0 {
			if diff := sorted[j] - sorted[i-1]; diff < minAbove {
				minAbove = diff
			}
		}
	}

	if math.IsInf(maxBelow, -1) {
		maxBelow = sorted[1] - sorted[0]
		for t := 2; t < n; t++ {
			if gap := sorted[t] - sorted[t-1]; gap < maxBelow {
				maxBelow = gap
			}
		}
	}
	if math.IsInf(minAbove, 1) {
		minAbove = sorted[n-1] - sorted[0]
	}
	return count, maxBelow, minAbove
}
