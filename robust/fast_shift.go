package robust

import (
	"errors"
	"math"
	"sort"
)

// maxSelectIterations bounds the value-range binary search; 128 halvings
// exhaust the float64 exponent and mantissa range.
const maxSelectIterations = 128

// fastShiftQuantiles computes type-7 quantiles of the pairwise differences
// {x[i] - y[j]} without materializing the m*n multiset. Each requested rank
// costs O((m+n) log(range/ulp)).
func fastShiftQuantiles(x, y []float64, p []float64, assumeSorted bool) ([]float64, error) {
	m := len(x)
	n := len(y)
	if m == 0 || n == 0 {
		return nil, errors.New("robust: empty input")
	}
	for _, pk := range p {
		if math.IsNaN(pk) || pk < 0 || pk > 1 {
			return nil, errors.New("robust: probabilities must be within [0, 1]")
		}
	}

	xs, ys := x, y
	if !assumeSorted {
		xs = append([]float64(nil), x...)
		ys = append([]float64(nil), y...)
		sort.Float64s(xs)
		sort.Float64s(ys)
	}

	total := int64(m) * int64(n)

	// Type-7 interpolation: h = 1 + (N-1)p, blend ranks floor(h) and ceil(h).
	type interpolation struct {
		lowerRank int64
		upperRank int64
		weight    float64
	}

	params := make([]interpolation, len(p))
	requiredRanks := make(map[int64]struct{})
	for i, pk := range p {
		h := 1.0 + float64(total-1)*pk
		lowerRank := int64(math.Floor(h))
		upperRank := int64(math.Ceil(h))
		weight := h - float64(lowerRank)

		if lowerRank < 1 {
			lowerRank = 1
		}
		if upperRank > total {
			upperRank = total
		}

		params[i] = interpolation{lowerRank, upperRank, weight}
		requiredRanks[lowerRank] = struct{}{}
		requiredRanks[upperRank] = struct{}{}
	}

	rankValues := make(map[int64]float64, len(requiredRanks))
	for rank := range requiredRanks {
		val, err := selectKthPairwiseDiff(xs, ys, rank)
		if err != nil {
			return nil, err
		}
		rankValues[rank] = val
	}

	result := make([]float64, len(p))
	for i, param := range params {
		lower := rankValues[param.lowerRank]
		upper := rankValues[param.upperRank]
		if param.weight == 0 {
			result[i] = lower
		} else {
			result[i] = (1.0-param.weight)*lower + param.weight*upper
		}
	}
	return result, nil
}

// selectKthPairwiseDiff finds the k-th smallest pairwise difference
// (1-based) by binary search over the value range. Every probe lands on an
// actual difference, so the search converges to an exact member of the
// multiset rather than a midpoint.
func selectKthPairwiseDiff(x, y []float64, k int64) (float64, error) {
	m := len(x)
	n := len(y)
	total := int64(m) * int64(n)
	if k < 1 || k > total {
		return 0, errors.New("robust: rank out of range")
	}

	searchMin := x[0] - y[n-1]
	searchMax := x[m-1] - y[0]
	if math.IsNaN(searchMin) || math.IsNaN(searchMax) {
		return 0, errors.New("robust: NaN in input values")
	}

	prevMin := math.Inf(-1)
	prevMax := math.Inf(1)

	for iter := 0; iter < maxSelectIterations && searchMin != searchMax; iter++ {
		mid := searchMin + (searchMax-searchMin)*0.5
		countLE, closestBelow, closestAbove := countDiffNeighbors(x, y, mid)

		if closestBelow == closestAbove {
			return closestBelow, nil
		}

		// Stuck between two adjacent multiset members.
		if searchMin == prevMin && searchMax == prevMax {
			if countLE >= k {
				return closestBelow, nil
			}
			return closestAbove, nil
		}
		prevMin = searchMin
		prevMax = searchMax

		if countLE >= k {
			searchMax = closestBelow
		} else {
			searchMin = closestAbove
		}
	}

	if searchMin != searchMax {
		return 0, errors.New("robust: selection did not converge")
	}
	return searchMin, nil
}

// countDiffNeighbors counts pairs with x[i] - y[j] <= threshold and tracks
// the closest actual differences on either side of the threshold. Both
// inputs must be sorted ascending.
func countDiffNeighbors(x, y []float64, threshold float64) (count int64, maxBelow, minAbove float64) {
	m := len(x)
	n := len(y)
	maxBelow = math.Inf(-1)
	minAbove = math.Inf(1)

	j := 0
	for i := 0; i < m; i++ {
		for j < n && x[i]-y[j] > threshold {
			j++
		}
		count += int64(n - j)

		if j < n {
			if diff := x[i] - y[j]; diff > maxBelow {
				maxBelow = diff
			}
		}
		if j > 0 {
			if diff := x[i] - y[j-1]; diff < minAbove {
				minAbove = diff
			}
		}
	}

	if math.IsInf(maxBelow, -1) {
		maxBelow = x[0] - y[n-1]
	}
	if math.IsInf(minAbove, 1) {
		minAbove = x[m-1] - y[0]
	}
	return count, maxBelow, minAbove
}
