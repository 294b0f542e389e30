package metrology

import (
	"fmt"
	"math"
	"sort"

	"github.com/solidstat/solidstat/robust"
)

// Sample wraps observed values with an optional unit and optional weights.
// Treat samples as immutable once constructed; the sorted view is computed
// lazily and cached.
type Sample struct {
	Values       []float64
	Weights      []float64 // nil for unweighted
	Unit         *Unit
	IsWeighted   bool
	TotalWeight  float64
	WeightedSize float64

	sortedValues []float64
}

// NewSample creates an unweighted, unit-less sample.
func NewSample(values []float64) (*Sample, error) {
	return NewSampleWithUnit(values, nil)
}

// NewSampleWithUnit creates an unweighted sample with the given unit.
func NewSampleWithUnit(values []float64, unit *Unit) (*Sample, error) {
	return newSample(values, nil, unit)
}

// NewWeightedSample creates a weighted sample. Weights must be non-negative
// with a positive total. Weighted samples can be stored and converted but
// are rejected by every estimator.
func NewWeightedSample(values, weights []float64, unit *Unit) (*Sample, error) {
	return newSample(values, weights, unit)
}

func newSample(values, weights []float64, unit *Unit) (*Sample, error) {
	if unit == nil {
		unit = NumberUnit
	}
	if len(values) == 0 {
		return nil, robust.NewValidityError(robust.SubjectX)
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, robust.NewValidityError(robust.SubjectX)
		}
	}

	s := &Sample{
		Values: append([]float64(nil), values...),
		Unit:   unit,
	}

	if weights == nil {
		s.TotalWeight = 1.0
		s.WeightedSize = float64(len(values))
		return s, nil
	}

	if len(weights) != len(values) {
		return nil, fmt.Errorf("weights length (%d) must match values length (%d)", len(weights), len(values))
	}
	var totalWeight, totalWeightSq float64
	for _, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("all weights must be non-negative")
		}
		totalWeight += w
		totalWeightSq += w * w
	}
	if totalWeight < 1e-9 {
		return nil, fmt.Errorf("total weight must be positive")
	}
	s.Weights = append([]float64(nil), weights...)
	s.IsWeighted = true
	s.TotalWeight = totalWeight
	s.WeightedSize = (totalWeight * totalWeight) / totalWeightSq
	return s, nil
}

// Size returns the number of values.
func (s *Sample) Size() int {
	return len(s.Values)
}

// SortedValues returns a sorted view of the values, computed on first use.
// Callers must not modify the returned slice.
func (s *Sample) SortedValues() []float64 {
	if s.sortedValues == nil {
		s.sortedValues = append([]float64(nil), s.Values...)
		sort.Float64s(s.sortedValues)
	}
	return s.sortedValues
}

// ConvertTo returns the sample expressed in a compatible unit. The receiver
// itself is returned when no conversion is needed.
func (s *Sample) ConvertTo(target *Unit) (*Sample, error) {
	if !s.Unit.IsCompatible(target) {
		return nil, &UnitMismatchError{Unit1: s.Unit, Unit2: target}
	}
	if s.Unit == target {
		return s, nil
	}
	factor := ConversionFactor(s.Unit, target)
	converted := make([]float64, len(s.Values))
	for i, v := range s.Values {
		converted[i] = v * factor
	}
	out := &Sample{
		Values:       converted,
		Unit:         target,
		IsWeighted:   s.IsWeighted,
		TotalWeight:  s.TotalWeight,
		WeightedSize: s.WeightedSize,
	}
	if s.IsWeighted {
		out.Weights = append([]float64(nil), s.Weights...)
	}
	return out, nil
}

// checkNonWeighted rejects nil and weighted samples; weighted robust
// estimation is out of scope.
func checkNonWeighted(name string, s *Sample) error {
	if s == nil {
		return fmt.Errorf("%s: sample cannot be nil", name)
	}
	if s.IsWeighted {
		return fmt.Errorf("%s: weighted samples are not supported", name)
	}
	return nil
}

// preparePair verifies unit compatibility and converts both samples to the
// finer of the two units.
func preparePair(x, y *Sample) (*Sample, *Sample, error) {
	if !x.Unit.IsCompatible(y.Unit) {
		return nil, nil, &UnitMismatchError{Unit1: x.Unit, Unit2: y.Unit}
	}
	if x.Unit == y.Unit {
		return x, y, nil
	}
	target := Finer(x.Unit, y.Unit)
	cx, err := x.ConvertTo(target)
	if err != nil {
		return nil, nil, err
	}
	cy, err := y.ConvertTo(target)
	if err != nil {
		return nil, nil, err
	}
	return cx, cy, nil
}
