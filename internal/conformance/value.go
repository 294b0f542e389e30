// Package conformance loads the shared JSON fixture corpus, dispatches each
// case to the matching estimator, and compares results within tolerance. It
// backs both `solidstat verify` and the Go conformance tests.
package conformance

import (
	"fmt"
	"math"
)

// ParseValue decodes a fixture value: a JSON number, or one of the string
// encodings "NaN", "Infinity", "-Infinity" that JSON itself cannot carry.
func ParseValue(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		switch v {
		case "NaN":
			return math.NaN(), nil
		case "Infinity":
			return math.Inf(1), nil
		case "-Infinity":
			return math.Inf(-1), nil
		}
		return 0, fmt.Errorf("unrecognized value string %q", v)
	}
	return 0, fmt.Errorf("unsupported value type %T", raw)
}

// ParseValues decodes a fixture value array.
func ParseValues(raw []any) ([]float64, error) {
	out := make([]float64, len(raw))
	for i, r := range raw {
		v, err := ParseValue(r)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// FormatValue encodes a float64 for fixture JSON, using the string forms for
// non-finite values.
func FormatValue(v float64) any {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return v
}

// EqualWithinTolerance compares an actual value against an expected one.
// Non-finite values must match exactly; finite values must agree within tol,
// absolutely for small magnitudes and relatively for large ones.
func EqualWithinTolerance(expected, actual, tol float64) bool {
	if math.IsNaN(expected) {
		return math.IsNaN(actual)
	}
	if math.IsInf(expected, 0) {
		return expected == actual
	}
	if math.IsNaN(actual) || math.IsInf(actual, 0) {
		return false
	}
	return math.Abs(expected-actual) <= tol*math.Max(1, math.Abs(expected))
}
