package robust

import (
	"fmt"
	"math"
)

// DefaultMisrate is the misclassification rate used when a caller does not
// supply one. It corresponds to roughly one misleading interval per thousand.
const DefaultMisrate = 1e-3

// AssumptionID identifies which input assumption a call violated. When a call
// violates several assumptions at once, the reported one is chosen by fixed
// priority: Validity, then Domain, then Positivity, then Sparity.
type AssumptionID string

const (
	// AssumptionValidity: inputs must be non-empty and free of NaN and
	// infinities.
	AssumptionValidity AssumptionID = "validity"

	// AssumptionDomain: argument values must lie in the operation's domain
	// (sample large enough, misrate achievable, and so on).
	AssumptionDomain AssumptionID = "domain"

	// AssumptionPositivity: all values must be strictly positive
	// (log-domain operations).
	AssumptionPositivity AssumptionID = "positivity"

	// AssumptionSparity: the sample must have positive spread; all-equal
	// values carry no dispersion information.
	AssumptionSparity AssumptionID = "sparity"
)

// Subject identifies which argument violated an assumption. Within one
// priority level the first sample (x) is always reported before the second
// (y).
type Subject string

const (
	SubjectX       Subject = "x"
	SubjectY       Subject = "y"
	SubjectMisrate Subject = "misrate"
)

// Violation is an assumption identifier paired with the argument that
// triggered it. It is the machine-readable payload of an AssumptionError and
// the value conformance fixtures assert against.
type Violation struct {
	ID      AssumptionID `json:"id"`
	Subject Subject      `json:"subject"`
}

// AssumptionError reports the first assumption violated by a call, in
// priority order.
type AssumptionError struct {
	Violation Violation
}

func (e *AssumptionError) Error() string {
	return fmt.Sprintf("assumption %s violated by %s", e.Violation.ID, e.Violation.Subject)
}

func newViolation(id AssumptionID, subject Subject) *AssumptionError {
	return &AssumptionError{Violation: Violation{ID: id, Subject: subject}}
}

// NewValidityError reports a validity violation for the given subject.
func NewValidityError(subject Subject) *AssumptionError {
	return newViolation(AssumptionValidity, subject)
}

// NewDomainError reports a domain violation for the given subject.
func NewDomainError(subject Subject) *AssumptionError {
	return newViolation(AssumptionDomain, subject)
}

// NewPositivityError reports a positivity violation for the given subject.
func NewPositivityError(subject Subject) *AssumptionError {
	return newViolation(AssumptionPositivity, subject)
}

// NewSparityError reports a sparity violation for the given subject.
func NewSparityError(subject Subject) *AssumptionError {
	return newViolation(AssumptionSparity, subject)
}

// checkValidity verifies x is non-empty and contains only finite values.
func checkValidity(x []float64, subject Subject) error {
	if len(x) == 0 {
		return NewValidityError(subject)
	}
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewValidityError(subject)
		}
	}
	return nil
}

// checkPositivity verifies every value of x is strictly positive.
func checkPositivity(x []float64, subject Subject) error {
	for _, v := range x {
		if v <= 0 {
			return NewPositivityError(subject)
		}
	}
	return nil
}

// checkMisrate verifies misrate is a number inside [0, 1].
func checkMisrate(misrate float64) error {
	if math.IsNaN(misrate) || misrate < 0 || misrate > 1 {
		return NewDomainError(SubjectMisrate)
	}
	return nil
}

// logSlice returns element-wise natural logarithms. Callers must have
// established positivity first.
func logSlice(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = math.Log(v)
	}
	return out
}
