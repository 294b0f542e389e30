// Package metrology wraps the robust estimators with a measurement model:
// samples carry units, estimates come back as unit-tagged measurements, and
// two-sample operations reconcile their inputs to a common unit first.
package metrology

import "fmt"

// Unit is a measurement unit with identity, family, and conversion support.
// Units are compared by pointer; construct shared units once and register
// them.
type Unit struct {
	ID           string
	Family       string
	Abbreviation string
	FullName     string

	// BaseUnits is the size of this unit in the family's base unit.
	// Conversion between family members is the ratio of their BaseUnits.
	BaseUnits int64
}

// IsCompatible reports whether both units belong to the same family.
func (u *Unit) IsCompatible(other *Unit) bool {
	return u.Family == other.Family
}

func (u *Unit) String() string {
	return u.Abbreviation
}

// Finer returns the unit with smaller BaseUnits (higher precision).
func Finer(a, b *Unit) *Unit {
	if a.BaseUnits <= b.BaseUnits {
		return a
	}
	return b
}

// ConversionFactor returns the multiplier converting values from one unit to
// another within the same family.
func ConversionFactor(from, to *Unit) float64 {
	return float64(from.BaseUnits) / float64(to.BaseUnits)
}

// UnitMismatchError reports an operation across incompatible unit families.
type UnitMismatchError struct {
	Unit1 *Unit
	Unit2 *Unit
}

func (e *UnitMismatchError) Error() string {
	return fmt.Sprintf("can't convert %s to %s", e.Unit1.FullName, e.Unit2.FullName)
}

// Well-known dimensionless units.
var (
	NumberUnit    = &Unit{ID: "number", Family: "Number", FullName: "Number", BaseUnits: 1}
	RatioUnit     = &Unit{ID: "ratio", Family: "Ratio", FullName: "Ratio", BaseUnits: 1}
	DisparityUnit = &Unit{ID: "disparity", Family: "Disparity", FullName: "Disparity", BaseUnits: 1}
)
