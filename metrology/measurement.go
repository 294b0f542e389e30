package metrology

import (
	"fmt"
	"strconv"
)

// Measurement is an estimate tagged with its unit.
type Measurement struct {
	Value float64
	Unit  *Unit
}

// NewMeasurement creates a measurement; a nil unit defaults to NumberUnit.
func NewMeasurement(value float64, unit *Unit) Measurement {
	if unit == nil {
		unit = NumberUnit
	}
	return Measurement{Value: value, Unit: unit}
}

func (m Measurement) String() string {
	s := strconv.FormatFloat(m.Value, 'G', -1, 64)
	if m.Unit != nil && m.Unit.Abbreviation != "" {
		return fmt.Sprintf("%s %s", s, m.Unit.Abbreviation)
	}
	return s
}

// Bounds is an interval estimate tagged with its unit; Lower <= Upper.
type Bounds struct {
	Lower float64
	Upper float64
	Unit  *Unit
}

func (b Bounds) String() string {
	lo := strconv.FormatFloat(b.Lower, 'G', -1, 64)
	hi := strconv.FormatFloat(b.Upper, 'G', -1, 64)
	if b.Unit != nil && b.Unit.Abbreviation != "" {
		return fmt.Sprintf("[%s; %s] %s", lo, hi, b.Unit.Abbreviation)
	}
	return fmt.Sprintf("[%s; %s]", lo, hi)
}
