package valueobject

import (
	"fmt"
	"strings"
)

// Unit is the unit of sale for a produce line.
// Free-text orders and catalog entries both express quantity against one
// of these units; a cart never mixes units within a single line.
type Unit string

const (
	UnitKG    Unit = "KG"
	UnitTray  Unit = "TRAY"
	UnitEach  Unit = "EACH"
	UnitLoose Unit = "LOOSE"
	UnitBag   Unit = "BAG"
)

// AllUnits lists every valid unit, in display order.
func AllUnits() []Unit {
	return []Unit{UnitKG, UnitTray, UnitEach, UnitLoose, UnitBag}
}

// IsValid checks if the unit is one of the known units
func (u Unit) IsValid() bool {
	switch u {
	case UnitKG, UnitTray, UnitEach, UnitLoose, UnitBag:
		return true
	}
	return false
}

// String returns the string representation of the unit
func (u Unit) String() string {
	return string(u)
}

// ParseUnit normalizes a free-text unit label to a Unit.
// Common aliases from natural-language input ("kg", "kilo", "trays",
// "pieces") are accepted; unknown labels return an error.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "KG", "KGS", "KILO", "KILOS", "KILOGRAM", "KILOGRAMS":
		return UnitKG, nil
	case "TRAY", "TRAYS":
		return UnitTray, nil
	case "EACH", "PIECE", "PIECES", "PCS", "UNIT", "UNITS":
		return UnitEach, nil
	case "LOOSE":
		return UnitLoose, nil
	case "BAG", "BAGS":
		return UnitBag, nil
	}
	return "", fmt.Errorf("unknown unit label: %q", s)
}

// ParseUnitOrDefault normalizes a free-text unit label, falling back to
// the given default when the label is unknown or empty.
func ParseUnitOrDefault(s string, fallback Unit) Unit {
	u, err := ParseUnit(s)
	if err != nil {
		return fallback
	}
	return u
}
