package diary

import (
	"github.com/shopspring/decimal"
)

// Dimension groups units that measure the same kind of thing.
type Dimension int

const (
	DimensionCount Dimension = iota
	DimensionMass
	DimensionVolume
	DimensionEnergy
)

func (d Dimension) String() string {
	switch d {
	case DimensionMass:
		return "mass"
	case DimensionVolume:
		return "volume"
	case DimensionEnergy:
		return "energy"
	default:
		return "count"
	}
}

func ParseDimension(s string) (Dimension, bool) {
	switch s {
	case "count":
		return DimensionCount, true
	case "mass":
		return DimensionMass, true
	case "volume":
		return DimensionVolume, true
	case "energy":
		return DimensionEnergy, true
	}
	return DimensionCount, false
}

// Unit is the canonical symbol of a measurement unit. The empty Unit means
// the quantity is a bare count.
type Unit string

const NoUnit Unit = ""

const (
	Gram      Unit = "g"
	Kilogram  Unit = "kg"
	Milligram Unit = "mg"
	Microgram Unit = "µg"
	Ounce     Unit = "oz"
	Pound     Unit = "lb"

	Millilitre Unit = "ml"
	Centilitre Unit = "cl"
	Decilitre  Unit = "dl"
	Litre      Unit = "l"
	Teaspoon   Unit = "tsp"
	Tablespoon Unit = "tbsp"
	Cup        Unit = "cup"

	Piece   Unit = "pcs"
	Serving Unit = "serving"
	Slice   Unit = "slice"

	Kilocalorie Unit = "kcal"
	Kilojoule   Unit = "kj"
)

// Quantity is an exact amount with an optional unit.
type Quantity struct {
	Amount decimal.Decimal
	Unit   Unit
}

func (q Quantity) HasUnit() bool {
	return q.Unit != NoUnit
}

// Equal compares amounts numerically, so 80 and 80.0 are equal.
func (q Quantity) Equal(other Quantity) bool {
	return q.Unit == other.Unit && q.Amount.Equal(other.Amount)
}

func (q Quantity) String() string {
	return FormatDecimal(q.Amount) + string(q.Unit)
}

// FormatDecimal renders d with exactly as many fractional digits as its
// exponent records, so "80.50" stays "80.50".
func FormatDecimal(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}
