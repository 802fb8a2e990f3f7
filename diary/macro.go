package diary

import (
	"sort"

	"github.com/shopspring/decimal"
)

// MacroKind is the canonical key of an inline nutrient override.
type MacroKind string

const (
	Calories     MacroKind = "calories"
	Protein      MacroKind = "protein"
	Carbohydrate MacroKind = "carbohydrate"
	Fat          MacroKind = "fat"
	SaturatedFat MacroKind = "saturated_fat"
	Fiber        MacroKind = "fiber"
	Sugar        MacroKind = "sugar"
	Sodium       MacroKind = "sodium"
	Alcohol      MacroKind = "alcohol"
)

// Overrides maps each macro kind to an explicitly supplied value.
type Overrides map[MacroKind]decimal.Decimal

// Keys returns the kinds in lexical order.
func (o Overrides) Keys() []MacroKind {
	keys := make([]MacroKind, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func (o Overrides) Equal(other Overrides) bool {
	if len(o) != len(other) {
		return false
	}
	for k, v := range o {
		w, ok := other[k]
		if !ok || !v.Equal(w) {
			return false
		}
	}
	return true
}
