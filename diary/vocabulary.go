package diary

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Vocabulary holds the closed token sets the parser recognises: meal labels,
// unit tokens and override keys. Lookups are case-insensitive.
//
// A Vocabulary is safe for concurrent reads. Mutating methods must not be
// called while a parse using the vocabulary is running; extend a Clone
// instead.
type Vocabulary struct {
	meals  map[string]MealKind
	units  map[string]Unit
	dims   map[Unit]Dimension
	macros map[string]MacroKind
}

func NewVocabulary() *Vocabulary {
	return &Vocabulary{
		meals:  make(map[string]MealKind),
		units:  make(map[string]Unit),
		dims:   make(map[Unit]Dimension),
		macros: make(map[string]MacroKind),
	}
}

// DefaultVocabulary returns a fresh copy of the built-in tables.
func DefaultVocabulary() *Vocabulary {
	v := NewVocabulary()
	for _, k := range []MealKind{Breakfast, Lunch, Dinner, Snack} {
		v.mustAddMeal(k.String(), k)
	}
	v.mustAddMeal("supper", Dinner)
	v.mustAddMeal("snacks", Snack)

	for _, u := range []struct {
		unit    Unit
		dim     Dimension
		aliases []string
	}{
		{Gram, DimensionMass, []string{"gram", "grams"}},
		{Kilogram, DimensionMass, []string{"kilogram", "kilograms"}},
		{Milligram, DimensionMass, []string{"milligram", "milligrams"}},
		{Microgram, DimensionMass, []string{"ug", "mcg"}},
		{Ounce, DimensionMass, nil},
		{Pound, DimensionMass, []string{"lbs"}},
		{Millilitre, DimensionVolume, []string{"milliliter", "millilitre"}},
		{Centilitre, DimensionVolume, nil},
		{Decilitre, DimensionVolume, nil},
		{Litre, DimensionVolume, []string{"liter", "litre"}},
		{Teaspoon, DimensionVolume, nil},
		{Tablespoon, DimensionVolume, nil},
		{Cup, DimensionVolume, []string{"cups"}},
		{Piece, DimensionCount, []string{"pc", "piece", "pieces"}},
		{Serving, DimensionCount, []string{"servings"}},
		{Slice, DimensionCount, []string{"slices"}},
		{Kilocalorie, DimensionEnergy, nil},
		{Kilojoule, DimensionEnergy, nil},
	} {
		if err := v.AddUnit(u.unit, u.dim, u.aliases...); err != nil {
			panic(err)
		}
	}

	for _, m := range []struct {
		kind    MacroKind
		aliases []string
	}{
		{Calories, []string{"kcal", "cal", "energy"}},
		{Protein, []string{"prot"}},
		{Carbohydrate, []string{"carbs", "carb", "carbohydrates"}},
		{Fat, nil},
		{SaturatedFat, []string{"satfat", "saturated-fat"}},
		{Fiber, []string{"fibre"}},
		{Sugar, []string{"sugars"}},
		{Sodium, nil},
		{Alcohol, nil},
	} {
		if err := v.AddMacro(m.kind, m.aliases...); err != nil {
			panic(err)
		}
	}
	return v
}

func (v *Vocabulary) Clone() *Vocabulary {
	c := NewVocabulary()
	for k, m := range v.meals {
		c.meals[k] = m
	}
	for k, u := range v.units {
		c.units[k] = u
	}
	for u, d := range v.dims {
		c.dims[u] = d
	}
	for k, m := range v.macros {
		c.macros[k] = m
	}
	return c
}

func (v *Vocabulary) mustAddMeal(alias string, kind MealKind) {
	if err := v.AddMealAlias(alias, kind); err != nil {
		panic(err)
	}
}

// AddMealAlias makes alias resolve to kind. Aliases consist of letters and
// single spaces.
func (v *Vocabulary) AddMealAlias(alias string, kind MealKind) error {
	if kind == MealOther {
		return fmt.Errorf("meal alias %q: cannot alias the free-form label", alias)
	}
	key := normalizeMeal(alias)
	if !IsMealToken(key) {
		return fmt.Errorf("meal alias %q: must consist of letters and spaces", alias)
	}
	if prev, ok := v.meals[key]; ok && prev != kind {
		return fmt.Errorf("meal alias %q: already means %s", alias, prev)
	}
	v.meals[key] = kind
	return nil
}

// AddUnit registers unit with its dimension; the unit symbol itself is
// always one of its tokens.
func (v *Vocabulary) AddUnit(unit Unit, dim Dimension, aliases ...string) error {
	if unit == NoUnit {
		return fmt.Errorf("unit: empty symbol")
	}
	if prev, ok := v.dims[unit]; ok && prev != dim {
		return fmt.Errorf("unit %q: already registered as %s", unit, prev)
	}
	tokens := append([]string{string(unit)}, aliases...)
	for _, tok := range tokens {
		key := strings.ToLower(tok)
		if !IsUnitToken(key) {
			return fmt.Errorf("unit %q: token %q must consist of letters only", unit, tok)
		}
		if prev, ok := v.units[key]; ok && prev != unit {
			return fmt.Errorf("unit %q: token %q already means %q", unit, tok, prev)
		}
	}
	v.dims[unit] = dim
	for _, tok := range tokens {
		v.units[strings.ToLower(tok)] = unit
	}
	return nil
}

// AddMacro registers an override key; the kind itself is always one of its
// tokens.
func (v *Vocabulary) AddMacro(kind MacroKind, aliases ...string) error {
	tokens := append([]string{string(kind)}, aliases...)
	for _, tok := range tokens {
		key := strings.ToLower(tok)
		if !IsMacroToken(key) {
			return fmt.Errorf("macro %q: token %q is not an identifier", kind, tok)
		}
		if prev, ok := v.macros[key]; ok && prev != kind {
			return fmt.Errorf("macro %q: token %q already means %q", kind, tok, prev)
		}
	}
	for _, tok := range tokens {
		v.macros[strings.ToLower(tok)] = kind
	}
	return nil
}

func (v *Vocabulary) MealKind(label string) (MealKind, bool) {
	k, ok := v.meals[normalizeMeal(label)]
	return k, ok
}

func (v *Vocabulary) Unit(token string) (Unit, bool) {
	u, ok := v.units[strings.ToLower(token)]
	return u, ok
}

func (v *Vocabulary) Dimension(unit Unit) (Dimension, bool) {
	d, ok := v.dims[unit]
	return d, ok
}

func (v *Vocabulary) Macro(token string) (MacroKind, bool) {
	k, ok := v.macros[strings.ToLower(token)]
	return k, ok
}

// MealTokens returns every meal token with its kind, sorted by token.
func (v *Vocabulary) MealTokens() []TokenEntry[MealKind] {
	return sortedEntries(v.meals)
}

func (v *Vocabulary) UnitTokens() []TokenEntry[Unit] {
	return sortedEntries(v.units)
}

func (v *Vocabulary) MacroTokens() []TokenEntry[MacroKind] {
	return sortedEntries(v.macros)
}

type TokenEntry[T any] struct {
	Token string
	Value T
}

func sortedEntries[T any](m map[string]T) []TokenEntry[T] {
	out := make([]TokenEntry[T], 0, len(m))
	for k, v := range m {
		out = append(out, TokenEntry[T]{Token: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Token < out[j].Token })
	return out
}

func normalizeMeal(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func IsMealToken(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 && !unicode.IsLetter(r) {
			return false
		}
		if !unicode.IsLetter(r) && r != ' ' {
			return false
		}
	}
	return true
}

func IsUnitToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func IsMacroToken(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case unicode.IsLetter(r):
		case i > 0 && (unicode.IsDigit(r) || r == '_' || r == '-'):
		default:
			return false
		}
	}
	return true
}
