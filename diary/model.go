// Package diary holds the typed form of a parsed food diary: documents made
// of days, days made of meals, meals made of food entries.
package diary

// Document is the result of parsing a whole diary. Days keep source order;
// a date that appears twice yields two Day values.
type Document struct {
	Days NonEmpty[Day]
}

type Day struct {
	Date  Date
	Meals NonEmpty[Meal]
}

type Meal struct {
	Label   MealLabel
	Entries NonEmpty[FoodEntry]
}

type FoodEntry struct {
	Name      string
	Quantity  Quantity
	Overrides Overrides
}

// Equal reports structural equality, comparing decimals by value.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	if d.Days.Len() != other.Days.Len() {
		return false
	}
	for i, day := range d.Days.All() {
		if !day.Equal(other.Days.At(i)) {
			return false
		}
	}
	return true
}

func (d Day) Equal(other Day) bool {
	if d.Date != other.Date || d.Meals.Len() != other.Meals.Len() {
		return false
	}
	for i, m := range d.Meals.All() {
		if !m.Equal(other.Meals.At(i)) {
			return false
		}
	}
	return true
}

func (m Meal) Equal(other Meal) bool {
	if m.Label != other.Label || m.Entries.Len() != other.Entries.Len() {
		return false
	}
	for i, e := range m.Entries.All() {
		if !e.Equal(other.Entries.At(i)) {
			return false
		}
	}
	return true
}

func (e FoodEntry) Equal(other FoodEntry) bool {
	return e.Name == other.Name &&
		e.Quantity.Equal(other.Quantity) &&
		e.Overrides.Equal(other.Overrides)
}

// Dates returns the distinct dates in order of first appearance.
func (d *Document) Dates() []Date {
	seen := make(map[Date]bool)
	var dates []Date
	for _, day := range d.Days.All() {
		if !seen[day.Date] {
			seen[day.Date] = true
			dates = append(dates, day.Date)
		}
	}
	return dates
}
