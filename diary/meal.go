package diary

import "strings"

type MealKind int

const (
	MealOther MealKind = iota
	Breakfast
	Lunch
	Dinner
	Snack
)

func (k MealKind) String() string {
	switch k {
	case Breakfast:
		return "breakfast"
	case Lunch:
		return "lunch"
	case Dinner:
		return "dinner"
	case Snack:
		return "snack"
	default:
		return "other"
	}
}

// ParseMealKind matches only the canonical names, not aliases.
func ParseMealKind(s string) (MealKind, bool) {
	for _, k := range []MealKind{Breakfast, Lunch, Dinner, Snack} {
		if strings.EqualFold(s, k.String()) {
			return k, true
		}
	}
	return MealOther, false
}

// MealLabel is either one of the canonical meal kinds or a free-form label.
// Name is only meaningful for MealOther.
type MealLabel struct {
	Kind MealKind
	Name string
}

func Label(kind MealKind) MealLabel {
	return MealLabel{Kind: kind}
}

func OtherLabel(name string) MealLabel {
	return MealLabel{Kind: MealOther, Name: name}
}

func (l MealLabel) IsOther() bool {
	return l.Kind == MealOther
}

func (l MealLabel) String() string {
	if l.Kind == MealOther {
		return l.Name
	}
	return l.Kind.String()
}
