package parser

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dhamidi/diary/diary"
)

// mealHeader matches a line of letters and spaces, optionally ended by ':'.
// Labels the vocabulary knows get their kind; anything else is kept as a
// named label.
func mealHeader(in input) result[diary.MealLabel] {
	start := skipHSpace(in)
	if !unicode.IsLetter(start.peek()) {
		return failure[diary.MealLabel](in, lexical(start, "meal label"))
	}
	_, cur := scanWhile(start, func(r rune) bool { return unicode.IsLetter(r) || isHSpace(r) })
	text := strings.TrimRightFunc(start.text(cur), isHSpace)
	if cur.peekByte(0) == ':' {
		cur = cur.advance(1)
	}
	rest, err := endLine(cur, "end of meal header")
	if err != nil {
		return failure[diary.MealLabel](in, err)
	}
	if kind, ok := in.env.vocab.MealKind(text); ok {
		return success(diary.Label(kind), rest, nil)
	}
	return success(diary.OtherLabel(strings.Join(strings.Fields(text), " ")), rest, nil)
}

// probe turns r into a terminator test.
func probe[T any](r rule[T]) rule[struct{}] {
	return func(in input) result[struct{}] {
		res := r(in)
		if res.failed() {
			return failure[struct{}](in, res.err)
		}
		return success(struct{}{}, in, nil)
	}
}

var (
	entryItem  = named("food entry", foodEntry)
	dateProbe  = probe(named("date", dateHeader))
	mealProbe  = probe(named("meal header", mealHeader))
	headerItem = named("meal header", mealHeader)
)

func meal(in input) result[diary.Meal] {
	header := headerItem(in)
	if header.failed() {
		return failure[diary.Meal](in, header.err)
	}
	entries := section[diary.FoodEntry]{
		item:        entryItem,
		terminators: []rule[struct{}]{dateProbe, mealProbe},
		empty: func(at input) *Error {
			err := failAt(KindStructural, at, at, "food entry",
				fmt.Sprintf("meal %q has no food entries", header.value.String()))
			// a free-form label may be a food entry missing its quantity
			if header.value.IsOther() {
				if e := entryItem(in); e.failed() {
					err.Note = e.err
				}
			}
			return err
		},
	}.many1(header.rest)
	if entries.failed() {
		return failure[diary.Meal](in, entries.err)
	}
	list, _ := diary.FromSlice(entries.value)
	return success(diary.Meal{Label: header.value, Entries: list}, entries.rest, entries.hint)
}
