package parser

import (
	"fmt"

	"github.com/dhamidi/diary/diary"
)

var (
	dateItem = named("date", dateHeader)
	mealItem = named("meal", meal)
	dayItem  = named("day", day)
)

func day(in input) result[diary.Day] {
	header := dateItem(in)
	if header.failed() {
		return failure[diary.Day](in, header.err)
	}
	meals := section[diary.Meal]{
		item:        mealItem,
		terminators: []rule[struct{}]{dateProbe},
		empty: func(at input) *Error {
			return failAt(KindStructural, at, at, "meal",
				fmt.Sprintf("day %s has no meals", header.value))
		},
	}.many1(header.rest)
	if meals.failed() {
		return failure[diary.Day](in, meals.err)
	}
	list, _ := diary.FromSlice(meals.value)
	return success(diary.Day{Date: header.value, Meals: list}, meals.rest, meals.hint)
}

// document parses one or more days up to the end of input.
func document(in input) result[*diary.Document] {
	start := skipBlank(in)
	days := section[diary.Day]{
		item: dayItem,
		empty: func(at input) *Error {
			if at.eof() {
				return failAt(KindStructural, at, at, "date header", "diary is empty")
			}
			return failAt(KindStructural, at, at, "date header", "diary must start with a date header")
		},
	}.many1(start)
	if days.failed() {
		return failure[*diary.Document](in, days.err)
	}
	rest := skipBlank(days.rest)
	if !rest.eof() {
		return failure[*diary.Document](in, deeper(lexical(rest, "date header or end of input"), days.hint))
	}
	list, _ := diary.FromSlice(days.value)
	return success(&diary.Document{Days: list}, rest, nil)
}

var documentRule = named("document", document)
