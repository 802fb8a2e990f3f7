package parser

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dhamidi/diary/diary"
)

const dateForm = "date in YYYY-MM-DD form"

type rawDate struct {
	year, month, day int
}

// dateLiteral scans YYYY-M[M]-D[D]. The separator may also be '.' or '/',
// but both separators must be the same.
func dateLiteral(in input) result[rawDate] {
	malformed := func(at input, detail string) result[rawDate] {
		return failure[rawDate](in, failAt(KindLexical, in, at, dateForm, detail))
	}

	year, cur := digits(in)
	if len(year) != 4 {
		return malformed(cur, "")
	}
	sep := cur.peekByte(0)
	if sep != '-' && sep != '.' && sep != '/' {
		return malformed(cur, "")
	}
	month, cur := digits(cur.advance(1))
	if month == "" || len(month) > 2 {
		return malformed(cur, "month needs one or two digits")
	}
	if c := cur.peekByte(0); c != sep {
		if c == '-' || c == '.' || c == '/' {
			return malformed(cur, "separators must match")
		}
		return malformed(cur, "")
	}
	day, cur := digits(cur.advance(1))
	if day == "" || len(day) > 2 {
		return malformed(cur, "day needs one or two digits")
	}

	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	return success(rawDate{y, m, d}, cur, nil)
}

// calendarDate validates raw, the date written between start and end. The
// failure is reported at start and ranked by reach.
func calendarDate(raw rawDate, start, end, reach input) (diary.Date, *Error) {
	d, err := diary.NewDate(raw.year, raw.month, raw.day)
	if err != nil {
		detail := err.Error()
		var ce *diary.CalendarError
		if errors.As(err, &ce) {
			detail = fmt.Sprintf("%s: %s", start.text(end), ce.Reason)
		}
		return diary.Date{}, failAt(KindSemantic, start, reach, "calendar-valid date", detail)
	}
	return d, nil
}

func date(in input) result[diary.Date] {
	raw := dateLiteral(in)
	if raw.failed() {
		return failure[diary.Date](in, raw.err)
	}
	d, err := calendarDate(raw.value, in, raw.rest, raw.rest)
	if err != nil {
		return failure[diary.Date](in, err)
	}
	return success(d, raw.rest, nil)
}

// dateHeader matches a line holding only a date. The line is checked
// before the calendar so that a calendar failure outranks other readings of
// the same line.
func dateHeader(in input) result[diary.Date] {
	start := skipHSpace(in)
	raw := dateLiteral(start)
	if raw.failed() {
		return failure[diary.Date](in, raw.err)
	}
	lineEnd := skipHSpace(raw.rest)
	rest, err := endLine(raw.rest, "end of line after date")
	if err != nil {
		return failure[diary.Date](in, err)
	}
	d, err := calendarDate(raw.value, start, raw.rest, lineEnd)
	if err != nil {
		return failure[diary.Date](in, err)
	}
	return success(d, rest, nil)
}
