package diary

import (
	"fmt"
	"time"
)

// Date is a Gregorian calendar date. The fields are unexported so that
// every non-zero Date comes from NewDate and is calendar-valid. The zero
// Date is not a calendar date; see IsZero.
type Date struct {
	year  int
	month int
	day   int
}

// CalendarError describes a year/month/day triple that is not a real date.
type CalendarError struct {
	Year, Month, Day int
	Reason           string
}

func (e *CalendarError) Error() string {
	return fmt.Sprintf("%04d-%02d-%02d is not a calendar date: %s", e.Year, e.Month, e.Day, e.Reason)
}

func NewDate(year, month, day int) (Date, error) {
	if year < 1 || year > 9999 {
		return Date{}, &CalendarError{year, month, day, "year must be between 1 and 9999"}
	}
	if month < 1 || month > 12 {
		return Date{}, &CalendarError{year, month, day, fmt.Sprintf("month %d is outside 1-12", month)}
	}
	n := DaysIn(year, month)
	if day < 1 || day > n {
		return Date{}, &CalendarError{year, month, day,
			fmt.Sprintf("%s %d has %d days", time.Month(month), year, n)}
	}
	return Date{year: year, month: month, day: day}, nil
}

func MustDate(year, month, day int) Date {
	d, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// IsLeapYear applies the Gregorian rule: divisible by 4, except centuries
// not divisible by 400.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

var daysInMonth = [...]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysIn returns 0 for a month outside 1-12.
func DaysIn(year, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return daysInMonth[month-1]
}

func (d Date) Year() int  { return d.year }
func (d Date) Month() int { return d.month }
func (d Date) Day() int   { return d.day }

// IsZero reports whether d is the zero Date rather than one from NewDate.
func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) Time() time.Time {
	return time.Date(d.year, time.Month(d.month), d.day, 0, 0, 0, 0, time.UTC)
}

func (d Date) Before(other Date) bool {
	if d.year != other.year {
		return d.year < other.year
	}
	if d.month != other.month {
		return d.month < other.month
	}
	return d.day < other.day
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}
