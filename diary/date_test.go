package diary

import (
	"errors"
	"testing"
)

func TestNewDate(t *testing.T) {
	tests := []struct {
		y, m, d int
		valid   bool
	}{
		{2024, 3, 1, true},
		{2023, 2, 28, true},
		{2023, 2, 29, false},
		{2024, 2, 29, true},
		{1900, 2, 29, false},
		{2000, 2, 29, true},
		{2024, 4, 31, false},
		{2024, 12, 31, true},
		{2024, 13, 1, false},
		{2024, 0, 1, false},
		{2024, 1, 0, false},
		{0, 1, 1, false},
	}

	for _, tt := range tests {
		_, err := NewDate(tt.y, tt.m, tt.d)
		if (err == nil) != tt.valid {
			t.Errorf("NewDate(%d, %d, %d): err = %v, want valid=%v", tt.y, tt.m, tt.d, err, tt.valid)
		}
		if err != nil {
			var ce *CalendarError
			if !errors.As(err, &ce) {
				t.Errorf("NewDate(%d, %d, %d): got %T, want *CalendarError", tt.y, tt.m, tt.d, err)
			}
		}
	}
}

func TestIsLeapYear(t *testing.T) {
	leap := map[int]bool{1600: true, 1700: false, 1996: true, 2000: true, 2023: false, 2024: true, 2100: false}
	for year, want := range leap {
		if got := IsLeapYear(year); got != want {
			t.Errorf("IsLeapYear(%d) = %v, want %v", year, got, want)
		}
	}
}

func TestDateStringAndOrder(t *testing.T) {
	a := MustDate(2024, 3, 1)
	b := MustDate(2024, 3, 2)
	if a.String() != "2024-03-01" {
		t.Errorf("got %q", a.String())
	}
	if !a.Before(b) || b.Before(a) {
		t.Errorf("expected %v before %v", a, b)
	}
	if got := a.Time().Format("2006-01-02"); got != "2024-03-01" {
		t.Errorf("Time() = %s", got)
	}
}

func TestCalendarErrorMessage(t *testing.T) {
	_, err := NewDate(2023, 2, 29)
	if err == nil {
		t.Fatal("expected error")
	}
	want := "2023-02-29 is not a calendar date: February 2023 has 28 days"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

func TestDateAccessors(t *testing.T) {
	d := MustDate(2024, 2, 29)
	if d.Year() != 2024 || d.Month() != 2 || d.Day() != 29 {
		t.Errorf("got %d-%d-%d", d.Year(), d.Month(), d.Day())
	}
	if d.IsZero() {
		t.Error("NewDate result reported as zero")
	}
	var zero Date
	if !zero.IsZero() {
		t.Error("zero Date not reported as zero")
	}
}
