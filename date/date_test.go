package date

import (
	"errors"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestDaysInMonth(t *testing.T) {
	testCases := []struct {
		month time.Month
		year  int
		want  int
	}{
		{time.February, 2000, 29},
		{time.February, 1900, 28},
		{time.February, 2012, 29},
		{time.February, 2013, 28},
		{time.February, 2400, 29},
		{time.February, 2100, 28},
		{time.March, 2014, 31},
		{time.April, 2014, 30},
		{time.December, 2015, 31},
		{time.January, 2015, 31},
	}
	for _, tc := range testCases {
		got, err := DaysInMonth(tc.month, tc.year)
		if err != nil {
			t.Fatalf("DaysInMonth(%d, %d) unexpected error %v", tc.month, tc.year, err)
		}
		if got != tc.want {
			t.Errorf("DaysInMonth(%d, %d) = %d, want %d", tc.month, tc.year, got, tc.want)
		}
	}
}

// TestDaysInMonthMatchesTime checks every month of four centuries against the time package.
func TestDaysInMonthMatchesTime(t *testing.T) {
	for year := 1800; year < 2200; year++ {
		for month := time.January; month <= time.December; month++ {
			want := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
			got, err := DaysInMonth(month, year)
			if err != nil || got != want {
				t.Fatalf("DaysInMonth(%d, %d) = %d, %v, want %d", month, year, got, err, want)
			}
		}
	}
}

func TestDaysInMonth_InvalidMonth(t *testing.T) {
	for _, m := range []time.Month{0, 13, -1} {
		if _, err := DaysInMonth(m, 2015); !errors.Is(err, ErrInvalidMonth) {
			t.Errorf("DaysInMonth(%d) error = %v, want ErrInvalidMonth", m, err)
		}
	}
}

func TestFormatTwoDigit(t *testing.T) {
	testCases := map[int]string{0: "00", 1: "01", 9: "09", 10: "10", 31: "31", 99: "99"}
	for in, want := range testCases {
		if got := FormatTwoDigit(in); got != want {
			t.Errorf("FormatTwoDigit(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestIsAfter(t *testing.T) {
	ref := New(2015, 8, 21)
	testCases := []struct {
		name string
		d    Date
		want bool
	}{
		{"same day", New(2015, 8, 21), false},
		{"next day", New(2015, 8, 22), true},
		{"previous day", New(2015, 8, 20), false},
		{"later month earlier day", New(2015, 9, 1), true},
		{"earlier month later day", New(2015, 7, 31), false},
		{"later year", New(2016, 1, 1), true},
		{"earlier year", New(2014, 12, 31), false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsAfter(ref, tc.d); got != tc.want {
				t.Errorf("IsAfter(%v, %v) = %v, want %v", ref, tc.d, got, tc.want)
			}
			if got := tc.d.After(ref); got != tc.want {
				t.Errorf("%v.After(%v) = %v, want %v", tc.d, ref, got, tc.want)
			}
		})
	}
}

func TestValid(t *testing.T) {
	if _, err := Valid(2015, time.February, 29); err == nil {
		t.Error("Valid(2015-02-29) expected an error")
	}
	if _, err := Valid(2016, time.February, 29); err != nil {
		t.Errorf("Valid(2016-02-29) unexpected error %v", err)
	}
	if _, err := Valid(2016, 13, 1); !errors.Is(err, ErrInvalidMonth) {
		t.Errorf("Valid(2016-13-01) error = %v, want ErrInvalidMonth", err)
	}
}

func TestParse(t *testing.T) {
	got, err := Parse("2025-7-1")
	if err != nil {
		t.Fatalf("Parse() unexpected error %v", err)
	}
	if want := New(2025, time.July, 1); got != want {
		t.Errorf("Parse() = %v, want %v", got, want)
	}
	if got.String() != "2025-07-01" {
		t.Errorf("String() = %q, want %q", got.String(), "2025-07-01")
	}
}
