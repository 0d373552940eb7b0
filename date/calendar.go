package date

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrInvalidMonth is returned for a month outside 1..12.
var ErrInvalidMonth = errors.New("invalid month")

var daysInMonth = [...]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeap reports whether year is a leap year in the Gregorian calendar.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days of month in year.
func DaysInMonth(month time.Month, year int) (int, error) {
	if month < time.January || month > time.December {
		return 0, fmt.Errorf("%w: %d", ErrInvalidMonth, int(month))
	}
	if month == time.February && IsLeap(year) {
		return 29, nil
	}
	return daysInMonth[month], nil
}

// FormatTwoDigit formats n on two digits, zero padded.
//
// It is meant for days and months; larger values are printed as is.
func FormatTwoDigit(n int) string {
	if n >= 0 && n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// IsAfter reports whether d is strictly later than ref.
func IsAfter(ref, d Date) bool {
	if d.y != ref.y {
		return d.y > ref.y
	}
	if d.m != ref.m {
		return d.m > ref.m
	}
	return d.d > ref.d
}
