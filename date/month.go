package date

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
	"time"
)

// YearMonth identifies a calendar month of a given year.
type YearMonth struct {
	Year  int
	Month time.Month
}

// Of returns the YearMonth for month and year, checking the month.
func Of(month time.Month, year int) (YearMonth, error) {
	if month < time.January || month > time.December {
		return YearMonth{}, fmt.Errorf("%w: %d", ErrInvalidMonth, int(month))
	}
	return YearMonth{Year: year, Month: month}, nil
}

// ParseYearMonth parses "2015-08" (or "2015-8").
func ParseYearMonth(s string) (YearMonth, error) {
	y, m, ok := strings.Cut(s, "-")
	if !ok {
		return YearMonth{}, fmt.Errorf("invalid month %q want format YYYY-MM", s)
	}
	year, err := strconv.Atoi(y)
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid year in %q: %w", s, err)
	}
	month, err := strconv.Atoi(m)
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid month in %q: %w", s, err)
	}
	return Of(time.Month(month), year)
}

// Days returns the number of days in this month.
func (ym YearMonth) Days() int {
	n, err := DaysInMonth(ym.Month, ym.Year)
	if err != nil {
		return 0
	}
	return n
}

// Day returns the date of the given day of this month.
func (ym YearMonth) Day(day int) Date { return Date{ym.Year, ym.Month, day} }

// Next returns the following month.
func (ym YearMonth) Next() YearMonth {
	if ym.Month == time.December {
		return YearMonth{Year: ym.Year + 1, Month: time.January}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month + 1}
}

// Before reports whether ym is strictly before x.
func (ym YearMonth) Before(x YearMonth) bool {
	if ym.Year != x.Year {
		return ym.Year < x.Year
	}
	return ym.Month < x.Month
}

// String returns "YYYY MM", the name of the month folder on disk.
func (ym YearMonth) String() string {
	return strconv.Itoa(ym.Year) + " " + FormatTwoDigit(int(ym.Month))
}

// ISO returns "YYYY-MM", the format read by ParseYearMonth.
func (ym YearMonth) ISO() string {
	return fmt.Sprintf("%04d-%s", ym.Year, FormatTwoDigit(int(ym.Month)))
}

// Through iterates over every month from 'from' to 'to', both included.
// Nothing is yielded when from is after to.
func Through(from, to YearMonth) iter.Seq[YearMonth] {
	return func(yield func(YearMonth) bool) {
		for ym := from; !to.Before(ym); ym = ym.Next() {
			if !yield(ym) {
				return
			}
		}
	}
}
