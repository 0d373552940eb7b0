package date

import (
	"errors"
	"slices"
	"testing"
	"time"
)

func TestYearMonthString(t *testing.T) {
	if got, want := (YearMonth{2015, time.August}).String(), "2015 08"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := (YearMonth{2015, time.December}).String(), "2015 12"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestThrough(t *testing.T) {
	testCases := []struct {
		name     string
		from, to YearMonth
		want     []YearMonth
	}{
		{
			name: "single month",
			from: YearMonth{2015, time.August},
			to:   YearMonth{2015, time.August},
			want: []YearMonth{{2015, time.August}},
		},
		{
			name: "across a year",
			from: YearMonth{2015, time.November},
			to:   YearMonth{2016, time.February},
			want: []YearMonth{{2015, time.November}, {2015, time.December}, {2016, time.January}, {2016, time.February}},
		},
		{
			name: "reversed",
			from: YearMonth{2016, time.February},
			to:   YearMonth{2015, time.November},
			want: nil,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := slices.Collect(Through(tc.from, tc.to))
			if !slices.Equal(got, tc.want) {
				t.Errorf("Through() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseYearMonth(t *testing.T) {
	got, err := ParseYearMonth("2015-8")
	if err != nil {
		t.Fatalf("ParseYearMonth() unexpected error %v", err)
	}
	if want := (YearMonth{2015, time.August}); got != want {
		t.Errorf("ParseYearMonth() = %v, want %v", got, want)
	}
	if _, err := ParseYearMonth("2015-13"); !errors.Is(err, ErrInvalidMonth) {
		t.Errorf("ParseYearMonth(2015-13) error = %v, want ErrInvalidMonth", err)
	}
	if _, err := ParseYearMonth("2015"); err == nil {
		t.Error("ParseYearMonth(2015) expected an error")
	}
}

func TestYearMonthDays(t *testing.T) {
	if got := (YearMonth{2012, time.February}).Days(); got != 29 {
		t.Errorf("Days() = %d, want 29", got)
	}
	if got := (YearMonth{2012, 0}).Days(); got != 0 {
		t.Errorf("Days() = %d, want 0 for an invalid month", got)
	}
}
