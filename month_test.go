package geprice

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewMonthPartition(t *testing.T) {
	testCases := []struct {
		name  string
		year  int
		month int
		want  int
	}{
		{"leap february", 2012, 2, 29},
		{"february", 2013, 2, 28},
		{"april", 2014, 4, 30},
		{"march", 2014, 3, 31},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := NewMonthPartition(ym(tc.year, tc.month))
			if err != nil {
				t.Fatalf("NewMonthPartition() unexpected error: %v", err)
			}
			if got := p.Days(); got != tc.want {
				t.Errorf("Days() = %d, want %d", got, tc.want)
			}
			for day, r := range p.Records() {
				if !r.IsZero() {
					t.Errorf("day %d = %v, want no data", day, r)
				}
				if r.Date.Day() != day {
					t.Errorf("day %d has date %v", day, r.Date)
				}
			}
		})
	}
}

func TestMonthPartition_MarshalText(t *testing.T) {
	p, err := NewMonthPartition(ym(2015, 2))
	if err != nil {
		t.Fatal(err)
	}
	p.Set(1, rec("2015-02-01", 120, 118, 3000))
	p.Set(28, rec("2015-02-28", 125, 119, 0))

	data, err := p.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() unexpected error: %v", err)
	}
	got := string(data)
	if strings.HasSuffix(got, "\n") {
		t.Errorf("MarshalText() ends with a newline")
	}
	lines := strings.Split(got, "\n")
	if len(lines) != 28 {
		t.Fatalf("MarshalText() has %d lines, want 28", len(lines))
	}
	want := map[int]string{
		0:  "01,120,118,3000",
		1:  "02,0,0,0",
		8:  "09,0,0,0",
		27: "28,125,119,0",
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i+1, lines[i], w)
		}
	}
}

func TestMonthPartition_RoundTrip(t *testing.T) {
	for _, m := range []int{1, 2, 4, 12} {
		p, err := NewMonthPartition(ym(2016, m))
		if err != nil {
			t.Fatal(err)
		}
		for day := 1; day <= p.Days(); day += 3 {
			p.Set(day, Record{Date: ym(2016, m).Day(day), Daily: int64(100 + day), Average: int64(90 + day), Volume: int64(day * 1000)})
		}
		data, err := p.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText() unexpected error: %v", err)
		}

		got, err := DecodeMonthPartition(ym(2016, m), strings.NewReader(string(data)))
		if err != nil {
			t.Fatalf("DecodeMonthPartition() unexpected error: %v", err)
		}
		for day := 1; day <= p.Days(); day++ {
			if diff := cmp.Diff(p.Get(day), got.Get(day)); diff != "" {
				t.Errorf("month %d day %d mismatch (-want +got):\n%s", m, day, diff)
			}
		}
	}
}

func TestDecodeMonthPartition(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantErr error
		day     int
		want    Record
	}{
		{
			name:  "empty file",
			input: "",
			day:   3,
			want:  rec("2014-04-03", 0, 0, 0),
		},
		{
			name:  "partial file",
			input: "03,250,240,17\n05,260,241,0",
			day:   3,
			want:  rec("2014-04-03", 250, 240, 17),
		},
		{
			name:  "missing day keeps defaults",
			input: "03,250,240,17\n05,260,241,0",
			day:   4,
			want:  rec("2014-04-04", 0, 0, 0),
		},
		{
			name:    "day out of the month",
			input:   "31,250,240,17",
			wantErr: ErrMalformed,
		},
		{
			name:    "not a number",
			input:   "03,abc,240,17",
			wantErr: ErrMalformed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := DecodeMonthPartition(ym(2014, 4), strings.NewReader(tc.input))
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("DecodeMonthPartition() error = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeMonthPartition() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, p.Get(tc.day)); diff != "" {
				t.Errorf("Get(%d) mismatch (-want +got):\n%s", tc.day, diff)
			}
		})
	}
}
