package geprice

import (
	"bytes"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/etnz/geprice/date"
	"github.com/gocarina/gocsv"
)

// twoDigit is a day or a month number, persisted on two digits.
type twoDigit int

func (n twoDigit) MarshalCSV() (string, error) { return date.FormatTwoDigit(int(n)), nil }

func (n *twoDigit) UnmarshalCSV(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*n = twoDigit(v)
	return nil
}

// monthLine is a line of a month file: DD,daily,average,volume.
type monthLine struct {
	Day     twoDigit `csv:"day"`
	Daily   int64    `csv:"daily"`
	Average int64    `csv:"average"`
	Volume  int64    `csv:"volume"`
}

// MonthPartition holds one record per day of a month for a single commodity.
//
// Records are indexed by day, from 1 to the number of days in the month. Index 0
// exists but is never persisted. Days without data hold a zero record.
type MonthPartition struct {
	month   date.YearMonth
	records []Record
}

// NewMonthPartition returns a partition for month m where every day has no data.
func NewMonthPartition(m date.YearMonth) (*MonthPartition, error) {
	n, err := date.DaysInMonth(m.Month, m.Year)
	if err != nil {
		return nil, err
	}
	p := &MonthPartition{month: m, records: make([]Record, n+1)}
	for day := 1; day <= n; day++ {
		p.records[day].Date = m.Day(day)
	}
	return p, nil
}

// DecodeMonthPartition reads a month file content. Days absent from r keep no data.
func DecodeMonthPartition(m date.YearMonth, r io.Reader) (*MonthPartition, error) {
	p, err := NewMonthPartition(m)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return p, nil
	}

	var lines []monthLine
	if err := gocsv.UnmarshalWithoutHeaders(bytes.NewReader(data), &lines); err != nil {
		return nil, fmt.Errorf("%w: month %v: %v", ErrMalformed, m, err)
	}
	for _, l := range lines {
		day := int(l.Day)
		if day < 1 || day > p.Days() {
			return nil, fmt.Errorf("%w: month %v: invalid day %d", ErrMalformed, m, day)
		}
		p.records[day] = Record{Date: m.Day(day), Daily: l.Daily, Average: l.Average, Volume: l.Volume}
	}
	return p, nil
}

// Month returns the month of this partition.
func (p *MonthPartition) Month() date.YearMonth { return p.month }

// Days returns the number of days in the partition.
func (p *MonthPartition) Days() int { return len(p.records) - 1 }

// Set overwrites the record of 'day'.
//
// day must be in 1..Days(); day 0 is accepted but never persisted.
func (p *MonthPartition) Set(day int, r Record) { p.records[day] = r }

// Get returns the record of 'day'.
func (p *MonthPartition) Get(day int) Record { return p.records[day] }

// Records iterates over days 1..Days() in order.
func (p *MonthPartition) Records() iter.Seq2[int, Record] {
	return func(yield func(int, Record) bool) {
		for day := 1; day < len(p.records); day++ {
			if !yield(day, p.records[day]) {
				return
			}
		}
	}
}

// MarshalText returns the month file content: one DD,daily,average,volume line
// per day, without a trailing newline.
func (p *MonthPartition) MarshalText() ([]byte, error) {
	lines := make([]monthLine, 0, p.Days())
	for day, r := range p.Records() {
		lines = append(lines, monthLine{Day: twoDigit(day), Daily: r.Daily, Average: r.Average, Volume: r.Volume})
	}
	var buf bytes.Buffer
	if err := gocsv.MarshalWithoutHeaders(lines, &buf); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
