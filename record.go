package geprice

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/etnz/geprice/date"
)

// ID is the Grand Exchange object id of a commodity.
type ID int

func (id ID) String() string { return strconv.Itoa(int(id)) }

// ParseID parses a decimal commodity id.
func ParseID(s string) (ID, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid commodity id %q: %w", s, err)
	}
	return ID(i), nil
}

// Record is one day of market data for a commodity.
//
// Zero is used for "no data" in every numeric field. A zero Volume is
// therefore ambiguous with a day without trades.
type Record struct {
	Date    date.Date
	Daily   int64 // market price that day
	Average int64 // trailing 180 days average price, as reported by the source
	Volume  int64 // traded quantity that day
}

// IsZero reports whether r carries no data at all.
func (r Record) IsZero() bool { return r.Daily == 0 && r.Average == 0 && r.Volume == 0 }

// String returns the full history line of this record: year,MM,DD,daily,average,volume.
func (r Record) String() string {
	return fmt.Sprintf("%d,%s,%s,%d,%d,%d", r.Date.Year(), date.FormatTwoDigit(int(r.Date.Month())), date.FormatTwoDigit(r.Date.Day()), r.Daily, r.Average, r.Volume)
}

// Series is the ordered list of records of a single commodity.
type Series struct {
	ID      ID
	Name    string
	Records []Record
}

// Sort sorts records chronologically and removes duplicated days, keeping the
// last one appended, so that later data has priority.
func (s *Series) Sort() {
	slices.SortStableFunc(s.Records, func(a, b Record) int {
		switch {
		case a.Date.Before(b.Date):
			return -1
		case a.Date.After(b.Date):
			return 1
		}
		return 0
	})
	out := s.Records[:0]
	for _, r := range s.Records {
		if n := len(out); n > 0 && out[n-1].Date == r.Date {
			out[n-1] = r
			continue
		}
		out = append(out, r)
	}
	clear(s.Records[len(out):])
	s.Records = out
}

// Check verifies that records are strictly ordered by date.
func (s Series) Check() error {
	for i := 1; i < len(s.Records); i++ {
		if !s.Records[i].Date.After(s.Records[i-1].Date) {
			return fmt.Errorf("series %v %q: record %v is not after %v", s.ID, s.Name, s.Records[i].Date, s.Records[i-1].Date)
		}
	}
	return nil
}

// Latest returns the last record of the series, and false if it is empty.
func (s Series) Latest() (Record, bool) {
	if len(s.Records) == 0 {
		return Record{}, false
	}
	return s.Records[len(s.Records)-1], true
}
