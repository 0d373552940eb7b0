package geprice

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/etnz/geprice/date"
	"github.com/gocarina/gocsv"
	"github.com/google/renameio/v2"
)

// This file contains the code to persist price data in a folder.
//
// The layout is:
//
//	<root>/master_list/<id>.csv    full history: the name on the first line, then
//	                               one year,MM,DD,daily,average,volume line per day.
//	<root>/<YYYY MM>/<name>.csv    one DD,daily,average,volume line per day of that month.
//
// Month files are always rewritten whole. Each rewrite goes to a temporary file
// that is then renamed, so a crash never leaves a truncated file behind.

// DefaultRoot is the conventional folder of a Store.
const DefaultRoot = "price_data"

const masterListDir = "master_list"

// historyLine is a line of a full history file.
type historyLine struct {
	Year    int      `csv:"year"`
	Month   twoDigit `csv:"month"`
	Day     twoDigit `csv:"day"`
	Daily   int64    `csv:"daily"`
	Average int64    `csv:"average"`
	Volume  int64    `csv:"volume"`
}

// Store is a folder of price data files.
//
// A Store supports a single writer per commodity at a time.
type Store struct {
	root string
}

// NewStore returns a Store rooted at folder root. The folder is created on first write.
func NewStore(root string) *Store { return &Store{root: root} }

// Root returns the folder of the store.
func (s *Store) Root() string { return s.root }

// HistoryPath returns the full history file of commodity id.
func (s *Store) HistoryPath(id ID) string {
	return filepath.Join(s.root, masterListDir, id.String()+".csv")
}

// MonthPath returns the file of commodity 'name' for month m. The name is case sensitive.
func (s *Store) MonthPath(m date.YearMonth, name string) string {
	return filepath.Join(s.root, m.String(), name+".csv")
}

// checkName rejects names that cannot be used as a file name.
func checkName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("empty commodity name")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("invalid commodity name %q", name)
	}
	return nil
}

// LoadMonth reads the partition of commodity 'name' for month m.
// A missing file is not an error, it returns a partition without data.
func (s *Store) LoadMonth(m date.YearMonth, name string) (*MonthPartition, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	filename := s.MonthPath(m, name)
	f, err := os.Open(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return NewMonthPartition(m)
	}
	if err != nil {
		return nil, fmt.Errorf("load error: cannot open %q: %w", filename, err)
	}
	defer f.Close()

	p, err := DecodeMonthPartition(m, f)
	if err != nil {
		return nil, fmt.Errorf("load error %q: %w", filename, err)
	}
	return p, nil
}

// AppendSeries merges series into the store.
//
// Each record overwrites the day it belongs to, except for the volume: when
// the record has no volume but the store already knows one for that day, the
// known volume is kept. Every month touched is rewritten, then the full history
// file of the commodity is replaced by the merged records.
//
// Appending the same series twice leaves the store as after the first time.
func (s *Store) AppendSeries(series Series) error {
	if err := checkName(series.Name); err != nil {
		return fmt.Errorf("persist error: commodity %v: %w", series.ID, err)
	}

	// work on a copy, the caller keeps its series untouched.
	records := slices.Clone(series.Records)

	months := make(map[date.YearMonth]*MonthPartition)
	var order []date.YearMonth
	for i := range records {
		r := &records[i]
		m := r.Date.YearMonth()
		p, ok := months[m]
		if !ok {
			var err error
			if p, err = s.LoadMonth(m, series.Name); err != nil {
				return err
			}
			months[m] = p
			order = append(order, m)
		}
		day := r.Date.Day()
		if prev := p.Get(day); prev.Volume != 0 && r.Volume == 0 {
			r.Volume = prev.Volume
		}
		p.Set(day, *r)
	}

	for _, m := range order {
		data, err := months[m].MarshalText()
		if err != nil {
			return fmt.Errorf("persist error: month %v of %q: %w", m, series.Name, err)
		}
		filename := s.MonthPath(m, series.Name)
		if err := writeFile(filename, data); err != nil {
			return err
		}
		log.Printf("write-month-file name=%q", filename)
	}

	merged := Series{ID: series.ID, Name: series.Name, Records: records}
	merged.Sort()
	var buf bytes.Buffer
	if err := EncodeHistory(&buf, merged); err != nil {
		return fmt.Errorf("persist error: history of %v: %w", series.ID, err)
	}
	filename := s.HistoryPath(series.ID)
	if err := writeFile(filename, buf.Bytes()); err != nil {
		return err
	}
	log.Printf("write-history-file name=%q records=%d", filename, len(merged.Records))
	return nil
}

// ReadFullHistory reads the full history of commodity id.
// It returns ErrNotFound if the store has no history for it.
func (s *Store) ReadFullHistory(id ID) (Series, error) {
	filename := s.HistoryPath(id)
	f, err := os.Open(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return Series{}, fmt.Errorf("%w: no history for commodity %v", ErrNotFound, id)
	}
	if err != nil {
		return Series{}, fmt.Errorf("load error: cannot open %q: %w", filename, err)
	}
	defer f.Close()

	series, err := DecodeHistory(f)
	if err != nil {
		return Series{}, fmt.Errorf("load error %q: %w", filename, err)
	}
	series.ID = id
	return series, nil
}

// HistoryIDs returns the ids of every commodity with a full history, in increasing order.
func (s *Store) HistoryIDs() ([]ID, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, masterListDir))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load error: %w", err)
	}
	var ids []ID
	for _, e := range entries {
		base, ok := strings.CutSuffix(e.Name(), ".csv")
		if !ok || e.IsDir() {
			continue
		}
		id, err := ParseID(base)
		if err != nil {
			log.Printf("skip-history-file name=%q", e.Name())
			continue
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

// EncodeHistory writes the full history format of series: the name, then a
// line per record.
func EncodeHistory(w io.Writer, series Series) error {
	if _, err := fmt.Fprintln(w, series.Name); err != nil {
		return err
	}
	if len(series.Records) == 0 {
		return nil
	}
	lines := make([]historyLine, 0, len(series.Records))
	for _, r := range series.Records {
		lines = append(lines, historyLine{
			Year:    r.Date.Year(),
			Month:   twoDigit(r.Date.Month()),
			Day:     twoDigit(r.Date.Day()),
			Daily:   r.Daily,
			Average: r.Average,
			Volume:  r.Volume,
		})
	}
	return gocsv.MarshalWithoutHeaders(lines, w)
}

// DecodeHistory reads the full history format. The returned series has no ID.
func DecodeHistory(r io.Reader) (Series, error) {
	br := bufio.NewReader(r)
	name, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return Series{}, err
	}
	series := Series{Name: strings.TrimRight(name, "\r\n")}
	if series.Name == "" {
		return Series{}, fmt.Errorf("%w: missing commodity name", ErrMalformed)
	}

	rest, err := io.ReadAll(br)
	if err != nil {
		return Series{}, err
	}
	if len(bytes.TrimSpace(rest)) == 0 {
		return series, nil
	}
	var lines []historyLine
	if err := gocsv.UnmarshalWithoutHeaders(bytes.NewReader(rest), &lines); err != nil {
		return Series{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	series.Records = make([]Record, 0, len(lines))
	for _, l := range lines {
		on, err := date.Valid(l.Year, time.Month(l.Month), int(l.Day))
		if err != nil {
			return Series{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		series.Records = append(series.Records, Record{Date: on, Daily: l.Daily, Average: l.Average, Volume: l.Volume})
	}
	series.Sort()
	return series, nil
}

// writeFile replaces filename with data, creating its folder if needed.
func writeFile(filename string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("persist error: cannot create folder for %q: %w", filename, err)
	}
	if err := renameio.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("persist error: cannot write %q: %w", filename, err)
	}
	return nil
}
