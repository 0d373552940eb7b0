package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/geprice"
	"github.com/etnz/geprice/date"
	"github.com/google/go-cmp/cmp"
)

func TestParseDelim(t *testing.T) {
	tests := []struct {
		in      string
		want    rune
		wantErr bool
	}{
		{in: ",", want: ','},
		{in: ";", want: ';'},
		{in: "", wantErr: true},
		{in: ",,", wantErr: true},
		{in: "7", wantErr: true},
		{in: "\n", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseDelim(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseDelim(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseDelim(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConvertRegistry(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "item_ids")
	out := filepath.Join(dir, "item_ids.new")
	if err := os.WriteFile(in, []byte("Mithril bar,2359\nCoal,453\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	n, err := convertRegistry(in, ',', out, ';')
	if err != nil {
		t.Fatalf("convertRegistry() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("convertRegistry() = %d entries, want 2", n)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("Coal;453\nMithril bar;2359\n", string(got)); diff != "" {
		t.Errorf("new registry mismatch (-want +got):\n%s", diff)
	}

	if _, err := convertRegistry(in, ',', out, ';'); err == nil {
		t.Error("convertRegistry() to an existing file succeeded, want error")
	}
	if _, err := convertRegistry(in, ',', in, ';'); err == nil {
		t.Error("convertRegistry() onto itself succeeded, want error")
	}
}

func TestRebuildAndCheck(t *testing.T) {
	dir := t.TempDir()
	store := geprice.NewStore(dir)
	day := date.New(2015, 8, 19)
	series := geprice.Series{ID: 453, Name: "coal", Records: []geprice.Record{
		{Date: day, Daily: 152, Average: 151, Volume: 120},
		{Date: day.Add(1), Daily: 155, Average: 151},
	}}
	if err := store.AppendSeries(series); err != nil {
		t.Fatal(err)
	}

	var report strings.Builder
	if n, err := check(&report, store); err != nil || n != 0 {
		t.Fatalf("check() = %d, %v, want no problem; report:\n%s", n, err, report.String())
	}

	// month files named after the registry are missing until rebuilt.
	regFile := filepath.Join(dir, geprice.DefaultRegistryFile)
	if err := geprice.AppendEntry(regFile, ',', geprice.Entry{ID: 453, Name: "Coal"}); err != nil {
		t.Fatal(err)
	}
	n, err := rebuild(store, geprice.NewRegistry(regFile, ','))
	if err != nil {
		t.Fatalf("rebuild() failed: %v", err)
	}
	if n != 1 {
		t.Errorf("rebuild() = %d, want 1", n)
	}
	p, err := store.LoadMonth(day.YearMonth(), "Coal")
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Get(19); got.Daily != 152 || got.Volume != 120 {
		t.Errorf("rebuilt day 19 = %+v, want daily 152 and volume 120", got)
	}

	// break the month file that the history now points to.
	if err := os.WriteFile(store.MonthPath(day.YearMonth(), "Coal"), []byte("19,1,1,0"), 0o644); err != nil {
		t.Fatal(err)
	}
	report.Reset()
	n, err = check(&report, store)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("check() = %d problems, want 2; report:\n%s", n, report.String())
	}
}
