package geprice

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testRegistry(t *testing.T, delim rune, content string) *Registry {
	t.Helper()
	filename := writeTestFile(t, t.TempDir(), DefaultRegistryFile, content)
	reg := NewRegistry(filename, delim)
	if err := reg.Load(); err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	return reg
}

func TestRegistry_Resolve(t *testing.T) {
	reg := testRegistry(t, ',', "Mithril ore,447\nCannonball,2\n\nRune bar,2363\n")

	testCases := []struct {
		input   string
		want    ID
		wantErr error
	}{
		{"MITHRIL ORE", 447, nil},
		{"mithril ore", 447, nil},
		{"Mithril Ore", 447, nil},
		{"cannonball", 2, nil},
		{"2363", 2363, nil},
		{"99999", 99999, nil},
		{"Dragon bones", 0, ErrNameNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := reg.Resolve(tc.input)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Resolve(%q) error = %v, want %v", tc.input, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("Resolve(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}

	name, err := reg.CanonicalName(447)
	if err != nil {
		t.Fatalf("CanonicalName() unexpected error: %v", err)
	}
	if name != "Mithril ore" {
		t.Errorf("CanonicalName(447) = %q, want %q", name, "Mithril ore")
	}
	if _, err := reg.CanonicalName(1); !errors.Is(err, ErrIDNotFound) {
		t.Errorf("CanonicalName(1) error = %v, want %v", err, ErrIDNotFound)
	}
}

func TestRegistry_Delimiter(t *testing.T) {
	reg := testRegistry(t, ';', "Mithril ore;447\nBronze bar, unnoted;2349\n")
	id, err := reg.Resolve("bronze bar, unnoted")
	if err != nil {
		t.Fatal(err)
	}
	if id != 2349 {
		t.Errorf("Resolve() = %v, want 2349", id)
	}
	if reg.Len() != 2 {
		t.Errorf("Len() = %d, want 2", reg.Len())
	}
}

func TestRegistry_LoadOnce(t *testing.T) {
	dir := t.TempDir()
	filename := writeTestFile(t, dir, DefaultRegistryFile, "Coal,453\n")
	reg := NewRegistry(filename, ',')
	if err := reg.Load(); err != nil {
		t.Fatal(err)
	}

	if err := AppendEntry(filename, ',', Entry{ID: 440, Name: "Iron ore"}); err != nil {
		t.Fatalf("AppendEntry() unexpected error: %v", err)
	}
	if err := reg.Load(); err != nil {
		t.Fatal(err)
	}
	if reg.Has(440) {
		t.Errorf("second Load() read the file again")
	}
	if got := readTestFile(t, filename); got != "Coal,453\nIron ore,440\n" {
		t.Errorf("registry file = %q", got)
	}

	missing := NewRegistry(filepath.Join(dir, "missing"), ',')
	first, second := missing.Load(), missing.Load()
	if first == nil || first != second {
		t.Errorf("Load() on missing file = %v then %v, want the same error", first, second)
	}
}

func TestRegistry_Invalid(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{"missing delimiter", "Coal 453\n"},
		{"invalid id", "Coal,abc\n"},
		{"empty name", ",453\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			filename := writeTestFile(t, t.TempDir(), DefaultRegistryFile, tc.content)
			if err := NewRegistry(filename, ',').Load(); err == nil {
				t.Errorf("Load() want error")
			}
		})
	}
}

func TestRegistry_Match(t *testing.T) {
	reg := testRegistry(t, ',', "Mithril ore,447\nMithril bar,2359\nCoal,453\n")

	testCases := []struct {
		pattern string
		want    []Entry
	}{
		{"mithril*", []Entry{{447, "Mithril ore"}, {2359, "Mithril bar"}}},
		{"*ORE", []Entry{{447, "Mithril ore"}}},
		{"c?al", []Entry{{453, "Coal"}}},
		{"dragon*", nil},
	}
	for _, tc := range testCases {
		t.Run(tc.pattern, func(t *testing.T) {
			got, err := reg.Match(tc.pattern)
			if err != nil {
				t.Fatalf("Match() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Match(%q) mismatch (-want +got):\n%s", tc.pattern, diff)
			}
		})
	}

	if _, err := reg.Match("[unclosed"); err == nil {
		t.Errorf("Match() with invalid pattern want error")
	}
}
