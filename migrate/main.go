// Command migrate holds one-shot maintenance operations on a price data folder.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/etnz/geprice"
	"github.com/google/subcommands"
)

func main() {
	// The migrate tool needs its own set of flags, independent of the gep tool.
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)

	commander := subcommands.NewCommander(flag.CommandLine, "migrate")
	commander.Register(&registryCmd{}, "")
	commander.Register(&rebuildCmd{}, "")
	commander.Register(&checkCmd{}, "")
	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// --- registryCmd ---

type registryCmd struct {
	in       string
	inDelim  string
	out      string
	outDelim string
}

func (*registryCmd) Name() string     { return "registry" }
func (*registryCmd) Synopsis() string { return "rewrites a registry file with another delimiter" }
func (*registryCmd) Usage() string {
	return `migrate registry -in <item_ids> -in-delim ',' -out <new_item_ids> -out-delim ';'

Writes every entry of the source registry into a new registry file, sorted by id.
The destination file must not exist yet.
`
}
func (c *registryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.in, "in", "", "The path to the source registry file.")
	f.StringVar(&c.inDelim, "in-delim", ",", "The delimiter used by the source registry.")
	f.StringVar(&c.out, "out", "", "The path of the registry file to create.")
	f.StringVar(&c.outDelim, "out-delim", ";", "The delimiter to use in the new registry.")
}

func (c *registryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.in == "" || c.out == "" {
		fmt.Fprintln(os.Stderr, "Error: -in and -out flags are required.")
		return subcommands.ExitUsageError
	}
	inDelim, err := parseDelim(c.inDelim)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: -in-delim: %v\n", err)
		return subcommands.ExitUsageError
	}
	outDelim, err := parseDelim(c.outDelim)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: -out-delim: %v\n", err)
		return subcommands.ExitUsageError
	}
	n, err := convertRegistry(c.in, inDelim, c.out, outDelim)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error converting registry: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Successfully wrote %d entries to %s\n", n, c.out)
	return subcommands.ExitSuccess
}

func parseDelim(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == '\n' || (r >= '0' && r <= '9') {
		return 0, fmt.Errorf("invalid delimiter %q", s)
	}
	return r, nil
}

// convertRegistry copies the entries of registry 'in' to a new registry file 'out'.
func convertRegistry(in string, inDelim rune, out string, outDelim rune) (int, error) {
	if filepath.Clean(in) == filepath.Clean(out) {
		return 0, errors.New("source and destination are the same file")
	}
	if _, err := os.Stat(out); err == nil {
		return 0, fmt.Errorf("%q already exists", out)
	}
	reg := geprice.NewRegistry(in, inDelim)
	if err := reg.Load(); err != nil {
		return 0, err
	}
	entries := reg.Entries()
	for _, e := range entries {
		if err := geprice.AppendEntry(out, outDelim, e); err != nil {
			return 0, err
		}
	}
	return len(entries), nil
}

// --- rebuildCmd ---

type rebuildCmd struct {
	dataDir  string
	registry string
	delim    string
}

func (*rebuildCmd) Name() string { return "rebuild" }
func (*rebuildCmd) Synopsis() string {
	return "regenerates month files from the full histories"
}
func (*rebuildCmd) Usage() string {
	return `migrate rebuild -data-dir <price_data> [-registry <item_ids>]

Merges every full history of the data folder back into its month files.
When a registry is given, month files use the registry name of each commodity.
`
}
func (c *rebuildCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dataDir, "data-dir", geprice.DefaultRoot, "The price data folder.")
	f.StringVar(&c.registry, "registry", "", "The path to the registry file. Defaults to none.")
	f.StringVar(&c.delim, "delim", ",", "The delimiter used by the registry.")
}

func (c *rebuildCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var reg *geprice.Registry
	if c.registry != "" {
		delim, err := parseDelim(c.delim)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: -delim: %v\n", err)
			return subcommands.ExitUsageError
		}
		reg = geprice.NewRegistry(c.registry, delim)
	}
	n, err := rebuild(geprice.NewStore(c.dataDir), reg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rebuilding month files: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Successfully rebuilt %d commodities in %s\n", n, c.dataDir)
	return subcommands.ExitSuccess
}

// rebuild appends every full history of store back into it. reg may be nil.
func rebuild(store *geprice.Store, reg *geprice.Registry) (int, error) {
	ids, err := store.HistoryIDs()
	if err != nil {
		return 0, err
	}
	for _, id := range ids {
		series, err := store.ReadFullHistory(id)
		if err != nil {
			return 0, err
		}
		if reg != nil {
			if name, err := reg.CanonicalName(id); err == nil {
				series.Name = name
			} else if !errors.Is(err, geprice.ErrIDNotFound) {
				return 0, err
			}
		}
		if err := store.AppendSeries(series); err != nil {
			return 0, err
		}
	}
	return len(ids), nil
}

// --- checkCmd ---

type checkCmd struct {
	dataDir string
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "checks full histories against month files" }
func (*checkCmd) Usage() string {
	return `migrate check -data-dir <price_data>

Verifies that every full history is ordered by date and that every day it holds
has the same prices in the month file named after the history.
`
}
func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dataDir, "data-dir", geprice.DefaultRoot, "The price data folder.")
}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	problems, err := check(os.Stdout, geprice.NewStore(c.dataDir))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error checking %s: %v\n", c.dataDir, err)
		return subcommands.ExitFailure
	}
	if problems > 0 {
		fmt.Printf("Found %d problems.\n", problems)
		return subcommands.ExitFailure
	}
	fmt.Println("No problems found.")
	return subcommands.ExitSuccess
}

// check reports inconsistencies to w and returns how many it found.
func check(w io.Writer, store *geprice.Store) (int, error) {
	ids, err := store.HistoryIDs()
	if err != nil {
		return 0, err
	}
	problems := 0
	for _, id := range ids {
		series, err := store.ReadFullHistory(id)
		if err != nil {
			fmt.Fprintf(w, "%v: %v\n", id, err)
			problems++
			continue
		}
		if err := series.Check(); err != nil {
			fmt.Fprintf(w, "%v: %v\n", id, err)
			problems++
		}
		for _, r := range series.Records {
			p, err := store.LoadMonth(r.Date.YearMonth(), series.Name)
			if err != nil {
				fmt.Fprintf(w, "%v: %v\n", id, err)
				problems++
				break
			}
			got := p.Get(r.Date.Day())
			if got.Daily != r.Daily || got.Average != r.Average {
				fmt.Fprintf(w, "%v %q %v: history has %d,%d but month file has %d,%d\n", id, series.Name, r.Date, r.Daily, r.Average, got.Daily, got.Average)
				problems++
			}
		}
	}
	return problems, nil
}
