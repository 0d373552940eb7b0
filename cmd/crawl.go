package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/etnz/geprice"
	"github.com/etnz/geprice/grandexchange"
	"github.com/google/renameio/v2"
	"github.com/google/subcommands"
)

type crawlCmd struct {
	from, to int
	resume   bool
	discover bool
}

func (*crawlCmd) Name() string     { return "crawl" }
func (*crawlCmd) Synopsis() string { return "fetches a range of commodity ids from the Grand Exchange" }
func (*crawlCmd) Usage() string {
	return `gep crawl -from <id> -to <id> [-resume] [-discover]

Fetches the viewitem page of every id from -from to -to, one after the other,
and merges them into the price data folder. Ids unknown to the Grand Exchange
are skipped.

The last id processed is recorded in crawl.checkpoint in the price data folder.
With -resume, the crawl restarts after it.

With -discover, commodities missing from the registry are appended to it.
`
}

func (c *crawlCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.from, "from", 0, "First id to crawl.")
	f.IntVar(&c.to, "to", 0, "Last id to crawl (included).")
	f.BoolVar(&c.resume, "resume", false, "Start after the last id of the checkpoint.")
	f.BoolVar(&c.discover, "discover", false, "Append commodities missing from the registry to it.")
}

func (c *crawlCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.to < c.from || c.from < 0 {
		fmt.Fprintf(os.Stderr, "invalid id range %d..%d\n", c.from, c.to)
		return subcommands.ExitUsageError
	}
	a, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	from := c.from
	if c.resume {
		last, err := readCheckpoint(a.checkpointPath())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading checkpoint: %v\n", err)
			return subcommands.ExitFailure
		}
		from = max(from, int(last)+1)
	}
	var ids []geprice.ID
	for id := from; id <= c.to; id++ {
		ids = append(ids, geprice.ID(id))
	}

	stored, skipped := 0, 0
	visit := func(id geprice.ID, s geprice.Series, err error) error {
		if errors.Is(err, geprice.ErrNotFound) {
			skipped++
		} else {
			stored++
			if c.discover && !a.registry.Has(id) {
				if err := geprice.AppendEntry(a.cfg.RegistryPath(), a.cfg.Delimiter(), geprice.Entry{ID: id, Name: s.Name}); err != nil {
					return err
				}
				fmt.Fprintf(stdout, "Discovered %s (%v)\n", s.Name, id)
			}
		}
		return writeCheckpoint(a.checkpointPath(), id)
	}
	err = grandexchange.Crawl(ctx, a.client(), canonicalStore{a}, ids, visit)
	fmt.Fprintf(stdout, "Crawled %d commodities, skipped %d unknown ids\n", stored, skipped)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// readCheckpoint returns the last id of a crawl, or -1 when there is none.
func readCheckpoint(filename string) (geprice.ID, error) {
	data, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return -1, nil
	}
	if err != nil {
		return 0, err
	}
	id, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid checkpoint %q: %w", filename, err)
	}
	return geprice.ID(id), nil
}

// writeCheckpoint records id as the last id of a crawl.
func writeCheckpoint(filename string, id geprice.ID) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return err
	}
	return renameio.WriteFile(filename, []byte(id.String()+"\n"), 0o644)
}

// canonicalStore stores series under the name the registry knows them by.
type canonicalStore struct{ *app }

func (s canonicalStore) AppendSeries(series geprice.Series) error {
	if name, err := s.registry.CanonicalName(series.ID); err == nil {
		series.Name = name
	}
	return s.store.AppendSeries(series)
}
