package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/geprice"
	"github.com/etnz/geprice/date"
	"github.com/etnz/geprice/renderer"
	"github.com/google/subcommands"
)

type queryCmd struct {
	from, to string
}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "display the daily prices of a commodity over a range of months" }
func (*queryCmd) Usage() string {
	return `gep query [-from YYYY-MM] [-to YYYY-MM] <name>

  Displays every day with both a daily and an average price, from the first
  day of -from to the last day of -to. Both default to the current month.
`
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "First month of the range (defaults to -to).")
	f.StringVar(&c.to, "to", "", "Last month of the range (defaults to the current month).")
}

// monthRange parses the -from and -to flags of range commands.
func monthRange(from, to string) (date.YearMonth, date.YearMonth, error) {
	end := date.Today().YearMonth()
	if to != "" {
		var err error
		if end, err = date.ParseYearMonth(to); err != nil {
			return date.YearMonth{}, date.YearMonth{}, err
		}
	}
	start := end
	if from != "" {
		var err error
		if start, err = date.ParseYearMonth(from); err != nil {
			return date.YearMonth{}, date.YearMonth{}, err
		}
	}
	return start, end, nil
}

// rangeResult is the outcome of a date-range query command.
type rangeResult struct {
	name     string
	from, to date.YearMonth
	obs      []geprice.Observation
}

// runRangeQuery parses the range flags, and runs the query for the only argument of f.
func runRangeQuery(f *flag.FlagSet, from, to string) (*rangeResult, subcommands.ExitStatus) {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "exactly one commodity is required")
		return nil, subcommands.ExitUsageError
	}
	start, end, err := monthRange(from, to)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return nil, subcommands.ExitUsageError
	}
	a, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return nil, subcommands.ExitFailure
	}
	obs, err := geprice.QueryRange(a.registry, a.store, f.Arg(0), start, end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	_, name, _ := a.resolve(f.Arg(0))
	return &rangeResult{name: name, from: start, to: end, obs: obs}, subcommands.ExitSuccess
}

func (c *queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, status := runRangeQuery(f, c.from, c.to)
	if status != subcommands.ExitSuccess {
		return status
	}
	printMarkdown(renderer.QueryMarkdown(r.name, r.from, r.to, r.obs))
	return subcommands.ExitSuccess
}
