package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type fetchCmd struct {
	format string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetches the prices of commodities from the Grand Exchange" }
func (*fetchCmd) Usage() string {
	return `gep fetch [-format <format>] <name|id>...

Fetches the prices of each commodity and merges them into the price data folder.

Supported formats:
  - graph:    daily and average prices since the commodity exists, without volumes.
  - viewitem: the last 180 days, with traded volumes.
  - all:      viewitem then graph. Volumes of the last 180 days are kept
              while the full history is rewritten from the graph.

Commodities can be given by name (any case) when they are in the registry.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "all", "Source format: graph, viewitem or all.")
}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "at least one commodity is required")
		return subcommands.ExitUsageError
	}
	switch c.format {
	case "graph", "viewitem", "all":
	default:
		fmt.Fprintf(os.Stderr, "unknown format %q\n", c.format)
		return subcommands.ExitUsageError
	}

	a, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	client := a.client()

	for _, arg := range f.Args() {
		id, name, err := a.resolve(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}

		if c.format != "graph" {
			series, err := client.ViewItem(ctx, id)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error fetching %q: %v\n", arg, err)
				return subcommands.ExitFailure
			}
			// month files are named after the registry.
			if name != "" {
				series.Name = name
			}
			if err := a.store.AppendSeries(series); err != nil {
				fmt.Fprintf(os.Stderr, "Error storing %q: %v\n", arg, err)
				return subcommands.ExitFailure
			}
			name = series.Name
			fmt.Fprintf(stdout, "Stored %d days of %s (%v) from viewitem\n", len(series.Records), series.Name, id)
		}

		if c.format != "viewitem" {
			if name == "" {
				if name, err = client.Name(ctx, id); err != nil {
					fmt.Fprintf(os.Stderr, "Error: commodity %v is not in the registry and its name is unknown: %v\n", id, err)
					return subcommands.ExitFailure
				}
			}
			series, err := client.Graph(ctx, name, id)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error fetching %q: %v\n", arg, err)
				return subcommands.ExitFailure
			}
			if err := a.store.AppendSeries(series); err != nil {
				fmt.Fprintf(os.Stderr, "Error storing %q: %v\n", arg, err)
				return subcommands.ExitFailure
			}
			fmt.Fprintf(stdout, "Stored %d days of %s (%v) from graph\n", len(series.Records), name, id)
		}
	}
	return subcommands.ExitSuccess
}

