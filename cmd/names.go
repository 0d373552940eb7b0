package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/geprice"
	"github.com/etnz/geprice/renderer"
	"github.com/google/subcommands"
)

type namesCmd struct{}

func (*namesCmd) Name() string     { return "names" }
func (*namesCmd) Synopsis() string { return "list the commodities of the registry" }
func (*namesCmd) Usage() string {
	return `gep names [pattern]

  Lists the commodities of the registry, optionally only those whose name
  matches a glob pattern like "mithril*". Matching ignores case.
`
}

func (c *namesCmd) SetFlags(f *flag.FlagSet) {}

func (c *namesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "at most one pattern is accepted")
		return subcommands.ExitUsageError
	}
	a, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := a.registry.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var entries []geprice.Entry
	if f.NArg() == 0 {
		entries = a.registry.Entries()
	} else if entries, err = a.registry.Match(f.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	printMarkdown(renderer.NamesMarkdown(entries))
	return subcommands.ExitSuccess
}
