package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/geprice/renderer"
	"github.com/google/renameio/v2"
	"github.com/google/subcommands"
)

type exportCmd struct {
	from, to string
	output   string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the daily prices of a commodity to a spreadsheet" }
func (*exportCmd) Usage() string {
	return `gep export [-from YYYY-MM] [-to YYYY-MM] -o <file.xlsx> <name>

  Writes the same days as 'gep query' into an xlsx workbook.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "First month of the range (defaults to -to).")
	f.StringVar(&c.to, "to", "", "Last month of the range (defaults to the current month).")
	f.StringVar(&c.output, "o", "", "Workbook file to write.")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.output == "" {
		fmt.Fprintln(os.Stderr, "-o is required")
		return subcommands.ExitUsageError
	}
	r, status := runRangeQuery(f, c.from, c.to)
	if status != subcommands.ExitSuccess {
		return status
	}

	var buf bytes.Buffer
	if err := renderer.WriteWorkbook(&buf, r.name, r.obs); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := renameio.WriteFile(c.output, buf.Bytes(), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Exported %d days of %s to %s\n", len(r.obs), r.name, c.output)
	return subcommands.ExitSuccess
}
