package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/geprice"
	"github.com/etnz/geprice/date"
	md "github.com/nao1215/markdown"
)

// QueryMarkdown renders the observations of a date-range query as a table.
func QueryMarkdown(name string, from, to date.YearMonth, obs []geprice.Observation) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s from %s to %s", name, from.ISO(), to.ISO()))
	if len(obs) == 0 {
		doc.PlainText("No price in this period.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Date", "Daily", "Average", "Spread"},
		Rows:      [][]string{},
	}
	for _, o := range obs {
		table.Rows = append(table.Rows, []string{
			o.Date.String(),
			Coins(o.Daily),
			Coins(o.Average),
			spread(o.Daily, o.Average),
		})
	}
	doc.Table(table)
	return doc.String()
}

// spread is the signed difference between the daily and the average price.
func spread(daily, average int64) string {
	switch d := daily - average; {
	case d > 0:
		return "+" + Coins(d)
	case d < 0:
		return "-" + Coins(-d)
	}
	return "0"
}
