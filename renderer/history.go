package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/geprice"
	md "github.com/nao1215/markdown"
)

// HistoryMarkdown renders the full history of a commodity, preceded by its summary.
func HistoryMarkdown(s geprice.Series) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("History for %s (%v)", s.Name, s.ID))

	sum := geprice.Summarize(s.Records)
	if sum.Days == 0 {
		doc.PlainText("No price recorded.")
		return doc.String()
	}
	doc.PlainText(fmt.Sprintf("%d days of prices from %s to %s.", sum.Days, sum.From, sum.To))

	doc.H2("Summary")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Metric", "Value"},
		Rows: [][]string{
			{"First", Coins(sum.First)},
			{"Last", md.Bold(Coins(sum.Last))},
			{"Change", Percent(sum.Change)},
			{"Min", Coins(sum.Min)},
			{"Max", Coins(sum.Max)},
			{"Mean", sum.MeanDaily.StringFixed(2) + " gp"},
			{"Mean volume", volumeMean(sum)},
		},
	})

	doc.H2("Prices")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Date", "Daily", "Average", "Volume"},
		Rows:      [][]string{},
	}
	for _, r := range s.Records {
		table.Rows = append(table.Rows, []string{
			r.Date.String(),
			Coins(r.Daily),
			Coins(r.Average),
			Volume(r.Volume),
		})
	}
	doc.Table(table)

	return doc.String()
}

func volumeMean(sum geprice.Summary) string {
	if sum.TradedDays == 0 {
		return "-"
	}
	return fmt.Sprintf("%s over %d days", sum.MeanVolume.StringFixed(0), sum.TradedDays)
}
