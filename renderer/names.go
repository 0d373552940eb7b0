package renderer

import (
	"bytes"

	"github.com/etnz/geprice"
	md "github.com/nao1215/markdown"
)

// NamesMarkdown renders registry entries as a table.
func NamesMarkdown(entries []geprice.Entry) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Commodities")
	if len(entries) == 0 {
		doc.PlainText("No commodity.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignRight, md.AlignLeft},
		Header:    []string{"ID", "Name"},
		Rows:      [][]string{},
	}
	for _, e := range entries {
		table.Rows = append(table.Rows, []string{e.ID.String(), e.Name})
	}
	doc.Table(table)
	return doc.String()
}
