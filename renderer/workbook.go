package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/geprice"
	"github.com/xuri/excelize/v2"
)

// sheetName makes a valid worksheet name out of a commodity name.
func sheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '_'
		}
		return r
	}, name)
	if r := []rune(name); len(r) > 31 {
		name = string(r[:31])
	}
	if name == "" {
		return "Prices"
	}
	return name
}

// WriteWorkbook writes observations as an xlsx workbook with a single sheet
// named after the commodity: a header row then one row per day.
func WriteWorkbook(w io.Writer, name string, obs []geprice.Observation) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(name)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("cannot create sheet %q: %w", sheet, err)
	}
	header := []any{"Date", "Daily", "Average"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, o := range obs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{o.Date.String(), o.Daily, o.Average}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheet, "A", "A", 12); err != nil {
		return err
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("cannot write workbook: %w", err)
	}
	return nil
}
