package geprice

import (
	"github.com/etnz/geprice/date"
	"github.com/shopspring/decimal"
)

// Summary describes a list of records at a glance.
type Summary struct {
	From, To date.Date // first and last day with a daily price
	Days     int       // days with a daily price

	First, Last int64 // daily price on From and To
	Min, Max    int64
	MeanDaily   decimal.Decimal

	// MeanVolume is computed over traded days only: a zero volume is "no data".
	MeanVolume decimal.Decimal
	TradedDays int

	// Change is the daily price variation between From and To, in percent.
	Change decimal.Decimal
}

// Summarize computes the Summary of records, that are expected in chronological order.
//
// Days without a daily price are ignored.
func Summarize(records []Record) Summary {
	var s Summary
	sum, volume := decimal.Zero, decimal.Zero
	for _, r := range records {
		if r.Volume != 0 {
			s.TradedDays++
			volume = volume.Add(decimal.NewFromInt(r.Volume))
		}
		if r.Daily == 0 {
			continue
		}
		if s.Days == 0 {
			s.From, s.First = r.Date, r.Daily
			s.Min, s.Max = r.Daily, r.Daily
		}
		s.To, s.Last = r.Date, r.Daily
		s.Min = min(s.Min, r.Daily)
		s.Max = max(s.Max, r.Daily)
		sum = sum.Add(decimal.NewFromInt(r.Daily))
		s.Days++
	}
	if s.Days > 0 {
		s.MeanDaily = sum.Div(decimal.NewFromInt(int64(s.Days))).Round(2)
		first := decimal.NewFromInt(s.First)
		s.Change = decimal.NewFromInt(s.Last).Sub(first).Div(first).Mul(decimal.NewFromInt(100)).Round(2)
	}
	if s.TradedDays > 0 {
		s.MeanVolume = volume.Div(decimal.NewFromInt(int64(s.TradedDays))).Round(2)
	}
	return s
}
