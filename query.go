package geprice

import (
	"fmt"

	"github.com/etnz/geprice/date"
)

// Observation is a day of a date-range query.
type Observation struct {
	Date    date.Date
	Daily   int64
	Average int64
}

// QueryRange returns the daily and average prices of commodity 'name' for every
// month from 'from' to 'to' inclusive.
//
// The name is resolved through the registry, so any capitalization (or an id)
// is accepted. Days where either price is missing are skipped. Observations are
// in chronological order, and a range where from is after to has none.
func QueryRange(reg *Registry, store *Store, name string, from, to date.YearMonth) ([]Observation, error) {
	id, err := reg.Resolve(name)
	if err != nil {
		return nil, err
	}
	canonical, err := reg.CanonicalName(id)
	if err != nil {
		return nil, err
	}

	var obs []Observation
	for m := range date.Through(from, to) {
		p, err := store.LoadMonth(m, canonical)
		if err != nil {
			return nil, fmt.Errorf("query %q: %w", canonical, err)
		}
		for _, r := range p.Records() {
			if r.Daily == 0 || r.Average == 0 {
				continue
			}
			obs = append(obs, Observation{Date: r.Date, Daily: r.Daily, Average: r.Average})
		}
	}
	return obs, nil
}
