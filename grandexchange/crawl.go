package grandexchange

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/etnz/geprice"
)

// Appender stores series, like *geprice.Store.
type Appender interface {
	AppendSeries(geprice.Series) error
}

// VisitFunc is called after each id of a crawl, with the stored series or the
// geprice.ErrNotFound error for ids unknown to the source. Returning an error
// stops the crawl.
type VisitFunc func(id geprice.ID, series geprice.Series, err error) error

// Crawl fetches the viewitem page of each id in turn and appends it to store.
//
// Each id is processed to completion before the next one. Unknown ids are
// skipped, any other error stops the crawl and is returned.
func Crawl(ctx context.Context, c *Client, store Appender, ids []geprice.ID, visit VisitFunc) error {
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		series, err := c.ViewItem(ctx, id)
		if errors.Is(err, geprice.ErrNotFound) {
			log.Printf("skip-commodity id=%v", id)
			if verr := visit(id, geprice.Series{ID: id}, err); verr != nil {
				return verr
			}
			continue
		}
		if err != nil {
			return fmt.Errorf("crawl stopped at %v: %w", id, err)
		}
		if err := store.AppendSeries(series); err != nil {
			return fmt.Errorf("crawl stopped at %v: %w", id, err)
		}
		log.Printf("crawl-commodity id=%v name=%q records=%d", id, series.Name, len(series.Records))
		if err := visit(id, series, nil); err != nil {
			return err
		}
	}
	return nil
}
