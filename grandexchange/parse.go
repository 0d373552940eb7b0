package grandexchange

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/geprice"
	"github.com/etnz/geprice/date"
)

// Markers found in the source responses.
const (
	graphNotFound    = "404 - Page not found"
	viewItemProblem  = "Sorry, there was a problem with your request."
	graphAverageMark = "average"
)

// rateLimitMarkers are the phrases of a viewitem page refusing to serve because
// of the request rate. They are matched ignoring case.
var rateLimitMarkers = []string{
	"too many requests",
	"your ip has been blocked",
	"ip address has been blocked",
	"temporarily blocked",
}

// graphOffset moves graph timestamps, close to midnight in the source time
// zone, well inside the day they belong to.
const graphOffset = 12 * time.Hour

var (
	integers      = regexp.MustCompile(`\d+`)
	titleName     = regexp.MustCompile(`<title>(.*) - Grand Exchange`)
	priceStmt     = regexp.MustCompile(`average180\.push.*`)
	volumeStmt    = regexp.MustCompile(`trade180\.push.*`)
	spaceSequence = regexp.MustCompile(`\s+`)
)

// IsRateLimited reports whether a viewitem page is a rate limit refusal.
func IsRateLimited(raw string) bool {
	lower := strings.ToLower(raw)
	for _, m := range rateLimitMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// ParseGraph parses the graph feed of commodity id: a JSON document of a
// "daily" then an "average" object, each mapping epoch milliseconds to a price.
//
// Both objects must have the same number of entries, they are paired in order.
// The feed has no volume, every record has a zero volume.
func ParseGraph(name string, id geprice.ID, raw string) (geprice.Series, error) {
	if strings.Contains(raw, graphNotFound) {
		return geprice.Series{}, fmt.Errorf("%w: graph of commodity %v", geprice.ErrNotFound, id)
	}
	boundary := strings.Index(raw, graphAverageMark)
	if boundary < 0 {
		return geprice.Series{}, fmt.Errorf("%w: graph of commodity %v: no %q block", geprice.ErrMalformed, id, graphAverageMark)
	}
	daily := integers.FindAllString(raw[:boundary], -1)
	average := integers.FindAllString(raw[boundary:], -1)
	if len(daily)%2 != 0 || len(average)%2 != 0 {
		return geprice.Series{}, fmt.Errorf("%w: graph of commodity %v: odd number of values (%d daily, %d average)", geprice.ErrMalformed, id, len(daily), len(average))
	}
	if len(daily) != len(average) {
		return geprice.Series{}, fmt.Errorf("%w: graph of commodity %v: %d daily values but %d average values", geprice.ErrMalformed, id, len(daily)/2, len(average)/2)
	}

	series := geprice.Series{ID: id, Name: name, Records: make([]geprice.Record, 0, len(daily)/2)}
	for i := 0; i < len(daily); i += 2 {
		ms, err := strconv.ParseInt(daily[i], 10, 64)
		if err != nil {
			return geprice.Series{}, fmt.Errorf("%w: graph of commodity %v: timestamp %q: %v", geprice.ErrMalformed, id, daily[i], err)
		}
		price, err1 := strconv.ParseInt(daily[i+1], 10, 64)
		avg, err2 := strconv.ParseInt(average[i+1], 10, 64)
		if err1 != nil || err2 != nil {
			return geprice.Series{}, fmt.Errorf("%w: graph of commodity %v: invalid price at %q", geprice.ErrMalformed, id, daily[i])
		}
		on := date.FromTime(time.UnixMilli(ms).Add(graphOffset).UTC())
		series.Records = append(series.Records, geprice.Record{Date: on, Daily: price, Average: avg})
	}
	series.Sort()
	return series, nil
}

// ParseViewItem parses the viewitem page of commodity id. The page embeds the
// last 180 days in two lists of script statements:
//
//	average180.push([new Date('2015/08/19'), 152, 151]);
//	trade180.push([new Date('2015/08/19'), 3870]);
//
// Statements are paired in order, so both lists must have the same length.
// The name is read from the page title.
func ParseViewItem(id geprice.ID, raw string) (geprice.Series, error) {
	if IsRateLimited(raw) {
		return geprice.Series{}, fmt.Errorf("%w: viewitem of commodity %v", geprice.ErrRateLimited, id)
	}
	if strings.Contains(raw, viewItemProblem) {
		return geprice.Series{}, fmt.Errorf("%w: viewitem of commodity %v", geprice.ErrNotFound, id)
	}
	title := titleName.FindStringSubmatch(raw)
	if title == nil {
		return geprice.Series{}, fmt.Errorf("%w: viewitem of commodity %v: no title", geprice.ErrMalformed, id)
	}
	name := strings.TrimSpace(spaceSequence.ReplaceAllString(title[1], " "))
	if name == "" {
		return geprice.Series{}, fmt.Errorf("%w: viewitem of commodity %v: empty name", geprice.ErrMalformed, id)
	}

	prices := priceStmt.FindAllString(raw, -1)
	volumes := volumeStmt.FindAllString(raw, -1)
	if len(prices) != len(volumes) {
		return geprice.Series{}, fmt.Errorf("%w: viewitem of commodity %v: %d price statements but %d volume statements", geprice.ErrMalformed, id, len(prices), len(volumes))
	}

	series := geprice.Series{ID: id, Name: name, Records: make([]geprice.Record, 0, len(prices))}
	for i := range prices {
		r, err := parsePriceStatement(prices[i], volumes[i])
		if err != nil {
			return geprice.Series{}, fmt.Errorf("%w: viewitem of commodity %v: statement %d: %v", geprice.ErrMalformed, id, i, err)
		}
		series.Records = append(series.Records, r)
	}
	series.Sort()
	return series, nil
}

// parsePriceStatement reads a price statement and its paired volume statement.
//
// Both start with the "180" of the list name, then year, month, day. The price
// statement carries the daily price then the average (optional), the volume
// statement the volume.
func parsePriceStatement(price, volume string) (geprice.Record, error) {
	p, err := atoi64s(integers.FindAllString(price, -1))
	if err != nil {
		return geprice.Record{}, err
	}
	if len(p) < 5 {
		return geprice.Record{}, fmt.Errorf("want at least 5 values in %q", price)
	}
	v, err := atoi64s(integers.FindAllString(volume, -1))
	if err != nil {
		return geprice.Record{}, err
	}
	if len(v) < 5 {
		return geprice.Record{}, fmt.Errorf("want at least 5 values in %q", volume)
	}
	on, err := date.Valid(int(p[1]), time.Month(p[2]), int(p[3]))
	if err != nil {
		return geprice.Record{}, err
	}
	if v[1] != p[1] || v[2] != p[2] || v[3] != p[3] {
		return geprice.Record{}, fmt.Errorf("price of %v paired with volume of %d-%d-%d", on, v[1], v[2], v[3])
	}
	r := geprice.Record{Date: on, Daily: p[4], Volume: v[4]}
	if len(p) > 5 {
		r.Average = p[5]
	}
	return r, nil
}

func atoi64s(tokens []string) ([]int64, error) {
	values := make([]int64, len(tokens))
	for i, t := range tokens {
		v, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}
