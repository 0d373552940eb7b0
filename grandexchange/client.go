// Package grandexchange reads commodity prices from the Old School Grand Exchange.
//
// The source publishes each commodity in two formats: a JSON "graph" feed with
// daily and average prices since the commodity exists, and a "viewitem" HTML
// page with the last 180 days including traded volumes. Both are parsed into a
// geprice.Series.
//
// The source refuses to serve clients that go too fast. A Client paces its
// requests and retries refused ones after a pause.
package grandexchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/geprice"
	"golang.org/x/time/rate"
	"gopkg.in/matryer/try.v1"
)

const (
	// DefaultBaseURL is the root of the Old School Grand Exchange database.
	DefaultBaseURL = "http://services.runescape.com/m=itemdb_oldschool"
	// DefaultRequestDelay is the minimum delay between two requests.
	DefaultRequestDelay = 2 * time.Second
	// DefaultBackoff is the pause after a rate limited request.
	DefaultBackoff = 5 * time.Second
	// DefaultMaxAttempts is the number of attempts for a rate limited request.
	DefaultMaxAttempts = 10
)

// Client fetches commodity data from the Grand Exchange.
type Client struct {
	baseURL     string
	http        *http.Client
	limiter     *rate.Limiter
	maxAttempts int
	backoff     time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the root URL of the source.
func WithBaseURL(u string) Option { return func(c *Client) { c.baseURL = u } }

// WithHTTPClient sets the http.Client used for requests.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithRequestDelay sets the minimum delay between two requests. Zero disables pacing.
func WithRequestDelay(d time.Duration) Option {
	return func(c *Client) {
		if d <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// WithRetry sets how many times a rate limited request is attempted, and the
// pause between attempts. maxAttempts is capped to try.MaxRetries.
func WithRetry(maxAttempts int, backoff time.Duration) Option {
	return func(c *Client) {
		c.maxAttempts = min(max(maxAttempts, 1), try.MaxRetries)
		c.backoff = backoff
	}
}

// WithDiskCache keeps successful responses in dir for the day.
func WithDiskCache(dir string) Option {
	return func(c *Client) {
		base := c.http.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		h := *c.http
		h.Transport = &diskCache{base: base, dir: dir}
		c.http = &h
	}
}

// NewClient returns a Client for the Grand Exchange.
//
// Options are applied in order, so WithDiskCache wraps the client set by a
// previous WithHTTPClient.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:     DefaultBaseURL,
		http:        &http.Client{Timeout: 30 * time.Second},
		limiter:     rate.NewLimiter(rate.Every(DefaultRequestDelay), 1),
		maxAttempts: DefaultMaxAttempts,
		backoff:     DefaultBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GraphURL returns the address of the graph feed of commodity id.
func (c *Client) GraphURL(id geprice.ID) string {
	return c.baseURL + "/api/graph/" + id.String() + ".json"
}

// ViewItemURL returns the address of the viewitem page of commodity id.
func (c *Client) ViewItemURL(id geprice.ID) string {
	return c.baseURL + "/viewitem?obj=" + id.String()
}

// DetailURL returns the address of the catalogue detail of commodity id.
func (c *Client) DetailURL(id geprice.ID) string {
	return c.baseURL + "/api/catalogue/detail.json?item=" + id.String()
}

// Graph fetches and parses the graph feed of commodity id. The feed does not
// contain the name, so it must be given.
func (c *Client) Graph(ctx context.Context, name string, id geprice.ID) (geprice.Series, error) {
	raw, err := c.Get(ctx, c.GraphURL(id))
	if err != nil {
		return geprice.Series{}, fmt.Errorf("graph of commodity %v: %w", id, err)
	}
	return ParseGraph(name, id, raw)
}

// ViewItem fetches and parses the viewitem page of commodity id.
func (c *Client) ViewItem(ctx context.Context, id geprice.ID) (geprice.Series, error) {
	raw, err := c.Get(ctx, c.ViewItemURL(id))
	if err != nil {
		return geprice.Series{}, fmt.Errorf("viewitem of commodity %v: %w", id, err)
	}
	return ParseViewItem(id, raw)
}

// Name returns the name of commodity id, read from the catalogue.
func (c *Client) Name(ctx context.Context, id geprice.ID) (string, error) {
	raw, err := c.Get(ctx, c.DetailURL(id))
	if err != nil {
		return "", fmt.Errorf("detail of commodity %v: %w", id, err)
	}
	var jobj any
	if err := json.Unmarshal([]byte(raw), &jobj); err != nil {
		return "", fmt.Errorf("%w: detail of commodity %v: %v", geprice.ErrMalformed, id, err)
	}
	path := "$.item.name"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", fmt.Errorf("%w: detail of commodity %v: %q %v", geprice.ErrMalformed, id, path, err)
	}
	name, ok := jval.(string)
	if !ok || name == "" {
		return "", fmt.Errorf("%w: detail of commodity %v: %q is not a name: %v", geprice.ErrMalformed, id, path, jval)
	}
	return name, nil
}

// Get returns the body of addr.
//
// Rate limited requests are attempted again after a pause, until they succeed
// or the maximum number of attempts is reached. The error then wraps
// geprice.ErrRateLimited.
func (c *Client) Get(ctx context.Context, addr string) (string, error) {
	var body string
	err := try.Do(func(attempt int) (bool, error) {
		var err error
		body, err = c.get(ctx, addr)
		if !errors.Is(err, geprice.ErrRateLimited) || attempt >= c.maxAttempts {
			return false, err
		}
		log.Printf("rate-limited url=%q attempt=%d backoff=%v", addr, attempt, c.backoff)
		t := time.NewTimer(c.backoff)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return false, fmt.Errorf("%w while waiting to retry: %v", ctx.Err(), err)
		case <-t.C:
		}
		return true, err
	})
	if errors.Is(err, geprice.ErrRateLimited) {
		return "", fmt.Errorf("gave up after %d attempts: %w", c.maxAttempts, err)
	}
	return body, err
}

// get performs a single paced GET request.
func (c *Client) get(ctx context.Context, addr string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("cannot read %v: %w", addr, err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", fmt.Errorf("%w: %v", geprice.ErrRateLimited, resp.Status)
	case resp.StatusCode == http.StatusNotFound:
		return "", fmt.Errorf("%w: %v", geprice.ErrNotFound, resp.Status)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("cannot http GET %v%v: %v", req.URL.Host, req.URL.Path, resp.Status)
	}
	body := string(data)
	if IsRateLimited(body) {
		return "", fmt.Errorf("%w: %v answered with a refusal page", geprice.ErrRateLimited, req.URL.Host)
	}
	return body, nil
}
