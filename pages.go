package lcswap

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// pageEnvelope is the wire shape every paginated endpoint wraps its results
// in. Next is a fully qualified URL to the following page, or null on the
// last one.
type pageEnvelope struct {
	Count      int64           `json:"count"`
	Next       string          `json:"next"`
	Previous   string          `json:"previous"`
	TotalPages int64           `json:"total_pages"`
	Results    json.RawMessage `json:"results"`
}

// Page is one assembled result set from a paginated endpoint. In first-page
// mode TotalPages and Limit report the first page's parameters; a fetch-all
// result carries Count and Results alone, so the two modes marshal to the
// same shapes the upstream API's consumers already rely on.
type Page[T any] struct {
	Count      int64 `json:"count"`
	TotalPages int64 `json:"total_pages,omitempty"`
	Limit      int   `json:"limit,omitempty"`
	Results    []T   `json:"results"`
}

// ListOptions control a paginated listing. A zero Limit falls back to the
// endpoint's default. All switches from first-page mode to following the
// next-page cursor until exhaustion, one request per page. Timeout overrides
// the client default per call.
type ListOptions struct {
	Limit   int
	All     bool
	Timeout time.Duration
}

func (o ListOptions) limitOr(def int) int {
	if o.Limit > 0 {
		return o.Limit
	}
	return def
}

// fetchPage issues a single GET against a paginated endpoint and returns the
// undecoded results along with the pagination bookkeeping.
func (c *Client) fetchPage(ctx context.Context, url string, timeout time.Duration) (*pageEnvelope, error) {
	var env pageEnvelope
	if err := c.do(ctx, http.MethodGet, url, nil, timeout, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// collectPages drives a paginated listing: fetch the first page, then either
// stop or follow the next cursor to the end, normalizing each page with
// parse and appending in server order. Any transport or parse failure aborts
// the whole fetch; no partial result is returned and nothing is retried.
func collectPages[T any](ctx context.Context, c *Client, firstURL string, limit int, opts ListOptions, parse func([]byte) ([]T, error)) (*Page[T], error) {
	env, err := c.fetchPage(ctx, firstURL, opts.Timeout)
	if err != nil {
		return nil, err
	}
	items, err := parse(env.Results)
	if err != nil {
		return nil, err
	}

	page := &Page[T]{Count: env.Count, Results: items}
	if !opts.All {
		page.TotalPages = env.TotalPages
		page.Limit = limit
		return page, nil
	}

	for next := env.Next; next != ""; {
		env, err = c.fetchPage(ctx, next, opts.Timeout)
		if err != nil {
			return nil, err
		}
		items, err = parse(env.Results)
		if err != nil {
			return nil, err
		}
		page.Results = append(page.Results, items...)
		next = env.Next
	}
	return page, nil
}

// rawItems splits an undecoded results array element-wise for the raw
// listing variants.
func rawItems(data []byte) ([]json.RawMessage, error) {
	var out []json.RawMessage
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("results: %w", err)
	}
	return out, nil
}
