// Package storeapi is the HTTP client for the hosted store backend. It turns
// one set of search criteria into exactly one network call and normalizes the
// backend's response envelopes into a single Outcome shape.
package storeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/refill-spot/site/config"
	"github.com/refill-spot/site/store"
)

var (
	// ErrTimeout means the request exceeded the bounded timeout.
	ErrTimeout = errors.New("store api request timed out")
	// ErrServer means the transport failed, the status was non-2xx, or the
	// envelope's own success flag was false.
	ErrServer = errors.New("store api server error")
)

// Query is one set of search criteria for the backend. Zero-valued fields
// are omitted from the request.
type Query struct {
	Lat        *float64
	Lng        *float64
	RadiusKm   float64
	Categories []string
	MinRating  float64
	Text       string
	Page       int // 1-based
	Limit      int
}

// Filtered reports whether the query needs the filtered-search endpoint.
// An anchor coordinate, category set, rating floor or free-text term all do;
// a bare page request goes to the unfiltered list.
func (q Query) Filtered() bool {
	return (q.Lat != nil && q.Lng != nil) ||
		len(q.Categories) > 0 || q.MinRating > 0 || q.Text != ""
}

// Pagination is the canonical pagination metadata, whatever shape the
// backend returned it in.
type Pagination struct {
	Page    int  `json:"page"`
	HasMore bool `json:"hasMore"`
	Total   int  `json:"total"`
}

// Outcome is the normalized result of one query attempt. Empty marks a valid
// zero-row first page, which is an outcome, not an error.
type Outcome struct {
	Items      []store.Summary
	Pagination Pagination
	Empty      bool
}

// Client calls the store backend over HTTP with a bounded timeout.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
}

// NewClient creates a client for the backend at baseURL (no trailing slash).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		timeout: config.StoreAPITimeout,
		http:    &http.Client{},
	}
}

// WithTimeout overrides the default request timeout. Used by tests and by
// callers that want a shorter bound.
func (c *Client) WithTimeout(d time.Duration) *Client {
	c.timeout = d
	return c
}

// Execute issues exactly one request for the query: the filtered-search
// endpoint when any filter is set, the unfiltered list otherwise.
func (c *Client) Execute(ctx context.Context, q Query) (Outcome, error) {
	if q.Filtered() {
		return c.Search(ctx, q)
	}
	return c.List(ctx, q.Page, q.Limit)
}

// List fetches one page of the unfiltered store list.
func (c *Client) List(ctx context.Context, page, limit int) (Outcome, error) {
	params := url.Values{}
	if page > 1 {
		params.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	return c.get(ctx, "/stores", params, page)
}

// Search fetches one page of the filtered store search.
func (c *Client) Search(ctx context.Context, q Query) (Outcome, error) {
	params := url.Values{}
	if q.Lat != nil && q.Lng != nil {
		params.Set("lat", strconv.FormatFloat(*q.Lat, 'f', -1, 64))
		params.Set("lng", strconv.FormatFloat(*q.Lng, 'f', -1, 64))
		if q.RadiusKm > 0 {
			params.Set("radius", strconv.FormatFloat(q.RadiusKm, 'f', -1, 64))
		}
	}
	if len(q.Categories) > 0 {
		params.Set("categories", strings.Join(q.Categories, ","))
	}
	if q.MinRating > 0 {
		params.Set("minRating", strconv.FormatFloat(q.MinRating, 'f', -1, 64))
	}
	if q.Text != "" {
		params.Set("query", q.Text)
	}
	if q.Page > 1 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	return c.get(ctx, "/stores/search", params, q.Page)
}

// envelope is the backend's response shape. The list endpoint may omit
// pagination; the search endpoint always sends it.
type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       []store.Summary `json:"data"`
	Pagination *Pagination     `json:"pagination"`
}

func (c *Client) get(ctx context.Context, path string, params url.Values, page int) (Outcome, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return Outcome{}, fmt.Errorf("%w: GET %s", ErrTimeout, path)
		}
		return Outcome{}, fmt.Errorf("%w: %v", ErrServer, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Outcome{}, fmt.Errorf("%w: status %d: %s", ErrServer, resp.StatusCode, string(body))
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return Outcome{}, fmt.Errorf("%w: bad envelope: %v", ErrServer, err)
	}
	return normalize(env, page)
}

// normalize is the single place envelope interpretation happens: the success
// flag, the optional pagination block and the empty-first-page case all
// resolve to one canonical Outcome here.
func normalize(env envelope, requestedPage int) (Outcome, error) {
	if !env.Success {
		if env.Message != "" {
			return Outcome{}, fmt.Errorf("%w: %s", ErrServer, env.Message)
		}
		return Outcome{}, ErrServer
	}

	if requestedPage < 1 {
		requestedPage = 1
	}

	out := Outcome{Items: env.Data}
	if env.Pagination != nil {
		out.Pagination = *env.Pagination
		if out.Pagination.Page == 0 {
			out.Pagination.Page = requestedPage
		}
	} else {
		out.Pagination = Pagination{
			Page:    requestedPage,
			HasMore: false,
			Total:   len(env.Data),
		}
	}

	if len(env.Data) == 0 && requestedPage == 1 {
		out.Empty = true
	}
	return out, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
