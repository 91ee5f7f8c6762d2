// Package httpstore is a read-only client for a JSONPlaceholder-style todo
// list endpoint. One GET per call, no auth, no caching, no retries.
package httpstore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todobrowser/internal/model"
)

// DefaultEndpoint is the public demo list.
const DefaultEndpoint = "https://jsonplaceholder.typicode.com/todos"

// limitParam is the query parameter that caps the number of returned records.
const limitParam = "_limit"

// Client fetches todos over HTTP.
type Client struct {
	endpoint string
	http     *http.Client
	logger   *log.Logger
}

// Options configure a Client. Zero values pick the defaults.
type Options struct {
	Endpoint string
	Timeout  time.Duration // 0 means no timeout
	HTTP     *http.Client
	Logger   *log.Logger
}

// New returns a Client for opts.Endpoint.
func New(opts Options) (*Client, error) {
	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	hc := opts.HTTP
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Client{endpoint: endpoint, http: hc, logger: logger}, nil
}

// Endpoint returns the base URL requests are sent to.
func (c *Client) Endpoint() string { return c.endpoint }

// Fetch requests at most limit todos. The count is sent as-is; callers gate it.
func (c *Client) Fetch(ctx context.Context, limit int) ([]model.Todo, error) {
	u, err := c.requestURL(limit)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	c.logger.Debug("fetching todos", "url", u)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get todos: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	var todos []model.Todo
	if err := json.NewDecoder(resp.Body).Decode(&todos); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	c.logger.Debug("fetched todos", "count", len(todos), "took", time.Since(start))
	return todos, nil
}

func (c *Client) requestURL(limit int) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set(limitParam, strconv.Itoa(limit))
	u.RawQuery = q.Encode()
	return u.String(), nil
}
