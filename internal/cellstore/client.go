// Package cellstore talks to the spreadsheet web app that owns the planner data.
//
// The web app exposes a single GET endpoint: "?cell=A1" reads a cell and
// answers {"value": ...}; adding "&value=..." writes it and answers
// {"status": "ok"}. Client.Get and Client.Set never fail loudly: a transport
// problem becomes a null value or a false result, and is logged.
package cellstore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"habit-bot/internal/errors"
	"habit-bot/internal/logging"
	"habit-bot/internal/sheet"
)

// Store is the narrow get/set contract the checklist cache depends on.
type Store interface {
	Get(ctx context.Context, cell sheet.CellAddress) Value
	Set(ctx context.Context, cell sheet.CellAddress, value string) bool
}

// Fetcher is implemented by stores that can tell a failed read from an
// empty cell.
type Fetcher interface {
	Fetch(ctx context.Context, cell sheet.CellAddress) (Value, error)
}

// DefaultTimeout bounds a single store call.
const DefaultTimeout = 10 * time.Second

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

// Client is the HTTP implementation of Store.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-call timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a client for the web app at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.NewInvalidInputError("store url", baseURL, "must be an absolute http(s) URL")
	}

	c := &Client{
		baseURL:    u,
		httpClient: http.DefaultClient,
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type getResponse struct {
	Value interface{} `json:"value"`
}

type setResponse struct {
	Status string `json:"status"`
}

// Fetch reads a cell, reporting failures as errors.
func (c *Client) Fetch(ctx context.Context, cell sheet.CellAddress) (Value, error) {
	var resp getResponse
	if err := c.call(ctx, "get", cell, nil, &resp); err != nil {
		return Null(), err
	}
	return NewValue(resp.Value), nil
}

// Write stores a cell value, reporting failures as errors.
func (c *Client) Write(ctx context.Context, cell sheet.CellAddress, value string) error {
	var resp setResponse
	if err := c.call(ctx, "set", cell, &value, &resp); err != nil {
		return err
	}
	if resp.Status != "ok" {
		return errors.NewTransportError("set", cell.String(), fmt.Errorf("store answered status %q", resp.Status))
	}
	return nil
}

// Get reads a cell and returns Null on any failure.
func (c *Client) Get(ctx context.Context, cell sheet.CellAddress) Value {
	v, err := c.Fetch(ctx, cell)
	if err != nil {
		logging.Errorf("cell store: %v", err)
		return Null()
	}
	return v
}

// Set writes a cell and returns false on any failure.
func (c *Client) Set(ctx context.Context, cell sheet.CellAddress, value string) bool {
	if err := c.Write(ctx, cell, value); err != nil {
		logging.Errorf("cell store: %v", err)
		return false
	}
	return true
}

func (c *Client) call(ctx context.Context, op string, cell sheet.CellAddress, value *string, out interface{}) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	u := *c.baseURL
	q := u.Query()
	q.Set("cell", cell.String())
	if value != nil {
		q.Set("value", *value)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return errors.NewTransportError(op, cell.String(), err)
	}

	logging.Debugf("cell store %s %s\n", op, cell)
	res, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return errors.NewTimeoutError(fmt.Sprintf("cell store %s %s", op, cell), c.timeout.String())
		}
		return errors.NewTransportError(op, cell.String(), err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(res.Body, maxResponseBytes))
		return errors.NewTransportError(op, cell.String(), fmt.Errorf("unexpected HTTP status %d", res.StatusCode))
	}

	if err := json.NewDecoder(io.LimitReader(res.Body, maxResponseBytes)).Decode(out); err != nil {
		return errors.NewTransportError(op, cell.String(), fmt.Errorf("decode response: %w", err))
	}
	return nil
}
