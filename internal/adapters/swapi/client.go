// Package swapi is a typed client for the SWAPI people search.
package swapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/okian/yodataller/internal/domain/model"
	"github.com/okian/yodataller/pkg/metrics"
)

const searchPath = "/api/people/?search="

// Client searches people on a SWAPI-compatible server. It is immutable after
// New and safe for concurrent use.
type Client struct {
	http    *http.Client
	baseURL string
	timeout time.Duration
}

// New builds a client whose every request is bounded by timeout.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	if timeout <= 0 {
		return nil, fmt.Errorf("%w: timeout must be positive, got %s", ErrConfiguration, timeout)
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: base url must be an absolute http(s) url: %q", ErrConfiguration, baseURL)
	}

	return &Client{
		http: &http.Client{
			Timeout:   timeout,
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
	}, nil
}

// BaseURL returns the server root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Timeout returns the per-request timeout.
func (c *Client) Timeout() time.Duration { return c.timeout }

// SearchURL returns the people search URL for name.
func (c *Client) SearchURL(name string) string {
	return c.baseURL + searchPath + url.QueryEscape(name)
}

// PeopleByName runs one people search and returns the results in upstream
// order. The slice is empty, not nil, when nothing matched.
func (c *Client) PeopleByName(ctx context.Context, name string) ([]model.Person, error) {
	start := time.Now()
	people, err := c.search(ctx, name)
	latencyMs := float64(time.Since(start).Milliseconds())
	if err != nil {
		metrics.RecordSwapiRequest("error", latencyMs)
		metrics.RecordSwapiError(Cause(err))
		return nil, err
	}
	metrics.RecordSwapiRequest("success", latencyMs)
	metrics.RecordSwapiResults(len(people))
	return people, nil
}

func (c *Client) search(ctx context.Context, name string) ([]model.Person, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.SearchURL(name), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer func() {
		// Drain so the connection can go back to the pool.
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, &StatusError{StatusCode: resp.StatusCode})
	}

	var body struct {
		Results *[]*personRecord `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		// The client timeout also fires while reading the body.
		if isTimeout(err) || ctx.Err() != nil {
			return nil, fmt.Errorf("%w: read body: %w", ErrRequestFailed, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailed, err)
	}
	if body.Results == nil {
		return nil, fmt.Errorf("%w: missing results field", ErrDecodeFailed)
	}

	people := make([]model.Person, 0, len(*body.Results))
	for i, rec := range *body.Results {
		p, err := rec.person()
		if err != nil {
			return nil, fmt.Errorf("%w: results[%d]: %w", ErrDecodeFailed, i, err)
		}
		people = append(people, p)
	}
	return people, nil
}

// personRecord is the wire form of one search result. Pointers tell an
// absent or null field apart from an empty string.
type personRecord struct {
	Name   *string `json:"name"`
	Height *string `json:"height"`
}

func (r *personRecord) person() (model.Person, error) {
	switch {
	case r == nil:
		return model.Person{}, errors.New("null record")
	case r.Name == nil:
		return model.Person{}, errors.New("missing name")
	case r.Height == nil:
		return model.Person{}, errors.New("missing height")
	}
	return model.Person{Name: *r.Name, Height: *r.Height}, nil
}

// Close releases idle pooled connections.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

// Cause classifies a PeopleByName error for logs and metrics: timeout,
// canceled, connection, status, decode or unknown.
func Cause(err error) string {
	var statusErr *StatusError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrDecodeFailed):
		return "decode"
	case errors.As(err, &statusErr):
		return "status"
	case errors.Is(err, context.DeadlineExceeded) || isTimeout(err):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, ErrRequestFailed):
		return "connection"
	default:
		return "unknown"
	}
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
