package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// answer mirrors both the success and the error body of /taller/{name}.
type answer struct {
	Query  string `json:"query"`
	Person string `json:"person"`
	Taller *bool  `json:"taller"`
	Error  string `json:"error"`
}

// HTTPClient wraps http.Client with timeout.
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// get performs a GET request for path and returns the status and body.
func (c *HTTPClient) get(ctx context.Context, path string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, body, nil
}

// checkHealth verifies the service answers its health check.
func (c *HTTPClient) checkHealth(ctx context.Context) error {
	status, _, err := c.get(ctx, "/health_check")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, status)
	}
	return nil
}

// probeOne asks the service about a single name.
func (c *HTTPClient) probeOne(ctx context.Context, name string) Result {
	start := time.Now()
	status, body, err := c.get(ctx, "/taller/"+url.PathEscape(name))
	res := Result{Name: name, Status: status, Latency: time.Since(start)}
	if err != nil {
		res.Verdict, res.Err = VerdictUnexpected, err
		return res
	}
	res.Verdict, res.Err = classify(status, body)
	return res
}

// classify maps a status code and body to a verdict.
func classify(status int, body []byte) (Verdict, error) {
	var a answer
	if err := json.Unmarshal(body, &a); err != nil {
		return VerdictUnexpected, fmt.Errorf("failed to parse response: %w", err)
	}
	switch {
	case status == http.StatusOK && a.Taller != nil && *a.Taller:
		return VerdictTaller, nil
	case status == http.StatusOK && a.Taller != nil:
		return VerdictNotTaller, nil
	case status == http.StatusNotFound && a.Error == "Person not found":
		return VerdictPersonNotFound, nil
	case status == http.StatusNotFound && a.Error == "Person's height is unknown":
		return VerdictHeightUnknown, nil
	default:
		return VerdictUnexpected, fmt.Errorf("HTTP %d: %s", status, a.Error)
	}
}
