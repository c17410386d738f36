package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultUserAgent is the user agent string for requests to the scoring service.
const DefaultUserAgent = "resume-matcher/1.0"

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 10 << 20

// Paths on the scoring service.
const (
	UploadPath = "/upload"
	HealthPath = "/"
)

// Error represents a failed exchange with the scoring service.
type Error struct {
	URL        string
	Message    string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("request to %s failed: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("request to %s failed: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the client.
type Options struct {
	// Timeout of zero leaves the request without a client-imposed deadline.
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() *Options {
	return &Options{
		UserAgent: DefaultUserAgent,
	}
}

// Response is a received HTTP response with its body fully read.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// HealthStatus is the scoring service's answer to GET {base_url}/.
type HealthStatus struct {
	StatusCode int
	Status     string `json:"status"`
}

// Client talks to the scoring service rooted at a base URL.
type Client struct {
	baseURL    string
	options    *Options
	httpClient *http.Client
}

// NewClient creates a client for baseURL. An empty base URL yields origin-relative paths.
func NewClient(baseURL string, opts *Options) *Client {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		options: opts,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
	}
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Endpoint joins the base URL and path.
func (c *Client) Endpoint(path string) string {
	return c.baseURL + path
}

// Upload POSTs the payload to {base_url}/upload. Any HTTP status is returned as a Response;
// only transport failures produce an error.
func (c *Client) Upload(ctx context.Context, payload *Payload, requestID string) (*Response, error) {
	endpoint := c.Endpoint(UploadPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload.Body))
	if err != nil {
		return nil, &Error{URL: endpoint, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", payload.ContentType)
	req.Header.Set("Accept", "application/json")
	if requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}
	c.setHeaders(req)

	return c.do(req)
}

// Health calls GET {base_url}/ and expects a 2xx answer.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	endpoint := c.Endpoint(HealthPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &Error{URL: endpoint, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	c.setHeaders(req)

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{
			URL:        endpoint,
			Message:    fmt.Sprintf("HTTP status %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}

	status := &HealthStatus{StatusCode: resp.StatusCode}
	if err := json.Unmarshal(resp.Body, status); err != nil || status.Status == "" {
		status.Status = http.StatusText(resp.StatusCode)
	}
	return status, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.options.UserAgent)
	for key, value := range c.options.Headers {
		req.Header.Set(key, value)
	}
}

func (c *Client) do(req *http.Request) (*Response, error) {
	endpoint := req.URL.String()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{URL: endpoint, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &Error{
			URL:        endpoint,
			Message:    "failed to read response body",
			StatusCode: resp.StatusCode,
			Cause:      err,
		}
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}
