// Package provider implements the external data collaborators: routing,
// incident feed, POI search and traffic flow, each behind a small HTTP client.
package provider

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"saferoute/internal/errors"
)

const (
	defaultTimeout   = 5 * time.Second
	defaultUserAgent = "saferoute/1.0"

	// maxResponseBytes caps provider responses at 10 MB.
	maxResponseBytes = 10 << 20
)

// Option configures an HTTP-backed provider.
type Option func(*httpClient)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *httpClient) {
		c.client = client
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		if d > 0 {
			c.client.Timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(userAgent string) Option {
	return func(c *httpClient) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

type httpClient struct {
	name      string
	baseURL   string
	client    *http.Client
	userAgent string
}

func newHTTPClient(name, baseURL string, opts ...Option) *httpClient {
	c := &httpClient{
		name:      name,
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// endpoint joins path onto the base URL and attaches query.
func (c *httpClient) endpoint(path string, query url.Values) string {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	return target
}

// getJSON performs a GET and decodes a JSON response into out.
func (c *httpClient) getJSON(ctx context.Context, target string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return errors.Wrapf(err, "%s: create request", c.name)
	}

	return c.do(req, out)
}

// postFormJSON POSTs a form body and decodes a JSON response into out.
func (c *httpClient) postFormJSON(ctx context.Context, target string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(form.Encode()))
	if err != nil {
		return errors.Wrapf(err, "%s: create request", c.name)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(req, out)
}

func (c *httpClient) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s: %s %s", c.name, req.Method, req.URL.Path)
	}
	defer func() { _ = resp.Body.Close() }()

	body := io.LimitReader(resp.Body, maxResponseBytes)

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(body, 512))

		return errors.Errorf("%s: unexpected status %d: %s", c.name, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if err := json.NewDecoder(body).Decode(out); err != nil {
		return errors.Wrapf(err, "%s: decode response", c.name)
	}

	return nil
}
