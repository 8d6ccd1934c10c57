// Package api is the authenticated REST client for the operations backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/noelruault/lazyops/internal/auth"
	"github.com/noelruault/lazyops/internal/logger"
)

// Error is returned when the API responds with a non-2xx status.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api %d: %s", e.Status, e.Detail)
}

// errorBody is the error envelope the backend sends.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// Client issues requests carrying the console's auth headers.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	auth       auth.Context
	fallback   string
	log        *logger.Logger
	timeout    time.Duration
	hasTimeout bool
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTPClient = hc }
}

// WithTimeout sets the HTTP timeout. Zero means no timeout. It applies to a
// copy of the HTTP client, whatever the option order.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
		c.hasTimeout = true
	}
}

// WithLogger sets the request logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithFallbackMessage sets the message used when an error response has no
// detail.
func WithFallbackMessage(msg string) Option {
	return func(c *Client) { c.fallback = msg }
}

// New creates a client for baseURL.
func New(baseURL string, authCtx auth.Context, opts ...Option) *Client {
	c := &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{},
		auth:       authCtx,
		fallback:   "request failed",
		log:        logger.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.hasTimeout {
		hc := *c.HTTPClient
		hc.Timeout = c.timeout
		c.HTTPClient = &hc
	}
	return c
}

// Auth returns the auth context the client was built with.
func (c *Client) Auth() auth.Context { return c.auth }

// Do sends a request and decodes the JSON response into out. A nil payload
// sends no body and no Content-Type.
func (c *Client) Do(ctx context.Context, method, path string, payload, out any) error {
	var reader io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.auth.Token())
	req.Header.Set("X-CSRF-Token", c.auth.CSRFToken())
	req.Header.Set("X-Request-ID", requestID)
	if tenant := c.auth.TenantID(); tenant != "" {
		req.Header.Set("X-Tenant-ID", tenant)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.log.With("request_id", requestID)
	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		log.Warn("request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	log.Debug("request done",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode, Detail: c.detail(body)}
		log.Warn("request rejected", "method", method, "path", path, "status", resp.StatusCode, "detail", apiErr.Detail)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("null")
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// detail extracts the server-supplied message. Non-string details (such as
// validation error lists) are rendered as compact JSON.
func (c *Client) detail(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Detail) == 0 || string(eb.Detail) == "null" {
		return c.fallback
	}
	var s string
	if err := json.Unmarshal(eb.Detail, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			return c.fallback
		}
		return s
	}
	return string(eb.Detail)
}

// BuildPath expands {name} placeholders in template with path-escaped values.
// Unknown placeholders are left untouched.
func BuildPath(template string, params map[string]string) string {
	var b strings.Builder
	for {
		open := strings.IndexByte(template, '{')
		if open < 0 {
			b.WriteString(template)
			break
		}
		end := strings.IndexByte(template[open:], '}')
		if end < 0 {
			b.WriteString(template)
			break
		}
		end += open
		name := template[open+1 : end]
		b.WriteString(template[:open])
		if v, ok := params[name]; ok {
			b.WriteString(url.PathEscape(v))
		} else {
			b.WriteString(template[open : end+1])
		}
		template = template[end+1:]
	}
	return b.String()
}

// WithQuery appends the non-empty values of q to path. Keys are emitted in
// sorted order.
func WithQuery(path string, q url.Values) string {
	clean := url.Values{}
	for k, vs := range q {
		for _, v := range vs {
			if strings.TrimSpace(v) != "" {
				clean.Add(k, v)
			}
		}
	}
	if len(clean) == 0 {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + clean.Encode()
}
