// Package mulearn is a typed client for the upstream Launchpad/μLearn REST
// API. Every method wraps one endpoint and reshapes its JSON envelope into a
// local record shape; authentication is an explicit bearer token passed per
// call rather than ambient state.
package mulearn

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultTimeout = 30 * time.Second

// Client talks to one upstream API base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// New creates a Client for the given base URL (e.g. https://mulearn.org/api/v1).
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("mulearn: base URL is required")
	}

	c := &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// APIError is a request the upstream answered but flagged as failed, either
// via HTTP status or the hasError envelope field.
type APIError struct {
	StatusCode int
	Messages   []string
}

func (e *APIError) Error() string {
	if len(e.Messages) > 0 {
		return fmt.Sprintf("mulearn: %s (status %d)", e.Messages[0], e.StatusCode)
	}
	return fmt.Sprintf("mulearn: request failed with status %d", e.StatusCode)
}

// Message absorbs the upstream's inconsistent message field, which is sent as
// a bare string, a string list, or an object with a "general" list depending
// on the endpoint.
type Message struct {
	General []string `json:"general"`
}

func (m *Message) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s != "" {
			m.General = []string{s}
		}
		return nil
	case '[':
		return json.Unmarshal(data, &m.General)
	default:
		type alias Message
		return json.Unmarshal(data, (*alias)(m))
	}
}

// First returns the leading message, or an empty string.
func (m Message) First() string {
	if len(m.General) == 0 {
		return ""
	}
	return m.General[0]
}

type envelope struct {
	HasError   bool            `json:"hasError"`
	StatusCode int             `json:"statusCode"`
	Message    Message         `json:"message"`
	Response   json.RawMessage `json:"response"`
}

func (c *Client) get(ctx context.Context, path, token string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, token, query, nil, out)
}

func (c *Client) post(ctx context.Context, path, token string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, token, nil, body, out)
}

// do issues one request and decodes the response envelope into out. A nil out
// still validates the envelope so callers observe upstream-reported failures.
func (c *Client) do(ctx context.Context, method, path, token string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("mulearn: marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("mulearn: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("mulearn: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return fmt.Errorf("mulearn: read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= 400 {
			return &APIError{StatusCode: resp.StatusCode}
		}
		return fmt.Errorf("mulearn: decode response: %w", err)
	}

	if env.HasError || resp.StatusCode >= 400 {
		status := env.StatusCode
		if status == 0 {
			status = resp.StatusCode
		}
		return &APIError{StatusCode: status, Messages: env.Message.General}
	}

	if out == nil || len(env.Response) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Response, out); err != nil {
		return fmt.Errorf("mulearn: decode %s response: %w", path, err)
	}
	return nil
}
