// Package api is the REST access layer for the AgentScope server. Every
// request goes through one path that attaches the session's bearer token and
// applies the global unauthorized contract: a 401 clears the session, fires
// the injected hook, and still propagates to the caller.
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

	"github.com/agentscope-io/agentscope/internal/buildinfo"
)

// SessionStore is the part of the session store the client depends on.
type SessionStore interface {
	// Token returns the current bearer token, or "" when logged out.
	Token() string
	// Logout clears the session in memory and on disk. Must be idempotent.
	Logout() error
}

// Client performs authenticated requests against an AgentScope server.
type Client struct {
	baseURL    string
	httpClient *http.Client

	sessions       SessionStore
	onUnauthorized func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Timeout semantics are
// whatever the supplied client carries; the access layer imposes none of its
// own.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithUnauthorizedHook registers a callback invoked after a 401 response has
// cleared the session. The host decides how to navigate; the access layer
// never does.
func WithUnauthorizedHook(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string, sessions SessionStore, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		sessions:   sessions,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured server URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do performs one request. A non-nil body is JSON-encoded; a non-nil out is
// filled from the response body. Transport failures and non-2xx statuses
// propagate to the caller untouched apart from wrapping.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "agentscope/"+buildinfo.Version)
	if token := c.sessions.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// Global teardown: clear the session exactly once per response,
		// notify the host, then still surface the failure.
		_ = c.sessions.Logout()
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		respBody, _ := io.ReadAll(resp.Body)
		return newError(resp.StatusCode, respBody)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return newError(resp.StatusCode, respBody)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
