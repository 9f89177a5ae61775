// Package api implements the HTTP client for the POS backend. The client
// carries a session cookie, transparently attaches the anti-forgery token
// to mutating calls and retries once with a fresh token when the server
// rejects it.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"

	"github.com/fourone/pos/pkg/api"
)

//go:generate moq -out client_mock.go . ClientAPI

// ClientAPI defines the surface the offline engine consumes. The generic
// verbs take endpoint paths like "/api/products" so the gateway and sync
// processor can replay queued operations without entity-specific code.
type ClientAPI interface {
	// Health probes the health endpoint. Used by the connectivity
	// monitor to establish real API reachability.
	Health(ctx context.Context) error

	// Login authenticates and stores the session cookie in the client.
	Login(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error)

	// Logout terminates the server session.
	Logout(ctx context.Context) error

	// Get performs a GET and returns the raw response body.
	Get(ctx context.Context, endpoint string) (json.RawMessage, error)

	// Post performs a POST with the anti-forgery token attached.
	Post(ctx context.Context, endpoint string, body json.RawMessage) (json.RawMessage, error)

	// Put performs a PUT with the anti-forgery token attached.
	Put(ctx context.Context, endpoint string, body json.RawMessage) (json.RawMessage, error)

	// Delete performs a DELETE with the anti-forgery token attached.
	Delete(ctx context.Context, endpoint string) error

	// InvalidateCSRFToken drops the cached anti-forgery token so the
	// next mutating call fetches a fresh one.
	InvalidateCSRFToken()
}

const (
	csrfHeader   = "X-CSRF-Token"
	csrfEndpoint = "/api/csrf"

	// requestTimeout bounds every call; an expired timeout is treated
	// identically to a connectivity failure by the callers.
	requestTimeout = 10 * time.Second
)

// Client is the HTTP implementation of ClientAPI.
type Client struct {
	httpClient *http.Client
	baseURL    string

	csrfMu    sync.Mutex
	csrfToken string
}

var _ ClientAPI = (*Client)(nil)

// NewClient creates a new API client. The cookie jar holds the session
// cookie issued on login.
func NewClient(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
			Jar:     jar,
		},
	}, nil
}

// Health probes GET /api/health.
func (c *Client) Health(ctx context.Context) error {
	var resp api.HealthResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/health", nil, &resp, false); err != nil {
		return fmt.Errorf("health request failed: %w", err)
	}
	return nil
}

// Login authenticates the operator. The session cookie lands in the jar;
// the CSRF token is dropped because it is bound to the old session.
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal login request: %w", err)
	}

	var resp api.LoginResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/login", body, &resp, false); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}

	c.InvalidateCSRFToken()
	return &resp, nil
}

// Logout terminates the session.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.doMutating(ctx, http.MethodPost, "/api/auth/logout", nil, nil); err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	c.InvalidateCSRFToken()
	return nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, endpoint string) (json.RawMessage, error) {
	var result json.RawMessage
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &result, false); err != nil {
		return nil, err
	}
	return result, nil
}

// Post performs a POST request with the anti-forgery token.
func (c *Client) Post(ctx context.Context, endpoint string, body json.RawMessage) (json.RawMessage, error) {
	var result json.RawMessage
	if err := c.doMutating(ctx, http.MethodPost, endpoint, body, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Put performs a PUT request with the anti-forgery token.
func (c *Client) Put(ctx context.Context, endpoint string, body json.RawMessage) (json.RawMessage, error) {
	var result json.RawMessage
	if err := c.doMutating(ctx, http.MethodPut, endpoint, body, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete performs a DELETE request with the anti-forgery token.
func (c *Client) Delete(ctx context.Context, endpoint string) error {
	return c.doMutating(ctx, http.MethodDelete, endpoint, nil, nil)
}

// InvalidateCSRFToken drops the cached anti-forgery token.
func (c *Client) InvalidateCSRFToken() {
	c.csrfMu.Lock()
	c.csrfToken = ""
	c.csrfMu.Unlock()
}

// doMutating runs a mutating request with the anti-forgery token. A
// token rejection triggers one refresh-and-retry before the error is
// handed back to the caller.
func (c *Client) doMutating(ctx context.Context, method, endpoint string, body json.RawMessage, result any) error {
	err := c.doRequest(ctx, method, endpoint, body, result, true)
	if err == nil || !IsCSRFRejection(err) {
		return err
	}

	c.InvalidateCSRFToken()
	return c.doRequest(ctx, method, endpoint, body, result, true)
}

// csrf returns the cached anti-forgery token, fetching one if needed.
func (c *Client) csrf(ctx context.Context) (string, error) {
	c.csrfMu.Lock()
	defer c.csrfMu.Unlock()

	if c.csrfToken != "" {
		return c.csrfToken, nil
	}

	var resp api.CSRFResponse
	if err := c.doRequest(ctx, http.MethodGet, csrfEndpoint, nil, &resp, false); err != nil {
		return "", fmt.Errorf("csrf request failed: %w", err)
	}

	c.csrfToken = resp.Token
	return c.csrfToken, nil
}

// doRequest executes one HTTP request against the server.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, body []byte, result any, withCSRF bool) error {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if withCSRF {
		token, err := c.csrf(ctx)
		if err != nil {
			return err
		}
		req.Header.Set(csrfHeader, token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{Code: resp.StatusCode, Message: string(respBody)}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			switch {
			case errResp.Message != "":
				statusErr.Message = errResp.Message
			case errResp.Error != "":
				statusErr.Message = errResp.Error
			}
		}
		return statusErr
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
