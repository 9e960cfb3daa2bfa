// ABOUTME: HTTP client for the JamboSec backend API
// ABOUTME: Attaches bearer tokens and retries once after a token refresh on 401

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jambosec/jambosec-cli/internal/authstore"
)

// Client is the API client for the JamboSec backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      *authstore.Store
}

// New creates a new API client with the given base URL and token store.
func New(baseURL string, store *authstore.Store) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		store:      store,
	}
}

// Error represents a non-2xx response from the backend. Body holds the parsed
// JSON error body when the response carried one, nil otherwise.
type Error struct {
	Path   string
	Status int
	Body   any
}

func (e *Error) Error() string {
	return fmt.Sprintf("request to %s failed with status %d", e.Path, e.Status)
}

// requestOptions controls a single backend call. The zero value means GET-like
// semantics with authentication enabled.
type requestOptions struct {
	body     any
	headers  map[string]string
	skipAuth bool
}

// do performs a JSON request against the backend and decodes the response into
// out (which may be nil when no body is expected).
//
// On a 401 for an authenticated call it refreshes the access token once and
// retries the original request once; the attempt counter guards against
// refresh loops when the retry itself is rejected. Refresh failure clears the
// token store and surfaces the original 401. Transport errors propagate to
// the caller without retrying.
func (c *Client) do(ctx context.Context, method, path string, opts requestOptions, out any) error {
	return c.doAttempt(ctx, method, path, opts, out, 0)
}

func (c *Client) doAttempt(ctx context.Context, method, path string, opts requestOptions, out any, attempt int) error {
	var bodyReader *bytes.Reader
	if opts.body != nil {
		data, err := json.Marshal(opts.body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range opts.headers {
		req.Header.Set(k, v)
	}

	var snapshot *authstore.StoredAuth
	if !opts.skipAuth {
		snapshot = c.store.Get()
		if snapshot != nil && snapshot.Tokens.Access != "" {
			req.Header.Set("Authorization", "Bearer "+snapshot.Tokens.Access)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.Canceled {
			return fmt.Errorf("request canceled")
		}
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("request timed out")
		}
		return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && !opts.skipAuth && attempt == 0 &&
		snapshot != nil && snapshot.Tokens.Refresh != "" {
		newAccess, refreshErr := c.refreshAccessToken(ctx, snapshot.Tokens.Refresh)
		if refreshErr != nil {
			c.store.Clear()
		} else {
			tokens := authstore.TokenPair{Access: newAccess, Refresh: snapshot.Tokens.Refresh}
			if err := c.store.Set(tokens, snapshot.Remember); err != nil {
				return fmt.Errorf("failed to persist refreshed token: %w", err)
			}
			return c.doAttempt(ctx, method, path, opts, out, attempt+1)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Path: path, Status: resp.StatusCode, Body: parseJSONBody(resp)}
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}

	return nil
}

// refreshAccessToken exchanges the refresh token for a new access token. The
// refresh token itself is not rotated by the backend.
func (c *Client) refreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	payload, err := json.Marshal(map[string]string{"refresh": refreshToken})
	if err != nil {
		return "", fmt.Errorf("failed to marshal refresh payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpointAuthRefresh, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &Error{Path: endpointAuthRefresh, Status: resp.StatusCode, Body: parseJSONBody(resp)}
	}

	var body struct {
		Access string `json:"access"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("invalid refresh response: %w", err)
	}

	return body.Access, nil
}

// parseJSONBody decodes a response body when the content type says JSON.
// Non-JSON and undecodable bodies yield nil.
func parseJSONBody(resp *http.Response) any {
	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		return nil
	}

	var body any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil
	}
	return body
}

// HealthResponse represents the core health endpoint response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// Health calls the backend health endpoint without authentication.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.do(ctx, http.MethodGet, endpointCoreHealth, requestOptions{skipAuth: true}, &health); err != nil {
		return nil, err
	}
	return &health, nil
}
