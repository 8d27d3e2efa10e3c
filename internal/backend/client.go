// Package backend is the shell's HTTP client for the installer's
// FastAPI backend. The shell only consults the health surface; all
// other backend traffic goes straight from the webview to the backend.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client calls the backend HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// HealthStatus is the backend's health-check response.
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Health checks the backend health endpoint. A nil return means the
// backend is up and reports itself healthy.
func (c *Client) Health(ctx context.Context) error {
	var status HealthStatus
	if err := c.get(ctx, "/api/health", &status); err != nil {
		return err
	}
	if status.Status != "healthy" {
		return fmt.Errorf("%w: status %q", ErrBackendUnhealthy, status.Status)
	}
	return nil
}

// Status returns the backend's health-check response for the frontend.
func (c *Client) Status(ctx context.Context) (*HealthStatus, error) {
	var status HealthStatus
	if err := c.get(ctx, "/api/health", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// get executes a GET request and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return parseAPIError(resp.StatusCode, body)
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("%w: %v", ErrResponseInvalid, err)
		}
	}
	return nil
}
