package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error definitions.
var (
	ErrRequestFailed    = errors.New("backend request failed")
	ErrResponseInvalid  = errors.New("backend response invalid")
	ErrBackendUnhealthy = errors.New("backend reports unhealthy")
)

// APIError represents an error response from the backend.
type APIError struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("[%d] %s", e.StatusCode, e.Message)
}

// IsServerError reports whether the error is a 5xx response.
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// parseAPIError builds an APIError from an error response body.
// FastAPI error bodies carry the message under "detail".
func parseAPIError(statusCode int, body []byte) *APIError {
	var errResp struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Detail != "" {
		return &APIError{StatusCode: statusCode, Message: errResp.Detail}
	}
	msg := string(body)
	if msg == "" {
		msg = http.StatusText(statusCode)
	}
	return &APIError{StatusCode: statusCode, Message: msg}
}
