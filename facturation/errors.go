package facturation

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid facturation configuration")
	// ErrNoToken indicates no OAuth token has been installed on the client
	ErrNoToken = errors.New("no access token: run the authorization code exchange first")
	// ErrUnauthorized indicates authentication failure
	ErrUnauthorized = errors.New("unauthorized: invalid or expired access token")
	// ErrNotFound indicates resource not found
	ErrNotFound = errors.New("resource not found")
	// ErrRateLimited indicates the rate-limit budget is exhausted
	ErrRateLimited = errors.New("rate limit budget exhausted")
)

// APIError represents a facturation.pro API error
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("facturation API error: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsRateLimited checks if the service rejected the call for exceeding its rate limit
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// Unwrap maps well-known statuses to the package sentinels so callers can use errors.Is.
func (e *APIError) Unwrap() error {
	switch {
	case e.IsNotFound():
		return ErrNotFound
	case e.IsUnauthorized():
		return ErrUnauthorized
	case e.IsRateLimited():
		return ErrRateLimited
	}
	return nil
}

// errorResponse is the JSON error body returned by the service
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}

// newAPIError builds an APIError from a non-2xx response body.
func newAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Message:    http.StatusText(statusCode),
		Body:       string(body),
	}

	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		switch {
		case errResp.Message != "":
			apiErr.Message = errResp.Message
		case errResp.Error != "":
			apiErr.Message = errResp.Error
		case errResp.Errors != nil:
			if b, err := json.Marshal(errResp.Errors); err == nil {
				apiErr.Message = string(b)
			}
		}
	}

	if strings.TrimSpace(apiErr.Message) == "" {
		apiErr.Message = "unexpected response"
	}

	return apiErr
}
