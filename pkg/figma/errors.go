package figma

import (
	"errors"
	"fmt"
	"time"
)

// AuthError represents an authentication or authorization rejection (401/403).
type AuthError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("authentication failed (status: %d)", e.StatusCode)
	}

	return fmt.Sprintf("authentication failed: %s (status: %d)", e.Message, e.StatusCode)
}

// NotFoundError represents a missing resource (404).
type NotFoundError struct {
	Path string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.Path == "" {
		return "resource not found"
	}

	return fmt.Sprintf("resource not found: %s", e.Path)
}

// RateLimitError represents a rate-limit rejection (429) that survived the
// internal retry budget. RetryAfter carries the server hint when present.
type RateLimitError struct {
	RetryAfter time.Duration
	Message    string
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "rate limit exceeded"
	}

	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s (retry after %s)", msg, e.RetryAfter)
	}

	return msg
}

// APIError represents any other failed call outcome: an unexpected status
// code, a transport failure, or a timeout. StatusCode is 0 when the failure
// never produced a response.
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API error: %s (status: %d)", e.Message, e.StatusCode)
	}

	return fmt.Sprintf("API error: %s", e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Static configuration errors. These fail synchronously at client
// construction and are never produced by a network call.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrAccessTokenRequired = errors.New("access token is required")
	ErrInvalidAuthType     = errors.New("invalid auth type")
	ErrInvalidBatchSize    = errors.New("batch size must be positive")
	ErrCacheDisabled       = errors.New("cache disabled")
	ErrCacheKeyNotFound    = errors.New("key not found in cache")
	ErrCacheEntryExpired   = errors.New("cache entry expired")
	ErrNoFileKey           = errors.New("file key is required")
	ErrNoNodeIDs           = errors.New("at least one node id is required")
)

// IsAuth checks if the error is an authentication error.
func IsAuth(err error) bool {
	authErr := &AuthError{}

	return errors.As(err, &authErr)
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	nfErr := &NotFoundError{}

	return errors.As(err, &nfErr)
}

// IsRateLimited checks if the error is a rate limit error.
func IsRateLimited(err error) bool {
	rlErr := &RateLimitError{}

	return errors.As(err, &rlErr)
}
