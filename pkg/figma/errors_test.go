package figma_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/figdrift/figdrift/pkg/figma"
)

func TestAuthErrorMessage(t *testing.T) {
	t.Parallel()

	err := &figma.AuthError{StatusCode: 403, Message: "Insufficient scope"}
	assert.Equal(t, "authentication failed: Insufficient scope (status: 403)", err.Error())

	bare := &figma.AuthError{StatusCode: 401}
	assert.Equal(t, "authentication failed (status: 401)", bare.Error())
}

func TestNotFoundErrorMessage(t *testing.T) {
	t.Parallel()

	err := &figma.NotFoundError{Path: "/files/abc"}
	assert.Equal(t, "resource not found: /files/abc", err.Error())
}

func TestRateLimitErrorMessage(t *testing.T) {
	t.Parallel()

	err := &figma.RateLimitError{RetryAfter: 30 * time.Second}
	assert.Equal(t, "rate limit exceeded (retry after 30s)", err.Error())

	noHint := &figma.RateLimitError{Message: "Too many requests"}
	assert.Equal(t, "Too many requests", noHint.Error())
}

func TestAPIErrorUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	err := &figma.APIError{Message: "network request failed", Err: cause}

	require.ErrorIs(t, err, cause)
	assert.Equal(t, "API error: network request failed", err.Error())

	withStatus := &figma.APIError{StatusCode: 500, Message: "Internal Server Error"}
	assert.Equal(t, "API error: Internal Server Error (status: 500)", withStatus.Error())
}

func TestErrorClassifiers(t *testing.T) {
	t.Parallel()

	authErr := fmt.Errorf("fetching file: %w", &figma.AuthError{StatusCode: 401})
	notFoundErr := fmt.Errorf("fetching file: %w", &figma.NotFoundError{Path: "/files/x"})
	rateLimitErr := fmt.Errorf("fetching file: %w", &figma.RateLimitError{})
	apiErr := fmt.Errorf("fetching file: %w", &figma.APIError{StatusCode: 500})

	assert.True(t, figma.IsAuth(authErr))
	assert.False(t, figma.IsAuth(notFoundErr))

	assert.True(t, figma.IsNotFound(notFoundErr))
	assert.False(t, figma.IsNotFound(apiErr))

	assert.True(t, figma.IsRateLimited(rateLimitErr))
	assert.False(t, figma.IsRateLimited(authErr))
	assert.False(t, figma.IsRateLimited(nil))
}
