package http

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/figdrift/figdrift/pkg/figma"
)

// Rate-limit response headers of the design-file service.
const (
	headerRateLimitRemaining = "X-RateLimit-Remaining"
	headerRateLimitReset     = "X-RateLimit-Reset"
)

// RateLimitTracker holds the last-seen rate-limit headers. It is written
// after every completed attempt, success or failure, and read before each
// new request to decide whether to wait proactively. It never blocks the
// call that produced its current values.
type RateLimitTracker struct {
	mu        sync.RWMutex
	remaining int
	resetAt   time.Time
	seen      bool
}

// NewRateLimitTracker returns an empty tracker.
func NewRateLimitTracker() *RateLimitTracker {
	return &RateLimitTracker{}
}

// Update records rate-limit headers from a response. Responses without the
// remaining header leave the state untouched.
func (t *RateLimitTracker) Update(headers http.Header) {
	remainingValue := headers.Get(headerRateLimitRemaining)
	if remainingValue == "" {
		return
	}

	remaining, err := strconv.Atoi(remainingValue)
	if err != nil {
		return
	}

	var resetAt time.Time

	if resetValue := headers.Get(headerRateLimitReset); resetValue != "" {
		if epoch, err := strconv.ParseInt(resetValue, 10, 64); err == nil {
			resetAt = time.Unix(epoch, 0)
		}
	}

	t.mu.Lock()
	t.remaining = remaining
	t.resetAt = resetAt
	t.seen = true
	t.mu.Unlock()
}

// Snapshot returns a read-only copy of the current state.
func (t *RateLimitTracker) Snapshot() figma.RateLimitInfo {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if !t.seen {
		return figma.RateLimitInfo{}
	}

	return figma.RateLimitInfo{
		Remaining: t.remaining,
		ResetAt:   t.resetAt,
	}
}

// Wait suspends the caller until the tracked reset time when the remaining
// quota is at or below threshold and the reset is still in the future. It
// reports whether a wait happened. This is a voluntary delay before
// sending, not a retry: it consumes no retry attempt and produces no error
// unless the context is cancelled.
func (t *RateLimitTracker) Wait(ctx context.Context, threshold int) (bool, error) {
	if threshold <= 0 {
		return false, nil
	}

	t.mu.RLock()
	seen := t.seen
	remaining := t.remaining
	resetAt := t.resetAt
	t.mu.RUnlock()

	if !seen || remaining > threshold {
		return false, nil
	}

	delay := time.Until(resetAt)
	if delay <= 0 {
		return false, nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}
