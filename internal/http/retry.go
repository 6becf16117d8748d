package http

import (
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/figdrift/figdrift/internal/constants"
)

// Cause classifies a retryable failure for backoff selection.
type Cause int

const (
	// CauseTransient covers 5xx responses, timeouts and network errors.
	CauseTransient Cause = iota

	// CauseRateLimit covers 429 responses. The schedule runs one power of
	// two ahead of the transient one: the server explicitly asked to slow
	// down.
	CauseRateLimit
)

// RetryPolicy computes backoff delays. Delay is a pure function of the
// attempt number, the failure cause and the configuration; the jitter
// source is injected so tests can pin it.
type RetryPolicy struct {
	// InitialDelay seeds the exponential schedule.
	InitialDelay time.Duration

	// MaxDelay caps the computed delay before jitter is added.
	MaxDelay time.Duration

	mu   sync.Mutex
	rand *rand.Rand
}

// NewRetryPolicy creates a policy with the given schedule bounds and a
// time-seeded jitter source.
func NewRetryPolicy(initialDelay, maxDelay time.Duration) *RetryPolicy {
	return NewRetryPolicyWithRand(initialDelay, maxDelay, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewRetryPolicyWithRand creates a policy using the supplied jitter source.
func NewRetryPolicyWithRand(initialDelay, maxDelay time.Duration, rng *rand.Rand) *RetryPolicy {
	if initialDelay <= 0 {
		initialDelay = constants.DefaultRetryWaitMin
	}

	if maxDelay <= 0 {
		maxDelay = constants.DefaultRetryWaitMax
	}

	return &RetryPolicy{
		InitialDelay: initialDelay,
		MaxDelay:     maxDelay,
		rand:         rng,
	}
}

// Delay returns the wait before retry number attempt (1-indexed).
//
// Transient causes follow min(initial·2^(attempt-1), cap). A 429 without
// Retry-After follows min(initial·2^attempt, cap). A present Retry-After
// overrides the computed schedule as a floor. Jitter in [0, 500ms) is added
// after the cap so concurrent clients do not retry in lockstep.
func (p *RetryPolicy) Delay(attempt int, cause Cause, retryAfter time.Duration) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	if cause == CauseRateLimit && retryAfter > 0 {
		return retryAfter + p.jitter()
	}

	exp := attempt - 1
	if cause == CauseRateLimit {
		exp = attempt
	}

	// Past 62 doublings any initial delay has overflowed the cap.
	if exp > 62 {
		exp = 62
	}

	delay := p.InitialDelay << uint(exp)
	if delay <= 0 || delay > p.MaxDelay {
		delay = p.MaxDelay
	}

	return delay + p.jitter()
}

func (p *RetryPolicy) jitter() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	return time.Duration(p.rand.Int63n(int64(constants.MaxJitter)))
}

// ParseRetryAfter parses a Retry-After header value, supporting both
// delay-seconds and HTTP-date formats. It returns 0 when the value is
// absent or unparseable; negative durations clamp to 0.
func ParseRetryAfter(value string) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds <= 0 {
			return 0
		}

		return time.Duration(seconds) * time.Second
	}

	if t, err := http.ParseTime(value); err == nil {
		if delay := time.Until(t); delay > 0 {
			return delay
		}
	}

	return 0
}
