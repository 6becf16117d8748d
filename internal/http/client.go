// Package http implements the resilient request executor every accessor
// routes through: auth header attachment, per-attempt timeouts, adaptive
// retries with jittered exponential backoff, reactive and proactive
// rate-limit handling, TTL response caching and in-flight deduplication.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/figdrift/figdrift/internal/auth"
	"github.com/figdrift/figdrift/internal/constants"
	"github.com/figdrift/figdrift/pkg/figma"
)

// Client executes API requests against the design-file service. It is safe
// for concurrent use; the cache, the in-flight map and the rate-limit
// tracker are the only shared mutable state and each guards itself.
type Client struct {
	baseURL   string
	provider  auth.TokenProvider
	retry     *retryablehttp.Client
	policy    *RetryPolicy
	tracker   *RateLimitTracker
	dedup     *DedupTracker
	cache     figma.Cache
	cacheTTL  time.Duration
	threshold int

	timeout  time.Duration
	retryMax int
	waitMin  time.Duration
	waitMax  time.Duration
	rng      *rand.Rand

	logger    figma.Logger
	debug     bool
	metrics   *figma.MetricsCollector
	userAgent string
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets a structured logger.
func WithLogger(logger figma.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables verbose request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout sets the per-attempt request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithRetryConfig tunes the retry loop: maximum retries, initial backoff
// and backoff cap.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.retryMax = retryMax
		c.waitMin = waitMin
		c.waitMax = waitMax
	}
}

// WithCache enables response caching of successful GET payloads.
func WithCache(cache figma.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

// WithDeduplication coalesces concurrent identical GET calls onto a single
// network call.
func WithDeduplication() Option {
	return func(c *Client) {
		c.dedup = NewDedupTracker()
	}
}

// WithRateLimitThreshold enables proactive throttling when the last-seen
// remaining quota drops to the threshold or below.
func WithRateLimitThreshold(threshold int) Option {
	return func(c *Client) {
		c.threshold = threshold
	}
}

// WithMetrics sets an optional prometheus collector.
func WithMetrics(metrics *figma.MetricsCollector) Option {
	return func(c *Client) {
		c.metrics = metrics
	}
}

// WithRand injects the jitter source so retry timing is deterministic in
// tests.
func WithRand(rng *rand.Rand) Option {
	return func(c *Client) {
		c.rng = rng
	}
}

// NewClient creates a request executor for the given REST base. provider
// may be nil, in which case requests are sent unauthenticated.
func NewClient(baseURL string, provider auth.TokenProvider, options ...Option) *Client {
	client := &Client{
		baseURL:  baseURL,
		provider: provider,
		timeout:  constants.DefaultHTTPTimeout,
		retryMax: constants.DefaultRetryMax,
		waitMin:  constants.DefaultRetryWaitMin,
		waitMax:  constants.DefaultRetryWaitMax,
		cacheTTL: constants.DefaultCacheTTL,
		tracker:  NewRateLimitTracker(),
	}

	for _, option := range options {
		option(client)
	}

	if client.rng == nil {
		client.policy = NewRetryPolicy(client.waitMin, client.waitMax)
	} else {
		client.policy = NewRetryPolicyWithRand(client.waitMin, client.waitMax, client.rng)
	}

	client.retry = client.buildRetryClient()

	return client
}

// buildRetryClient wires the retryablehttp transport: only transport
// errors, 5xx and 429 are retryable, the backoff comes from the policy,
// and every attempt's response feeds the rate-limit tracker.
func (c *Client) buildRetryClient() *retryablehttp.Client {
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil
	retryClient.RetryMax = c.retryMax
	retryClient.HTTPClient = &http.Client{Timeout: c.timeout}
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	retryClient.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		// A cancelled caller fails immediately; no retry attempt is spent.
		if ctx.Err() != nil {
			return false, ctx.Err()
		}

		if err != nil {
			return true, nil
		}

		return resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError, nil
	}

	retryClient.Backoff = func(_, _ time.Duration, attemptNum int, resp *http.Response) time.Duration {
		cause := CauseTransient

		var retryAfter time.Duration

		if resp != nil && resp.StatusCode == http.StatusTooManyRequests {
			cause = CauseRateLimit
			retryAfter = ParseRetryAfter(resp.Header.Get("Retry-After"))
		}

		return c.policy.Delay(attemptNum+1, cause, retryAfter)
	}

	retryClient.ResponseLogHook = func(_ retryablehttp.Logger, resp *http.Response) {
		c.tracker.Update(resp.Header)
	}

	retryClient.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attemptNum int) {
		if attemptNum == 0 {
			return
		}

		c.metrics.RecordRetry(req.Method, req.URL.Path)

		if c.debug && c.logger != nil {
			c.logger.Info("Retrying request", map[string]interface{}{
				"method":  req.Method,
				"url":     req.URL.String(),
				"attempt": attemptNum,
			})
		}
	}

	return retryClient
}

// Do executes a request through the full stack and returns the final
// outcome: a response or one typed error. Retry, backoff and rate-limit
// mechanics stay internal.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	start := time.Now()
	key := req.Key()

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"path":   req.Path,
			"query":  req.Query.Encode(),
		})
	}

	var (
		resp *Response
		err  error
	)

	if c.dedup != nil && req.Method == http.MethodGet {
		entry, owner := c.dedup.GetOrCreate(key)
		if !owner {
			c.metrics.RecordDeduplicationHit(req.Path)

			return entry.Wait(ctx)
		}

		resp, err = c.fetch(ctx, req, key)
		c.dedup.Complete(key, resp, err)
	} else {
		resp, err = c.fetch(ctx, req, key)
	}

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}

	c.metrics.RecordRequest(req.Method, req.Path, statusCode, time.Since(start))

	if err != nil {
		c.metrics.RecordError(errorLabel(err), req.Path)
	}

	return resp, err
}

// Get executes a GET request against path.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
}

// RateLimit returns a snapshot of the last-seen rate-limit state.
func (c *Client) RateLimit() figma.RateLimitInfo {
	return c.tracker.Snapshot()
}

// ClearCache invalidates every cached entry immediately.
func (c *Client) ClearCache(ctx context.Context) error {
	if c.cache == nil {
		return nil
	}

	err := c.cache.Clear(ctx)
	if err != nil {
		return fmt.Errorf("clearing response cache: %w", err)
	}

	return nil
}

// fetch consults the cache, applies the proactive rate-limit wait, sends
// the request and stores a successful GET payload.
func (c *Client) fetch(ctx context.Context, req *Request, key string) (*Response, error) {
	cacheable := c.cache != nil && req.Method == http.MethodGet

	if cacheable {
		entry, err := c.cache.Get(ctx, key)
		if err == nil {
			c.metrics.RecordCacheHit(req.Path)

			if c.debug && c.logger != nil {
				c.logger.Debug("Cache hit", map[string]interface{}{"key": key})
			}

			return &Response{StatusCode: http.StatusOK, Body: entry.Data}, nil
		}

		c.metrics.RecordCacheMiss(req.Path)
	}

	waited, err := c.tracker.Wait(ctx, c.threshold)
	if err != nil {
		return nil, err
	}

	if waited {
		c.metrics.RecordRateLimitWait(req.Path)

		if c.logger != nil {
			c.logger.Warn("Rate limit near exhaustion, deferred request", map[string]interface{}{
				"path": req.Path,
			})
		}
	}

	resp, err := c.send(ctx, req, false)
	if err != nil {
		return nil, err
	}

	if cacheable && resp.StatusCode < http.StatusMultipleChoices {
		setErr := c.cache.Set(ctx, key, &figma.CacheEntry{
			Data:      resp.Body,
			ExpiresAt: time.Now().Add(c.cacheTTL),
			ETag:      resp.Headers.Get("ETag"),
		})
		if setErr != nil && c.logger != nil {
			c.logger.Warn("Failed to cache response", map[string]interface{}{
				"key":   key,
				"error": setErr.Error(),
			})
		}
	}

	return resp, nil
}

// send performs the network call with internal retries and classifies the
// outcome. refreshed guards the single-shot OAuth2 refresh path.
func (c *Client) send(ctx context.Context, req *Request, refreshed bool) (*Response, error) {
	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var rawBody []byte

	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, &figma.APIError{Message: "encoding request body", Err: err}
		}

		rawBody = data
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, rawBody)
	if err != nil {
		return nil, &figma.APIError{Message: "building request", Err: err}
	}

	if c.provider != nil {
		name, value, headerErr := c.provider.Header(ctx)
		if headerErr != nil {
			return nil, headerErr
		}

		httpReq.Header.Set(name, value)
	}

	httpReq.Header.Set("Accept", "application/json")

	if rawBody != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	for name, value := range req.Headers {
		httpReq.Header.Set(name, value)
	}

	httpResp, err := c.retry.Do(httpReq)
	if err != nil {
		return nil, c.classifyTransport(ctx, err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &figma.APIError{StatusCode: httpResp.StatusCode, Message: "reading response body", Err: err}
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method": req.Method,
			"path":   req.Path,
			"status": resp.StatusCode,
		})
	}

	return c.classifyResponse(ctx, req, resp, refreshed)
}

// classifyTransport maps a transport-level failure onto a typed error.
func (c *Client) classifyTransport(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return &figma.APIError{
			Message: fmt.Sprintf("request timed out after %s", c.timeout),
			Err:     err,
		}
	}

	return &figma.APIError{Message: "network request failed", Err: err}
}

// classifyResponse collapses a completed response into a payload or one
// typed error, driving the single-shot OAuth2 refresh on 401.
func (c *Client) classifyResponse(ctx context.Context, req *Request, resp *Response, refreshed bool) (*Response, error) {
	switch {
	case resp.StatusCode < http.StatusMultipleChoices:
		return resp, nil

	case resp.StatusCode == http.StatusUnauthorized:
		if c.provider != nil && c.provider.CanRefresh() && !refreshed {
			c.metrics.RecordTokenRefresh()

			if c.logger != nil {
				c.logger.Info("Access token rejected, refreshing", map[string]interface{}{
					"path": req.Path,
				})
			}

			// A refresh-strategy failure propagates unchanged so it stays
			// distinguishable from an API rejection.
			err := c.provider.Refresh(ctx)
			if err != nil {
				return nil, err
			}

			return c.send(ctx, req, true)
		}

		return nil, &figma.AuthError{StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}

	case resp.StatusCode == http.StatusForbidden:
		return nil, &figma.AuthError{StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}

	case resp.StatusCode == http.StatusNotFound:
		return nil, &figma.NotFoundError{Path: req.Path}

	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &figma.RateLimitError{
			RetryAfter: ParseRetryAfter(resp.Headers.Get("Retry-After")),
			Message:    errorMessage(resp.Body),
		}

	default:
		return nil, &figma.APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}
	}
}

// errorMessage extracts the human-readable message from an error payload.
func errorMessage(body []byte) string {
	var payload struct {
		Err     string `json:"err"`
		Message string `json:"message"`
	}

	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Err != "" {
			return payload.Err
		}

		if payload.Message != "" {
			return payload.Message
		}
	}

	return ""
}

// errorLabel names an error class for metrics.
func errorLabel(err error) string {
	switch {
	case figma.IsAuth(err):
		return "auth"
	case figma.IsNotFound(err):
		return "not_found"
	case figma.IsRateLimited(err):
		return "rate_limit"
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "api"
	}
}
