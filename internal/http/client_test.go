package http_test

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/figdrift/figdrift/internal/auth"
	figdrifthttp "github.com/figdrift/figdrift/internal/http"
	"github.com/figdrift/figdrift/pkg/figma"
)

// fastRetry keeps test backoff short while exercising the real retry loop.
func fastRetry(retryMax int) []figdrifthttp.Option {
	return []figdrifthttp.Option{
		figdrifthttp.WithRetryConfig(retryMax, time.Millisecond, 10*time.Millisecond),
		figdrifthttp.WithRand(rand.New(rand.NewSource(1))),
	}
}

func TestClientGetSuccess(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret-token", r.Header.Get("X-Figma-Token"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "/files/abc123", r.URL.Path)

		w.Header().Set("ETag", `"v42"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"name":"Design System"}`))
	}))
	defer server.Close()

	client := figdrifthttp.NewClient(server.URL, auth.NewPersonalTokenProvider("secret-token"))

	resp, err := client.Get(context.Background(), "/files/abc123", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"name":"Design System"}`, string(resp.Body))
	assert.Equal(t, `"v42"`, resp.Headers.Get("ETag"))
}

func TestClientNotFound(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status":404,"err":"Not found"}`))
	}))
	defer server.Close()

	client := figdrifthttp.NewClient(server.URL, auth.NewPersonalTokenProvider("token"), fastRetry(3)...)

	_, err := client.Get(context.Background(), "/files/missing", nil)
	require.Error(t, err)

	var notFoundErr *figma.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "/files/missing", notFoundErr.Path)

	// Definitive rejections never consume retry attempts.
	assert.Equal(t, int32(1), calls.Load())
}

func TestClientAuthErrorsNotRetried(t *testing.T) {
	t.Parallel()

	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		status := status
		t.Run(strconv.Itoa(status), func(t *testing.T) {
			t.Parallel()

			var calls atomic.Int32

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(status)
				_, _ = w.Write([]byte(`{"err":"Invalid token"}`))
			}))
			defer server.Close()

			client := figdrifthttp.NewClient(server.URL, auth.NewPersonalTokenProvider("bad"), fastRetry(3)...)

			_, err := client.Get(context.Background(), "/me", nil)
			require.Error(t, err)

			var authErr *figma.AuthError
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, status, authErr.StatusCode)
			assert.Equal(t, "Invalid token", authErr.Message)
			assert.Equal(t, int32(1), calls.Load())
		})
	}
}

func TestClientBadRequestNotRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"err":"Invalid parameter: depth"}`))
	}))
	defer server.Close()

	client := figdrifthttp.NewClient(server.URL, auth.NewPersonalTokenProvider("token"), fastRetry(3)...)

	_, err := client.Get(context.Background(), "/files/abc", nil)
	require.Error(t, err)

	var apiErr *figma.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Invalid parameter: depth", apiErr.Message)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClientRetriesServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)

			return
		}

		_, _ = w.Write([]byte(`{"name":"ok"}`))
	}))
	defer server.Close()

	client := figdrifthttp.NewClient(server.URL, auth.NewPersonalTokenProvider("token"), fastRetry(3)...)

	resp, err := client.Get(context.Background(), "/files/abc", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClientRetriesExhaustedReturnsAPIError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"err":"Internal Server Error"}`))
	}))
	defer server.Close()

	client := figdrifthttp.NewClient(server.URL, auth.NewPersonalTokenProvider("token"), fastRetry(2)...)

	_, err := client.Get(context.Background(), "/files/abc", nil)
	require.Error(t, err)

	var apiErr *figma.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "Internal Server Error", apiErr.Message)

	// Initial attempt plus two retries.
	assert.Equal(t, int32(3), calls.Load())
}

func TestClientRateLimitedThenSucceeds(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)

			return
		}

		_, _ = w.Write([]byte(`{"name":"ok"}`))
	}))
	defer server.Close()

	client := figdrifthttp.NewClient(server.URL, auth.NewPersonalTokenProvider("token"), fastRetry(3)...)

	resp, err := client.Get(context.Background(), "/files/abc", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClientRateLimitExhaustedCarriesRetryAfter(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"err":"Rate limit exceeded"}`))
	}))
	defer server.Close()

	client := figdrifthttp.NewClient(server.URL, auth.NewPersonalTokenProvider("token"), fastRetry(0)...)

	_, err := client.Get(context.Background(), "/files/abc", nil)
	require.Error(t, err)

	var rateLimitErr *figma.RateLimitError
	require.ErrorAs(t, err, &rateLimitErr)
	assert.Equal(t, 30*time.Second, rateLimitErr.RetryAfter)
	assert.Equal(t, "Rate limit exceeded", rateLimitErr.Message)
	assert.True(t, figma.IsRateLimited(err))
}

func TestClientTimeoutMessageNamesConfiguredLimit(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer server.Close()

	client := figdrifthttp.NewClient(server.URL, auth.NewPersonalTokenProvider("token"),
		append(fastRetry(0), figdrifthttp.WithTimeout(50*time.Millisecond))...)

	_, err := client.Get(context.Background(), "/files/abc", nil)
	require.Error(t, err)

	var apiErr *figma.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Error(), "timed out after 50ms")
}

func TestClientContextCancellationFailsImmediately(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer server.Close()

	client := figdrifthttp.NewClient(server.URL, auth.NewPersonalTokenProvider("token"), fastRetry(3)...)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := client.Get(ctx, "/files/abc", nil)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestClientCachesSuccessfulGets(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"name":"cached"}`))
	}))
	defer server.Close()

	client := figdrifthttp.NewClient(server.URL, auth.NewPersonalTokenProvider("token"),
		figdrifthttp.WithCache(figma.NewMemoryCache(10), time.Minute))

	for i := 0; i < 3; i++ {
		resp, err := client.Get(context.Background(), "/files/abc", nil)
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"cached"}`, string(resp.Body))
	}

	assert.Equal(t, int32(1), calls.Load())
}

func TestClientCacheExpiresByTTL(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := figdrifthttp.NewClient(server.URL, auth.NewPersonalTokenProvider("token"),
		figdrifthttp.WithCache(figma.NewMemoryCache(10), 50*time.Millisecond))

	_, err := client.Get(context.Background(), "/files/abc", nil)
	require.NoError(t, err)

	time.Sleep(80 * time.Millisecond)

	_, err = client.Get(context.Background(), "/files/abc", nil)
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls.Load())
}

func TestClientClearCacheForcesRefetch(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := figdrifthttp.NewClient(server.URL, auth.NewPersonalTokenProvider("token"),
		figdrifthttp.WithCache(figma.NewMemoryCache(10), time.Minute))

	_, err := client.Get(context.Background(), "/files/abc", nil)
	require.NoError(t, err)

	require.NoError(t, client.ClearCache(context.Background()))

	_, err = client.Get(context.Background(), "/files/abc", nil)
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls.Load())
}

func TestClientErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := figdrifthttp.NewClient(server.URL, auth.NewPersonalTokenProvider("token"),
		figdrifthttp.WithCache(figma.NewMemoryCache(10), time.Minute))

	for i := 0; i < 2; i++ {
		_, err := client.Get(context.Background(), "/files/abc", nil)
		require.Error(t, err)
	}

	assert.Equal(t, int32(2), calls.Load())
}

func TestClientDeduplicatesConcurrentCalls(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write([]byte(`{"name":"shared"}`))
	}))
	defer server.Close()

	client := figdrifthttp.NewClient(server.URL, auth.NewPersonalTokenProvider("token"),
		figdrifthttp.WithDeduplication())

	const concurrency = 5

	var wg sync.WaitGroup

	for i := 0; i < concurrency; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			resp, err := client.Get(context.Background(), "/files/abc", nil)
			assert.NoError(t, err)

			if resp != nil {
				assert.JSONEq(t, `{"name":"shared"}`, string(resp.Body))
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestClientWithoutDeduplicationHitsNetworkPerCall(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := figdrifthttp.NewClient(server.URL, auth.NewPersonalTokenProvider("token"))

	const concurrency = 4

	var wg sync.WaitGroup

	for i := 0; i < concurrency; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := client.Get(context.Background(), "/files/abc", nil)
			assert.NoError(t, err)
		}()
	}

	wg.Wait()

	assert.Equal(t, int32(concurrency), calls.Load())
}

func TestClientDedupSettlementAllowsFreshCall(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := figdrifthttp.NewClient(server.URL, auth.NewPersonalTokenProvider("token"),
		figdrifthttp.WithDeduplication())

	// Sequential identical calls never share a flight.
	for i := 0; i < 3; i++ {
		_, err := client.Get(context.Background(), "/files/abc", nil)
		require.NoError(t, err)
	}

	assert.Equal(t, int32(3), calls.Load())
}

func TestClientProactiveRateLimitWait(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", "1")
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(2*time.Second).Unix(), 10))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := figdrifthttp.NewClient(server.URL, auth.NewPersonalTokenProvider("token"),
		figdrifthttp.WithRateLimitThreshold(2))

	// First call records the near-exhausted quota; it is never delayed by
	// its own headers.
	start := time.Now()
	_, err := client.Get(context.Background(), "/files/abc", nil)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second)

	info := client.RateLimit()
	assert.Equal(t, 1, info.Remaining)

	// The next call waits out the reset before sending.
	start = time.Now()
	_, err = client.Get(context.Background(), "/files/abc", nil)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 500*time.Millisecond)
}

func TestClientOAuth2RefreshOn401(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)

		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)

			return
		}

		_, _ = w.Write([]byte(`{"id":"user-1"}`))
	}))
	defer server.Close()

	var refreshes atomic.Int32

	provider := auth.NewOAuth2TokenProvider("stale", func(ctx context.Context) (string, error) {
		refreshes.Add(1)

		return "fresh", nil
	})

	client := figdrifthttp.NewClient(server.URL, provider, fastRetry(0)...)

	resp, err := client.Get(context.Background(), "/me", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(1), refreshes.Load())
	assert.Equal(t, int32(2), calls.Load())
}

func TestClientOAuth2RefreshFailurePropagatesUnchanged(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	refreshErr := errors.New("refresh endpoint unreachable")

	provider := auth.NewOAuth2TokenProvider("stale", func(ctx context.Context) (string, error) {
		return "", refreshErr
	})

	client := figdrifthttp.NewClient(server.URL, provider, fastRetry(0)...)

	_, err := client.Get(context.Background(), "/me", nil)
	require.ErrorIs(t, err, refreshErr)
	assert.False(t, figma.IsAuth(err))
}

func TestClientOAuth2RefreshNotRepeated(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	// The new token is rejected too: one refresh, one resend, then a
	// terminal auth error.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"err":"Token revoked"}`))
	}))
	defer server.Close()

	var refreshes atomic.Int32

	provider := auth.NewOAuth2TokenProvider("stale", func(ctx context.Context) (string, error) {
		refreshes.Add(1)

		return "still-bad", nil
	})

	client := figdrifthttp.NewClient(server.URL, provider, fastRetry(0)...)

	_, err := client.Get(context.Background(), "/me", nil)
	require.Error(t, err)

	var authErr *figma.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, int32(1), refreshes.Load())
	assert.Equal(t, int32(2), calls.Load())
}

func TestClientPersonalTokenNeverRefreshes(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := figdrifthttp.NewClient(server.URL, auth.NewPersonalTokenProvider("revoked"), fastRetry(0)...)

	_, err := client.Get(context.Background(), "/me", nil)
	require.Error(t, err)
	assert.True(t, figma.IsAuth(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestClientUserAgentAndQueryForwarded(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "figdrift/1.0", r.Header.Get("User-Agent"))
		assert.Equal(t, "1:2,1:3", r.URL.Query().Get("ids"))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := figdrifthttp.NewClient(server.URL, auth.NewPersonalTokenProvider("token"),
		figdrifthttp.WithUserAgent("figdrift/1.0"))

	query := map[string][]string{"ids": {"1:2,1:3"}}

	_, err := client.Get(context.Background(), "/files/abc/nodes", query)
	require.NoError(t, err)
}
