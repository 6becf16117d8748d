package figma

import (
	"context"
	"time"
)

// AuthType selects the authentication scheme.
type AuthType string

const (
	// AuthTypePersonal sends a static personal access token in the
	// X-Figma-Token header.
	AuthTypePersonal AuthType = "personal"

	// AuthTypeOAuth2 sends a bearer Authorization header and supports a
	// single-shot refresh on 401 via Config.RefreshFunc.
	AuthTypeOAuth2 AuthType = "oauth2"
)

// RefreshFunc obtains a fresh OAuth2 access token. It is invoked at most
// once per request, only after a 401 in OAuth2 mode. An error from the
// callback is returned to the caller unchanged.
type RefreshFunc func(ctx context.Context) (string, error)

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// RateLimitInfo is a read-only snapshot of the last-seen rate-limit headers.
// Zero values mean no rate-limit information has been observed yet.
type RateLimitInfo struct {
	// Remaining is the last-seen X-RateLimit-Remaining value.
	Remaining int
	// ResetAt is the last-seen X-RateLimit-Reset value as a wall-clock time.
	ResetAt time.Time
}

// Config represents client configuration for building a figma.Client.
//
// # Authentication
//
// AccessToken is required and must be non-blank; construction fails
// otherwise. AuthType selects the scheme: personal (default) sends the
// token in X-Figma-Token, oauth2 sends Authorization: Bearer and allows a
// 401 to trigger one RefreshFunc invocation followed by one retried call.
//
// # Retries and timeouts
//
// RetryMax bounds the internal retry loop for transient failures (network
// errors, timeouts, 5xx, 429). RetryWaitMin seeds the exponential backoff
// and RetryWaitMax caps it (default 30s). HTTPTimeout applies per attempt;
// a timed-out attempt counts as one retry like any other transient failure.
//
// # Caching and deduplication
//
// EnableCache turns on TTL caching of successful GET payloads under the
// canonical request key; CacheTTL sets the entry lifetime. Cache selects
// the backend (memory by default). DeduplicateRequests coalesces
// concurrent identical calls into one network call.
type Config struct {
	// AccessToken is the credential for the selected AuthType. Required.
	AccessToken string
	// AuthType selects personal or oauth2 authentication. Defaults to personal.
	AuthType AuthType
	// BaseURL overrides the REST base. Defaults to https://api.figma.com/v1.
	BaseURL string
	// RefreshFunc supplies a new token after a 401 in oauth2 mode.
	RefreshFunc RefreshFunc

	// HTTPTimeout is the per-attempt request timeout. 0 uses the default.
	HTTPTimeout time.Duration
	// RetryMax is the maximum number of retries for transient failures.
	RetryMax int
	// RetryWaitMin is the initial backoff delay. Applied when RetryMax > 0.
	RetryWaitMin time.Duration
	// RetryWaitMax caps the computed backoff. Defaults to 30s.
	RetryWaitMax time.Duration

	// EnableCache turns on response caching for successful GET calls.
	EnableCache bool
	// CacheTTL is the lifetime of a cached entry.
	CacheTTL time.Duration
	// Cache selects the cache backend when EnableCache is set. Nil means
	// the default in-memory backend.
	Cache *CacheConfig

	// DeduplicateRequests coalesces concurrent identical in-flight calls.
	DeduplicateRequests bool

	// RateLimitThreshold triggers a proactive wait before sending when the
	// last-seen remaining quota is at or below this value and the reset
	// time is still in the future. 0 disables proactive throttling.
	RateLimitThreshold int

	// BatchSize bounds the number of node ids per chunk in batched node
	// fetches. Defaults to 100.
	BatchSize int

	// Debug enables verbose request/response logging when a Logger is set.
	Debug bool
	// Logger is an optional structured logger.
	Logger Logger
	// Metrics is an optional prometheus collector. Nil disables metrics.
	Metrics *MetricsCollector
	// UserAgent overrides the default User-Agent header.
	UserAgent string
}

// FileQuery holds the optional parameters of the file endpoint.
type FileQuery struct {
	// Version pins a specific version of the file.
	Version string
	// Depth limits how deep the returned document tree goes.
	Depth int
	// Geometry set to "paths" exports vector data.
	Geometry string
	// PluginData lists plugin ids whose data should be included.
	PluginData string
	// BranchData includes branch metadata in the response.
	BranchData bool
}

// NodesQuery holds the optional parameters of the nodes endpoint.
type NodesQuery struct {
	Version    string
	Depth      int
	Geometry   string
	PluginData string
}

// ImageQuery holds the parameters of the image export endpoint.
type ImageQuery struct {
	// Format is the export format (png, jpg, svg, pdf).
	Format string
	// Scale is the export scale between 0.01 and 4.
	Scale float64
	// Version pins a specific file version.
	Version string
}

// ListOptions carries cursor pagination parameters for team listings. The
// values are forwarded verbatim.
type ListOptions struct {
	After    int
	PageSize int
}

// BatchOptions tunes batched node fetching.
type BatchOptions struct {
	// BatchSize overrides the configured chunk size for this call.
	BatchSize int
}
