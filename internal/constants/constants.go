package constants

import "time"

// API endpoints.
const (
	// DefaultBaseURL is the REST base of the design-file service.
	DefaultBaseURL = "https://api.figma.com/v1"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default per-attempt request timeout.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the default initial backoff delay.
	DefaultRetryWaitMin = 500 * time.Millisecond

	// DefaultRetryWaitMax caps the computed backoff.
	DefaultRetryWaitMax = 30 * time.Second

	// MaxJitter bounds the random jitter added to every backoff delay.
	MaxJitter = 500 * time.Millisecond
)

// Caching defaults.
const (
	// DefaultCacheTTL is the default lifetime of a cached response.
	DefaultCacheTTL = 5 * time.Minute

	// DefaultCacheSize is the default maximum number of cached entries.
	DefaultCacheSize = 1000
)

// Batching limits.
const (
	// DefaultBatchSize bounds node ids per chunk in batched node fetches.
	DefaultBatchSize = 100

	// BatchConcurrencyLimit limits concurrent chunk requests.
	BatchConcurrencyLimit = 3
)

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)
