// Package figma defines the public surface of the design-file API client
// used by the drift scanners: the Client interface, configuration, typed
// errors, payload types and the pluggable response cache.
//
// Clients are built with the figmaclient package:
//
//	client, err := figmaclient.New(&figma.Config{
//		AccessToken:         token,
//		EnableCache:         true,
//		CacheTTL:            5 * time.Minute,
//		DeduplicateRequests: true,
//		RetryMax:            3,
//	})
//	if err != nil {
//		// configuration errors surface here, never as call outcomes
//	}
//
//	file, err := client.Files().Get(ctx, "abc123", nil)
//
// Every call routes through one executor that attaches credentials, applies
// a per-attempt timeout, retries transient failures with jittered
// exponential backoff, tracks the server's rate-limit headers and
// optionally waits before sending, caches successful GET payloads, and
// coalesces concurrent identical calls. Callers only ever see the final
// outcome: a decoded payload or one typed error.
//
// Errors are classified into AuthError, NotFoundError, RateLimitError and
// APIError; use IsAuth, IsNotFound and IsRateLimited to branch on them.
package figma
