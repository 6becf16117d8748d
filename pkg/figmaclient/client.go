// Package figmaclient constructs a ready-to-use figma.Client from a
// figma.Config. Construction validates credentials and assembles the
// executor stack without performing any network call.
package figmaclient

import (
	"fmt"
	"strings"

	"github.com/figdrift/figdrift/internal/auth"
	"github.com/figdrift/figdrift/internal/client"
	"github.com/figdrift/figdrift/internal/constants"
	"github.com/figdrift/figdrift/internal/http"
	"github.com/figdrift/figdrift/pkg/figma"
)

// New creates a client for the design-file API. The access token must be
// non-blank; every other field has a working default.
func New(config *figma.Config) (figma.Client, error) {
	if config == nil {
		return nil, figma.ErrConfigRequired
	}

	if strings.TrimSpace(config.AccessToken) == "" {
		return nil, figma.ErrAccessTokenRequired
	}

	provider, err := buildProvider(config)
	if err != nil {
		return nil, err
	}

	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = constants.DefaultBaseURL
	}

	options, err := buildOptions(config)
	if err != nil {
		return nil, err
	}

	httpClient := http.NewClient(baseURL, provider, options...)

	return client.New(httpClient, config.BatchSize), nil
}

// buildProvider selects the credential scheme.
func buildProvider(config *figma.Config) (auth.TokenProvider, error) {
	switch config.AuthType {
	case figma.AuthTypePersonal, "":
		return auth.NewPersonalTokenProvider(config.AccessToken), nil

	case figma.AuthTypeOAuth2:
		var refreshFunc auth.RefreshFunc
		if config.RefreshFunc != nil {
			refreshFunc = auth.RefreshFunc(config.RefreshFunc)
		}

		return auth.NewOAuth2TokenProvider(config.AccessToken, refreshFunc), nil

	default:
		return nil, fmt.Errorf("%w: %s", figma.ErrInvalidAuthType, config.AuthType)
	}
}

// buildOptions translates the configuration into executor options.
func buildOptions(config *figma.Config) ([]http.Option, error) {
	var options []http.Option

	if config.HTTPTimeout > 0 {
		options = append(options, http.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 || config.RetryWaitMin > 0 || config.RetryWaitMax > 0 {
		retryMax := config.RetryMax
		if retryMax <= 0 {
			retryMax = constants.DefaultRetryMax
		}

		options = append(options, http.WithRetryConfig(retryMax, config.RetryWaitMin, config.RetryWaitMax))
	}

	if config.EnableCache {
		cache, err := figma.NewCacheFromConfig(config.Cache)
		if err != nil {
			return nil, fmt.Errorf("building cache backend: %w", err)
		}

		ttl := config.CacheTTL
		if ttl <= 0 {
			ttl = constants.DefaultCacheTTL
		}

		options = append(options, http.WithCache(cache, ttl))
	}

	if config.DeduplicateRequests {
		options = append(options, http.WithDeduplication())
	}

	if config.RateLimitThreshold > 0 {
		options = append(options, http.WithRateLimitThreshold(config.RateLimitThreshold))
	}

	if config.Logger != nil {
		options = append(options, http.WithLogger(config.Logger))
	}

	if config.Debug {
		options = append(options, http.WithDebug(true))
	}

	if config.Metrics != nil {
		options = append(options, http.WithMetrics(config.Metrics))
	}

	if config.UserAgent != "" {
		options = append(options, http.WithUserAgent(config.UserAgent))
	}

	return options, nil
}
