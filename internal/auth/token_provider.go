// Package auth implements the two credential schemes of the design-file
// service: a static personal access token header and an OAuth2 bearer token
// with an injected refresh strategy.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Static errors for auth failures that are not API rejections.
var (
	ErrPersonalTokenCannotRefresh = errors.New("personal access token cannot be refreshed")
	ErrNoRefreshFunc              = errors.New("no refresh function configured")
)

// HeaderPersonal is the header carrying a personal access token.
const HeaderPersonal = "X-Figma-Token"

// HeaderAuthorization is the header carrying an OAuth2 bearer token.
const HeaderAuthorization = "Authorization"

// TokenProvider attaches credentials to outgoing requests. Implementations
// must be safe for concurrent use; the credential value may be replaced in
// place by Refresh while other requests read it.
type TokenProvider interface {
	// Header returns the header name and value carrying the credential.
	Header(ctx context.Context) (name, value string, err error)

	// CanRefresh reports whether a 401 may be answered with a refresh.
	CanRefresh() bool

	// Refresh obtains a new credential and replaces the stored one. A
	// failure from the underlying strategy propagates unchanged.
	Refresh(ctx context.Context) error
}

// PersonalTokenProvider sends a static personal access token. A 401 under
// this provider is always terminal.
type PersonalTokenProvider struct {
	token string
}

// NewPersonalTokenProvider creates a provider around a static token.
func NewPersonalTokenProvider(token string) *PersonalTokenProvider {
	return &PersonalTokenProvider{token: token}
}

// Header implements TokenProvider.
func (p *PersonalTokenProvider) Header(ctx context.Context) (string, string, error) {
	return HeaderPersonal, p.token, nil
}

// CanRefresh implements TokenProvider.
func (p *PersonalTokenProvider) CanRefresh() bool {
	return false
}

// Refresh implements TokenProvider.
func (p *PersonalTokenProvider) Refresh(ctx context.Context) error {
	return ErrPersonalTokenCannotRefresh
}

// RefreshFunc obtains a fresh access token.
type RefreshFunc func(ctx context.Context) (string, error)

// OAuth2TokenProvider sends a bearer Authorization header and supports
// refreshing the in-memory token through an injected callback.
type OAuth2TokenProvider struct {
	mu          sync.RWMutex
	token       string
	refreshFunc RefreshFunc
}

// NewOAuth2TokenProvider creates a provider around an initial token and an
// optional refresh callback.
func NewOAuth2TokenProvider(token string, refreshFunc RefreshFunc) *OAuth2TokenProvider {
	return &OAuth2TokenProvider{
		token:       token,
		refreshFunc: refreshFunc,
	}
}

// Header implements TokenProvider.
func (p *OAuth2TokenProvider) Header(ctx context.Context) (string, string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return HeaderAuthorization, "Bearer " + p.token, nil
}

// CanRefresh implements TokenProvider.
func (p *OAuth2TokenProvider) CanRefresh() bool {
	return p.refreshFunc != nil
}

// Refresh invokes the callback and replaces the stored token. Callback
// errors are returned as-is so a broken refresh strategy stays
// distinguishable from an API rejection.
func (p *OAuth2TokenProvider) Refresh(ctx context.Context) error {
	if p.refreshFunc == nil {
		return ErrNoRefreshFunc
	}

	token, err := p.refreshFunc(ctx)
	if err != nil {
		return err
	}

	p.SetToken(token)

	return nil
}

// SetToken replaces the stored token.
func (p *OAuth2TokenProvider) SetToken(token string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.token = token
}

// Token returns the current token value.
func (p *OAuth2TokenProvider) Token() string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.token
}

// String implements fmt.Stringer without leaking the credential.
func (p *OAuth2TokenProvider) String() string {
	return fmt.Sprintf("OAuth2TokenProvider(refreshable=%t)", p.CanRefresh())
}
