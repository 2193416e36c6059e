// Package oauth provides OAuth token acquisition for SAP AI Core.
package oauth

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/custodia-labs/groundchat/internal/core/ports/driven"
)

// Ensure TokenProvider implements the interface.
var _ driven.TokenProvider = (*TokenProvider)(nil)

// TokenProvider obtains bearer tokens from an XSUAA OAuth server using
// the client credentials grant. Tokens are cached and only re-fetched
// once the previous one is about to expire.
type TokenProvider struct {
	cfg clientcredentials.Config

	mu    sync.RWMutex
	token *oauth2.Token
}

// NewTokenProvider creates a token provider for the given XSUAA server.
// authURL is the OAuth server base URL from the service key; the
// /oauth/token path is appended here.
func NewTokenProvider(authURL, clientID, clientSecret string) *TokenProvider {
	return &TokenProvider{
		cfg: clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     strings.TrimRight(authURL, "/") + "/oauth/token",
			AuthStyle:    oauth2.AuthStyleInParams,
		},
	}
}

// GetToken returns a valid access token, fetching a fresh one when the
// cached token is missing or expired.
func (p *TokenProvider) GetToken(ctx context.Context) (string, error) {
	p.mu.RLock()
	token := p.token
	p.mu.RUnlock()

	if token.Valid() {
		return token.AccessToken, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// Another caller may have refreshed while we waited for the lock.
	if p.token.Valid() {
		return p.token.AccessToken, nil
	}

	token, err := p.cfg.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("fetch access token: %w", err)
	}

	p.token = token
	return token.AccessToken, nil
}

// TokenURL returns the fully qualified token endpoint.
func (p *TokenProvider) TokenURL() string {
	return p.cfg.TokenURL
}
