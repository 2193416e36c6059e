package driven

import "context"

// TokenProvider provides access tokens for authenticated API calls.
// Implementations handle caching and refresh transparently: callers
// request a token per call and never hold one across requests.
type TokenProvider interface {
	// GetToken returns a valid access token.
	// If the current token is expired, it is refreshed automatically.
	GetToken(ctx context.Context) (string, error)
}
