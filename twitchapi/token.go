package twitchapi

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/oauth2/endpoints"
)

// TokenSource fetches and caches a Twitch app access (client credentials)
// token for Helix API calls. It cannot be used for IRC chat; chat needs a
// user OAuth token with chat:read scope.
type TokenSource struct {
	Config     *clientcredentials.Config
	HTTPClient *http.Client

	mu     sync.Mutex
	cached *oauth2.Token
}

// NewTokenSource builds a token source against the Twitch token endpoint.
func NewTokenSource(clientID, clientSecret string) *TokenSource {
	return &TokenSource{
		Config: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     endpoints.Twitch.TokenURL,
		},
	}
}

// Get returns a valid (fresh or cached) app access token.
func (ts *TokenSource) Get(ctx context.Context) (string, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if ts.cached.Valid() {
		return ts.cached.AccessToken, nil
	}
	if ts.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, ts.HTTPClient)
	}
	tok, err := ts.Config.Token(ctx)
	if err != nil {
		return "", err
	}
	ts.cached = tok
	return tok.AccessToken, nil
}

// SetToken seeds the cache; used by tests to avoid hitting the token endpoint.
func (ts *TokenSource) SetToken(token string, expiry time.Time) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.cached = &oauth2.Token{AccessToken: token, Expiry: expiry}
}
