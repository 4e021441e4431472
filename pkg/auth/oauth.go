package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3" // Used for calendar.CalendarReadonlyScope
)

const (
	// LocalhostAuthPort is the port the local web server listens on to
	// capture the OAuth redirect. Must match the redirect URI registered
	// for the client in the Google Cloud Console.
	LocalhostAuthPort = "6789"

	xdgAppName = "worklog"
)

// Authorizer obtains and refreshes an OAuth2 access token for the Google
// Calendar API via the PKCE authorization-code flow. Token persistence is
// delegated to a TokenStore, user-facing consent to a ConsentFlow.
type Authorizer struct {
	cfg   *oauth2.Config
	store TokenStore
	flow  ConsentFlow

	// Serializes Authorize so concurrent callers cannot race on a refresh.
	mu sync.Mutex
}

// NewAuthorizer creates an Authorizer for the given OAuth client ID.
// The client is public (PKCE), so no client secret is involved.
func NewAuthorizer(clientID string, store TokenStore, flow ConsentFlow) *Authorizer {
	return &Authorizer{
		cfg: &oauth2.Config{
			ClientID:    clientID,
			Endpoint:    google.Endpoint,
			RedirectURL: fmt.Sprintf("http://localhost:%s/oauth2callback", LocalhostAuthPort),
			Scopes:      []string{calendar.CalendarReadonlyScope},
		},
		store: store,
		flow:  flow,
	}
}

// Authorize ensures a usable access token exists in the token store before
// returning. A valid cached token returns immediately with no network call;
// an expired token with a refresh token is refreshed; otherwise the full
// PKCE authorization-code exchange runs. Without a configured client ID
// Authorize is a no-op.
func (a *Authorizer) Authorize(ctx context.Context) error {
	if a.cfg.ClientID == "" {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	tok, err := a.store.Token()
	if err != nil {
		return fmt.Errorf("could not read cached token: %w", err)
	}
	if tok != nil && tok.Valid() {
		return nil
	}

	var fresh *oauth2.Token
	if tok != nil && tok.RefreshToken != "" {
		fresh, err = a.refreshTokens(ctx, tok.RefreshToken)
	} else {
		fresh, err = a.authorizeFromConsent(ctx)
	}
	if err != nil {
		return err
	}

	if err := a.store.Save(fresh); err != nil {
		return fmt.Errorf("could not save token: %w", err)
	}
	return nil
}

// authorizeFromConsent runs the full PKCE authorization-code flow: it builds
// the authorization URL with an S256 code challenge, hands it to the consent
// flow, and exchanges the returned code for tokens.
func (a *Authorizer) authorizeFromConsent(ctx context.Context) (*oauth2.Token, error) {
	verifier := oauth2.GenerateVerifier()

	// AccessTypeOffline is crucial to ensure a refresh token is returned.
	authURL := a.cfg.AuthCodeURL("state-token",
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
		oauth2.S256ChallengeOption(verifier))

	code, err := a.flow.Consent(ctx, authURL)
	if err != nil {
		return nil, fmt.Errorf("authorization flow failed: %w", err)
	}

	return a.fetchTokens(ctx, verifier, code)
}

// fetchTokens exchanges an authorization code (plus the PKCE verifier it was
// issued against) for a token set at the provider's token endpoint.
func (a *Authorizer) fetchTokens(ctx context.Context, verifier, code string) (*oauth2.Token, error) {
	tok, err := a.cfg.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, tokenEndpointError("token exchange", err)
	}
	return tok, nil
}

// refreshTokens trades a refresh token for a new token set. Providers often
// omit the refresh token from the refresh response; the prior one is retained
// in that case.
func (a *Authorizer) refreshTokens(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	src := a.cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	tok, err := src.Token()
	if err != nil {
		return nil, tokenEndpointError("token refresh", err)
	}
	if tok.RefreshToken == "" {
		tok.RefreshToken = refreshToken
	}
	return tok, nil
}

// tokenEndpointError maps a non-success token endpoint response to an error
// carrying the HTTP status text, logging the response body first.
func tokenEndpointError(op string, err error) error {
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) && rerr.Response != nil {
		log.Printf("%s failed: %s", op, rerr.Body)
		return fmt.Errorf("%s failed: %s", op, rerr.Response.Status)
	}
	return fmt.Errorf("%s failed: %w", op, err)
}
