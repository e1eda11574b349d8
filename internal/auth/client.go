package auth

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// Identity is the resolved owner of an exchanged token.
type Identity struct {
	// SubjectID is Google's stable user id for the account.
	SubjectID string

	// Email is the address the user actually authenticated with. It may
	// differ from the account the flow was started for.
	Email string
}

// OAuthClient is the surface the Manager needs from the OAuth2 client
// identity wrapper. *Client is the production implementation; tests
// substitute fakes so lifecycle logic can be exercised without Google.
type OAuthClient interface {
	AuthCodeURL(email, state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	ResolveIdentity(ctx context.Context, tok *oauth2.Token) (*Identity, error)
	TokenSource(ctx context.Context, rec *TokenRecord) oauth2.TokenSource
	HTTPClient(ctx context.Context, ts oauth2.TokenSource) *http.Client
	Scopes() []string
}

// Client wraps the application's OAuth2 client identity (client id, secret
// and the registered redirect URI). It is immutable and shared read-only
// across all accounts.
type Client struct {
	conf *oauth2.Config
}

// NewClientFromFile loads the OAuth2 client identity from a Google
// client-secret JSON file ("installed" or "web" application type). A failure
// here is fatal to the server: no credential work is possible without a
// client identity.
func NewClientFromFile(path string, scopes []string) (*Client, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read client secret file %s: %w", path, err)
	}

	conf, err := google.ConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse client secret file %s: %w", path, err)
	}

	return &Client{conf: conf}, nil
}

// NewClient builds a client from an explicit oauth2 configuration. Used by
// tests and by callers that already hold a parsed client identity.
func NewClient(conf *oauth2.Config) *Client {
	return &Client{conf: conf}
}

// Scopes returns the scopes the client requests during authorization.
func (c *Client) Scopes() []string {
	return c.conf.Scopes
}

// AuthCodeURL builds the consent URL for an account. The URL always
// requests offline access and forces the consent screen so Google reliably
// issues a refresh token even on re-authorization, pre-selects the account
// via login hint, and echoes the caller's opaque state payload.
func (c *Client) AuthCodeURL(email, state string) string {
	return c.conf.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.ApprovalForce,
		oauth2.SetAuthURLParam("login_hint", email),
	)
}

// Exchange trades an authorization code for a token set.
func (c *Client) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	tok, err := c.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return tok, nil
}

// ResolveIdentity asks Google's userinfo endpoint which account the token
// belongs to. An empty subject id means the token is malformed or revoked
// and must not be treated as a successful authorization.
func (c *Client) ResolveIdentity(ctx context.Context, tok *oauth2.Token) (*Identity, error) {
	svc, err := oauth2api.NewService(ctx,
		option.WithTokenSource(oauth2.StaticTokenSource(tok)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create userinfo service: %w", err)
	}

	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}
	if info.Id == "" {
		return nil, fmt.Errorf("userinfo response carries no user id")
	}

	return &Identity{SubjectID: info.Id, Email: normalizeEmail(info.Email)}, nil
}

// TokenSource returns a refreshing token source seeded from a stored record.
func (c *Client) TokenSource(ctx context.Context, rec *TokenRecord) oauth2.TokenSource {
	return c.conf.TokenSource(ctx, rec.Token())
}

// HTTPClient returns an HTTP client that authenticates with the given token
// source and forces HTTP/1.1, which avoids HTTP/2 protocol errors seen with
// some Google endpoints.
func (c *Client) HTTPClient(ctx context.Context, ts oauth2.TokenSource) *http.Client {
	client := oauth2.NewClient(ctx, ts)
	if transport, ok := client.Transport.(*oauth2.Transport); ok {
		transport.Base = &http.Transport{ForceAttemptHTTP2: false}
	}
	return client
}
