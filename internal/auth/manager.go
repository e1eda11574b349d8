package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// Default settings for the interactive authorization flow.
const (
	// DefaultCallbackPort is the conventional local port for the OAuth2
	// redirect endpoint.
	DefaultCallbackPort = 8085

	// DefaultAuthTimeout bounds how long the manager waits for the user to
	// complete the browser consent flow.
	DefaultAuthTimeout = 5 * time.Minute
)

// FlowRecorder receives OAuth flow outcomes for metrics. Satisfied by
// *instrumentation.Metrics; nil disables recording.
type FlowRecorder interface {
	RecordOAuthAuth(ctx context.Context, result string)
	RecordOAuthTokenRefresh(ctx context.Context, result string)
	AuthFlowStarted(ctx context.Context)
	AuthFlowFinished(ctx context.Context)
}

// Flow outcome values passed to a FlowRecorder.
const (
	FlowResultSuccess = "success"
	FlowResultFailure = "failure"
	FlowResultTimeout = "timeout"
)

// Config configures a Manager.
type Config struct {
	// Registry is the static account list.
	Registry *Registry

	// Store persists token records per account.
	Store *Store

	// Client holds the application's OAuth2 client identity.
	Client OAuthClient

	// Scopes is the required scope set. A stored token whose granted scopes
	// do not cover this set triggers re-consent even when a refresh token is
	// present.
	Scopes []string

	// CallbackPort is the local port the redirect listener binds. It must
	// agree with the port of the client identity's registered redirect URI.
	CallbackPort int

	// CallbackPath is the path of the redirect endpoint.
	CallbackPath string

	// AuthTimeout bounds the wait for the interactive consent flow.
	AuthTimeout time.Duration

	// OpenBrowser launches the consent URL. Defaults to OpenBrowser; tests
	// substitute their own.
	OpenBrowser func(url string) error

	// Metrics records flow outcomes. Optional.
	Metrics FlowRecorder

	// Logger is the structured logger. Defaults to slog.Default().
	Logger *slog.Logger
}

// Credential is a ready-to-use, account-scoped credential. It wraps a
// refreshing token source that re-persists refreshed token material.
type Credential struct {
	// Email is the identity-resolved account email.
	Email string

	// Record is the token material the credential was built from.
	Record *TokenRecord

	source oauth2.TokenSource
	client OAuthClient
}

// HTTPClient returns an HTTP client authenticating as this account.
func (c *Credential) HTTPClient(ctx context.Context) *http.Client {
	return c.client.HTTPClient(ctx, c.source)
}

// Manager orchestrates Registry, Store and Client to guarantee that a
// usable, correctly-scoped token exists for an account before a tool call
// proceeds, running the interactive authorization flow when it does not.
// Interactive flows are serialized per account email.
type Manager struct {
	cfg    Config
	logger *slog.Logger

	mu       sync.Mutex
	inflight map[string]*authFlight
}

// authFlight is one in-progress interactive authorization. Concurrent
// Ensure calls for the same account wait on the first flight's result
// instead of racing to open a second browser window.
type authFlight struct {
	done chan struct{}
	cred *Credential
	err  error
}

// NewManager validates the configuration and builds a Manager.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.Registry == nil {
		return nil, fmt.Errorf("account registry is required")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("token store is required")
	}
	if cfg.Client == nil {
		return nil, fmt.Errorf("oauth client is required")
	}
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = cfg.Client.Scopes()
	}
	if cfg.CallbackPort == 0 {
		cfg.CallbackPort = DefaultCallbackPort
	}
	if cfg.CallbackPath == "" {
		cfg.CallbackPath = DefaultCallbackPath
	}
	if cfg.AuthTimeout == 0 {
		cfg.AuthTimeout = DefaultAuthTimeout
	}
	if cfg.OpenBrowser == nil {
		cfg.OpenBrowser = OpenBrowser
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Manager{
		cfg:      cfg,
		logger:   cfg.Logger,
		inflight: make(map[string]*authFlight),
	}, nil
}

// Registry returns the account registry.
func (m *Manager) Registry() *Registry {
	return m.cfg.Registry
}

// Scopes returns the required scope set.
func (m *Manager) Scopes() []string {
	return m.cfg.Scopes
}

// CredentialState classifies an account's stored credential.
type CredentialState string

const (
	StateNotConfigured      CredentialState = "not_configured"
	StateNoStoredCredential CredentialState = "no_stored_credential"
	StateUnderScoped        CredentialState = "under_scoped"
	StateNoRefreshToken     CredentialState = "no_refresh_token"
	StateValid              CredentialState = "valid"
)

// Inspect reports the credential state for an account without triggering an
// authorization flow.
func (m *Manager) Inspect(email string) (CredentialState, error) {
	if _, ok := m.cfg.Registry.Lookup(email); !ok {
		return StateNotConfigured, nil
	}

	rec, err := m.cfg.Store.Load(email)
	if err != nil {
		return "", err
	}
	switch {
	case rec == nil:
		return StateNoStoredCredential, nil
	case !rec.CoversScopes(m.cfg.Scopes):
		return StateUnderScoped, nil
	case rec.RefreshToken == "":
		return StateNoRefreshToken, nil
	default:
		return StateValid, nil
	}
}

// Ensure guarantees a usable credential for the account, running the
// interactive authorization flow if the stored token is absent, lacks a
// refresh token, or does not cover the required scopes. The returned
// credential may belong to a different email than requested when the user
// completed consent with another account.
func (m *Manager) Ensure(ctx context.Context, email string) (*Credential, error) {
	email = normalizeEmail(email)

	if _, ok := m.cfg.Registry.Lookup(email); !ok {
		return nil, &NotConfiguredError{Email: email}
	}

	rec, err := m.cfg.Store.Load(email)
	if err != nil {
		return nil, err
	}
	if rec.Usable(m.cfg.Scopes) {
		return m.credentialFor(ctx, email, rec), nil
	}

	if rec != nil && !rec.CoversScopes(m.cfg.Scopes) {
		// Scope expansion requires fresh user approval; a silent refresh
		// cannot widen a grant.
		m.logger.Info("stored token is under-scoped, re-consent required",
			"account", email,
		)
	}

	return m.authorize(ctx, email)
}

// credentialFor builds a Credential whose token source persists refreshed
// token material back to the store.
func (m *Manager) credentialFor(ctx context.Context, email string, rec *TokenRecord) *Credential {
	base := m.cfg.Client.TokenSource(ctx, rec)
	saving := &savingTokenSource{
		src:     oauth2.ReuseTokenSource(rec.Token(), base),
		store:   m.cfg.Store,
		email:   email,
		scopes:  rec.Scopes,
		last:    rec.AccessToken,
		metrics: m.cfg.Metrics,
		logger:  m.logger,
	}
	return &Credential{
		Email:  email,
		Record: rec,
		source: saving,
		client: m.cfg.Client,
	}
}

// authorize runs the interactive authorization flow for an account,
// serialized per email: the first caller drives the flow, later callers for
// the same account wait for its outcome.
func (m *Manager) authorize(ctx context.Context, email string) (*Credential, error) {
	m.mu.Lock()
	if f, ok := m.inflight[email]; ok {
		m.mu.Unlock()
		select {
		case <-f.done:
			return f.cred, f.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f := &authFlight{done: make(chan struct{})}
	m.inflight[email] = f
	m.mu.Unlock()

	f.cred, f.err = m.runInteractiveFlow(ctx, email)
	close(f.done)

	m.mu.Lock()
	delete(m.inflight, email)
	m.mu.Unlock()

	return f.cred, f.err
}

func (m *Manager) runInteractiveFlow(ctx context.Context, email string) (*Credential, error) {
	if m.cfg.Metrics != nil {
		m.cfg.Metrics.AuthFlowStarted(ctx)
		defer m.cfg.Metrics.AuthFlowFinished(ctx)
	}

	state := uuid.NewString()
	authURL := m.cfg.Client.AuthCodeURL(email, state)

	listener, err := NewCallbackListener(m.cfg.CallbackPort, m.cfg.CallbackPath, state, m.logger)
	if err != nil {
		m.recordFlow(ctx, FlowResultFailure)
		return nil, err
	}
	defer listener.Close()

	if err := m.cfg.OpenBrowser(authURL); err != nil {
		// Not fatal: the URL is surfaced so a human can open it manually.
		m.logger.Warn("could not open browser for authorization",
			"account", email,
			"error", err.Error(),
		)
	}
	m.logger.Info("awaiting interactive authorization",
		"account", email,
		"url", authURL,
	)

	waitCtx, cancel := context.WithTimeout(ctx, m.cfg.AuthTimeout)
	defer cancel()

	code, err := listener.Wait(waitCtx)
	if err != nil {
		m.recordFlow(ctx, FlowResultTimeout)
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &AuthTimeoutError{Email: email, AuthURL: authURL, Timeout: m.cfg.AuthTimeout}
		}
		return nil, err
	}

	cred, err := m.completeExchange(ctx, email, authURL, code)
	if err != nil {
		m.recordFlow(ctx, FlowResultFailure)
		return nil, err
	}
	m.recordFlow(ctx, FlowResultSuccess)
	return cred, nil
}

// completeExchange turns an authorization code into a persisted credential:
// exchange, identity resolution, refresh-token fallback, save. The storage
// key is always the identity-resolved email.
func (m *Manager) completeExchange(ctx context.Context, requested, authURL, code string) (*Credential, error) {
	tok, err := m.cfg.Client.Exchange(ctx, code)
	if err != nil {
		return nil, &CodeExchangeError{Email: requested, AuthURL: authURL, Err: err}
	}

	identity, err := m.cfg.Client.ResolveIdentity(ctx, tok)
	if err != nil {
		return nil, &NoUserIDError{Email: requested, AuthURL: authURL, Err: err}
	}

	resolved := identity.Email
	if resolved != requested {
		m.logger.Warn("consent completed with a different account than requested",
			"requested", requested,
			"resolved", resolved,
		)
	}

	rec := recordFromToken(tok, m.cfg.Scopes)
	if rec.RefreshToken == "" {
		prev, err := m.cfg.Store.Load(resolved)
		if err != nil {
			return nil, err
		}
		if prev == nil || prev.RefreshToken == "" {
			return nil, &NoRefreshTokenError{Email: resolved, AuthURL: authURL}
		}
		rec.RefreshToken = prev.RefreshToken
	}

	if err := m.cfg.Store.Save(resolved, rec); err != nil {
		return nil, err
	}

	m.logger.Info("authorization complete",
		"account", resolved,
		"scopes", len(rec.Scopes),
	)

	return m.credentialFor(ctx, resolved, rec), nil
}

// BeginManual returns the consent URL for an account without starting a
// callback listener. Used by the headless flow where the user pastes the
// code back instead of being redirected.
func (m *Manager) BeginManual(email string) (string, error) {
	email = normalizeEmail(email)
	if _, ok := m.cfg.Registry.Lookup(email); !ok {
		return "", &NotConfiguredError{Email: email}
	}
	return m.cfg.Client.AuthCodeURL(email, uuid.NewString()), nil
}

// CompleteManual finishes a headless flow with a pasted authorization code.
func (m *Manager) CompleteManual(ctx context.Context, email, code string) (*Credential, error) {
	email = normalizeEmail(email)
	if _, ok := m.cfg.Registry.Lookup(email); !ok {
		return nil, &NotConfiguredError{Email: email}
	}

	authURL := m.cfg.Client.AuthCodeURL(email, uuid.NewString())
	cred, err := m.completeExchange(ctx, email, authURL, code)
	if err != nil {
		m.recordFlow(ctx, FlowResultFailure)
		return nil, err
	}
	m.recordFlow(ctx, FlowResultSuccess)
	return cred, nil
}

func (m *Manager) recordFlow(ctx context.Context, result string) {
	if m.cfg.Metrics != nil {
		m.cfg.Metrics.RecordOAuthAuth(ctx, result)
	}
}

// savingTokenSource persists refreshed token material back to the store so
// silent refreshes survive process restarts. Granted scopes are carried
// over from the stored record; a refresh never changes a grant.
type savingTokenSource struct {
	src     oauth2.TokenSource
	store   *Store
	email   string
	scopes  []string
	metrics FlowRecorder
	logger  *slog.Logger

	mu   sync.Mutex
	last string
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	t, err := s.src.Token()
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordOAuthTokenRefresh(context.Background(), FlowResultFailure)
		}
		return nil, err
	}

	s.mu.Lock()
	changed := t.AccessToken != s.last
	if changed {
		s.last = t.AccessToken
	}
	s.mu.Unlock()

	if changed {
		rec := recordFromToken(t, s.scopes)
		rec.Scopes = s.scopes
		if rec.RefreshToken == "" {
			// Google omits the refresh token on refresh responses; keep the
			// one we already hold.
			if prev, err := s.store.Load(s.email); err == nil && prev != nil {
				rec.RefreshToken = prev.RefreshToken
			}
		}
		if err := s.store.Save(s.email, rec); err != nil {
			s.logger.Warn("failed to persist refreshed token",
				"account", s.email,
				"error", err.Error(),
			)
		}
		if s.metrics != nil {
			s.metrics.RecordOAuthTokenRefresh(context.Background(), FlowResultSuccess)
		}
	}

	return t, nil
}
