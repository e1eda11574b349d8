package server

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/teemow/workspace-mcp/internal/auth"
	"github.com/teemow/workspace-mcp/internal/calendar"
	"github.com/teemow/workspace-mcp/internal/docs"
	"github.com/teemow/workspace-mcp/internal/drive"
	"github.com/teemow/workspace-mcp/internal/gmail"
	"github.com/teemow/workspace-mcp/internal/instrumentation"
	"github.com/teemow/workspace-mcp/internal/logging"
	"github.com/teemow/workspace-mcp/internal/sheets"
	"github.com/teemow/workspace-mcp/internal/slides"
)

// Options configures a ServerContext
type Options struct {
	// Manager drives the OAuth credential lifecycle for all accounts
	Manager *auth.Manager

	// DefaultAccount is used when a tool call names no account. Empty
	// means fall back to the sole registry entry, if there is one.
	DefaultAccount string

	Metrics     *instrumentation.Metrics
	AuditLogger *instrumentation.AuditLogger
	Logger      *slog.Logger
}

// ServerContext holds the shared state of the MCP server. Service
// clients are created lazily and cached under the identity-resolved
// email, so every call runs the credential lifecycle first.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	manager        *auth.Manager
	defaultAccount string
	metrics        *instrumentation.Metrics
	auditLogger    *instrumentation.AuditLogger
	logger         *slog.Logger

	mu              sync.RWMutex
	gmailClients    map[string]*gmail.Client
	calendarClients map[string]*calendar.Client
	driveClients    map[string]*drive.Client
	docsClients     map[string]*docs.Client
	sheetsClients   map[string]*sheets.Client
	slidesClients   map[string]*slides.Client
	shutdown        bool
}

// NewServerContext creates a new server context
func NewServerContext(ctx context.Context, opts Options) (*ServerContext, error) {
	if opts.Manager == nil {
		return nil, fmt.Errorf("auth manager is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:             shutdownCtx,
		cancel:          cancel,
		manager:         opts.Manager,
		defaultAccount:  opts.DefaultAccount,
		metrics:         opts.Metrics,
		auditLogger:     opts.AuditLogger,
		logger:          opts.Logger,
		gmailClients:    make(map[string]*gmail.Client),
		calendarClients: make(map[string]*calendar.Client),
		driveClients:    make(map[string]*drive.Client),
		docsClients:     make(map[string]*docs.Client),
		sheetsClients:   make(map[string]*sheets.Client),
		slidesClients:   make(map[string]*slides.Client),
	}, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Manager returns the credential lifecycle manager
func (sc *ServerContext) Manager() *auth.Manager {
	return sc.manager
}

// Metrics returns the metrics recorder, which may be nil
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	return sc.metrics
}

// AuditLogger returns the audit logger, which may be nil
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	return sc.auditLogger
}

// Logger returns the server logger
func (sc *ServerContext) Logger() *slog.Logger {
	return sc.logger
}

// DefaultAccount returns the account used when a tool call names none.
// Falls back to the sole registry entry when exactly one is configured.
func (sc *ServerContext) DefaultAccount() string {
	if sc.defaultAccount != "" {
		return sc.defaultAccount
	}
	if reg := sc.manager.Registry(); reg.Len() == 1 {
		return reg.Accounts()[0].Email
	}
	return ""
}

// credential runs the lifecycle for the account and returns a usable
// credential carrying the identity-resolved email. A resolved email
// that differs from the requested account is logged so cross-account
// consent does not go unnoticed.
func (sc *ServerContext) credential(ctx context.Context, account string) (*auth.Credential, error) {
	cred, err := sc.manager.Ensure(ctx, account)
	if err != nil {
		return nil, err
	}
	if cred.Email != account {
		sc.logger.Warn("credential resolved to a different account",
			"requested", logging.AnonymizeEmail(account),
			"resolved", logging.AnonymizeEmail(cred.Email))
	}
	return cred, nil
}

// GmailClientForAccount returns a Gmail client for the account, running
// the credential lifecycle first. The cache is keyed by the resolved
// email so a credential granted for another account is never served
// under the requested one. The returned error carries the
// authorization URL when interaction is required.
func (sc *ServerContext) GmailClientForAccount(ctx context.Context, account string) (*gmail.Client, error) {
	cred, err := sc.credential(ctx, account)
	if err != nil {
		return nil, err
	}

	sc.mu.RLock()
	cached, ok := sc.gmailClients[cred.Email]
	sc.mu.RUnlock()
	if ok {
		return cached, nil
	}

	client, err := gmail.NewClient(sc.ctx, cred.Email, cred.HTTPClient(sc.ctx))
	if err != nil {
		return nil, err
	}

	sc.mu.Lock()
	sc.gmailClients[cred.Email] = client
	sc.mu.Unlock()
	return client, nil
}

// CalendarClientForAccount returns a Calendar client for the account
func (sc *ServerContext) CalendarClientForAccount(ctx context.Context, account string) (*calendar.Client, error) {
	cred, err := sc.credential(ctx, account)
	if err != nil {
		return nil, err
	}

	sc.mu.RLock()
	cached, ok := sc.calendarClients[cred.Email]
	sc.mu.RUnlock()
	if ok {
		return cached, nil
	}

	client, err := calendar.NewClient(sc.ctx, cred.Email, cred.HTTPClient(sc.ctx))
	if err != nil {
		return nil, err
	}

	sc.mu.Lock()
	sc.calendarClients[cred.Email] = client
	sc.mu.Unlock()
	return client, nil
}

// DriveClientForAccount returns a Drive client for the account
func (sc *ServerContext) DriveClientForAccount(ctx context.Context, account string) (*drive.Client, error) {
	cred, err := sc.credential(ctx, account)
	if err != nil {
		return nil, err
	}

	sc.mu.RLock()
	cached, ok := sc.driveClients[cred.Email]
	sc.mu.RUnlock()
	if ok {
		return cached, nil
	}

	client, err := drive.NewClient(sc.ctx, cred.Email, cred.HTTPClient(sc.ctx))
	if err != nil {
		return nil, err
	}

	sc.mu.Lock()
	sc.driveClients[cred.Email] = client
	sc.mu.Unlock()
	return client, nil
}

// DocsClientForAccount returns a Docs client for the account
func (sc *ServerContext) DocsClientForAccount(ctx context.Context, account string) (*docs.Client, error) {
	cred, err := sc.credential(ctx, account)
	if err != nil {
		return nil, err
	}

	sc.mu.RLock()
	cached, ok := sc.docsClients[cred.Email]
	sc.mu.RUnlock()
	if ok {
		return cached, nil
	}

	client, err := docs.NewClient(sc.ctx, cred.Email, cred.HTTPClient(sc.ctx))
	if err != nil {
		return nil, err
	}

	sc.mu.Lock()
	sc.docsClients[cred.Email] = client
	sc.mu.Unlock()
	return client, nil
}

// SheetsClientForAccount returns a Sheets client for the account
func (sc *ServerContext) SheetsClientForAccount(ctx context.Context, account string) (*sheets.Client, error) {
	cred, err := sc.credential(ctx, account)
	if err != nil {
		return nil, err
	}

	sc.mu.RLock()
	cached, ok := sc.sheetsClients[cred.Email]
	sc.mu.RUnlock()
	if ok {
		return cached, nil
	}

	client, err := sheets.NewClient(sc.ctx, cred.Email, cred.HTTPClient(sc.ctx))
	if err != nil {
		return nil, err
	}

	sc.mu.Lock()
	sc.sheetsClients[cred.Email] = client
	sc.mu.Unlock()
	return client, nil
}

// SlidesClientForAccount returns a Slides client for the account
func (sc *ServerContext) SlidesClientForAccount(ctx context.Context, account string) (*slides.Client, error) {
	cred, err := sc.credential(ctx, account)
	if err != nil {
		return nil, err
	}

	sc.mu.RLock()
	cached, ok := sc.slidesClients[cred.Email]
	sc.mu.RUnlock()
	if ok {
		return cached, nil
	}

	client, err := slides.NewClient(sc.ctx, cred.Email, cred.HTTPClient(sc.ctx))
	if err != nil {
		return nil, err
	}

	sc.mu.Lock()
	sc.slidesClients[cred.Email] = client
	sc.mu.Unlock()
	return client, nil
}

// IsShutdown returns whether the server has been shut down
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
