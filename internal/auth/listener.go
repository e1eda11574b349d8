package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// DefaultCallbackPath is the path component of the local redirect endpoint.
// It must match the path of the redirect URI registered with the OAuth2
// client identity.
const DefaultCallbackPath = "/oauth2callback"

// CallbackListener is a short-lived local HTTP listener that receives the
// redirected authorization code from the browser. It accepts exactly one
// successful request; requests to other paths or without a code parameter
// are answered with a client error and do not consume the listener, so
// malformed probes cannot kill it before the real redirect arrives.
type CallbackListener struct {
	ln    net.Listener
	srv   *http.Server
	path  string
	state string

	mu       sync.Mutex
	consumed bool
	codeCh   chan string

	closeOnce sync.Once
	logger    *slog.Logger
}

// NewCallbackListener binds the local callback port. A bind failure is
// reported as a ListenerBusyError so the caller can tell a racing
// authorization flow apart from a failed browser step.
func NewCallbackListener(port int, path string, state string, logger *slog.Logger) (*CallbackListener, error) {
	if path == "" {
		path = DefaultCallbackPath
	}
	if logger == nil {
		logger = slog.Default()
	}

	ln, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
	if err != nil {
		return nil, &ListenerBusyError{Port: port, Err: err}
	}

	l := &CallbackListener{
		ln:     ln,
		path:   path,
		state:  state,
		codeCh: make(chan string, 1),
		logger: logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", l.handle)
	l.srv = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := l.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			logger.Warn("callback listener terminated", "error", err.Error())
		}
	}()

	return l, nil
}

// Addr returns the bound listen address.
func (l *CallbackListener) Addr() string {
	return l.ln.Addr().String()
}

// RedirectURL returns the local URL the browser will be redirected to.
func (l *CallbackListener) RedirectURL() string {
	return (&url.URL{Scheme: "http", Host: l.Addr(), Path: l.path}).String()
}

func (l *CallbackListener) handle(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != l.path {
		http.NotFound(w, r)
		return
	}

	query := r.URL.Query()
	code := query.Get("code")
	if code == "" {
		http.Error(w, "missing code parameter", http.StatusBadRequest)
		return
	}
	if l.state != "" && query.Get("state") != l.state {
		http.Error(w, "state mismatch", http.StatusBadRequest)
		return
	}

	l.mu.Lock()
	if l.consumed {
		l.mu.Unlock()
		http.Error(w, "authorization already completed", http.StatusConflict)
		return
	}
	l.consumed = true
	l.mu.Unlock()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Authorization received. You can close this window and return to your agent.")

	l.codeCh <- code

	// One exchange per listener. Shut down asynchronously so the response
	// above still reaches the browser.
	go l.Close()
}

// Wait blocks until the authorization code arrives or the context is done.
func (l *CallbackListener) Wait(ctx context.Context) (string, error) {
	select {
	case code := <-l.codeCh:
		return code, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Close tears the listener down. Safe to call multiple times and after a
// completed exchange.
func (l *CallbackListener) Close() {
	l.closeOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := l.srv.Shutdown(ctx); err != nil {
			l.logger.Warn("callback listener shutdown", "error", err.Error())
		}
	})
}
