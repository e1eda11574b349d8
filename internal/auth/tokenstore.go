package auth

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// TokenRecord is the durable OAuth2 token material for one account.
type TokenRecord struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	Expiry       time.Time `json:"expiry,omitempty"`
	Scopes       []string  `json:"scopes,omitempty"`
}

// Usable reports whether the record can authorize operations requiring the
// given scopes. A record is usable when it carries a refresh token (so the
// oauth2 transport can silently mint new access tokens) and its granted
// scopes cover the required set. Access-token expiry alone does not make a
// record unusable.
func (r *TokenRecord) Usable(required []string) bool {
	if r == nil || r.RefreshToken == "" {
		return false
	}
	return r.CoversScopes(required)
}

// CoversScopes reports whether the record's granted scopes are a superset of
// the required scopes.
func (r *TokenRecord) CoversScopes(required []string) bool {
	if r == nil {
		return false
	}
	granted := make(map[string]bool, len(r.Scopes))
	for _, s := range r.Scopes {
		granted[s] = true
	}
	for _, s := range required {
		if !granted[s] {
			return false
		}
	}
	return true
}

// Token converts the record to an oauth2.Token for use with a token source.
func (r *TokenRecord) Token() *oauth2.Token {
	tokenType := r.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}
	return &oauth2.Token{
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		TokenType:    tokenType,
		Expiry:       r.Expiry,
	}
}

// Store persists one token record per account email as a JSON file under a
// credentials directory.
type Store struct {
	dir    string
	logger *slog.Logger
}

// NewStore creates a token store rooted at dir. The directory is created
// lazily on the first Save.
func NewStore(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{dir: dir, logger: logger}
}

// Dir returns the credentials directory.
func (s *Store) Dir() string {
	return s.dir
}

// emailKeyPattern matches characters that are safe to use verbatim in a
// token file name. Anything else is replaced so an email can never escape
// the credentials directory.
var emailKeyPattern = regexp.MustCompile(`[^a-zA-Z0-9@._+-]`)

// Path returns the token file path for an account email.
func (s *Store) Path(email string) string {
	key := emailKeyPattern.ReplaceAllString(normalizeEmail(email), "_")
	return filepath.Join(s.dir, key+".json")
}

// Load reads the token record for an account. A missing or unparseable file
// is the expected steady state for first-time accounts and returns
// (nil, nil) after logging a warning; only genuine I/O failures are
// propagated.
func (s *Store) Load(email string) (*TokenRecord, error) {
	path := s.Path(email)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read token file %s: %w", path, err)
	}

	var rec TokenRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		s.logger.Warn("ignoring unparseable token file",
			"path", path,
			"error", err.Error(),
		)
		return nil, nil
	}

	return &rec, nil
}

// Has reports whether a token record exists on disk for the account.
func (s *Store) Has(email string) bool {
	_, err := os.Stat(s.Path(email))
	return err == nil
}

// Save persists the full token record for an account, creating the
// credentials directory if needed. The file is overwritten unconditionally.
func (s *Store) Save(email string, rec *TokenRecord) error {
	if rec == nil {
		return fmt.Errorf("cannot save nil token record for %q", email)
	}

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create credentials directory %s: %w", s.dir, err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode token record for %q: %w", email, err)
	}

	path := s.Path(email)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file %s: %w", path, err)
	}

	return nil
}

// recordFromToken builds a TokenRecord from an exchanged oauth2 token. The
// granted scope list comes from the token response's "scope" field when
// Google includes it; requested is the fallback when it does not.
func recordFromToken(t *oauth2.Token, requested []string) *TokenRecord {
	rec := &TokenRecord{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
		Expiry:       t.Expiry,
		Scopes:       requested,
	}
	if granted, ok := t.Extra("scope").(string); ok && granted != "" {
		rec.Scopes = strings.Fields(granted)
	}
	return rec
}
