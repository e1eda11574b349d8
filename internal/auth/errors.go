package auth

import (
	"fmt"
	"time"
)

// NotConfiguredError is returned when a tool call names an account that is
// not present in the account registry. No authorization flow is started.
type NotConfiguredError struct {
	Email string
}

func (e *NotConfiguredError) Error() string {
	return fmt.Sprintf("account %q is not configured in the account registry", e.Email)
}

// CodeExchangeError is returned when Google rejects the authorization code
// (expired, already used, mismatched redirect URI, or malformed). AuthURL is
// a freshly generated consent URL so the caller can restart the flow without
// reconstructing it.
type CodeExchangeError struct {
	Email   string
	AuthURL string
	Err     error
}

func (e *CodeExchangeError) Error() string {
	return fmt.Sprintf("authorization code exchange failed for %q: %v", e.Email, e.Err)
}

func (e *CodeExchangeError) Unwrap() error { return e.Err }

// NoUserIDError is returned when the userinfo endpoint yields no stable
// subject identifier for an exchanged token. This happens with malformed or
// revoked tokens and is treated as an authorization failure, not success.
type NoUserIDError struct {
	Email   string
	AuthURL string
	Err     error
}

func (e *NoUserIDError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("could not resolve user identity for %q: %v", e.Email, e.Err)
	}
	return fmt.Sprintf("userinfo returned no user id for %q", e.Email)
}

func (e *NoUserIDError) Unwrap() error { return e.Err }

// NoRefreshTokenError is returned when a code exchange succeeded but yielded
// no refresh token and no previously stored refresh token exists for the
// resolved email. Without a refresh token the credential cannot outlive the
// first access token, so the flow must be restarted via AuthURL.
type NoRefreshTokenError struct {
	Email   string
	AuthURL string
}

func (e *NoRefreshTokenError) Error() string {
	return fmt.Sprintf("authorization for %q yielded no refresh token and none is on file", e.Email)
}

// ListenerBusyError is returned when the local callback port cannot be
// bound, typically because another authorization flow is already waiting on
// it. Callers can use this to distinguish "someone else is mid-authorization"
// from a failed browser step.
type ListenerBusyError struct {
	Port int
	Err  error
}

func (e *ListenerBusyError) Error() string {
	return fmt.Sprintf("callback listener port %d is unavailable: %v", e.Port, e.Err)
}

func (e *ListenerBusyError) Unwrap() error { return e.Err }

// AuthTimeoutError is returned when the user did not complete the browser
// consent flow within the configured timeout. The listener is torn down
// before this error is returned.
type AuthTimeoutError struct {
	Email   string
	AuthURL string
	Timeout time.Duration
}

func (e *AuthTimeoutError) Error() string {
	return fmt.Sprintf("authorization for %q not completed within %s", e.Email, e.Timeout)
}
