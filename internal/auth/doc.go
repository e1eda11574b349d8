// Package auth implements the Google OAuth2 credential lifecycle for
// multiple accounts.
//
// The package is built from four collaborating pieces:
//   - Registry: the static list of accounts the server is allowed to act for
//   - Store: durable per-account token storage (one JSON file per email)
//   - Client: a thin wrapper around the application's OAuth2 client identity
//   - Manager: the orchestrator that guarantees a usable, correctly-scoped
//     token exists for an account before any Google API call proceeds
//
// A token is considered usable when it carries a refresh token and its
// granted scopes cover the scopes the server needs. An expired access token
// alone does not make a stored token unusable; the oauth2 transport refreshes
// it silently and the Manager re-persists whatever token material results.
//
// When no usable token exists the Manager runs the interactive
// authorization-code flow: it builds a consent URL (offline access, forced
// consent screen, the account email as login hint), opens it in the user's
// browser, and waits on a one-shot local callback listener for the redirect.
// Interactive flows are serialized per account so concurrent tool calls for
// the same unauthorized account cannot race on the callback port.
//
// Tokens are always stored under the email that Google's userinfo endpoint
// reports for the exchanged token, not the email the caller asked for. The
// two differ when the user completes consent with a different account than
// expected, and trusting the caller's input would poison the store.
package auth
