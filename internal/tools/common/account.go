package common

import (
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/workspace-mcp/internal/auth"
)

// GetAccountFromArgs extracts the account email from request arguments,
// falling back to the server default. An empty result means the caller
// must name an account explicitly.
func GetAccountFromArgs(args map[string]interface{}, fallback string) string {
	if accountVal, ok := args["account"].(string); ok && accountVal != "" {
		return accountVal
	}
	return fallback
}

// MissingAccountResult is returned when no account was given and the
// server has no default
func MissingAccountResult() *mcp.CallToolResult {
	return mcp.NewToolResultError(
		"account is required: more than one account is configured, pass account=<email> to select one")
}

// AuthErrorResult renders credential lifecycle errors for tool callers.
// Errors that carry an authorization URL come back with instructions to
// finish the flow in a browser.
func AuthErrorResult(account string, err error) *mcp.CallToolResult {
	var notConfigured *auth.NotConfiguredError
	if errors.As(err, &notConfigured) {
		return mcp.NewToolResultError(fmt.Sprintf(
			"account %q is not in the account registry. Add it to the accounts file and restart the server.",
			account))
	}

	var authURL string
	var timeout *auth.AuthTimeoutError
	var exchange *auth.CodeExchangeError
	var noUserID *auth.NoUserIDError
	var noRefresh *auth.NoRefreshTokenError
	switch {
	case errors.As(err, &timeout):
		authURL = timeout.AuthURL
	case errors.As(err, &exchange):
		authURL = exchange.AuthURL
	case errors.As(err, &noUserID):
		authURL = noUserID.AuthURL
	case errors.As(err, &noRefresh):
		authURL = noRefresh.AuthURL
	}

	if authURL != "" {
		return mcp.NewToolResultError(fmt.Sprintf(`Authorization needed for account %q: %v

To authorize, open this URL in a browser and grant access:

  %s

Alternatively run the workspace_begin_auth tool, or complete a pasted
authorization code with workspace_complete_auth.`, account, err, authURL))
	}

	return mcp.NewToolResultError(fmt.Sprintf("failed to get credentials for account %q: %v", account, err))
}
