// Package google_tools provides MCP tools for the account registry and the
// OAuth credential lifecycle.
//
// Registered tools:
//   - workspace_list_accounts: list the configured accounts
//   - workspace_account_status: credential state for one account
//   - workspace_begin_auth: run the browser + callback authorization flow
//   - workspace_complete_auth: finish a headless flow with a pasted code
//
// These tools are always registered, including in read-only mode, because
// every other tool depends on a usable credential.
package google_tools
