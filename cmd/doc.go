// Package cmd implements the command-line interface for workspace-mcp.
//
// This package provides the following commands:
//   - serve: Start the MCP server to provide tools for AI assistants
//   - auth: Run the OAuth2 authorization flow for a configured account
//   - accounts: List configured accounts and their credential state
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for all MCP tools
package cmd
