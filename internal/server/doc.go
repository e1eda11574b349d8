// Package server holds the shared state of the MCP server: the
// credential lifecycle manager, per-account Google service clients,
// instrumentation and the dedicated metrics listener.
package server
