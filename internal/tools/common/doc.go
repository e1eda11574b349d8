// Package common provides shared helpers for MCP tool handlers:
// account argument resolution, rendering of authorization errors and
// the instrumented handler wrapper.
package common
