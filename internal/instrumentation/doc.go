// Package instrumentation wires OpenTelemetry metrics and tracing for
// workspace-mcp.
//
// The Provider owns the meter and tracer providers and selects exporters
// from configuration: a Prometheus reader (scraped by the dedicated metrics
// server), OTLP over HTTP, or stdout for development. The Metrics recorder
// covers the three things worth counting in this server: MCP tool
// invocations, Google API operations, and OAuth flow outcomes (interactive
// authorizations and silent token refreshes).
//
// Audit logging is separate from metrics: every tool invocation produces a
// structured audit record. By default account emails are anonymized in
// those records; full addresses are only included when PII logging is
// explicitly enabled for compliance setups.
package instrumentation
