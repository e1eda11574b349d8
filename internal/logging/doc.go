// Package logging provides structured logging utilities for workspace-mcp.
//
// It centralizes attribute naming and PII handling on top of the standard
// library's slog package. Account emails are hashed before they reach general
// log streams; tokens are never logged, only their lengths.
//
// Typical usage:
//
//	logger := logging.WithService(slog.Default(), "gmail")
//	logger.Info("message sent",
//	    logging.Account(email),
//	    logging.Status(logging.StatusSuccess))
package logging
