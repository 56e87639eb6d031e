// Package logging provides structured logging utilities for the ticktick-mcp application.
//
// This package centralizes logging patterns to ensure consistent, structured logging
// throughout the codebase using the standard library's slog package.
//
// # Key Features
//
//   - Structured logging with slog
//   - Consistent attribute naming across the codebase
//   - Logger adapter interface for flexibility
//   - Token masking for credential-adjacent log lines
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "ticktick.list_projects")
//	logger.Info("listing projects",
//	    logging.Status("success"))
//
// Never log raw tokens; mask them first:
//
//	logger.Debug("token loaded", "token", logging.SanitizeToken(token))
package logging
