// Package logging provides structured logging utilities with context
// propagation.
//
// It wraps the standard library's log/slog package with helpers for the
// patterns used throughout the service: JSON output in production, request
// ID propagation, and a context-carried logger.
//
// Example usage:
//
//	import "tierlimit/internal/observability/logging"
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("service started", slog.String("version", "1.0"))
//	}
//
//	func handleRequest(ctx context.Context) {
//	    logger := logging.WithRequestID(ctx, slog.Default())
//	    logger.Info("processing request")
//	}
package logging
