// Package observability provides the observability infrastructure for the
// rate limit service: structured logging and OpenTelemetry tracing.
//
// Subpackages:
//   - logging: structured logging utilities with slog
//   - tracing: OpenTelemetry tracer, provider setup and HTTP middleware
//
// HTTP and domain metrics live next to the code they measure: the HTTP
// middleware metrics in internal/handler/http and the limiter decision
// metrics in pkg/ratelimit.
package observability
