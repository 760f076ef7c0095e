// Package tracing provides OpenTelemetry tracing integration.
//
// It owns the service tracer, the tracer provider setup, and the HTTP
// middleware that extracts W3C trace context from incoming requests and
// exposes the trace ID to clients via the X-Trace-Id header.
//
// Example usage:
//
//	import "tierlimit/internal/observability/tracing"
//
//	func main() {
//	    shutdown := tracing.InitTracer("tierlimit")
//	    defer shutdown(context.Background())
//	}
//
//	func checkLimit(ctx context.Context) {
//	    ctx, span := tracing.GetTracer().Start(ctx, "rate_limit.check")
//	    defer span.End()
//	}
package tracing
