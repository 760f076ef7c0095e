package tracing

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the global tracer instance for the service.
var tracer = otel.Tracer("tierlimit")

// GetTracer returns the global tracer for creating spans.
//
//	ctx, span := tracing.GetTracer().Start(ctx, "rate_limit.check")
//	defer span.End()
func GetTracer() trace.Tracer {
	return tracer
}

// InitTracer installs an SDK tracer provider as the global provider and
// returns a shutdown function that flushes pending spans. Without an
// exporter configured the spans stay in-process; the middleware still
// propagates W3C trace context and exposes trace IDs, which is what log
// correlation needs.
func InitTracer(serviceName string) func(context.Context) {
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	tracer = otel.Tracer(serviceName)

	return func(ctx context.Context) {
		if err := tp.Shutdown(ctx); err != nil {
			slog.Warn("tracer provider shutdown failed", slog.Any("error", err))
		}
	}
}
