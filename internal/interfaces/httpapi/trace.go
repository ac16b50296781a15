package httpapi

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("lol-stats/internal/interfaces/httpapi")

// startSpan nests a handler span under the otelhttp server span. Requests
// that RequestTracing filtered out carry no parent and stay untraced.
func startSpan(ctx context.Context, handler string) (context.Context, trace.Span) {
	if !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, "httpapi.Handler."+handler, trace.WithSpanKind(trace.SpanKindInternal))
}
