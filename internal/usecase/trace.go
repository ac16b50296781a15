package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("lol-stats/internal/usecase")

// startSpan opens a child span only when the caller is already traced, so
// sweep ticks and executor callbacks do not create orphan roots.
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func regionAttr(region string) attribute.KeyValue {
	return attribute.String("lol.region", region)
}
