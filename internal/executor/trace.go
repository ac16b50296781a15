package executor

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var executorTracer = otel.Tracer("lol-stats/internal/executor")
var executorNoopSpan = trace.SpanFromContext(context.Background())

// startTaskSpan only traces tasks submitted from a traced request.
func startTaskSpan(ctx context.Context, operation string) (context.Context, trace.Span) {
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, executorNoopSpan
	}
	return executorTracer.Start(ctx, "executor.task."+operation,
		trace.WithAttributes(attribute.String("riot.operation", operation)),
	)
}
