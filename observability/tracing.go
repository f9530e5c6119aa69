// Package observability provides OpenTelemetry tracing and prometheus
// metrics for webhook submissions.
package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/xraph/salehook"

// Tracer provides OpenTelemetry tracing for submissions.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer creates a tracer from the global provider.
func NewTracer() *Tracer {
	return &Tracer{
		tracer: otel.Tracer(tracerName),
	}
}

// NewTracerFromProvider creates a tracer from an explicit provider.
func NewTracerFromProvider(tp trace.TracerProvider) *Tracer {
	return &Tracer{
		tracer: tp.Tracer(tracerName),
	}
}

// StartSubmissionSpan starts a span covering one submission attempt.
func (t *Tracer) StartSubmissionSpan(ctx context.Context, submissionID, target string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "salehook.submission",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("salehook.submission_id", submissionID),
			attribute.String("salehook.target", target),
		),
	)
}

// EndSubmissionSpan ends a submission span with result attributes. kind
// is empty on success.
func (t *Tracer) EndSubmissionSpan(span trace.Span, statusCode, latencyMs int, kind, message string) {
	span.SetAttributes(
		attribute.Int("http.status_code", statusCode),
		attribute.Int("salehook.latency_ms", latencyMs),
	)
	if kind != "" {
		span.SetAttributes(attribute.String("salehook.error_kind", kind))
		span.SetStatus(codes.Error, message)
	}
	span.End()
}
