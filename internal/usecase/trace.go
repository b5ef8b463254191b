package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	usecaseTracer   = otel.Tracer("pickem-league/internal/usecase")
	usecaseNoopSpan = trace.SpanFromContext(context.Background())
)

// startUsecaseSpan only opens child spans so that background runs without
// a parent do not emit orphan roots.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if name == "" || !parent.SpanContext().IsValid() {
		return ctx, usecaseNoopSpan
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func weekAttrs(season, seasonType, week int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int("pickem.season", season),
		attribute.Int("pickem.season_type", seasonType),
		attribute.Int("pickem.week", week),
	}
}

func recordSpanError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
