package httpapi

import (
	"context"

	"github.com/riskibarqy/pickem-league/internal/usecase"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	spanProcessWeekJob    = "httpapi.Handler.RunProcessWeekJob"
	spanLeaderboard       = "httpapi.Handler.GetLeaderboard"
	spanSurvivorStandings = "httpapi.Handler.GetSurvivorStandings"
)

var apiTracer = otel.Tracer("pickem-league/internal/interfaces/httpapi")
var noopSpan = trace.SpanFromContext(context.Background())

var handlerSpans = map[string]struct{}{
	spanProcessWeekJob:    {},
	spanLeaderboard:       {},
	spanSurvivorStandings: {},
}

// startSpan opens a child span for the job and standings handlers. It needs
// a request span from otelhttp, so health checks filtered by
// shouldTraceRequest never get one.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, noopSpan
	}
	if !shouldCreateHTTPAPISpan(name) {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name)
}

func shouldCreateHTTPAPISpan(name string) bool {
	_, ok := handlerSpans[name]
	return ok
}

// weekAttributes tags a process-week span so that reruns of the same week
// can be found together.
func weekAttributes(input usecase.ProcessWeekInput) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int("pickem.season", input.Season),
		attribute.Int("pickem.season_type", input.SeasonType),
		attribute.Int("pickem.week", input.Week),
		attribute.Bool("pickem.dry_run", input.DryRun),
	}
}
