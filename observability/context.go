package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/skillsenselab/authflow/logger"
)

// Attempt tracks one authentication attempt: a span covering the whole
// flow plus the attempt metrics, keyed by strategy and grant type.
type Attempt struct {
	Strategy  string
	GrantType string
	RequestID string
	StartTime time.Time
	Metrics   *Metrics
}

// StartAttempt opens the attempt span and stores the attempt in the
// returned context. A nil Metrics skips metric recording. When a real
// tracer is installed the trace and span ids are also stored for the
// logger, so log entries from the attempt correlate with the span.
func StartAttempt(ctx context.Context, strategy, grantType, requestID string, metrics *Metrics) (context.Context, *Attempt, trace.Span) {
	a := &Attempt{
		Strategy:  strategy,
		GrantType: grantType,
		RequestID: requestID,
		StartTime: time.Now(),
		Metrics:   metrics,
	}

	ctx, span := StartSpan(ctx, SpanAuthenticate)
	span.SetAttributes(
		attribute.String(AttrStrategy, a.Strategy),
		attribute.String(AttrGrantType, a.GrantType),
	)
	if a.RequestID != "" {
		span.SetAttributes(attribute.String(AttrRequestID, a.RequestID))
	}

	if sc := span.SpanContext(); sc.HasTraceID() {
		ctx = logger.ContextWithTrace(ctx, sc.TraceID().String(), sc.SpanID().String())
	}

	return WithAttempt(ctx, a), a, span
}

// attemptKey is the context key for Attempt.
type attemptKey struct{}

// WithAttempt stores an Attempt in the context.
func WithAttempt(ctx context.Context, a *Attempt) context.Context {
	return context.WithValue(ctx, attemptKey{}, a)
}

// AttemptFromContext retrieves the Attempt from context, or nil.
func AttemptFromContext(ctx context.Context) *Attempt {
	if a, ok := ctx.Value(attemptKey{}).(*Attempt); ok {
		return a
	}
	return nil
}

// End closes the attempt span and records the outcome. Status is one of
// "ok", "declined", or "error".
func (a *Attempt) End(ctx context.Context, span trace.Span, status string, err error) {
	duration := time.Since(a.StartTime)

	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
	}

	span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	span.End()

	a.Metrics.RecordAttempt(ctx, a.Strategy, a.GrantType, status, duration)
}

// Duration returns the elapsed time since the attempt started.
func (a *Attempt) Duration() time.Duration {
	return time.Since(a.StartTime)
}
