package logger

import "context"

// ctxKey scopes this package's context values.
type ctxKey string

const (
	ctxRequestID = ctxKey(FieldRequestID)
	ctxTraceID   = ctxKey(FieldTraceID)
	ctxSpanID    = ctxKey(FieldSpanID)
)

// ContextWithRequestID stores a request id that WithContext stamps onto
// log entries. The gin middleware calls this once per request.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxRequestID, id)
}

// RequestIDFromContext reads back the id stored by ContextWithRequestID,
// or "" when the context carries none.
func RequestIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(ctxRequestID).(string)
	return v
}

// ContextWithTrace stores the active trace and span ids. The observability
// package calls this when it opens an attempt span, so spans and log
// entries correlate.
func ContextWithTrace(ctx context.Context, traceID, spanID string) context.Context {
	ctx = context.WithValue(ctx, ctxTraceID, traceID)
	return context.WithValue(ctx, ctxSpanID, spanID)
}

// TraceIDFromContext reads back the trace id stored by ContextWithTrace,
// or "" when the context carries none.
func TraceIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(ctxTraceID).(string)
	return v
}

// WithContext stamps the request, trace, and span ids carried by ctx onto
// every entry the returned logger writes. Values the context lacks add
// nothing.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	zc := l.zl.With()
	if id, ok := ctx.Value(ctxRequestID).(string); ok && id != "" {
		zc = zc.Str(FieldRequestID, id)
	}
	if id, ok := ctx.Value(ctxTraceID).(string); ok && id != "" {
		zc = zc.Str(FieldTraceID, id)
	}
	if id, ok := ctx.Value(ctxSpanID).(string); ok && id != "" {
		zc = zc.Str(FieldSpanID, id)
	}
	return l.derive(zc.Logger())
}
