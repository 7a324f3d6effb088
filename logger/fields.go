package logger

// Field names shared across the module, so log queries rely on one
// spelling per concept.
const (
	FieldService   = "service"
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldTraceID   = "trace_id"
	FieldSpanID    = "span_id"
	FieldError     = "error"

	FieldStrategy  = "strategy"
	FieldGrantType = "grant_type"
	FieldEndpoint  = "endpoint"
	FieldIssuer    = "issuer"
	FieldSubject   = "subject"

	// FieldAccessToken values must pass through util.MaskSecret first.
	FieldAccessToken = "access_token"
)

// Fields turns alternating key-value pairs into the field map the logging
// methods accept. Non-string keys and a trailing odd value are dropped.
//
//	log.Info("token exchanged", logger.Fields(
//		logger.FieldGrantType, "authorization_code",
//		logger.FieldSubject, info.Subject,
//	))
func Fields(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		if k, ok := kvs[i].(string); ok {
			m[k] = kvs[i+1]
		}
	}
	return m
}
