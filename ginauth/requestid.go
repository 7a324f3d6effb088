package ginauth

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillsenselab/authflow/logger"
)

// Header and gin context key for the per-request correlation id.
const (
	RequestIDHeader = "X-Request-Id"
	RequestIDKey    = "request_id"
)

// RequestID assigns every request a correlation id, honoring one the
// caller already sent. The id is echoed on the response and threaded
// through the request context so flow logs correlate one attempt across
// the discovery, token, and userinfo calls.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Set(RequestIDKey, rid)
		c.Header(RequestIDHeader, rid)

		ctx := logger.ContextWithRequestID(c.Request.Context(), rid)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
