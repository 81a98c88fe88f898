// Package middleware holds the gin middleware chain: recovery, trace
// propagation, request logging, error rendering and authentication.
package middleware

import (
	"github.com/gin-gonic/gin"

	appcontext "packquote/internal/core/context"
	"packquote/internal/core/id"
)

// TraceHeader carries the request trace id in and out.
const TraceHeader = "X-Trace-Id"

// Trace assigns every request a trace id, honoring one supplied by the
// caller, and propagates it through the request context.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(TraceHeader)
		if traceID == "" {
			traceID = id.New()
		}

		ctx := appcontext.WithTraceID(c.Request.Context(), traceID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(TraceHeader, traceID)
		c.Next()
	}
}
