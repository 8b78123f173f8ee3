package response

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKeyRequestID is the Gin context key for the request ID.
const ContextKeyRequestID = "request_id"

// HeaderRequestID is the header used to propagate correlation IDs across hops.
const HeaderRequestID = "X-Request-ID"

// RequestIDMiddleware attaches a request ID to every request and echoes it in
// the response. An inbound ID is reused only when it parses as a UUID, so an
// upstream proxy can correlate but a client cannot inject arbitrary strings
// into the logs.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(HeaderRequestID)
		if _, err := uuid.Parse(reqID); err != nil {
			reqID = uuid.New().String()
		}

		c.Set(ContextKeyRequestID, reqID)
		c.Header(HeaderRequestID, reqID)
		c.Next()
	}
}
