package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader is the standard header name used to propagate request IDs.
	RequestIDHeader = "X-Request-ID"
	// RequestIDKey is the key used to store the request ID in the gin context.
	RequestIDKey = "request_id"
)

// RequestID makes sure every request carries an id: the incoming
// X-Request-ID header when present, a new UUID otherwise. The id is echoed
// back in the response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}

		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)

		c.Next()
	}
}

// RequestIDFromContext extracts the id stored by RequestID.
func RequestIDFromContext(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
