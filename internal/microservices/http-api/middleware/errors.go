package middleware

import (
	"perfumism/internal/apperror"

	"github.com/gin-gonic/gin"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AbortWithError writes the error payload for err and stops the chain.
// Errors without a business code are reported as internal errors without
// leaking their text.
func AbortWithError(c *gin.Context, err error) {
	code := apperror.GetCode(err)
	c.AbortWithStatusJSON(code.HTTPStatus(), errorPayload{
		RequestID: RequestIDFromContext(c),
		Error: errorEnvelope{
			Code:    string(code),
			Message: code.Message(),
		},
	})
}
