package middleware

import (
	"fmt"
	"log/slog"

	"perfumism/internal/apperror"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into a logged internal error response.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			"request_id", RequestIDFromContext(c),
			"path", c.Request.URL.Path,
			"panic", fmt.Sprint(recovered),
		)
		AbortWithError(c, apperror.New(apperror.CodeInternal))
	})
}
