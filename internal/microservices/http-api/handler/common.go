package handler

import (
	"log/slog"
	"strconv"

	"perfumism/internal/apperror"
	"perfumism/internal/microservices/http-api/middleware"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// RouteRegistrar is implemented by every handler. public routes need no
// token, protected routes sit behind the auth middleware.
type RouteRegistrar interface {
	RegisterRoutes(public, protected *gin.RouterGroup)
}

// respondError writes the standard error payload. Unexpected errors are
// logged with their cause since the client only sees the code.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	code := apperror.GetCode(err)
	if code.HTTPStatus() >= 500 {
		logger.Error("request failed",
			"request_id", middleware.RequestIDFromContext(c),
			"method", c.Request.Method,
			"path", c.FullPath(),
			"code", code,
			"error", err,
		)
	}
	middleware.AbortWithError(c, err)
}

func respondBindError(c *gin.Context, err error) {
	middleware.AbortWithError(c, apperror.Wrap(apperror.CodeInvalidInput, err))
}

// pathID parses a positive int64 path parameter, answering INVALID_INPUT otherwise
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		middleware.AbortWithError(c, apperror.New(apperror.CodeInvalidInput))
		return 0, false
	}
	return id, true
}

// pagination reads page (1-based) and size, clamping invalid values
func pagination(c *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ = strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(defaultPageSize)))

	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

// memberEmail returns the authenticated member, answering UNAUTHORIZED when
// the route is not behind the auth middleware
func memberEmail(c *gin.Context) (string, bool) {
	email, ok := middleware.MemberEmail(c)
	if !ok {
		middleware.AbortWithError(c, apperror.New(apperror.CodeUnauthorized))
		return "", false
	}
	return email, true
}
