package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"perfumism/internal/microservices/http-api/middleware"

	"github.com/gin-gonic/gin"
)

// RouterConfig carries the cross-cutting pieces of the HTTP surface.
// Zero values of the optional fields disable the matching feature.
type RouterConfig struct {
	Logger         *slog.Logger
	Auth           gin.HandlerFunc
	CORSOrigins    []string
	RequestTimeout time.Duration
	HSTS           bool
	RateLimiter    *middleware.IPRateLimiter
	Metrics        *middleware.Metrics
	MetricsHandler http.Handler
	MaxUploadBytes int64
	// Ping reports whether the database is reachable
	Ping func(ctx context.Context) error
}

// NewRouter builds the gin engine with the middleware chain and every
// handler's routes mounted under /api and /api/auth.
func NewRouter(rc RouterConfig, handlers ...RouteRegistrar) *gin.Engine {
	r := gin.New()
	if rc.MaxUploadBytes > 0 {
		r.MaxMultipartMemory = rc.MaxUploadBytes
	}

	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(rc.Logger))
	r.Use(middleware.Logger(rc.Logger))
	if rc.Metrics != nil {
		r.Use(rc.Metrics.Handler())
	}
	r.Use(middleware.SecureHeaders(rc.HSTS))
	if len(rc.CORSOrigins) > 0 {
		r.Use(middleware.CORS(rc.CORSOrigins))
	}
	if rc.RateLimiter != nil {
		r.Use(middleware.RateLimit(rc.RateLimiter))
	}
	if rc.RequestTimeout > 0 {
		r.Use(middleware.Timeout(rc.RequestTimeout))
	}

	r.GET("/check-conn", checkConn(rc.Ping))
	if rc.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(rc.MetricsHandler))
	}

	api := r.Group("/api")
	protected := api.Group("/auth")
	protected.Use(rc.Auth)

	for _, h := range handlers {
		h.RegisterRoutes(api, protected)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	})

	return r
}

func checkConn(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			if err := ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"message": "database unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "API is alive and database connected"})
	}
}
