package middleware

import (
	"strings"

	"perfumism/internal/apperror"
	"perfumism/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

const (
	// EmailKey holds the authenticated member's email in the gin context
	EmailKey     = "email"
	AuthorityKey = "authority"
)

// TokenValidator is the part of service.AuthService the middleware needs
type TokenValidator interface {
	ValidateToken(tokenString string) (*service.Claims, error)
}

// AuthMiddleware is a Gin middleware for JWT authentication of API requests
// It checks for the presence and validity of a Bearer token in the Authorization header
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			AbortWithError(c, apperror.New(apperror.CodeUnauthorized))
			return
		}

		// format: "Bearer <token>"
		scheme, tokenString, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || tokenString == "" {
			AbortWithError(c, apperror.New(apperror.CodeInvalidToken))
			return
		}

		claims, err := validator.ValidateToken(tokenString)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(EmailKey, claims.Email)
		c.Set(AuthorityKey, claims.Authority)

		c.Next()
	}
}

// MemberEmail returns the email set by AuthMiddleware
func MemberEmail(c *gin.Context) (string, bool) {
	email := c.GetString(EmailKey)
	return email, email != ""
}
