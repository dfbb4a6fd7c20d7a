package handler

import (
	"net/http"
	"time"

	"perfumism/internal/microservices/http-api/dto"
	"perfumism/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

const refreshTokenCookie = "refreshToken"

// refreshCookie writes the HttpOnly refresh token cookie shared by the local
// and OAuth logins.
type refreshCookie struct {
	secure bool
}

func (rc refreshCookie) set(c *gin.Context, token string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshTokenCookie, token, int(ttl.Seconds()), "/", "", rc.secure, true)
}

func (rc refreshCookie) clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshTokenCookie, "", -1, "/", "", rc.secure, true)
}

// respondTokens sets the refresh cookie and returns the access token body
func (rc refreshCookie) respondTokens(c *gin.Context, pair *service.TokenPair) {
	rc.set(c, pair.RefreshToken, pair.RefreshTokenTTL)
	c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken: pair.AccessToken,
		ExpiresIn:   int64(pair.AccessTokenTTL.Seconds()),
	})
}
