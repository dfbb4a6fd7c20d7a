package handler

import (
	"log/slog"

	"perfumism/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type OAuthHandler struct {
	oauthService service.OAuthService
	cookie       refreshCookie
	logger       *slog.Logger
}

func NewOAuthHandler(oauthService service.OAuthService, cookieSecure bool, logger *slog.Logger) *OAuthHandler {
	return &OAuthHandler{
		oauthService: oauthService,
		cookie:       refreshCookie{secure: cookieSecure},
		logger:       logger,
	}
}

// RegisterRoutes registers the OAuth redirect callbacks
func (h *OAuthHandler) RegisterRoutes(public, _ *gin.RouterGroup) {
	public.GET("/login/oauth2/code/:provider", h.Callback)
}

// Callback exchanges the authorization code for a session
// GET /api/login/oauth2/code/:provider?code=
func (h *OAuthHandler) Callback(c *gin.Context) {
	pair, err := h.oauthService.Login(c.Request.Context(), c.Param("provider"), c.Query("code"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.cookie.respondTokens(c, pair)
}
