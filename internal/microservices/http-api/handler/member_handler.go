package handler

import (
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"

	"perfumism/internal/apperror"
	"perfumism/internal/microservices/http-api/dto"
	"perfumism/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	memberService service.MemberService
	authService   service.AuthService
	cookie        refreshCookie
	logger        *slog.Logger
}

func NewMemberHandler(memberService service.MemberService, authService service.AuthService, cookieSecure bool, logger *slog.Logger) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
		authService:   authService,
		cookie:        refreshCookie{secure: cookieSecure},
		logger:        logger,
	}
}

// RegisterRoutes registers account and session routes
func (h *MemberHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	members := public.Group("/members")
	{
		members.POST("/join", h.Join)
		members.POST("/exist-email", h.ExistEmail)
		members.POST("/exist-username", h.ExistUsername)
		members.POST("/login", h.Login)
		members.POST("/reissue", h.Reissue)
	}

	me := protected.Group("/members")
	{
		me.GET("", h.MyInfo)
		me.DELETE("", h.Resign)
		me.PUT("/change-pw", h.ChangePassword)
		me.POST("/img", h.ChangeImage)
		me.POST("/logout", h.Logout)
	}
}

// Join registers a local account
// POST /api/members/join
func (h *MemberHandler) Join(c *gin.Context) {
	var req dto.JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	id, err := h.memberService.Join(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/members/%d", id))
	c.JSON(http.StatusCreated, dto.IDResponse{ID: id})
}

// ExistEmail reports whether the email is already taken
// POST /api/members/exist-email
func (h *MemberHandler) ExistEmail(c *gin.Context) {
	var req dto.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	exists, err := h.memberService.CheckDuplicateEmail(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ResultResponse{Result: exists})
}

// ExistUsername reports whether the username is already taken
// POST /api/members/exist-username
func (h *MemberHandler) ExistUsername(c *gin.Context) {
	var req dto.UsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	exists, err := h.memberService.CheckDuplicateUsername(c.Request.Context(), req.Username)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ResultResponse{Result: exists})
}

// Login authenticates with email and password
// POST /api/members/login
func (h *MemberHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	pair, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.cookie.respondTokens(c, pair)
}

// Reissue rotates the token pair using the refresh token cookie
// POST /api/members/reissue
func (h *MemberHandler) Reissue(c *gin.Context) {
	token, err := c.Cookie(refreshTokenCookie)
	if err != nil || token == "" {
		respondError(c, h.logger, apperror.New(apperror.CodeRefreshTokenInvalid))
		return
	}

	pair, err := h.authService.Reissue(c.Request.Context(), token)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.cookie.respondTokens(c, pair)
}

// MyInfo returns the authenticated member
// GET /api/auth/members
func (h *MemberHandler) MyInfo(c *gin.Context) {
	email, ok := memberEmail(c)
	if !ok {
		return
	}

	info, err := h.memberService.GetMyInfo(c.Request.Context(), email)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// ChangePassword replaces the member's password
// PUT /api/auth/members/change-pw
func (h *MemberHandler) ChangePassword(c *gin.Context) {
	email, ok := memberEmail(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.memberService.ChangePassword(c.Request.Context(), email, req.Password); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Resign soft-deletes the member and ends the session
// DELETE /api/auth/members
func (h *MemberHandler) Resign(c *gin.Context) {
	email, ok := memberEmail(c)
	if !ok {
		return
	}

	if err := h.memberService.Resign(c.Request.Context(), email); err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.cookie.clear(c)
	c.Status(http.StatusNoContent)
}

// ChangeImage uploads a new profile image from the multipart field "file"
// POST /api/auth/members/img
func (h *MemberHandler) ChangeImage(c *gin.Context) {
	email, ok := memberEmail(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		respondBindError(c, err)
		return
	}

	uploads, closeAll, err := openUploads([]*multipart.FileHeader{fh})
	if err != nil {
		respondBindError(c, err)
		return
	}
	defer closeAll()

	url, err := h.memberService.ChangeImage(c.Request.Context(), email, uploads[0])
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ImageResponse{URL: url})
}

// Logout drops the stored refresh token and clears the cookie
// POST /api/auth/members/logout
func (h *MemberHandler) Logout(c *gin.Context) {
	email, ok := memberEmail(c)
	if !ok {
		return
	}

	if err := h.authService.Logout(c.Request.Context(), email); err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.cookie.clear(c)
	c.Status(http.StatusNoContent)
}
