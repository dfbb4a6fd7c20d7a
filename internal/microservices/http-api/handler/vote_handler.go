package handler

import (
	"log/slog"
	"net/http"

	"perfumism/internal/microservices/http-api/dto"
	"perfumism/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	voteService service.VoteService
	logger      *slog.Logger
}

func NewVoteHandler(voteService service.VoteService, logger *slog.Logger) *VoteHandler {
	return &VoteHandler{
		voteService: voteService,
		logger:      logger,
	}
}

// RegisterRoutes registers article vote routes
func (h *VoteHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/articles/:article_id/votes", h.Get)

	votes := protected.Group("/articles/:article_id/votes")
	{
		votes.POST("", h.Create)
		votes.POST("/members", h.Participate)
		votes.DELETE("/members", h.Cancel)
		votes.GET("/members/me", h.MySelection)
	}
}

// Get returns the vote of an article with per-item counts
// GET /api/articles/:article_id/votes
func (h *VoteHandler) Get(c *gin.Context) {
	articleID, ok := pathID(c, "article_id")
	if !ok {
		return
	}

	resp, err := h.voteService.Get(c.Request.Context(), articleID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create attaches a vote to the member's article
// POST /api/auth/articles/:article_id/votes
func (h *VoteHandler) Create(c *gin.Context) {
	email, ok := memberEmail(c)
	if !ok {
		return
	}
	articleID, ok := pathID(c, "article_id")
	if !ok {
		return
	}

	var req dto.CreateVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	id, err := h.voteService.Create(c.Request.Context(), email, articleID, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.IDResponse{ID: id})
}

// Participate casts the member's choice
// POST /api/auth/articles/:article_id/votes/members
func (h *VoteHandler) Participate(c *gin.Context) {
	email, ok := memberEmail(c)
	if !ok {
		return
	}
	articleID, ok := pathID(c, "article_id")
	if !ok {
		return
	}

	var req dto.ParticipateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.voteService.Participate(c.Request.Context(), email, articleID, req.VoteItemID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusCreated)
}

// Cancel withdraws the member's choice
// DELETE /api/auth/articles/:article_id/votes/members
func (h *VoteHandler) Cancel(c *gin.Context) {
	email, ok := memberEmail(c)
	if !ok {
		return
	}
	articleID, ok := pathID(c, "article_id")
	if !ok {
		return
	}

	if err := h.voteService.Cancel(c.Request.Context(), email, articleID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MySelection returns the item the member picked
// GET /api/auth/articles/:article_id/votes/members/me
func (h *VoteHandler) MySelection(c *gin.Context) {
	email, ok := memberEmail(c)
	if !ok {
		return
	}
	articleID, ok := pathID(c, "article_id")
	if !ok {
		return
	}

	resp, err := h.voteService.MySelection(c.Request.Context(), email, articleID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
