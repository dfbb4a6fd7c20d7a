package handler

import (
	"log/slog"
	"net/http"

	"perfumism/internal/microservices/http-api/dto"
	"perfumism/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
	logger         *slog.Logger
}

func NewCommentHandler(commentService service.CommentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		logger:         logger,
	}
}

// RegisterRoutes registers comment routes
func (h *CommentHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/articles/:article_id/comments", h.List)

	protected.POST("/articles/:article_id/comments", h.Write)
	comments := protected.Group("/comments")
	{
		comments.PUT("/:comment_id", h.Update)
		comments.DELETE("/:comment_id", h.Remove)
	}
}

// List returns the comments of an article, oldest first
// GET /api/articles/:article_id/comments
func (h *CommentHandler) List(c *gin.Context) {
	articleID, ok := pathID(c, "article_id")
	if !ok {
		return
	}
	page, size := pagination(c)

	resp, err := h.commentService.List(c.Request.Context(), articleID, page, size)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Write adds a comment to an article
// POST /api/auth/articles/:article_id/comments
func (h *CommentHandler) Write(c *gin.Context) {
	email, ok := memberEmail(c)
	if !ok {
		return
	}
	articleID, ok := pathID(c, "article_id")
	if !ok {
		return
	}

	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	id, err := h.commentService.Write(c.Request.Context(), email, articleID, req.Content)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.IDResponse{ID: id})
}

// Update edits the member's comment
// PUT /api/auth/comments/:comment_id
func (h *CommentHandler) Update(c *gin.Context) {
	email, ok := memberEmail(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}

	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.commentService.Update(c.Request.Context(), email, commentID, req.Content); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Remove soft-deletes the member's comment
// DELETE /api/auth/comments/:comment_id
func (h *CommentHandler) Remove(c *gin.Context) {
	email, ok := memberEmail(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}

	if err := h.commentService.Remove(c.Request.Context(), email, commentID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
