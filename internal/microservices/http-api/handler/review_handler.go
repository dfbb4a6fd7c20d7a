package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"perfumism/internal/microservices/http-api/dto"
	"perfumism/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService service.ReviewService
	logger        *slog.Logger
}

func NewReviewHandler(reviewService service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		logger:        logger,
	}
}

// RegisterRoutes registers review and review like routes
func (h *ReviewHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/perfumes/:perfume_id/reviews", h.ListByPerfume)

	perfumeReviews := protected.Group("/perfumes/:perfume_id/reviews")
	{
		perfumeReviews.POST("", h.Write)
		perfumeReviews.GET("/me", h.MyReviewOfPerfume)
	}

	reviews := protected.Group("/reviews")
	{
		reviews.GET("/my-reviews", h.MyReviews)
		reviews.PUT("/:review_id", h.Change)
		reviews.DELETE("/:review_id", h.Remove)
		reviews.POST("/:review_id/likes", h.Like)
		reviews.GET("/:review_id/likes", h.IsLiked)
		reviews.DELETE("/:review_id/likes", h.Unlike)
	}
}

// ListByPerfume returns the reviews of a perfume, newest first
// GET /api/perfumes/:perfume_id/reviews
func (h *ReviewHandler) ListByPerfume(c *gin.Context) {
	perfumeID, ok := pathID(c, "perfume_id")
	if !ok {
		return
	}
	page, size := pagination(c)

	resp, err := h.reviewService.ListByPerfume(c.Request.Context(), perfumeID, page, size)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Write creates the member's review of a perfume
// POST /api/auth/perfumes/:perfume_id/reviews
func (h *ReviewHandler) Write(c *gin.Context) {
	email, ok := memberEmail(c)
	if !ok {
		return
	}
	perfumeID, ok := pathID(c, "perfume_id")
	if !ok {
		return
	}

	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	id, err := h.reviewService.Write(c.Request.Context(), email, perfumeID, *req.Grade, req.Content)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/auth/reviews/%d", id))
	c.JSON(http.StatusCreated, dto.IDResponse{ID: id})
}

// MyReviewOfPerfume returns the member's review of a perfume
// GET /api/auth/perfumes/:perfume_id/reviews/me
func (h *ReviewHandler) MyReviewOfPerfume(c *gin.Context) {
	email, ok := memberEmail(c)
	if !ok {
		return
	}
	perfumeID, ok := pathID(c, "perfume_id")
	if !ok {
		return
	}

	resp, err := h.reviewService.MyReviewOfPerfume(c.Request.Context(), email, perfumeID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Change updates the grade and content of the member's review
// PUT /api/auth/reviews/:review_id
func (h *ReviewHandler) Change(c *gin.Context) {
	email, ok := memberEmail(c)
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		return
	}

	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.reviewService.Change(c.Request.Context(), email, reviewID, *req.Grade, req.Content); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Remove deletes the member's review
// DELETE /api/auth/reviews/:review_id
func (h *ReviewHandler) Remove(c *gin.Context) {
	email, ok := memberEmail(c)
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		return
	}

	if err := h.reviewService.Remove(c.Request.Context(), email, reviewID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MyReviews lists every review the member wrote
// GET /api/auth/reviews/my-reviews
func (h *ReviewHandler) MyReviews(c *gin.Context) {
	email, ok := memberEmail(c)
	if !ok {
		return
	}
	page, size := pagination(c)

	resp, err := h.reviewService.MyReviews(c.Request.Context(), email, page, size)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Like likes another member's review
// POST /api/auth/reviews/:review_id/likes
func (h *ReviewHandler) Like(c *gin.Context) {
	email, ok := memberEmail(c)
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		return
	}

	id, err := h.reviewService.Like(c.Request.Context(), email, reviewID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.IDResponse{ID: id})
}

// IsLiked reports whether the member likes the review
// GET /api/auth/reviews/:review_id/likes
func (h *ReviewHandler) IsLiked(c *gin.Context) {
	email, ok := memberEmail(c)
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		return
	}

	liked, err := h.reviewService.IsLiked(c.Request.Context(), email, reviewID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ResultResponse{Result: liked})
}

// Unlike withdraws the member's like
// DELETE /api/auth/reviews/:review_id/likes
func (h *ReviewHandler) Unlike(c *gin.Context) {
	email, ok := memberEmail(c)
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		return
	}

	if err := h.reviewService.Unlike(c.Request.Context(), email, reviewID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
