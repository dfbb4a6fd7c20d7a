package handler

import (
	"log/slog"
	"net/http"

	"perfumism/internal/microservices/http-api/dto"
	"perfumism/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type PerfumeHandler struct {
	perfumeService service.PerfumeService
	logger         *slog.Logger
}

func NewPerfumeHandler(perfumeService service.PerfumeService, logger *slog.Logger) *PerfumeHandler {
	return &PerfumeHandler{
		perfumeService: perfumeService,
		logger:         logger,
	}
}

// RegisterRoutes registers catalog and perfume like routes
func (h *PerfumeHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	perfumes := public.Group("/perfumes")
	{
		perfumes.GET("", h.List)
		perfumes.GET("/:perfume_id", h.Detail)
	}

	likes := protected.Group("/perfumes/likes")
	{
		likes.GET("/my-favorite", h.MyFavorites)
		likes.POST("/:perfume_id", h.Like)
		likes.GET("/:perfume_id", h.IsLiked)
		likes.DELETE("/:perfume_id", h.Unlike)
	}
}

// List returns the catalog page
// GET /api/perfumes
func (h *PerfumeHandler) List(c *gin.Context) {
	page, size := pagination(c)

	resp, err := h.perfumeService.List(c.Request.Context(), page, size)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Detail returns a perfume with notes, accords and similar perfumes
// GET /api/perfumes/:perfume_id
func (h *PerfumeHandler) Detail(c *gin.Context) {
	perfumeID, ok := pathID(c, "perfume_id")
	if !ok {
		return
	}

	resp, err := h.perfumeService.ViewDetail(c.Request.Context(), perfumeID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Like marks the perfume as a favorite
// POST /api/auth/perfumes/likes/:perfume_id
func (h *PerfumeHandler) Like(c *gin.Context) {
	email, ok := memberEmail(c)
	if !ok {
		return
	}
	perfumeID, ok := pathID(c, "perfume_id")
	if !ok {
		return
	}

	id, err := h.perfumeService.Like(c.Request.Context(), email, perfumeID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.IDResponse{ID: id})
}

// IsLiked reports whether the member likes the perfume
// GET /api/auth/perfumes/likes/:perfume_id
func (h *PerfumeHandler) IsLiked(c *gin.Context) {
	email, ok := memberEmail(c)
	if !ok {
		return
	}
	perfumeID, ok := pathID(c, "perfume_id")
	if !ok {
		return
	}

	liked, err := h.perfumeService.IsLiked(c.Request.Context(), email, perfumeID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ResultResponse{Result: liked})
}

// Unlike removes the perfume from the favorites
// DELETE /api/auth/perfumes/likes/:perfume_id
func (h *PerfumeHandler) Unlike(c *gin.Context) {
	email, ok := memberEmail(c)
	if !ok {
		return
	}
	perfumeID, ok := pathID(c, "perfume_id")
	if !ok {
		return
	}

	if err := h.perfumeService.Unlike(c.Request.Context(), email, perfumeID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MyFavorites lists the perfumes the member likes
// GET /api/auth/perfumes/likes/my-favorite
func (h *PerfumeHandler) MyFavorites(c *gin.Context) {
	email, ok := memberEmail(c)
	if !ok {
		return
	}
	page, size := pagination(c)

	resp, err := h.perfumeService.MyFavorites(c.Request.Context(), email, page, size)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
