package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"perfumism/internal/microservices/http-api/dto"
	"perfumism/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type ArticleHandler struct {
	articleService service.ArticleService
	logger         *slog.Logger
}

func NewArticleHandler(articleService service.ArticleService, logger *slog.Logger) *ArticleHandler {
	return &ArticleHandler{
		articleService: articleService,
		logger:         logger,
	}
}

// RegisterRoutes registers board routes
func (h *ArticleHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	articles := public.Group("/articles")
	{
		articles.GET("", h.List)
		articles.GET("/:article_id", h.Detail)
	}

	own := protected.Group("/articles")
	{
		own.POST("", h.Create)
		own.PUT("/:article_id", h.Update)
		own.DELETE("/:article_id", h.Remove)
		own.POST("/:article_id/images", h.UploadImages)
	}
}

// List returns articles newest first, optionally filtered by subject
// GET /api/articles?subject=
func (h *ArticleHandler) List(c *gin.Context) {
	page, size := pagination(c)

	resp, err := h.articleService.List(c.Request.Context(), c.Query("subject"), page, size)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Detail returns an article with its images
// GET /api/articles/:article_id
func (h *ArticleHandler) Detail(c *gin.Context) {
	articleID, ok := pathID(c, "article_id")
	if !ok {
		return
	}

	resp, err := h.articleService.Detail(c.Request.Context(), articleID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create posts a new article
// POST /api/auth/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	email, ok := memberEmail(c)
	if !ok {
		return
	}

	var req dto.ArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	id, err := h.articleService.Create(c.Request.Context(), email, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/articles/%d", id))
	c.JSON(http.StatusCreated, dto.IDResponse{ID: id})
}

// Update edits the member's article
// PUT /api/auth/articles/:article_id
func (h *ArticleHandler) Update(c *gin.Context) {
	email, ok := memberEmail(c)
	if !ok {
		return
	}
	articleID, ok := pathID(c, "article_id")
	if !ok {
		return
	}

	var req dto.ArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.articleService.Update(c.Request.Context(), email, articleID, req); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Remove soft-deletes the member's article together with its comments and vote
// DELETE /api/auth/articles/:article_id
func (h *ArticleHandler) Remove(c *gin.Context) {
	email, ok := memberEmail(c)
	if !ok {
		return
	}
	articleID, ok := pathID(c, "article_id")
	if !ok {
		return
	}

	if err := h.articleService.Remove(c.Request.Context(), email, articleID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadImages attaches the multipart "files" to the member's article
// POST /api/auth/articles/:article_id/images
func (h *ArticleHandler) UploadImages(c *gin.Context) {
	email, ok := memberEmail(c)
	if !ok {
		return
	}
	articleID, ok := pathID(c, "article_id")
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		respondBindError(c, err)
		return
	}

	uploads, closeAll, err := openUploads(form.File["files"])
	if err != nil {
		respondBindError(c, err)
		return
	}
	defer closeAll()

	images, err := h.articleService.UploadImages(c.Request.Context(), email, articleID, uploads)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, images)
}
