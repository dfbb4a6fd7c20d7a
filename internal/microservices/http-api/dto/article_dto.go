package dto

import (
	"time"

	"perfumism/internal/microservices/http-api/models"
)

// ArticleRequest is shared by create and update
type ArticleRequest struct {
	Subject string `json:"subject" binding:"required"`
	Title   string `json:"title" binding:"required,max=200"`
	Content string `json:"content" binding:"required"`
}

type ArticleResponse struct {
	ID        int64     `json:"id"`
	Subject   string    `json:"subject"`
	Title     string    `json:"title"`
	MemberID  int64     `json:"member_id"`
	Username  string    `json:"username"`
	VoteExist bool      `json:"vote_exist"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ArticleImageResponse struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

type ArticleDetailResponse struct {
	ArticleResponse
	Content string                 `json:"content"`
	Images  []ArticleImageResponse `json:"images"`
}

func FromModelToArticleResponse(article *models.Article) ArticleResponse {
	return ArticleResponse{
		ID:        article.ID,
		Subject:   article.Subject,
		Title:     article.Title,
		MemberID:  article.MemberID,
		Username:  article.Member.Username,
		VoteExist: article.VoteExist,
		CreatedAt: article.CreatedAt,
		UpdatedAt: article.UpdatedAt,
	}
}

func FromModelToArticleDetailResponse(article *models.Article) *ArticleDetailResponse {
	return &ArticleDetailResponse{
		ArticleResponse: FromModelToArticleResponse(article),
		Content:         article.Content,
		Images:          FromModelToArticleImageResponses(article.Images),
	}
}

func FromModelToArticleImageResponses(images []models.ArticleImage) []ArticleImageResponse {
	out := make([]ArticleImageResponse, 0, len(images))
	for _, img := range images {
		out = append(out, ArticleImageResponse{ID: img.ID, URL: img.URL})
	}
	return out
}
