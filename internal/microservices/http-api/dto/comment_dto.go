package dto

import (
	"time"

	"perfumism/internal/microservices/http-api/models"
)

// CommentRequest for writing or updating a comment
type CommentRequest struct {
	Content string `json:"content" binding:"required,max=1000"`
}

type CommentResponse struct {
	ID        int64     `json:"id"`
	ArticleID int64     `json:"article_id"`
	MemberID  int64     `json:"member_id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromModelToCommentResponse converts a Comment model to CommentResponse DTO
func FromModelToCommentResponse(comment *models.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		ArticleID: comment.ArticleID,
		MemberID:  comment.MemberID,
		Username:  comment.Member.Username,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}
