package dto

import (
	"time"

	"perfumism/internal/microservices/http-api/models"
)

// ReviewRequest for writing or changing a review. Grade is a pointer so that
// 0 passes the required check; the range is enforced by the service.
type ReviewRequest struct {
	Grade   *int   `json:"grade" binding:"required"`
	Content string `json:"content" binding:"required,max=2000"`
}

type ReviewResponse struct {
	ID          int64     `json:"id"`
	PerfumeID   int64     `json:"perfume_id"`
	PerfumeName string    `json:"perfume_name,omitempty"`
	MemberID    int64     `json:"member_id"`
	Username    string    `json:"username"`
	Grade       int       `json:"grade"`
	Content     string    `json:"content"`
	TotalLike   int64     `json:"total_like"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FromModelToReviewResponse converts a Review model to ReviewResponse DTO
func FromModelToReviewResponse(review *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:          review.ID,
		PerfumeID:   review.PerfumeID,
		PerfumeName: review.Perfume.Name,
		MemberID:    review.MemberID,
		Username:    review.Member.Username,
		Grade:       review.Grade,
		Content:     review.Content,
		TotalLike:   review.TotalLike,
		CreatedAt:   review.CreatedAt,
		UpdatedAt:   review.UpdatedAt,
	}
}
