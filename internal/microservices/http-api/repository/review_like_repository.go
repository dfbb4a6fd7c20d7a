package repository

import (
	"context"
	"fmt"

	"perfumism/database"
	"perfumism/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type ReviewLikeRepository interface {
	Create(ctx context.Context, like *models.ReviewLike) error
	FindByMemberAndReview(ctx context.Context, memberID, reviewID int64) (*models.ReviewLike, error)
	Delete(ctx context.Context, like *models.ReviewLike) error
	DeleteByReview(ctx context.Context, reviewID int64) error
	CountByReview(ctx context.Context, reviewID int64) (int64, error)
}

type reviewLikeRepository struct {
	db *gorm.DB
}

func NewReviewLikeRepository(db *gorm.DB) ReviewLikeRepository {
	return &reviewLikeRepository{db: db}
}

func (r *reviewLikeRepository) Create(ctx context.Context, like *models.ReviewLike) error {
	if err := database.Conn(ctx, r.db).Create(like).Error; err != nil {
		return fmt.Errorf("create review like: %w", err)
	}
	return nil
}

func (r *reviewLikeRepository) FindByMemberAndReview(ctx context.Context, memberID, reviewID int64) (*models.ReviewLike, error) {
	var like models.ReviewLike
	err := database.Conn(ctx, r.db).
		Where("member_id = ? AND review_id = ?", memberID, reviewID).
		First(&like).Error
	if err != nil {
		return nil, fmt.Errorf("find review like: %w", err)
	}
	return &like, nil
}

func (r *reviewLikeRepository) Delete(ctx context.Context, like *models.ReviewLike) error {
	if err := database.Conn(ctx, r.db).Delete(like).Error; err != nil {
		return fmt.Errorf("delete review like %d: %w", like.ID, err)
	}
	return nil
}

// DeleteByReview soft-deletes every like of the review
func (r *reviewLikeRepository) DeleteByReview(ctx context.Context, reviewID int64) error {
	if err := database.Conn(ctx, r.db).Where("review_id = ?", reviewID).Delete(&models.ReviewLike{}).Error; err != nil {
		return fmt.Errorf("delete likes of review %d: %w", reviewID, err)
	}
	return nil
}

func (r *reviewLikeRepository) CountByReview(ctx context.Context, reviewID int64) (int64, error) {
	var count int64
	err := database.Conn(ctx, r.db).Model(&models.ReviewLike{}).Where("review_id = ?", reviewID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count review likes: %w", err)
	}
	return count, nil
}
