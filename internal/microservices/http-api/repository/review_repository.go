package repository

import (
	"context"
	"fmt"

	"perfumism/database"
	"perfumism/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, review *models.Review) error
	FindByID(ctx context.Context, id int64) (*models.Review, error)
	LockByID(ctx context.Context, id int64) (*models.Review, error)
	FindByMemberAndPerfume(ctx context.Context, memberID, perfumeID int64) (*models.Review, error)
	ListByPerfume(ctx context.Context, perfumeID int64, page, pageSize int) ([]models.Review, int64, error)
	ListByMember(ctx context.Context, memberID int64, page, pageSize int) ([]models.Review, int64, error)
	GradeStats(ctx context.Context, perfumeID int64) (average float64, total int64, err error)
	UpdateTotalLike(ctx context.Context, id int64, totalLike int64) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create a new review
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := database.Conn(ctx, r.db).Omit(clause.Associations).Create(review).Error; err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

// Update grade and content of an existing review
func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	err := database.Conn(ctx, r.db).
		Model(review).
		Select("grade", "content", "updated_at").
		Updates(review).Error
	if err != nil {
		return fmt.Errorf("update review %d: %w", review.ID, err)
	}
	return nil
}

// Delete soft-deletes the review
func (r *reviewRepository) Delete(ctx context.Context, review *models.Review) error {
	if err := database.Conn(ctx, r.db).Delete(review).Error; err != nil {
		return fmt.Errorf("delete review %d: %w", review.ID, err)
	}
	return nil
}

// FindByID retrieves a review with its writer
func (r *reviewRepository) FindByID(ctx context.Context, id int64) (*models.Review, error) {
	var review models.Review
	err := database.Conn(ctx, r.db).
		Preload("Member").
		First(&review, "id = ?", id).Error
	if err != nil {
		return nil, fmt.Errorf("find review %d: %w", id, err)
	}
	return &review, nil
}

// LockByID selects the review row FOR UPDATE. Must be called inside a transaction.
func (r *reviewRepository) LockByID(ctx context.Context, id int64) (*models.Review, error) {
	var review models.Review
	err := database.Conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&review, "id = ?", id).Error
	if err != nil {
		return nil, fmt.Errorf("lock review %d: %w", id, err)
	}
	return &review, nil
}

// FindByMemberAndPerfume retrieves a member's review of a specific perfume
func (r *reviewRepository) FindByMemberAndPerfume(ctx context.Context, memberID, perfumeID int64) (*models.Review, error) {
	var review models.Review
	err := database.Conn(ctx, r.db).
		Where("member_id = ? AND perfume_id = ?", memberID, perfumeID).
		Preload("Member").
		First(&review).Error
	if err != nil {
		return nil, fmt.Errorf("find review of perfume %d: %w", perfumeID, err)
	}
	return &review, nil
}

// ListByPerfume retrieves the reviews of a perfume, newest first
func (r *reviewRepository) ListByPerfume(ctx context.Context, perfumeID int64, page, pageSize int) ([]models.Review, int64, error) {
	return r.list(ctx, "perfume_id = ?", perfumeID, page, pageSize)
}

// ListByMember retrieves the reviews written by a member, newest first
func (r *reviewRepository) ListByMember(ctx context.Context, memberID int64, page, pageSize int) ([]models.Review, int64, error) {
	return r.list(ctx, "member_id = ?", memberID, page, pageSize)
}

func (r *reviewRepository) list(ctx context.Context, query string, arg any, page, pageSize int) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	db := database.Conn(ctx, r.db)
	if err := db.Model(&models.Review{}).Where(query, arg).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	offset := (page - 1) * pageSize
	err := db.Where(query, arg).
		Preload("Member").
		Preload("Perfume").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}

	return reviews, total, nil
}

// GradeStats returns the average grade and number of live reviews of a perfume
func (r *reviewRepository) GradeStats(ctx context.Context, perfumeID int64) (float64, int64, error) {
	var stats struct {
		Average float64
		Total   int64
	}

	err := database.Conn(ctx, r.db).
		Model(&models.Review{}).
		Select("COALESCE(AVG(grade), 0) AS average, COUNT(*) AS total").
		Where("perfume_id = ?", perfumeID).
		Scan(&stats).Error
	if err != nil {
		return 0, 0, fmt.Errorf("grade stats of perfume %d: %w", perfumeID, err)
	}

	return stats.Average, stats.Total, nil
}

func (r *reviewRepository) UpdateTotalLike(ctx context.Context, id int64, totalLike int64) error {
	err := database.Conn(ctx, r.db).
		Model(&models.Review{}).
		Where("id = ?", id).
		Update("total_like", totalLike).Error
	if err != nil {
		return fmt.Errorf("update total like of review %d: %w", id, err)
	}
	return nil
}
