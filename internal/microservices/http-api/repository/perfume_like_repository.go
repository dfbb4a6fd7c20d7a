package repository

import (
	"context"
	"fmt"

	"perfumism/database"
	"perfumism/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type PerfumeLikeRepository interface {
	Create(ctx context.Context, like *models.PerfumeLike) error
	FindByMemberAndPerfume(ctx context.Context, memberID, perfumeID int64) (*models.PerfumeLike, error)
	Delete(ctx context.Context, like *models.PerfumeLike) error
	CountByPerfume(ctx context.Context, perfumeID int64) (int64, error)
}

type perfumeLikeRepository struct {
	db *gorm.DB
}

func NewPerfumeLikeRepository(db *gorm.DB) PerfumeLikeRepository {
	return &perfumeLikeRepository{db: db}
}

func (r *perfumeLikeRepository) Create(ctx context.Context, like *models.PerfumeLike) error {
	if err := database.Conn(ctx, r.db).Create(like).Error; err != nil {
		return fmt.Errorf("create perfume like: %w", err)
	}
	return nil
}

func (r *perfumeLikeRepository) FindByMemberAndPerfume(ctx context.Context, memberID, perfumeID int64) (*models.PerfumeLike, error) {
	var like models.PerfumeLike
	err := database.Conn(ctx, r.db).
		Where("member_id = ? AND perfume_id = ?", memberID, perfumeID).
		First(&like).Error
	if err != nil {
		return nil, fmt.Errorf("find perfume like: %w", err)
	}
	return &like, nil
}

func (r *perfumeLikeRepository) Delete(ctx context.Context, like *models.PerfumeLike) error {
	if err := database.Conn(ctx, r.db).Delete(like).Error; err != nil {
		return fmt.Errorf("delete perfume like %d: %w", like.ID, err)
	}
	return nil
}

func (r *perfumeLikeRepository) CountByPerfume(ctx context.Context, perfumeID int64) (int64, error) {
	var count int64
	err := database.Conn(ctx, r.db).Model(&models.PerfumeLike{}).Where("perfume_id = ?", perfumeID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count perfume likes: %w", err)
	}
	return count, nil
}
