package repository

import (
	"context"
	"fmt"

	"perfumism/database"
	"perfumism/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PerfumeRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Perfume, error)
	LockByID(ctx context.Context, id int64) (*models.Perfume, error)
	List(ctx context.Context, page, pageSize int) ([]models.Perfume, int64, error)
	ListByBrand(ctx context.Context, brandID, excludeID int64, limit int) ([]models.Perfume, error)
	ListLikedByMember(ctx context.Context, memberID int64, page, pageSize int) ([]models.Perfume, int64, error)
	UpdateGradeStats(ctx context.Context, id int64, averageGrade float64, totalSurvey int64) error
	UpdateTotalLike(ctx context.Context, id int64, totalLike int64) error
}

type perfumeRepository struct {
	db *gorm.DB
}

func NewPerfumeRepository(db *gorm.DB) PerfumeRepository {
	return &perfumeRepository{db: db}
}

// FindByID retrieves a perfume with its brand and accords
func (r *perfumeRepository) FindByID(ctx context.Context, id int64) (*models.Perfume, error) {
	var perfume models.Perfume
	err := database.Conn(ctx, r.db).
		Preload("Brand").
		Preload("Accords").
		First(&perfume, "id = ?", id).Error
	if err != nil {
		return nil, fmt.Errorf("find perfume %d: %w", id, err)
	}
	return &perfume, nil
}

// LockByID selects the perfume row FOR UPDATE so aggregate recomputes serialize.
// Must be called inside a transaction.
func (r *perfumeRepository) LockByID(ctx context.Context, id int64) (*models.Perfume, error) {
	var perfume models.Perfume
	err := database.Conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&perfume, "id = ?", id).Error
	if err != nil {
		return nil, fmt.Errorf("lock perfume %d: %w", id, err)
	}
	return &perfume, nil
}

// List retrieves perfumes ordered by id with pagination
func (r *perfumeRepository) List(ctx context.Context, page, pageSize int) ([]models.Perfume, int64, error) {
	var perfumes []models.Perfume
	var total int64

	db := database.Conn(ctx, r.db)
	if err := db.Model(&models.Perfume{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count perfumes: %w", err)
	}

	offset := (page - 1) * pageSize
	err := db.Preload("Brand").
		Order("id ASC").
		Limit(pageSize).
		Offset(offset).
		Find(&perfumes).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list perfumes: %w", err)
	}

	return perfumes, total, nil
}

// ListByBrand returns up to limit perfumes of the brand other than excludeID
func (r *perfumeRepository) ListByBrand(ctx context.Context, brandID, excludeID int64, limit int) ([]models.Perfume, error) {
	var perfumes []models.Perfume
	err := database.Conn(ctx, r.db).
		Where("brand_id = ? AND id <> ?", brandID, excludeID).
		Order("total_survey DESC, id ASC").
		Limit(limit).
		Find(&perfumes).Error
	if err != nil {
		return nil, fmt.Errorf("list perfumes of brand %d: %w", brandID, err)
	}
	return perfumes, nil
}

// ListLikedByMember returns the perfumes a member liked, newest like first
func (r *perfumeRepository) ListLikedByMember(ctx context.Context, memberID int64, page, pageSize int) ([]models.Perfume, int64, error) {
	var perfumes []models.Perfume
	var total int64

	db := database.Conn(ctx, r.db)
	liked := func() *gorm.DB {
		return db.Model(&models.Perfume{}).
			Joins("JOIN perfume_likes ON perfume_likes.perfume_id = perfumes.id AND perfume_likes.deleted_at IS NULL").
			Where("perfume_likes.member_id = ?", memberID)
	}

	if err := liked().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count liked perfumes: %w", err)
	}

	offset := (page - 1) * pageSize
	err := liked().
		Preload("Brand").
		Order("perfume_likes.created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&perfumes).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list liked perfumes: %w", err)
	}

	return perfumes, total, nil
}

func (r *perfumeRepository) UpdateGradeStats(ctx context.Context, id int64, averageGrade float64, totalSurvey int64) error {
	err := database.Conn(ctx, r.db).
		Model(&models.Perfume{}).
		Where("id = ?", id).
		Updates(map[string]any{"average_grade": averageGrade, "total_survey": totalSurvey}).Error
	if err != nil {
		return fmt.Errorf("update grade stats of perfume %d: %w", id, err)
	}
	return nil
}

func (r *perfumeRepository) UpdateTotalLike(ctx context.Context, id int64, totalLike int64) error {
	err := database.Conn(ctx, r.db).
		Model(&models.Perfume{}).
		Where("id = ?", id).
		Update("total_like", totalLike).Error
	if err != nil {
		return fmt.Errorf("update total like of perfume %d: %w", id, err)
	}
	return nil
}
