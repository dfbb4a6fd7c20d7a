package repository

import (
	"context"
	"fmt"

	"perfumism/database"
	"perfumism/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RefreshTokenRepository handles database operations for refresh tokens
type RefreshTokenRepository interface {
	Save(ctx context.Context, refreshToken *models.RefreshToken) error
	FindByToken(ctx context.Context, token string) (*models.RefreshToken, error)
	Rotate(ctx context.Context, oldToken string, next *models.RefreshToken) error
	DeleteByEmail(ctx context.Context, email string) error
}

// refreshTokenRepository is the GORM implementation of RefreshTokenRepository
type refreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository creates a new instance of RefreshTokenRepository
func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

// Save stores the token for its email, replacing any previous token of that member.
func (r *refreshTokenRepository) Save(ctx context.Context, refreshToken *models.RefreshToken) error {
	err := database.Conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "expires_at", "updated_at"}),
	}).Create(refreshToken).Error
	if err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// FindByToken looks up the refresh token by its token string
func (r *refreshTokenRepository) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	var refreshToken models.RefreshToken
	if err := database.Conn(ctx, r.db).Where("token = ?", token).First(&refreshToken).Error; err != nil {
		return nil, fmt.Errorf("find refresh token: %w", err)
	}
	return &refreshToken, nil
}

// Rotate replaces oldToken with next in one conditional update. It returns
// gorm.ErrRecordNotFound when oldToken has already been rotated or deleted.
func (r *refreshTokenRepository) Rotate(ctx context.Context, oldToken string, next *models.RefreshToken) error {
	result := database.Conn(ctx, r.db).Model(&models.RefreshToken{}).
		Where("token = ? AND email = ?", oldToken, next.Email).
		Updates(map[string]any{"token": next.Token, "expires_at": next.ExpiresAt})
	if result.Error != nil {
		return fmt.Errorf("rotate refresh token: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("rotate refresh token: %w", gorm.ErrRecordNotFound)
	}
	return nil
}

// DeleteByEmail removes the member's token. Deleting a missing token is not an error.
func (r *refreshTokenRepository) DeleteByEmail(ctx context.Context, email string) error {
	if err := database.Conn(ctx, r.db).Where("email = ?", email).Delete(&models.RefreshToken{}).Error; err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}
