package repository

import (
	"context"
	"fmt"

	"perfumism/database"
	"perfumism/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, comment *models.Comment) error
	DeleteByArticle(ctx context.Context, articleID int64) error
	FindByID(ctx context.Context, id int64) (*models.Comment, error)
	ListByArticle(ctx context.Context, articleID int64, page, pageSize int) ([]models.Comment, int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create a new comment
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := database.Conn(ctx, r.db).Omit(clause.Associations).Create(comment).Error; err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

// Update the content of an existing comment
func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	err := database.Conn(ctx, r.db).
		Model(comment).
		Select("content", "updated_at").
		Updates(comment).Error
	if err != nil {
		return fmt.Errorf("update comment %d: %w", comment.ID, err)
	}
	return nil
}

// Delete soft-deletes a comment
func (r *commentRepository) Delete(ctx context.Context, comment *models.Comment) error {
	if err := database.Conn(ctx, r.db).Delete(comment).Error; err != nil {
		return fmt.Errorf("delete comment %d: %w", comment.ID, err)
	}
	return nil
}

// DeleteByArticle soft-deletes every comment of an article
func (r *commentRepository) DeleteByArticle(ctx context.Context, articleID int64) error {
	if err := database.Conn(ctx, r.db).Where("article_id = ?", articleID).Delete(&models.Comment{}).Error; err != nil {
		return fmt.Errorf("delete comments of article %d: %w", articleID, err)
	}
	return nil
}

// FindByID retrieves a comment by its ID
func (r *commentRepository) FindByID(ctx context.Context, id int64) (*models.Comment, error) {
	var comment models.Comment
	err := database.Conn(ctx, r.db).
		Preload("Member").
		First(&comment, "id = ?", id).Error
	if err != nil {
		return nil, fmt.Errorf("find comment %d: %w", id, err)
	}
	return &comment, nil
}

// ListByArticle retrieves the comments of an article, oldest first
func (r *commentRepository) ListByArticle(ctx context.Context, articleID int64, page, pageSize int) ([]models.Comment, int64, error) {
	var comments []models.Comment
	var total int64

	db := database.Conn(ctx, r.db)
	if err := db.Model(&models.Comment{}).Where("article_id = ?", articleID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}

	offset := (page - 1) * pageSize
	err := db.Where("article_id = ?", articleID).
		Preload("Member").
		Order("created_at ASC").
		Order("id ASC").
		Limit(pageSize).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}

	return comments, total, nil
}
