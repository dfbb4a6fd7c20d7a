package repository

import (
	"context"
	"fmt"

	"perfumism/database"
	"perfumism/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, article *models.Article) error
	FindByID(ctx context.Context, id int64) (*models.Article, error)
	List(ctx context.Context, subject string, page, pageSize int) ([]models.Article, int64, error)
	CreateImages(ctx context.Context, images []models.ArticleImage) error
	DeleteImages(ctx context.Context, articleID int64) error
	SetVoteExist(ctx context.Context, id int64, exist bool) error
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(ctx context.Context, article *models.Article) error {
	if err := database.Conn(ctx, r.db).Omit(clause.Associations).Create(article).Error; err != nil {
		return fmt.Errorf("create article: %w", err)
	}
	return nil
}

// Update subject, title and content of an article
func (r *articleRepository) Update(ctx context.Context, article *models.Article) error {
	err := database.Conn(ctx, r.db).
		Model(article).
		Select("subject", "title", "content", "updated_at").
		Updates(article).Error
	if err != nil {
		return fmt.Errorf("update article %d: %w", article.ID, err)
	}
	return nil
}

func (r *articleRepository) Delete(ctx context.Context, article *models.Article) error {
	if err := database.Conn(ctx, r.db).Delete(article).Error; err != nil {
		return fmt.Errorf("delete article %d: %w", article.ID, err)
	}
	return nil
}

// FindByID retrieves an article with its writer and images
func (r *articleRepository) FindByID(ctx context.Context, id int64) (*models.Article, error) {
	var article models.Article
	err := database.Conn(ctx, r.db).
		Preload("Member").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&article, "id = ?", id).Error
	if err != nil {
		return nil, fmt.Errorf("find article %d: %w", id, err)
	}
	return &article, nil
}

// List retrieves articles newest first; an empty subject matches every subject
func (r *articleRepository) List(ctx context.Context, subject string, page, pageSize int) ([]models.Article, int64, error) {
	var articles []models.Article
	var total int64

	scoped := func() *gorm.DB {
		db := database.Conn(ctx, r.db).Model(&models.Article{})
		if subject != "" {
			db = db.Where("subject = ?", subject)
		}
		return db
	}

	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count articles: %w", err)
	}

	offset := (page - 1) * pageSize
	err := scoped().
		Preload("Member").
		Order("created_at DESC").
		Order("id DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&articles).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list articles: %w", err)
	}

	return articles, total, nil
}

func (r *articleRepository) CreateImages(ctx context.Context, images []models.ArticleImage) error {
	if len(images) == 0 {
		return nil
	}
	if err := database.Conn(ctx, r.db).Create(&images).Error; err != nil {
		return fmt.Errorf("create article images: %w", err)
	}
	return nil
}

// DeleteImages soft-deletes every image row of the article
func (r *articleRepository) DeleteImages(ctx context.Context, articleID int64) error {
	if err := database.Conn(ctx, r.db).Where("article_id = ?", articleID).Delete(&models.ArticleImage{}).Error; err != nil {
		return fmt.Errorf("delete images of article %d: %w", articleID, err)
	}
	return nil
}

func (r *articleRepository) SetVoteExist(ctx context.Context, id int64, exist bool) error {
	err := database.Conn(ctx, r.db).
		Model(&models.Article{}).
		Where("id = ?", id).
		Update("vote_exist", exist).Error
	if err != nil {
		return fmt.Errorf("set vote flag of article %d: %w", id, err)
	}
	return nil
}
