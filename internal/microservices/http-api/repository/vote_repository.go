package repository

import (
	"context"
	"fmt"

	"perfumism/database"
	"perfumism/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VoteRepository interface {
	Create(ctx context.Context, vote *models.Vote) error
	FindByArticle(ctx context.Context, articleID int64) (*models.Vote, error)
	DeleteByArticle(ctx context.Context, articleID int64) error
	LockItem(ctx context.Context, voteID, itemID int64) (*models.VoteItem, error)
	UpdateItemCount(ctx context.Context, itemID int64, count int64) error
	CreateMember(ctx context.Context, member *models.VoteMember) error
	FindMember(ctx context.Context, voteID, memberID int64) (*models.VoteMember, error)
	DeleteMember(ctx context.Context, member *models.VoteMember) error
	CountItemMembers(ctx context.Context, itemID int64) (int64, error)
}

type voteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

// Create inserts the vote together with its items
func (r *voteRepository) Create(ctx context.Context, vote *models.Vote) error {
	if err := database.Conn(ctx, r.db).Create(vote).Error; err != nil {
		return fmt.Errorf("create vote: %w", err)
	}
	return nil
}

// FindByArticle retrieves the vote of an article with its items in creation order
func (r *voteRepository) FindByArticle(ctx context.Context, articleID int64) (*models.Vote, error) {
	var vote models.Vote
	err := database.Conn(ctx, r.db).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("article_id = ?", articleID).
		First(&vote).Error
	if err != nil {
		return nil, fmt.Errorf("find vote of article %d: %w", articleID, err)
	}
	return &vote, nil
}

// DeleteByArticle soft-deletes the article's vote with its items and members.
// Does nothing when the article has no vote.
func (r *voteRepository) DeleteByArticle(ctx context.Context, articleID int64) error {
	db := database.Conn(ctx, r.db)

	var voteIDs []int64
	if err := db.Model(&models.Vote{}).Where("article_id = ?", articleID).Pluck("id", &voteIDs).Error; err != nil {
		return fmt.Errorf("find votes of article %d: %w", articleID, err)
	}
	if len(voteIDs) == 0 {
		return nil
	}

	if err := db.Where("vote_id IN ?", voteIDs).Delete(&models.VoteMember{}).Error; err != nil {
		return fmt.Errorf("delete vote members: %w", err)
	}
	if err := db.Where("vote_id IN ?", voteIDs).Delete(&models.VoteItem{}).Error; err != nil {
		return fmt.Errorf("delete vote items: %w", err)
	}
	if err := db.Where("id IN ?", voteIDs).Delete(&models.Vote{}).Error; err != nil {
		return fmt.Errorf("delete votes: %w", err)
	}
	return nil
}

// LockItem selects the vote item FOR UPDATE, scoped to its vote
func (r *voteRepository) LockItem(ctx context.Context, voteID, itemID int64) (*models.VoteItem, error) {
	var item models.VoteItem
	err := database.Conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND vote_id = ?", itemID, voteID).
		First(&item).Error
	if err != nil {
		return nil, fmt.Errorf("lock vote item %d: %w", itemID, err)
	}
	return &item, nil
}

func (r *voteRepository) UpdateItemCount(ctx context.Context, itemID int64, count int64) error {
	err := database.Conn(ctx, r.db).
		Model(&models.VoteItem{}).
		Where("id = ?", itemID).
		Update("count", count).Error
	if err != nil {
		return fmt.Errorf("update count of vote item %d: %w", itemID, err)
	}
	return nil
}

func (r *voteRepository) CreateMember(ctx context.Context, member *models.VoteMember) error {
	if err := database.Conn(ctx, r.db).Create(member).Error; err != nil {
		return fmt.Errorf("create vote member: %w", err)
	}
	return nil
}

func (r *voteRepository) FindMember(ctx context.Context, voteID, memberID int64) (*models.VoteMember, error) {
	var member models.VoteMember
	err := database.Conn(ctx, r.db).
		Where("vote_id = ? AND member_id = ?", voteID, memberID).
		First(&member).Error
	if err != nil {
		return nil, fmt.Errorf("find vote member: %w", err)
	}
	return &member, nil
}

func (r *voteRepository) DeleteMember(ctx context.Context, member *models.VoteMember) error {
	if err := database.Conn(ctx, r.db).Delete(member).Error; err != nil {
		return fmt.Errorf("delete vote member %d: %w", member.ID, err)
	}
	return nil
}

func (r *voteRepository) CountItemMembers(ctx context.Context, itemID int64) (int64, error) {
	var count int64
	err := database.Conn(ctx, r.db).Model(&models.VoteMember{}).Where("vote_item_id = ?", itemID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count vote members: %w", err)
	}
	return count, nil
}
