package repository

import (
	"context"
	"fmt"

	"perfumism/database"
	"perfumism/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// MemberRepository defines the data operations for members.
// Lookups return gorm.ErrRecordNotFound (wrapped) when nothing matches.
type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	Update(ctx context.Context, member *models.Member) error
	Delete(ctx context.Context, member *models.Member) error
	FindByID(ctx context.Context, id int64) (*models.Member, error)
	FindByEmail(ctx context.Context, email string) (*models.Member, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// memberRepository is the GORM implementation of MemberRepository.
type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new instance of MemberRepository in a GORM implementation
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Create(ctx context.Context, member *models.Member) error {
	if err := database.Conn(ctx, r.db).Create(member).Error; err != nil {
		return fmt.Errorf("create member: %w", err)
	}
	return nil
}

func (r *memberRepository) Update(ctx context.Context, member *models.Member) error {
	if err := database.Conn(ctx, r.db).Save(member).Error; err != nil {
		return fmt.Errorf("update member %d: %w", member.ID, err)
	}
	return nil
}

// Delete soft-deletes the member.
func (r *memberRepository) Delete(ctx context.Context, member *models.Member) error {
	if err := database.Conn(ctx, r.db).Delete(member).Error; err != nil {
		return fmt.Errorf("delete member %d: %w", member.ID, err)
	}
	return nil
}

func (r *memberRepository) FindByID(ctx context.Context, id int64) (*models.Member, error) {
	var member models.Member
	if err := database.Conn(ctx, r.db).First(&member, "id = ?", id).Error; err != nil {
		// return nil so callers never mistake a zero-value member for a hit
		return nil, fmt.Errorf("find member %d: %w", id, err)
	}
	return &member, nil
}

func (r *memberRepository) FindByEmail(ctx context.Context, email string) (*models.Member, error) {
	var member models.Member
	if err := database.Conn(ctx, r.db).Where("email = ?", email).First(&member).Error; err != nil {
		return nil, fmt.Errorf("find member by email: %w", err)
	}
	return &member, nil
}

func (r *memberRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", email)
}

func (r *memberRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username = ?", username)
}

func (r *memberRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var count int64
	if err := database.Conn(ctx, r.db).Model(&models.Member{}).Where(query, arg).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count members: %w", err)
	}
	return count > 0, nil
}
