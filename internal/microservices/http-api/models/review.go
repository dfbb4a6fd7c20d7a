package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	MinGrade = 0
	MaxGrade = 5
)

type Review struct {
	ID        int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	PerfumeID int64          `json:"perfume_id" gorm:"not null;index;index:idx_reviews_member_perfume,unique,where:deleted_at IS NULL"`
	MemberID  int64          `json:"member_id" gorm:"not null;index:idx_reviews_member_perfume,unique,where:deleted_at IS NULL"`
	Grade     int            `json:"grade" gorm:"not null;check:grade >= 0 AND grade <= 5"`
	Content   string         `json:"content" gorm:"not null;type:text"`
	TotalLike int64          `json:"total_like" gorm:"not null;default:0"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// associations
	Member  Member  `json:"member,omitempty" gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE;"`
	Perfume Perfume `json:"perfume,omitempty" gorm:"foreignKey:PerfumeID;constraint:OnDelete:CASCADE;"`
}

func (Review) TableName() string {
	return "reviews"
}

// IsWrittenBy reports whether memberID owns the review.
func (r *Review) IsWrittenBy(memberID int64) bool {
	return r.MemberID == memberID
}

type ReviewLike struct {
	ID        int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	MemberID  int64          `json:"member_id" gorm:"not null;index:idx_review_likes_member_review,unique,where:deleted_at IS NULL"`
	ReviewID  int64          `json:"review_id" gorm:"not null;index;index:idx_review_likes_member_review,unique,where:deleted_at IS NULL"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Member Member `json:"-" gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE;"`
	Review Review `json:"-" gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE;"`
}

func (ReviewLike) TableName() string {
	return "review_likes"
}
