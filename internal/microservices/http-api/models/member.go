package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	AuthorityUser  = "ROLE_USER"
	AuthorityAdmin = "ROLE_ADMIN"
)

const (
	SocialTypeNone   = "NONE"
	SocialTypeGoogle = "GOOGLE"
	SocialTypeKakao  = "KAKAO"
)

type Member struct {
	ID         int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Email      string         `json:"email" gorm:"not null;size:255;index:idx_members_email,unique,where:deleted_at IS NULL"`
	Username   string         `json:"username" gorm:"not null;size:50;index:idx_members_username,unique,where:deleted_at IS NULL"`
	Password   string         `json:"-" gorm:"column:password_hash"` // empty for OAuth-only members
	Authority  string         `json:"authority" gorm:"not null;size:20;default:'ROLE_USER'"`
	SocialType string         `json:"social_type" gorm:"not null;size:20;default:'NONE'"`
	ImageURL   *string        `json:"image_url,omitempty"`
	CreatedAt  time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Member) TableName() string {
	return "members"
}

// HasPassword reports whether the member can log in with a password.
func (m *Member) HasPassword() bool {
	return m.Password != ""
}
