package models

import (
	"time"

	"gorm.io/gorm"
)

type Comment struct {
	ID        int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	ArticleID int64          `json:"article_id" gorm:"not null;index"`
	MemberID  int64          `json:"member_id" gorm:"not null;index"`
	Content   string         `json:"content" gorm:"not null;type:text"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Associations
	Member  Member  `json:"member,omitempty" gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE;"`
	Article Article `json:"-" gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE;"`
}

func (Comment) TableName() string {
	return "comments"
}
