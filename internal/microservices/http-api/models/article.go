package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	SubjectTalk      = "TALK"
	SubjectRecommend = "RECOMMEND"
	SubjectQuestion  = "QUESTION"
)

// ValidSubject reports whether s is a known article subject.
func ValidSubject(s string) bool {
	switch s {
	case SubjectTalk, SubjectRecommend, SubjectQuestion:
		return true
	}
	return false
}

type Article struct {
	ID        int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	MemberID  int64          `json:"member_id" gorm:"not null;index"`
	Subject   string         `json:"subject" gorm:"not null;size:20;index"`
	Title     string         `json:"title" gorm:"not null;size:200"`
	Content   string         `json:"content" gorm:"not null;type:text"`
	VoteExist bool           `json:"vote_exist" gorm:"not null;default:false"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// associations
	Member Member         `json:"member,omitempty" gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE;"`
	Images []ArticleImage `json:"images,omitempty" gorm:"foreignKey:ArticleID"`
}

func (Article) TableName() string {
	return "articles"
}

// IsWrittenBy reports whether memberID owns the article.
func (a *Article) IsWrittenBy(memberID int64) bool {
	return a.MemberID == memberID
}

type ArticleImage struct {
	ID        int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	ArticleID int64          `json:"article_id" gorm:"not null;index"`
	URL       string         `json:"url" gorm:"not null"`
	ObjectKey string         `json:"-" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (ArticleImage) TableName() string {
	return "article_images"
}
