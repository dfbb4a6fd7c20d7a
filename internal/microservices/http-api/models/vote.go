package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	MinVoteItems = 2
	MaxVoteItems = 10
)

type Vote struct {
	ID        int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	ArticleID int64          `json:"article_id" gorm:"not null;index:idx_votes_article,unique,where:deleted_at IS NULL"`
	Title     string         `json:"title" gorm:"not null;size:200"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Items []VoteItem `json:"items,omitempty" gorm:"foreignKey:VoteID"`
}

func (Vote) TableName() string {
	return "votes"
}

// HasItem reports whether itemID is one of the vote's items.
func (v *Vote) HasItem(itemID int64) bool {
	for _, item := range v.Items {
		if item.ID == itemID {
			return true
		}
	}
	return false
}

type VoteItem struct {
	ID        int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	VoteID    int64          `json:"vote_id" gorm:"not null;index"`
	Content   string         `json:"content" gorm:"not null;size:200"`
	Count     int64          `json:"count" gorm:"not null;default:0"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (VoteItem) TableName() string {
	return "vote_items"
}

type VoteMember struct {
	ID         int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	VoteID     int64          `json:"vote_id" gorm:"not null;index:idx_vote_members_vote_member,unique,where:deleted_at IS NULL"`
	VoteItemID int64          `json:"vote_item_id" gorm:"not null;index"`
	MemberID   int64          `json:"member_id" gorm:"not null;index:idx_vote_members_vote_member,unique,where:deleted_at IS NULL"`
	CreatedAt  time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

func (VoteMember) TableName() string {
	return "vote_members"
}
