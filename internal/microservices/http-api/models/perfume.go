package models

import (
	"time"

	"gorm.io/gorm"
)

type Brand struct {
	ID        int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string         `json:"name" gorm:"not null;size:100;uniqueIndex"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Brand) TableName() string {
	return "brands"
}

type Accord struct {
	ID          int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	KoreanName  string         `json:"korean_name" gorm:"not null;size:100"`
	EnglishName string         `json:"english_name" gorm:"not null;size:100;uniqueIndex"`
	CreatedAt   time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Accord) TableName() string {
	return "accords"
}

type Perfume struct {
	ID           int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string         `json:"name" gorm:"not null;size:200"`
	BrandID      int64          `json:"brand_id" gorm:"not null;index"`
	ImageURL     *string        `json:"image_url,omitempty"`
	LaunchYear   *int           `json:"launch_year,omitempty"`
	TopNotes     *string        `json:"top_notes,omitempty" gorm:"type:text"`
	MiddleNotes  *string        `json:"middle_notes,omitempty" gorm:"type:text"`
	BaseNotes    *string        `json:"base_notes,omitempty" gorm:"type:text"`
	Longevity    *string        `json:"longevity,omitempty" gorm:"size:50"`
	Sillage      *string        `json:"sillage,omitempty" gorm:"size:50"`
	AverageGrade float64        `json:"average_grade" gorm:"type:decimal(3,2);not null;default:0"`
	TotalSurvey  int64          `json:"total_survey" gorm:"not null;default:0"`
	TotalLike    int64          `json:"total_like" gorm:"not null;default:0"`
	CreatedAt    time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	// associations
	Brand   Brand    `json:"brand,omitempty" gorm:"foreignKey:BrandID"`
	Accords []Accord `json:"accords,omitempty" gorm:"many2many:perfume_accords;constraint:OnDelete:CASCADE;"`
}

func (Perfume) TableName() string {
	return "perfumes"
}

type PerfumeLike struct {
	ID        int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	MemberID  int64          `json:"member_id" gorm:"not null;index:idx_perfume_likes_member_perfume,unique,where:deleted_at IS NULL"`
	PerfumeID int64          `json:"perfume_id" gorm:"not null;index;index:idx_perfume_likes_member_perfume,unique,where:deleted_at IS NULL"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Member  Member  `json:"-" gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE;"`
	Perfume Perfume `json:"-" gorm:"foreignKey:PerfumeID;constraint:OnDelete:CASCADE;"`
}

func (PerfumeLike) TableName() string {
	return "perfume_likes"
}
