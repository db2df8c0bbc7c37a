package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type News struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Slug        string     `gorm:"uniqueIndex;not null" json:"slug"`
	Summary     string     `json:"summary"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	Category    string     `gorm:"index" json:"category"`
	Tags        StringList `json:"tags"`
	Image       string     `json:"image"`
	Author      string     `json:"author"`
	Published   bool       `gorm:"index;not null;default:false" json:"published"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	Views       int        `gorm:"not null;default:0" json:"views"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (News) TableName() string {
	return "news"
}

func (news *News) BeforeCreate(tx *gorm.DB) (err error) {
	newID(&news.ID)
	return
}
