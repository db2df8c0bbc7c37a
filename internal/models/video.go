package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Video struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	URL         string     `json:"url"`
	File        string     `json:"file"`
	Thumbnail   string     `json:"thumbnail"`
	Category    string     `gorm:"index" json:"category"`
	Game        string     `gorm:"index" json:"game"`
	Featured    bool       `gorm:"not null;default:false" json:"featured"`
	Views       int        `gorm:"not null;default:0" json:"views"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (video *Video) BeforeCreate(tx *gorm.DB) (err error) {
	newID(&video.ID)
	return
}
