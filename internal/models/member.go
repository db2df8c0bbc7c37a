package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Socials struct {
	Twitter   string `json:"twitter"`
	Twitch    string `json:"twitch"`
	YouTube   string `json:"youtube"`
	Instagram string `json:"instagram"`
}

type Member struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Name         string     `gorm:"not null" json:"name"`
	Nickname     string     `gorm:"index" json:"nickname"`
	Role         string     `gorm:"index;not null;default:'player'" json:"role"`
	TeamID       *uuid.UUID `gorm:"type:uuid;index" json:"teamId,omitempty"`
	Game         string     `gorm:"index" json:"game"`
	Country      string     `json:"country"`
	Bio          string     `gorm:"type:text" json:"bio"`
	Photo        string     `json:"photo"`
	Socials      Socials    `gorm:"embedded;embeddedPrefix:social_" json:"socials"`
	Achievements StringList `json:"achievements"`
	IsActive     bool       `gorm:"not null" json:"isActive"`
	DisplayOrder int        `gorm:"not null;default:0" json:"displayOrder"`
	JoinedAt     *time.Time `json:"joinedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (member *Member) BeforeCreate(tx *gorm.DB) (err error) {
	newID(&member.ID)
	return
}
