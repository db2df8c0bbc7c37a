package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Team struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Name         string     `gorm:"not null" json:"name"`
	GameID       *uuid.UUID `gorm:"type:uuid;index" json:"gameId,omitempty"`
	Game         *Game      `gorm:"foreignKey:GameID;constraint:OnDelete:SET NULL" json:"game,omitempty"`
	Description  string     `gorm:"type:text" json:"description"`
	Logo         string     `json:"logo"`
	Achievements StringList `json:"achievements"`
	IsActive     bool       `gorm:"not null" json:"isActive"`
	Members      []Member   `gorm:"foreignKey:TeamID;constraint:OnDelete:SET NULL" json:"members,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (team *Team) BeforeCreate(tx *gorm.DB) (err error) {
	newID(&team.ID)
	return
}

type Game struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	Logo        string    `json:"logo"`
	IsActive    bool      `gorm:"not null" json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (game *Game) BeforeCreate(tx *gorm.DB) (err error) {
	newID(&game.ID)
	return
}
