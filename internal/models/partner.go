package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PartnerTypePartner = "partner"
	PartnerTypeSponsor = "sponsor"
)

type Partner struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Type         string    `gorm:"index;not null;default:'partner'" json:"type"`
	Tier         string    `gorm:"index" json:"tier"`
	Logo         string    `json:"logo"`
	Website      string    `json:"website"`
	Description  string    `gorm:"type:text" json:"description"`
	IsActive     bool      `gorm:"not null" json:"isActive"`
	DisplayOrder int       `gorm:"not null;default:0" json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (partner *Partner) BeforeCreate(tx *gorm.DB) (err error) {
	newID(&partner.ID)
	return
}
