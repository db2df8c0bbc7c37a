package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RegistrationPending  = "pending"
	RegistrationApproved = "approved"
	RegistrationRejected = "rejected"
)

type Registration struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	EventID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_registration_event_email" json:"eventId"`
	Event       *Event     `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"event,omitempty"`
	TeamName    string     `json:"teamName"`
	CaptainName string     `gorm:"not null" json:"captainName"`
	Email       string     `gorm:"not null;uniqueIndex:idx_registration_event_email" json:"email"`
	Phone       string     `json:"phone"`
	Discord     string     `json:"discord"`
	Players     StringList `json:"players"`
	Notes       string     `gorm:"type:text" json:"notes"`
	Status      string     `gorm:"index;not null;default:'pending'" json:"status"`
	CheckedIn   bool       `gorm:"not null;default:false" json:"checkedIn"`
	CheckedInAt *time.Time `json:"checkedInAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (registration *Registration) BeforeCreate(tx *gorm.DB) (err error) {
	newID(&registration.ID)
	return
}
