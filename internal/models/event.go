package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EventStatusUpcoming  = "upcoming"
	EventStatusOngoing   = "ongoing"
	EventStatusCompleted = "completed"
	EventStatusCancelled = "cancelled"
)

type Event struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Title                string     `gorm:"not null" json:"title"`
	Slug                 string     `gorm:"uniqueIndex;not null" json:"slug"`
	Description          string     `gorm:"type:text" json:"description"`
	Game                 string     `gorm:"index" json:"game"`
	Type                 string     `gorm:"not null;default:'tournament'" json:"type"`
	Status               string     `gorm:"index;not null;default:'upcoming'" json:"status"`
	StartDate            time.Time  `gorm:"not null" json:"startDate"`
	EndDate              *time.Time `json:"endDate,omitempty"`
	RegistrationDeadline *time.Time `json:"registrationDeadline,omitempty"`
	Location             string     `json:"location"`
	IsOnline             bool       `gorm:"not null;default:false" json:"isOnline"`
	PrizePool            string     `json:"prizePool"`
	MaxParticipants      int        `gorm:"not null;default:0" json:"maxParticipants"`
	Image                string     `json:"image"`
	StreamURL            string     `json:"streamUrl"`
	Rules                string     `gorm:"type:text" json:"rules"`
	Featured             bool       `gorm:"not null;default:false" json:"featured"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

func (event *Event) BeforeCreate(tx *gorm.DB) (err error) {
	newID(&event.ID)
	return
}

// RegistrationCutoff is the moment registrations close. Events without an
// explicit deadline close when they start.
func (event *Event) RegistrationCutoff() time.Time {
	if event.RegistrationDeadline != nil && !event.RegistrationDeadline.IsZero() {
		return *event.RegistrationDeadline
	}
	return event.StartDate
}

func (event *Event) AcceptsRegistrations(now time.Time) bool {
	return event.Status == EventStatusUpcoming && now.Before(event.RegistrationCutoff())
}
