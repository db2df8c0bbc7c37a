package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Name      string    `json:"name"`
	Role      string    `gorm:"not null;default:'editor'" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	newID(&user.ID)
	return
}

// All returns every model the schema is migrated from.
func All() []any {
	return []any{
		&User{}, &Game{}, &Team{}, &Member{}, &Event{}, &Registration{},
		&News{}, &Partner{}, &Product{}, &Order{}, &OrderItem{},
		&ContactMessage{}, &ShopSettings{}, &Video{},
	}
}
