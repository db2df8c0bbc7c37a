package models

import "time"

// ShopSettingsID is the primary key of the one and only settings row.
const ShopSettingsID = 1

type ShopSettings struct {
	ID                 uint      `gorm:"primaryKey" json:"-"`
	IsShopEnabled      bool      `gorm:"not null" json:"isShopEnabled"`
	MaintenanceMessage string    `json:"maintenanceMessage"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func DefaultShopSettings() ShopSettings {
	return ShopSettings{
		ID:                 ShopSettingsID,
		IsShopEnabled:      true,
		MaintenanceMessage: "The shop is currently under maintenance. Please check back soon.",
	}
}
