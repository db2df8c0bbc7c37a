package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/farellandr/esports-hub/internal/models"
)

// LoadShopSettings returns the settings singleton, creating it with defaults
// on first access.
func LoadShopSettings(ctx context.Context, db *gorm.DB) (*models.ShopSettings, error) {
	settings := models.DefaultShopSettings()
	if err := db.WithContext(ctx).Where("id = ?", models.ShopSettingsID).FirstOrCreate(&settings).Error; err != nil {
		return nil, fmt.Errorf("load shop settings: %w", err)
	}
	return &settings, nil
}

func SaveShopSettings(ctx context.Context, db *gorm.DB, enabled bool, message string) (*models.ShopSettings, error) {
	settings, err := LoadShopSettings(ctx, db)
	if err != nil {
		return nil, err
	}

	settings.IsShopEnabled = enabled
	settings.MaintenanceMessage = message
	if err := db.WithContext(ctx).Save(settings).Error; err != nil {
		return nil, fmt.Errorf("save shop settings: %w", err)
	}
	return settings, nil
}
