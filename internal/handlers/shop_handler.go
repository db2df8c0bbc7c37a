package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/farellandr/esports-hub/internal/helpers"
	"github.com/farellandr/esports-hub/internal/models"
	"github.com/farellandr/esports-hub/internal/services"
)

type ShopSettingsRequest struct {
	IsShopEnabled      *bool   `json:"isShopEnabled" binding:"required"`
	MaintenanceMessage *string `json:"maintenanceMessage"`
}

func GetShopSettings(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	settings, err := services.LoadShopSettings(c.Request.Context(), gormDB)
	if err != nil {
		respondDBError(c, err, "Shop settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}

func UpdateShopSettings(c *gin.Context) {
	var req ShopSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithBindingError(c, err)
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	current, err := services.LoadShopSettings(c.Request.Context(), gormDB)
	if err != nil {
		respondDBError(c, err, "Shop settings")
		return
	}
	message := current.MaintenanceMessage
	if req.MaintenanceMessage != nil {
		message = *req.MaintenanceMessage
	}

	settings, err := services.SaveShopSettings(c.Request.Context(), gormDB, *req.IsShopEnabled, message)
	if err != nil {
		respondDBError(c, err, "Shop settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Shop settings updated successfully.",
		"settings": settings,
	})
}

// GetStats returns the dashboard counters.
func GetStats(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	counts := gin.H{}
	collections := []struct {
		key   string
		model any
	}{
		{"events", &models.Event{}},
		{"registrations", &models.Registration{}},
		{"members", &models.Member{}},
		{"teams", &models.Team{}},
		{"games", &models.Game{}},
		{"news", &models.News{}},
		{"partners", &models.Partner{}},
		{"products", &models.Product{}},
		{"orders", &models.Order{}},
		{"videos", &models.Video{}},
		{"messages", &models.ContactMessage{}},
	}
	for _, col := range collections {
		var count int64
		if err := gormDB.Model(col.model).Count(&count).Error; err != nil {
			respondDBError(c, err, "Stats")
			return
		}
		counts[col.key] = count
	}

	var pendingOrders, newMessages, pendingRegistrations int64
	if err := gormDB.Model(&models.Order{}).Where("status = ?", models.OrderPending).Count(&pendingOrders).Error; err != nil {
		respondDBError(c, err, "Stats")
		return
	}
	if err := gormDB.Model(&models.ContactMessage{}).Where("status = ?", models.ContactNew).Count(&newMessages).Error; err != nil {
		respondDBError(c, err, "Stats")
		return
	}
	if err := gormDB.Model(&models.Registration{}).Where("status = ?", models.RegistrationPending).Count(&pendingRegistrations).Error; err != nil {
		respondDBError(c, err, "Stats")
		return
	}

	var totals []decimal.Decimal
	if err := gormDB.Model(&models.Order{}).Where("status <> ?", models.OrderCancelled).Pluck("total_amount", &totals).Error; err != nil {
		respondDBError(c, err, "Stats")
		return
	}
	revenue := decimal.Sum(decimal.Zero, totals...)

	c.JSON(http.StatusOK, gin.H{
		"counts":               counts,
		"pendingOrders":        pendingOrders,
		"pendingRegistrations": pendingRegistrations,
		"newMessages":          newMessages,
		"revenue":              revenue.StringFixed(2),
	})
}
