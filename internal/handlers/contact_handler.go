package handlers

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/esports-hub/internal/helpers"
	"github.com/farellandr/esports-hub/internal/middleware"
	"github.com/farellandr/esports-hub/internal/models"
	"github.com/farellandr/esports-hub/internal/notify"
)

var contactStatuses = []string{models.ContactNew, models.ContactRead, models.ContactReplied, models.ContactArchived}

type ContactRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"max=200"`
	Message string `json:"message" binding:"required,max=5000"`
}

func CreateContactMessage(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithBindingError(c, err)
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	message := models.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
		Status:  models.ContactNew,
	}
	if err := gormDB.Create(&message).Error; err != nil {
		respondDBError(c, err, "Message")
		return
	}

	notify.PublishAsync(middleware.GetPublisher(c), middleware.GetLogger(c), notify.ContactReceived, message.ID.String(), message)

	c.JSON(http.StatusCreated, gin.H{"message": "Message sent successfully."})
}

func ListContactMessages(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	p, ok := parsePagination(c)
	if !ok {
		return
	}

	query := gormDB.Model(&models.ContactMessage{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := c.Query("search"); search != "" {
		pattern := helpers.LikePattern(search)
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(subject) LIKE ?)", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondDBError(c, err, "Message")
		return
	}

	var messages []models.ContactMessage
	if err := query.Order("created_at DESC").Offset(p.Offset()).Limit(p.Limit).Find(&messages).Error; err != nil {
		respondDBError(c, err, "Message")
		return
	}

	c.JSON(http.StatusOK, helpers.Paginated("messages", messages, total, p))
}

// GetContactMessage returns the message and marks it read if it was new.
func GetContactMessage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var message models.ContactMessage
	if err := gormDB.Where("id = ?", id).First(&message).Error; err != nil {
		respondDBError(c, err, "Message")
		return
	}

	if message.Status == models.ContactNew {
		if err := gormDB.Model(&message).Update("status", models.ContactRead).Error; err != nil {
			respondDBError(c, err, "Message")
			return
		}
		message.Status = models.ContactRead
	}

	c.JSON(http.StatusOK, message)
}

func UpdateContactStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || !slices.Contains(contactStatuses, req.Status) {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid status.")
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var message models.ContactMessage
	if err := gormDB.Where("id = ?", id).First(&message).Error; err != nil {
		respondDBError(c, err, "Message")
		return
	}
	if err := gormDB.Model(&message).Update("status", req.Status).Error; err != nil {
		respondDBError(c, err, "Message")
		return
	}
	message.Status = req.Status

	c.JSON(http.StatusOK, gin.H{
		"message": "Message status updated successfully.",
		"data":    message,
	})
}

func DeleteContactMessage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	result := gormDB.Where("id = ?", id).Delete(&models.ContactMessage{})
	if result.Error != nil {
		respondDBError(c, result.Error, "Message")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Message not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message deleted successfully."})
}
