package handlers

import (
	"errors"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"github.com/farellandr/esports-hub/internal/helpers"
	"github.com/farellandr/esports-hub/internal/middleware"
	"github.com/farellandr/esports-hub/internal/models"
	"github.com/farellandr/esports-hub/internal/services"
	"github.com/farellandr/esports-hub/internal/store"
)

var registrationStatuses = []string{
	models.RegistrationPending,
	models.RegistrationApproved,
	models.RegistrationRejected,
}

type RegistrationRequest struct {
	TeamName    string   `json:"teamName"`
	CaptainName string   `json:"captainName" binding:"required"`
	Email       string   `json:"email" binding:"required,email"`
	Phone       string   `json:"phone"`
	Discord     string   `json:"discord"`
	Players     []string `json:"players"`
	Notes       string   `json:"notes"`
}

type CheckInRequest struct {
	Pass string `json:"pass" binding:"required"`
}

func registrationService(c *gin.Context) (*services.RegistrationService, bool) {
	gormDB, ok := getDB(c)
	if !ok {
		return nil, false
	}
	return services.NewRegistrationService(
		gormDB,
		middleware.GetPublisher(c),
		middleware.GetLogger(c),
		middleware.GetAuthSettings(c).PassSecret,
	), true
}

func respondRegistrationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrRegistrationClosed),
		errors.Is(err, services.ErrDeadlinePassed),
		errors.Is(err, services.ErrInvalidPass):
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrEventNotFound),
		errors.Is(err, services.ErrRegistrationNotFound):
		helpers.RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrAlreadyRegistered),
		errors.Is(err, services.ErrEventFull),
		errors.Is(err, services.ErrAlreadyCheckedIn),
		errors.Is(err, services.ErrRegistrationRejected):
		helpers.RespondWithError(c, http.StatusConflict, err.Error())
	default:
		respondDBError(c, err, "Registration")
	}
}

// CreateRegistration registers a team for the event in :id (id or slug).
func CreateRegistration(c *gin.Context) {
	var req RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithBindingError(c, err)
		return
	}

	events, mock := eventStore(c)
	if mock {
		helpers.RespondWithError(c, http.StatusServiceUnavailable, "Registrations are temporarily unavailable.")
		return
	}

	event, err := events.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondRegistrationError(c, services.ErrEventNotFound)
			return
		}
		respondStoreError(c, err, "Event")
		return
	}

	svc, ok := registrationService(c)
	if !ok {
		return
	}

	registration, err := svc.Register(c.Request.Context(), event, services.RegisterRequest{
		TeamName:    req.TeamName,
		CaptainName: req.CaptainName,
		Email:       req.Email,
		Phone:       req.Phone,
		Discord:     req.Discord,
		Players:     req.Players,
		Notes:       req.Notes,
	})
	middleware.RecordOperation("registration_create", err == nil)
	if err != nil {
		respondRegistrationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Registration submitted successfully.",
		"registration": registration,
	})
}

// GetRegistrationPass renders the signed check-in pass as a QR code PNG.
func GetRegistrationPass(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	email := c.Query("email")
	if email == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Email is required.")
		return
	}

	svc, ok := registrationService(c)
	if !ok {
		return
	}

	pass, err := svc.Pass(c.Request.Context(), id, email)
	if err != nil {
		respondRegistrationError(c, err)
		return
	}

	qrImage, err := qrcode.Encode(pass, qrcode.Medium, 256)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", qrImage)
}

func ListRegistrations(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	p, ok := parsePagination(c)
	if !ok {
		return
	}

	eventID := c.Param("id")
	if eventID == "" {
		eventID = c.Query("event")
	}

	query := gormDB.Model(&models.Registration{})
	if eventID != "" {
		id, err := uuid.Parse(eventID)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
			return
		}
		query = query.Where("event_id = ?", id)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if checkedIn := helpers.ParseBool(c, "checkedIn"); checkedIn != nil {
		query = query.Where("checked_in = ?", *checkedIn)
	}
	if search := c.Query("search"); search != "" {
		pattern := helpers.LikePattern(search)
		query = query.Where("(LOWER(team_name) LIKE ? OR LOWER(captain_name) LIKE ? OR LOWER(email) LIKE ?)",
			pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondDBError(c, err, "Registration")
		return
	}

	var registrations []models.Registration
	err := query.Preload("Event").Order("created_at DESC").
		Offset(p.Offset()).Limit(p.Limit).
		Find(&registrations).Error
	if err != nil {
		respondDBError(c, err, "Registration")
		return
	}

	c.JSON(http.StatusOK, helpers.Paginated("registrations", registrations, total, p))
}

func UpdateRegistrationStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || !slices.Contains(registrationStatuses, req.Status) {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid status.")
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var registration models.Registration
	if err := gormDB.Where("id = ?", id).First(&registration).Error; err != nil {
		respondDBError(c, err, "Registration")
		return
	}
	if err := gormDB.Model(&registration).Update("status", req.Status).Error; err != nil {
		respondDBError(c, err, "Registration")
		return
	}
	registration.Status = req.Status

	c.JSON(http.StatusOK, gin.H{
		"message":      "Registration status updated successfully.",
		"registration": registration,
	})
}

func DeleteRegistration(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	result := gormDB.Where("id = ?", id).Delete(&models.Registration{})
	if result.Error != nil {
		respondDBError(c, result.Error, "Registration")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Registration not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Registration deleted successfully."})
}

// CheckInRegistration validates a scanned QR pass at the venue.
func CheckInRegistration(c *gin.Context) {
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithBindingError(c, err)
		return
	}

	svc, ok := registrationService(c)
	if !ok {
		return
	}

	registration, err := svc.CheckIn(c.Request.Context(), req.Pass)
	middleware.RecordOperation("registration_check_in", err == nil)
	if err != nil {
		respondRegistrationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Check-in successful.",
		"registration": registration,
	})
}
