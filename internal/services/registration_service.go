package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/farellandr/esports-hub/internal/helpers"
	"github.com/farellandr/esports-hub/internal/models"
	"github.com/farellandr/esports-hub/internal/notify"
)

type RegisterRequest struct {
	TeamName    string
	CaptainName string
	Email       string
	Phone       string
	Discord     string
	Players     []string
	Notes       string
}

type RegistrationService struct {
	db         *gorm.DB
	publisher  notify.Publisher
	logger     *zap.Logger
	passSecret string
	now        func() time.Time
}

func NewRegistrationService(db *gorm.DB, publisher notify.Publisher, logger *zap.Logger, passSecret string) *RegistrationService {
	return &RegistrationService{
		db:         db,
		publisher:  publisher,
		logger:     logger,
		passSecret: passSecret,
		now:        time.Now,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register signs a team up for event. The event must be upcoming and still
// before its registration cutoff, and an email can register only once per
// event.
func (s *RegistrationService) Register(ctx context.Context, event *models.Event, req RegisterRequest) (*models.Registration, error) {
	email := NormalizeEmail(req.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}

	if event.Status != models.EventStatusUpcoming {
		return nil, ErrRegistrationClosed
	}
	if !event.AcceptsRegistrations(s.now()) {
		return nil, ErrDeadlinePassed
	}

	registration := models.Registration{
		EventID:     event.ID,
		TeamName:    strings.TrimSpace(req.TeamName),
		CaptainName: strings.TrimSpace(req.CaptainName),
		Email:       email,
		Phone:       req.Phone,
		Discord:     req.Discord,
		Players:     models.StringList(req.Players),
		Notes:       req.Notes,
		Status:      models.RegistrationPending,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Registration{}).
			Where("event_id = ? AND email = ?", event.ID, email).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyRegistered
		}

		if event.MaxParticipants > 0 {
			var taken int64
			if err := tx.Model(&models.Registration{}).
				Where("event_id = ? AND status <> ?", event.ID, models.RegistrationRejected).
				Count(&taken).Error; err != nil {
				return err
			}
			if taken >= int64(event.MaxParticipants) {
				return ErrEventFull
			}
		}

		if err := tx.Create(&registration).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyRegistered
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Registration created",
		zap.String("event_id", event.ID.String()),
		zap.String("registration_id", registration.ID.String()))

	notify.PublishAsync(s.publisher, s.logger, notify.RegistrationCreated, event.ID.String(), registration)

	return &registration, nil
}

func (s *RegistrationService) Get(ctx context.Context, id uuid.UUID) (*models.Registration, error) {
	var registration models.Registration
	if err := s.db.WithContext(ctx).Preload("Event").Where("id = ?", id).First(&registration).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return &registration, nil
}

// Pass returns the signed QR payload for a registration. The email must
// match the one the registration was made with.
func (s *RegistrationService) Pass(ctx context.Context, id uuid.UUID, email string) (string, error) {
	registration, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if registration.Email != NormalizeEmail(email) {
		return "", ErrRegistrationNotFound
	}
	if registration.Status == models.RegistrationRejected {
		return "", ErrRegistrationRejected
	}
	return helpers.EncodePass(registration.ID, registration.EventID, registration.Email, s.passSecret), nil
}

// CheckIn validates a scanned pass and marks the registration as checked in.
func (s *RegistrationService) CheckIn(ctx context.Context, passData string) (*models.Registration, error) {
	payload, err := helpers.DecodePass(passData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPass, err)
	}

	registration, err := s.Get(ctx, payload.RegistrationID)
	if err != nil {
		return nil, err
	}
	if registration.EventID != payload.EventID || !helpers.VerifyPass(payload, registration.Email, s.passSecret) {
		return nil, ErrInvalidPass
	}
	if registration.Status == models.RegistrationRejected {
		return nil, ErrRegistrationRejected
	}
	if registration.CheckedIn {
		return nil, ErrAlreadyCheckedIn
	}

	now := s.now()
	result := s.db.WithContext(ctx).Model(&models.Registration{}).
		Where("id = ? AND checked_in = ?", registration.ID, false).
		Updates(map[string]any{"checked_in": true, "checked_in_at": now})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrAlreadyCheckedIn
	}

	registration.CheckedIn = true
	registration.CheckedInAt = &now

	s.logger.Info("Registration checked in",
		zap.String("registration_id", registration.ID.String()),
		zap.String("event_id", registration.EventID.String()))

	return registration, nil
}
