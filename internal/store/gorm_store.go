package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farellandr/esports-hub/internal/helpers"
	"github.com/farellandr/esports-hub/internal/models"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func duplicate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

func orderBy(s SortField, columns map[string]string, def string) string {
	if _, ok := columns[s.Field]; !ok {
		return def
	}
	return helpers.OrderClause(helpers.Sort{Field: s.Field, Desc: s.Desc}, columns)
}

func (s *GormStore) ListEvents(ctx context.Context, filter EventFilter) ([]models.Event, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Event{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Game != "" {
		query = query.Where("game = ?", filter.Game)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}
	if filter.Search != "" {
		pattern := helpers.LikePattern(filter.Search)
		query = query.Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []models.Event
	err := query.
		Order(orderBy(filter.Sort, EventSortColumns, "start_date ASC")).
		Offset(filter.Page.Offset).
		Limit(filter.Page.limit()).
		Find(&events).Error
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (s *GormStore) GetEvent(ctx context.Context, idOrSlug string) (*models.Event, error) {
	query := s.db.WithContext(ctx)
	if id, err := uuid.Parse(idOrSlug); err == nil {
		query = query.Where("id = ?", id)
	} else {
		query = query.Where("slug = ?", idOrSlug)
	}

	var event models.Event
	if err := query.First(&event).Error; err != nil {
		return nil, notFound(err)
	}
	return &event, nil
}

func (s *GormStore) CreateEvent(ctx context.Context, event *models.Event) error {
	return duplicate(s.db.WithContext(ctx).Create(event).Error)
}

func (s *GormStore) UpdateEvent(ctx context.Context, event *models.Event) error {
	return duplicate(s.db.WithContext(ctx).Save(event).Error)
}

// DeleteEvent removes the event together with its registrations.
func (s *GormStore) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&models.Registration{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Event{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *GormStore) ListMembers(ctx context.Context, filter MemberFilter) ([]models.Member, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Member{})
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Game != "" {
		query = query.Where("game = ?", filter.Game)
	}
	if filter.TeamID != nil {
		query = query.Where("team_id = ?", *filter.TeamID)
	}
	if filter.Active != nil {
		query = query.Where("is_active = ?", *filter.Active)
	}
	if filter.Search != "" {
		pattern := helpers.LikePattern(filter.Search)
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(nickname) LIKE ?)", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var members []models.Member
	err := query.
		Order(orderBy(filter.Sort, MemberSortColumns, "display_order ASC")).
		Offset(filter.Page.Offset).
		Limit(filter.Page.limit()).
		Find(&members).Error
	if err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

func (s *GormStore) GetMember(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	var member models.Member
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&member).Error; err != nil {
		return nil, notFound(err)
	}
	return &member, nil
}

func (s *GormStore) CreateMember(ctx context.Context, member *models.Member) error {
	return s.db.WithContext(ctx).Create(member).Error
}

func (s *GormStore) UpdateMember(ctx context.Context, member *models.Member) error {
	return s.db.WithContext(ctx).Save(member).Error
}

func (s *GormStore) DeleteMember(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Member{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
