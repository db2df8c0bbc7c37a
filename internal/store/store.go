// Package store holds the event and member stores. Each has a gorm backed
// implementation and an in-memory one that serves mock data while the
// database is unreachable.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/farellandr/esports-hub/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Page is an offset window. A zero Limit means no limit.
type Page struct {
	Offset int
	Limit  int
}

func (p Page) limit() int {
	if p.Limit <= 0 {
		return -1
	}
	return p.Limit
}

type SortField struct {
	Field string
	Desc  bool
}

type EventFilter struct {
	Status   string
	Game     string
	Type     string
	Featured *bool
	Search   string
	Sort     SortField
	Page     Page
}

type EventStore interface {
	ListEvents(ctx context.Context, filter EventFilter) ([]models.Event, int64, error)
	// GetEvent looks an event up by id or slug.
	GetEvent(ctx context.Context, idOrSlug string) (*models.Event, error)
	CreateEvent(ctx context.Context, event *models.Event) error
	UpdateEvent(ctx context.Context, event *models.Event) error
	DeleteEvent(ctx context.Context, id uuid.UUID) error
}

type MemberFilter struct {
	Role   string
	Game   string
	TeamID *uuid.UUID
	Active *bool
	Search string
	Sort   SortField
	Page   Page
}

type MemberStore interface {
	ListMembers(ctx context.Context, filter MemberFilter) ([]models.Member, int64, error)
	GetMember(ctx context.Context, id uuid.UUID) (*models.Member, error)
	CreateMember(ctx context.Context, member *models.Member) error
	UpdateMember(ctx context.Context, member *models.Member) error
	DeleteMember(ctx context.Context, id uuid.UUID) error
}

// Sortable columns, keyed by the name clients pass in ?sort=.
var (
	EventSortColumns = map[string]string{
		"startDate": "start_date",
		"createdAt": "created_at",
		"title":     "title",
	}
	MemberSortColumns = map[string]string{
		"displayOrder": "display_order",
		"name":         "name",
		"nickname":     "nickname",
		"createdAt":    "created_at",
	}
)
