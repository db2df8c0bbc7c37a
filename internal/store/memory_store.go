package store

import (
	"cmp"
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/farellandr/esports-hub/internal/models"
)

// MemoryStore keeps events and members in process memory. Writes are
// accepted but never reach the database.
type MemoryStore struct {
	mu      sync.RWMutex
	events  []models.Event
	members []models.Member
	now     func() time.Time
}

func NewMemoryStore(events []models.Event, members []models.Member) *MemoryStore {
	return &MemoryStore{
		events:  append([]models.Event(nil), events...),
		members: append([]models.Member(nil), members...),
		now:     time.Now,
	}
}

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(strings.TrimSpace(needle)))
}

func window[T any](items []T, p Page) []T {
	if p.Offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if p.Limit > 0 && p.Offset+p.Limit < end {
		end = p.Offset + p.Limit
	}
	return items[p.Offset:end]
}

func (s *MemoryStore) ListEvents(ctx context.Context, filter EventFilter) ([]models.Event, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]models.Event, 0, len(s.events))
	for _, e := range s.events {
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		if filter.Game != "" && e.Game != filter.Game {
			continue
		}
		if filter.Type != "" && e.Type != filter.Type {
			continue
		}
		if filter.Featured != nil && e.Featured != *filter.Featured {
			continue
		}
		if filter.Search != "" && !contains(e.Title, filter.Search) && !contains(e.Description, filter.Search) {
			continue
		}
		matched = append(matched, e)
	}

	sortField := filter.Sort
	if _, ok := EventSortColumns[sortField.Field]; !ok {
		sortField = SortField{Field: "startDate"}
	}
	sortSlice(matched, sortField.Desc, func(a, b models.Event) int {
		switch sortField.Field {
		case "title":
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		case "createdAt":
			return a.CreatedAt.Compare(b.CreatedAt)
		default:
			return a.StartDate.Compare(b.StartDate)
		}
	})

	return window(matched, filter.Page), int64(len(matched)), nil
}

func sortSlice[T any](items []T, desc bool, compare func(a, b T) int) {
	sort.SliceStable(items, func(i, j int) bool {
		c := compare(items[i], items[j])
		if desc {
			return c > 0
		}
		return c < 0
	})
}

func (s *MemoryStore) GetEvent(ctx context.Context, idOrSlug string) (*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, parseErr := uuid.Parse(idOrSlug)
	for _, e := range s.events {
		if (parseErr == nil && e.ID == id) || e.Slug == idOrSlug {
			event := e
			return &event, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateEvent(ctx context.Context, event *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.slugTaken(event.Slug, uuid.Nil) {
		return ErrDuplicate
	}
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	now := s.now()
	event.CreatedAt, event.UpdatedAt = now, now
	s.events = append(s.events, *event)
	return nil
}

func (s *MemoryStore) UpdateEvent(ctx context.Context, event *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.slugTaken(event.Slug, event.ID) {
		return ErrDuplicate
	}
	for i := range s.events {
		if s.events[i].ID == event.ID {
			event.UpdatedAt = s.now()
			s.events[i] = *event
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) slugTaken(slug string, except uuid.UUID) bool {
	for _, e := range s.events {
		if e.Slug == slug && e.ID != except {
			return true
		}
	}
	return false
}

func (s *MemoryStore) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.events {
		if s.events[i].ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) ListMembers(ctx context.Context, filter MemberFilter) ([]models.Member, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]models.Member, 0, len(s.members))
	for _, m := range s.members {
		if filter.Role != "" && m.Role != filter.Role {
			continue
		}
		if filter.Game != "" && m.Game != filter.Game {
			continue
		}
		if filter.TeamID != nil && (m.TeamID == nil || *m.TeamID != *filter.TeamID) {
			continue
		}
		if filter.Active != nil && m.IsActive != *filter.Active {
			continue
		}
		if filter.Search != "" && !contains(m.Name, filter.Search) && !contains(m.Nickname, filter.Search) {
			continue
		}
		matched = append(matched, m)
	}

	sortField := filter.Sort
	if _, ok := MemberSortColumns[sortField.Field]; !ok {
		sortField = SortField{Field: "displayOrder"}
	}
	sortSlice(matched, sortField.Desc, func(a, b models.Member) int {
		switch sortField.Field {
		case "name":
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		case "nickname":
			return strings.Compare(strings.ToLower(a.Nickname), strings.ToLower(b.Nickname))
		case "createdAt":
			return a.CreatedAt.Compare(b.CreatedAt)
		default:
			return cmp.Compare(a.DisplayOrder, b.DisplayOrder)
		}
	})

	return window(matched, filter.Page), int64(len(matched)), nil
}

func (s *MemoryStore) GetMember(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.members {
		if m.ID == id {
			member := m
			return &member, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateMember(ctx context.Context, member *models.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	now := s.now()
	member.CreatedAt, member.UpdatedAt = now, now
	s.members = append(s.members, *member)
	return nil
}

func (s *MemoryStore) UpdateMember(ctx context.Context, member *models.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.members {
		if s.members[i].ID == member.ID {
			member.UpdatedAt = s.now()
			s.members[i] = *member
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) DeleteMember(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.members {
		if s.members[i].ID == id {
			s.members = append(s.members[:i], s.members[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
