package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/farellandr/esports-hub/internal/models"
)

func ptrTime(t time.Time) *time.Time {
	return &t
}

// MockEvents builds the fallback event list. Dates are relative to now so the
// upcoming events stay upcoming.
func MockEvents(now time.Time) []models.Event {
	day := 24 * time.Hour
	return []models.Event{
		{
			ID:                   uuid.MustParse("6f1c1c0e-2b1a-4d7e-9a51-0c6d1f6d0a01"),
			Title:                "Spring Valorant Open",
			Slug:                 "spring-valorant-open",
			Description:          "Open 5v5 bracket for amateur teams. Single elimination, best of three from the quarterfinals.",
			Game:                 "Valorant",
			Type:                 "tournament",
			Status:               models.EventStatusUpcoming,
			StartDate:            now.Add(21 * day),
			EndDate:              ptrTime(now.Add(22 * day)),
			RegistrationDeadline: ptrTime(now.Add(14 * day)),
			Location:             "Online",
			IsOnline:             true,
			PrizePool:            "$2,500",
			MaxParticipants:      32,
			Image:                "/uploads/events/spring-valorant-open.jpg",
			Featured:             true,
			CreatedAt:            now.Add(-10 * day),
			UpdatedAt:            now.Add(-10 * day),
		},
		{
			ID:                   uuid.MustParse("6f1c1c0e-2b1a-4d7e-9a51-0c6d1f6d0a02"),
			Title:                "Community LAN Night",
			Slug:                 "community-lan-night",
			Description:          "Bring your setup, meet the roster and play show matches against the pros.",
			Game:                 "Counter-Strike 2",
			Type:                 "lan",
			Status:               models.EventStatusUpcoming,
			StartDate:            now.Add(45 * day),
			RegistrationDeadline: ptrTime(now.Add(40 * day)),
			Location:             "Arena Hall, Main Street 12",
			PrizePool:            "Merch bundle",
			MaxParticipants:      64,
			Image:                "/uploads/events/community-lan-night.jpg",
			CreatedAt:            now.Add(-5 * day),
			UpdatedAt:            now.Add(-5 * day),
		},
		{
			ID:          uuid.MustParse("6f1c1c0e-2b1a-4d7e-9a51-0c6d1f6d0a03"),
			Title:       "Winter League Finals",
			Slug:        "winter-league-finals",
			Description: "Grand finals of the winter league, streamed live with caster desk.",
			Game:        "League of Legends",
			Type:        "league",
			Status:      models.EventStatusCompleted,
			StartDate:   now.Add(-60 * day),
			EndDate:     ptrTime(now.Add(-59 * day)),
			Location:    "Online",
			IsOnline:    true,
			PrizePool:   "$10,000",
			StreamURL:   "https://twitch.tv/esportshub",
			Image:       "/uploads/events/winter-league-finals.jpg",
			CreatedAt:   now.Add(-120 * day),
			UpdatedAt:   now.Add(-59 * day),
		},
	}
}

func MockMembers(now time.Time) []models.Member {
	joined := now.AddDate(-1, 0, 0)
	return []models.Member{
		{
			ID:           uuid.MustParse("9b7e4a52-1d0f-4c55-8b1e-3f2a6c0b0b01"),
			Name:         "Lukas Berg",
			Nickname:     "Frostbyte",
			Role:         "player",
			Game:         "Valorant",
			Country:      "SE",
			Bio:          "Duelist and shotcaller since the team's first split.",
			Photo:        "/uploads/members/frostbyte.jpg",
			Socials:      models.Socials{Twitter: "https://twitter.com/frostbyte", Twitch: "https://twitch.tv/frostbyte"},
			Achievements: models.StringList{"Regional champion 2024"},
			IsActive:     true,
			DisplayOrder: 1,
			JoinedAt:     &joined,
			CreatedAt:    joined,
			UpdatedAt:    joined,
		},
		{
			ID:           uuid.MustParse("9b7e4a52-1d0f-4c55-8b1e-3f2a6c0b0b02"),
			Name:         "Maya Okafor",
			Nickname:     "Nova",
			Role:         "player",
			Game:         "Valorant",
			Country:      "NG",
			Bio:          "Controller main with the best smokes in the region.",
			Photo:        "/uploads/members/nova.jpg",
			Achievements: models.StringList{},
			IsActive:     true,
			DisplayOrder: 2,
			JoinedAt:     &joined,
			CreatedAt:    joined,
			UpdatedAt:    joined,
		},
		{
			ID:           uuid.MustParse("9b7e4a52-1d0f-4c55-8b1e-3f2a6c0b0b03"),
			Name:         "Daniel Ruiz",
			Nickname:     "Sensei",
			Role:         "coach",
			Game:         "Valorant",
			Country:      "ES",
			Bio:          "Head coach and analyst.",
			Photo:        "/uploads/members/sensei.jpg",
			Achievements: models.StringList{},
			IsActive:     true,
			DisplayOrder: 3,
			JoinedAt:     &joined,
			CreatedAt:    joined,
			UpdatedAt:    joined,
		},
		{
			ID:           uuid.MustParse("9b7e4a52-1d0f-4c55-8b1e-3f2a6c0b0b04"),
			Name:         "Emma Laurent",
			Nickname:     "Echo",
			Role:         "content_creator",
			Game:         "League of Legends",
			Country:      "FR",
			Photo:        "/uploads/members/echo.jpg",
			Achievements: models.StringList{},
			IsActive:     false,
			DisplayOrder: 4,
			JoinedAt:     &joined,
			CreatedAt:    joined,
			UpdatedAt:    joined,
		},
	}
}

func NewMockStore(now time.Time) *MemoryStore {
	return NewMemoryStore(MockEvents(now), MockMembers(now))
}
