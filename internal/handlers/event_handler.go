package handlers

import (
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/farellandr/esports-hub/internal/helpers"
	"github.com/farellandr/esports-hub/internal/middleware"
	"github.com/farellandr/esports-hub/internal/models"
	"github.com/farellandr/esports-hub/internal/store"
)

var (
	eventTypes    = []string{"tournament", "league", "showmatch", "lan", "online"}
	eventStatuses = []string{
		models.EventStatusUpcoming,
		models.EventStatusOngoing,
		models.EventStatusCompleted,
		models.EventStatusCancelled,
	}
)

type EventInput struct {
	Title                *string    `json:"title" form:"title"`
	Slug                 *string    `json:"slug" form:"slug"`
	Description          *string    `json:"description" form:"description"`
	Game                 *string    `json:"game" form:"game"`
	Type                 *string    `json:"type" form:"type"`
	Status               *string    `json:"status" form:"status"`
	StartDate            *time.Time `json:"startDate" form:"startDate"`
	EndDate              *time.Time `json:"endDate" form:"endDate"`
	RegistrationDeadline *time.Time `json:"registrationDeadline" form:"registrationDeadline"`
	Location             *string    `json:"location" form:"location"`
	IsOnline             *bool      `json:"isOnline" form:"isOnline"`
	PrizePool            *string    `json:"prizePool" form:"prizePool"`
	MaxParticipants      *int       `json:"maxParticipants" form:"maxParticipants"`
	Image                *string    `json:"image" form:"image"`
	StreamURL            *string    `json:"streamUrl" form:"streamUrl"`
	Rules                *string    `json:"rules" form:"rules"`
	Featured             *bool      `json:"featured" form:"featured"`
}

func (in EventInput) validate() string {
	if in.Type != nil && !slices.Contains(eventTypes, *in.Type) {
		return "Invalid event type."
	}
	if in.Status != nil && !slices.Contains(eventStatuses, *in.Status) {
		return "Invalid event status."
	}
	if in.MaxParticipants != nil && *in.MaxParticipants < 0 {
		return "maxParticipants cannot be negative."
	}
	return ""
}

func (in EventInput) apply(event *models.Event) {
	assign(&event.Title, in.Title)
	assign(&event.Description, in.Description)
	assign(&event.Game, in.Game)
	assign(&event.Type, in.Type)
	assign(&event.Status, in.Status)
	assign(&event.StartDate, in.StartDate)
	assign(&event.Location, in.Location)
	assign(&event.IsOnline, in.IsOnline)
	assign(&event.PrizePool, in.PrizePool)
	assign(&event.MaxParticipants, in.MaxParticipants)
	assign(&event.Image, in.Image)
	assign(&event.StreamURL, in.StreamURL)
	assign(&event.Rules, in.Rules)
	assign(&event.Featured, in.Featured)
	if in.EndDate != nil {
		event.EndDate = in.EndDate
	}
	if in.RegistrationDeadline != nil {
		event.RegistrationDeadline = in.RegistrationDeadline
	}
	if in.Slug != nil {
		event.Slug = helpers.Slugify(*in.Slug)
	}
}

// eventStore picks the database or the mock store and flags mock responses.
func eventStore(c *gin.Context) (store.EventStore, bool) {
	events, mock := middleware.GetStores(c).Events(c.Request.Context())
	if mock {
		c.Header(DataSourceHeader, "mock")
	}
	return events, mock
}

func memberStore(c *gin.Context) (store.MemberStore, bool) {
	members, mock := middleware.GetStores(c).Members(c.Request.Context())
	if mock {
		c.Header(DataSourceHeader, "mock")
	}
	return members, mock
}

func respondStoreError(c *gin.Context, err error, entity string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		helpers.RespondWithError(c, http.StatusNotFound, entity+" not found.")
	case errors.Is(err, store.ErrDuplicate):
		helpers.RespondWithError(c, http.StatusConflict, entity+" with this slug already exists.")
	default:
		middleware.GetLogger(c).Error("Store operation failed",
			zap.String("entity", entity),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to process "+entity+".")
	}
}

func ListEvents(c *gin.Context) {
	p, ok := parsePagination(c)
	if !ok {
		return
	}

	sort := helpers.ParseSort(c, store.EventSortColumns, helpers.Sort{Field: "startDate"})
	filter := store.EventFilter{
		Status:   c.Query("status"),
		Game:     c.Query("game"),
		Type:     c.Query("type"),
		Featured: helpers.ParseBool(c, "featured"),
		Search:   c.Query("search"),
		Sort:     store.SortField{Field: sort.Field, Desc: sort.Desc},
		Page:     store.Page{Offset: p.Offset(), Limit: p.Limit},
	}

	events, _ := eventStore(c)
	items, total, err := events.ListEvents(c.Request.Context(), filter)
	if err != nil {
		respondStoreError(c, err, "Event")
		return
	}

	c.JSON(http.StatusOK, helpers.Paginated("events", items, total, p))
}

func GetEvent(c *gin.Context) {
	events, _ := eventStore(c)
	event, err := events.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "Event")
		return
	}

	c.JSON(http.StatusOK, event)
}

func CreateEvent(c *gin.Context) {
	var in EventInput
	if !bindInput(c, &in) {
		return
	}
	if in.Title == nil || *in.Title == "" || in.StartDate == nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Missing required fields.")
		return
	}
	if msg := in.validate(); msg != "" {
		helpers.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}

	event := models.Event{
		Type:   "tournament",
		Status: models.EventStatusUpcoming,
	}
	in.apply(&event)
	if event.Slug == "" {
		event.Slug = helpers.Slugify(event.Title)
	}
	if event.Slug == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Event title must contain letters or digits.")
		return
	}

	image, ok := replaceUpload(c, "image", helpers.UploadEvents, &event.Image)
	if !ok {
		return
	}

	events, _ := eventStore(c)
	if err := events.CreateEvent(c.Request.Context(), &event); err != nil {
		image.rollback(c)
		respondStoreError(c, err, "Event")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Event created successfully.",
		"event":   event,
	})
}

func UpdateEvent(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	events, _ := eventStore(c)
	event, err := events.GetEvent(c.Request.Context(), id.String())
	if err != nil {
		respondStoreError(c, err, "Event")
		return
	}

	var in EventInput
	if !bindInput(c, &in) {
		return
	}
	if msg := in.validate(); msg != "" {
		helpers.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}
	in.apply(event)
	if event.Slug == "" || event.Title == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Title and slug cannot be empty.")
		return
	}

	image, ok := replaceUpload(c, "image", helpers.UploadEvents, &event.Image)
	if !ok {
		return
	}

	if err := events.UpdateEvent(c.Request.Context(), event); err != nil {
		image.rollback(c)
		respondStoreError(c, err, "Event")
		return
	}
	image.commit(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Event updated successfully.",
		"event":   event,
	})
}

func DeleteEvent(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	events, _ := eventStore(c)
	event, err := events.GetEvent(c.Request.Context(), id.String())
	if err != nil {
		respondStoreError(c, err, "Event")
		return
	}

	if err := events.DeleteEvent(c.Request.Context(), id); err != nil {
		respondStoreError(c, err, "Event")
		return
	}
	removeFiles(c, event.Image)

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully."})
}
