package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/farellandr/esports-hub/config"
	"github.com/farellandr/esports-hub/internal/handlers"
	"github.com/farellandr/esports-hub/internal/helpers"
	"github.com/farellandr/esports-hub/internal/middleware"
	"github.com/farellandr/esports-hub/internal/models"
	"github.com/farellandr/esports-hub/internal/notify"
	"github.com/farellandr/esports-hub/internal/services"
	"github.com/farellandr/esports-hub/internal/store"
)

const (
	testJWTSecret  = "test-jwt-secret"
	testPassSecret = "test-pass-secret"
)

type testApp struct {
	handler     http.Handler
	db          *gorm.DB
	adminToken  string
	editorToken string
}

type downPinger struct{}

func (downPinger) Ping(context.Context) error { return errors.New("connection refused") }

func newTestApp(t *testing.T, fallback func(db *gorm.DB) *store.Fallback) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	require.NoError(t, config.Seed(db, "", ""))

	logger := zap.NewNop()
	if fallback == nil {
		fallback = func(db *gorm.DB) *store.Fallback {
			return store.NewFallback(false, store.NewGormPinger(db), time.Second, logger)
		}
	}

	uploadDir := t.TempDir()
	app := &testApp{db: db}
	app.handler = NewHandler(Options{
		Deps: middleware.Dependencies{
			DB:        db,
			Logger:    logger,
			Stores:    store.NewProvider(db, fallback(db), store.NewMockStore(time.Now())),
			Publisher: notify.NopPublisher{},
			Uploader:  helpers.NewUploader(uploadDir),
			Auth: middleware.AuthSettings{
				JWTSecret:  testJWTSecret,
				TokenTTL:   time.Hour,
				PassSecret: testPassSecret,
			},
		},
		UploadDir:   uploadDir,
		CORSOrigins: []string{"http://localhost:3000"},
	})

	app.adminToken = app.createUser(t, "admin@example.com", models.RoleAdmin)
	app.editorToken = app.createUser(t, "editor@example.com", models.RoleEditor)
	return app
}

func (app *testApp) createUser(t *testing.T, email, role string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{Email: email, Password: string(hashed), Name: role, Role: role}
	require.NoError(t, app.db.Create(&user).Error)

	token, err := helpers.IssueToken(testJWTSecret, user.ID, user.Role, time.Hour)
	require.NoError(t, err)
	return token
}

func (app *testApp) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	app.handler.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (app *testApp) createEvent(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	w := app.do(t, http.MethodPost, "/api/admin/events", body, app.adminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode(t, w)["event"].(map[string]any)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.do(t, http.MethodGet, "/api/health", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, true, body["database"])
	assert.Equal(t, false, body["mockData"])
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestLogin(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "Admin@Example.com", "password": "supersecret",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, "admin", body["user"].(map[string]any)["role"])
	assert.NotContains(t, w.Body.String(), "password")

	w = app.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "admin@example.com", "password": "wrong-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodGet, "/api/auth/me", nil, app.editorToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "editor@example.com", decode(t, w)["email"])
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.do(t, http.MethodPost, "/api/admin/events", map[string]any{"title": "x"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodGet, "/api/admin/stats", nil, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodGet, "/api/admin/users", nil, app.editorToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(t, http.MethodGet, "/api/admin/users", nil, app.adminToken)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestEventCRUD(t *testing.T) {
	app := newTestApp(t, nil)
	start := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)

	w := app.do(t, http.MethodPost, "/api/admin/events", map[string]any{"title": "No date"}, app.adminToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	event := app.createEvent(t, map[string]any{
		"title":     "Spring Cup",
		"game":      "Valorant",
		"startDate": start.Format(time.RFC3339),
	})
	assert.Equal(t, "spring-cup", event["slug"])
	assert.Equal(t, "tournament", event["type"])
	assert.Equal(t, "upcoming", event["status"])
	id := event["id"].(string)

	w = app.do(t, http.MethodPost, "/api/admin/events", map[string]any{
		"title": "Spring Cup", "startDate": start.Format(time.RFC3339),
	}, app.adminToken)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = app.do(t, http.MethodGet, "/api/events/spring-cup", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, decode(t, w)["id"])
	assert.Empty(t, w.Header().Get(handlers.DataSourceHeader))

	w = app.do(t, http.MethodPut, "/api/admin/events/"+id, map[string]any{"status": "ongoing"}, app.editorToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode(t, w)["event"].(map[string]any)
	assert.Equal(t, "ongoing", updated["status"])
	assert.Equal(t, "Spring Cup", updated["title"])

	w = app.do(t, http.MethodPut, "/api/admin/events/"+id, map[string]any{"status": "postponed"}, app.adminToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodGet, "/api/events?status=ongoing", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decode(t, w)
	assert.Equal(t, float64(1), list["total"])
	assert.Len(t, list["events"], 1)

	w = app.do(t, http.MethodDelete, "/api/admin/events/"+id, nil, app.adminToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/api/events/"+id, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not Found", decode(t, w)["error"])
}

func TestRegistrationFlow(t *testing.T) {
	app := newTestApp(t, nil)
	event := app.createEvent(t, map[string]any{
		"title":           "Summer Clash",
		"startDate":       time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
		"maxParticipants": 1,
	})
	eventID := event["id"].(string)

	w := app.do(t, http.MethodPost, "/api/events/summer-clash/registrations", map[string]any{
		"teamName":    "Night Owls",
		"captainName": "Rin",
		"email":       "Rin@Example.com",
		"players":     []string{"rin", "kai"},
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	registration := decode(t, w)["registration"].(map[string]any)
	registrationID := registration["id"].(string)
	assert.Equal(t, "rin@example.com", registration["email"])
	assert.Equal(t, "pending", registration["status"])

	w = app.do(t, http.MethodPost, "/api/events/"+eventID+"/registrations", map[string]any{
		"captainName": "Rin", "email": "rin@example.com",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = app.do(t, http.MethodPost, "/api/events/"+eventID+"/registrations", map[string]any{
		"captainName": "Ash", "email": "ash@example.com",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = app.do(t, http.MethodPost, "/api/events/"+eventID+"/registrations", map[string]any{
		"captainName": "Ash", "email": "not-an-email",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string]any{"email": "email"}, decode(t, w)["fields"])

	w = app.do(t, http.MethodGet, "/api/registrations/"+registrationID+"/pass?email=rin@example.com", nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))

	w = app.do(t, http.MethodGet, "/api/registrations/"+registrationID+"/pass?email=someone@example.com", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, http.MethodGet, "/api/admin/events/"+eventID+"/registrations", nil, app.adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["total"])

	w = app.do(t, http.MethodPatch, "/api/admin/registrations/"+registrationID+"/status", map[string]string{"status": "approved"}, app.adminToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "approved", decode(t, w)["registration"].(map[string]any)["status"])

	svc := services.NewRegistrationService(app.db, notify.NopPublisher{}, zap.NewNop(), testPassSecret)
	pass, err := svc.Pass(context.Background(), uuid.MustParse(registrationID), "rin@example.com")
	require.NoError(t, err)

	w = app.do(t, http.MethodPost, "/api/admin/registrations/check-in", map[string]string{"pass": pass}, app.adminToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, decode(t, w)["registration"].(map[string]any)["checkedIn"])

	w = app.do(t, http.MethodPost, "/api/admin/registrations/check-in", map[string]string{"pass": pass}, app.adminToken)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = app.do(t, http.MethodPost, "/api/admin/registrations/check-in", map[string]string{"pass": "forged"}, app.adminToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderFlow(t *testing.T) {
	app := newTestApp(t, nil)

	product := models.Product{Name: "Team Jersey", Price: decimal.RequireFromString("25.00"), Stock: 3, IsActive: true}
	require.NoError(t, app.db.Create(&product).Error)

	order := map[string]any{
		"customer": map[string]string{"name": "Mika", "email": "mika@example.com"},
		"items":    []map[string]any{{"productId": product.ID.String(), "quantity": 2, "size": "M"}},
	}

	w := app.do(t, http.MethodPost, "/api/orders", order, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	placed := decode(t, w)["order"].(map[string]any)
	assert.True(t, decimal.RequireFromString(placed["totalAmount"].(string)).Equal(decimal.NewFromInt(50)))
	assert.Equal(t, "pending", placed["status"])
	orderNumber := placed["orderNumber"].(string)
	assert.Regexp(t, `^ORD-\d{8}-[0-9A-F]{8}$`, orderNumber)

	var stored models.Product
	require.NoError(t, app.db.First(&stored, "id = ?", product.ID).Error)
	assert.Equal(t, 1, stored.Stock)

	w = app.do(t, http.MethodPost, "/api/orders", order, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = app.do(t, http.MethodGet, "/api/orders/track/"+orderNumber+"?email=MIKA@example.com", nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, orderNumber, decode(t, w)["orderNumber"])

	w = app.do(t, http.MethodGet, "/api/orders/track/"+orderNumber+"?email=other@example.com", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, http.MethodGet, "/api/admin/stats", nil, app.adminToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	stats := decode(t, w)
	assert.Equal(t, float64(1), stats["pendingOrders"])
	assert.Equal(t, "50.00", stats["revenue"])
	assert.Equal(t, float64(1), stats["counts"].(map[string]any)["products"])

	w = app.do(t, http.MethodPatch, "/api/admin/orders/"+placed["id"].(string)+"/status", map[string]string{"status": "cancelled"}, app.adminToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, app.db.First(&stored, "id = ?", product.ID).Error)
	assert.Equal(t, 3, stored.Stock)

	w = app.do(t, http.MethodGet, "/api/admin/stats", nil, app.adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0.00", decode(t, w)["revenue"])
}

func TestShopDisabled(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.do(t, http.MethodPut, "/api/admin/shop/settings", map[string]any{
		"isShopEnabled": false, "maintenanceMessage": "Restocking",
	}, app.adminToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = app.do(t, http.MethodGet, "/api/shop/settings", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	settings := decode(t, w)
	assert.Equal(t, false, settings["isShopEnabled"])
	assert.Equal(t, "Restocking", settings["maintenanceMessage"])

	product := models.Product{Name: "Cap", Price: decimal.RequireFromString("10.00"), Stock: 5, IsActive: true}
	require.NoError(t, app.db.Create(&product).Error)

	w = app.do(t, http.MethodPost, "/api/orders", map[string]any{
		"customer": map[string]string{"name": "Mika", "email": "mika@example.com"},
		"items":    []map[string]any{{"productId": product.ID.String(), "quantity": 1}},
	}, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestContactMessages(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.do(t, http.MethodPost, "/api/contact", map[string]string{
		"name": "Sam", "email": "sam@example.com", "subject": "Sponsorship", "message": "Hello there",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = app.do(t, http.MethodPost, "/api/contact", map[string]string{"name": "Sam"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodGet, "/api/admin/contact", nil, app.adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	messages := decode(t, w)["messages"].([]any)
	require.Len(t, messages, 1)
	id := messages[0].(map[string]any)["id"].(string)
	assert.Equal(t, "new", messages[0].(map[string]any)["status"])

	w = app.do(t, http.MethodGet, "/api/admin/contact/"+id, nil, app.adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "read", decode(t, w)["status"])

	var stored models.ContactMessage
	require.NoError(t, app.db.First(&stored, "id = ?", id).Error)
	assert.Equal(t, models.ContactRead, stored.Status)
}

func TestMockFallback(t *testing.T) {
	app := newTestApp(t, func(*gorm.DB) *store.Fallback {
		return store.NewFallback(true, downPinger{}, time.Second, zap.NewNop())
	})

	w := app.do(t, http.MethodGet, "/api/events", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "mock", w.Header().Get(handlers.DataSourceHeader))
	assert.NotEmpty(t, decode(t, w)["events"])

	w = app.do(t, http.MethodGet, "/api/members", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "mock", w.Header().Get(handlers.DataSourceHeader))

	w = app.do(t, http.MethodGet, "/api/health", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["mockData"])

	w = app.do(t, http.MethodPost, "/api/events/anything/registrations", map[string]string{
		"captainName": "Rin", "email": "rin@example.com",
	}, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	app := newTestApp(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/events", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	app.handler.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewsVisibility(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.do(t, http.MethodPost, "/api/admin/news", map[string]any{
		"title": "Roster Update", "content": "Welcome aboard.", "tags": []string{"roster"}, "published": true,
	}, app.adminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	published := decode(t, w)["news"].(map[string]any)
	assert.NotNil(t, published["publishedAt"])

	w = app.do(t, http.MethodPost, "/api/admin/news", map[string]any{
		"title": "Draft Post", "content": "Not yet.",
	}, app.adminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = app.do(t, http.MethodGet, "/api/news", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["total"])

	w = app.do(t, http.MethodGet, "/api/admin/news", nil, app.editorToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decode(t, w)["total"])

	w = app.do(t, http.MethodGet, "/api/news/draft-post", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	app.do(t, http.MethodGet, "/api/news/roster-update", nil, "")
	w = app.do(t, http.MethodGet, "/api/news/roster-update", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decode(t, w)["views"])
}

func TestProductVisibility(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.do(t, http.MethodPost, "/api/admin/products", map[string]any{
		"name": "Hoodie", "price": "59.999", "stock": 4, "sizes": []string{"S", "M"}, "isActive": false,
	}, app.adminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	product := decode(t, w)["product"].(map[string]any)
	assert.True(t, decimal.RequireFromString(product["price"].(string)).Equal(decimal.RequireFromString("60")))
	id := product["id"].(string)

	w = app.do(t, http.MethodGet, "/api/products/"+id, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, http.MethodGet, "/api/admin/products/"+id, nil, app.adminToken)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodPost, "/api/admin/products", map[string]any{"name": "Free", "price": "-1"}, app.adminToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPost, "/api/orders", map[string]any{
		"customer": map[string]string{"name": "Mika", "email": "mika@example.com"},
		"items":    []map[string]any{{"productId": id, "quantity": 1}},
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUploadEndpoint(t *testing.T) {
	app := newTestApp(t, nil)

	send := func(uploadType string, content []byte) *httptest.ResponseRecorder {
		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		part, err := writer.CreateFormFile("file", "Team Logo.png")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/admin/uploads/"+uploadType, &body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+app.adminToken)
		w := httptest.NewRecorder()
		app.handler.ServeHTTP(w, req)
		return w
	}

	png := append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 64)...)

	w := send("teams", png)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	publicPath := decode(t, w)["path"].(string)
	assert.Regexp(t, `^/uploads/teams/team-logo-\d+-\d{6}\.png$`, publicPath)

	w = app.do(t, http.MethodGet, publicPath, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = send("teams", []byte("plain text pretending to be an image"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = send("secrets", png)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTeamRosterAndDetach(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.do(t, http.MethodPost, "/api/admin/games", map[string]any{"name": "Valorant"}, app.adminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	gameID := decode(t, w)["game"].(map[string]any)["id"].(string)

	w = app.do(t, http.MethodPost, "/api/admin/teams", map[string]any{"name": "Alpha", "gameId": gameID}, app.adminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	teamID := decode(t, w)["team"].(map[string]any)["id"].(string)

	w = app.do(t, http.MethodGet, "/api/teams?game="+gameID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["total"])

	w = app.do(t, http.MethodGet, "/api/teams?game=not-a-uuid", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid game ID.", decode(t, w)["message"])

	w = app.do(t, http.MethodPost, "/api/admin/members", map[string]any{
		"name": "Kai", "nickname": "kaiz", "teamId": teamID, "displayOrder": 2,
	}, app.adminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	kaiID := decode(t, w)["member"].(map[string]any)["id"].(string)

	w = app.do(t, http.MethodPost, "/api/admin/members", map[string]any{
		"name": "Lee", "teamId": teamID, "displayOrder": 1,
	}, app.adminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	leeID := decode(t, w)["member"].(map[string]any)["id"].(string)

	w = app.do(t, http.MethodGet, "/api/teams/"+teamID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	team := decode(t, w)
	assert.Equal(t, "Valorant", team["game"].(map[string]any)["name"])
	roster := team["members"].([]any)
	require.Len(t, roster, 2)
	assert.Equal(t, leeID, roster[0].(map[string]any)["id"])
	assert.Equal(t, kaiID, roster[1].(map[string]any)["id"])

	w = app.do(t, http.MethodDelete, "/api/admin/teams/"+teamID, nil, app.adminToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var kai models.Member
	require.NoError(t, app.db.Where("id = ?", kaiID).First(&kai).Error)
	assert.Nil(t, kai.TeamID)

	w = app.do(t, http.MethodGet, "/api/members/"+leeID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, decode(t, w), "teamId")

	w = app.do(t, http.MethodPost, "/api/admin/teams", map[string]any{"name": "Bravo", "gameId": gameID}, app.adminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	bravoID := decode(t, w)["team"].(map[string]any)["id"].(string)

	w = app.do(t, http.MethodDelete, "/api/admin/games/"+gameID, nil, app.adminToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var bravo models.Team
	require.NoError(t, app.db.Where("id = ?", bravoID).First(&bravo).Error)
	assert.Nil(t, bravo.GameID)
}

func TestMemberCRUD(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.do(t, http.MethodPost, "/api/admin/teams", map[string]any{"name": "Alpha"}, app.adminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	teamID := decode(t, w)["team"].(map[string]any)["id"].(string)

	w = app.do(t, http.MethodPost, "/api/admin/members", map[string]any{
		"name": "Ghost", "teamId": uuid.NewString(),
	}, app.adminToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Team not found.", decode(t, w)["message"])

	w = app.do(t, http.MethodPost, "/api/admin/members", map[string]any{
		"name": "Kai", "role": "coach", "teamId": teamID,
		"socials":      map[string]string{"twitch": "kaiz"},
		"achievements": []string{"Champions 2024"},
	}, app.adminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	member := decode(t, w)["member"].(map[string]any)
	id := member["id"].(string)
	assert.Equal(t, "coach", member["role"])
	assert.Equal(t, true, member["isActive"])

	w = app.do(t, http.MethodPost, "/api/admin/members", map[string]any{"name": "Bad", "role": "mascot"}, app.adminToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodGet, "/api/members?team="+teamID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["total"])

	w = app.do(t, http.MethodPut, "/api/admin/members/"+id, map[string]any{"teamId": uuid.NewString()}, app.adminToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Team not found.", decode(t, w)["message"])

	w = app.do(t, http.MethodPut, "/api/admin/members/"+id, map[string]any{"nickname": "kaiz", "isActive": false}, app.editorToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	member = decode(t, w)["member"].(map[string]any)
	assert.Equal(t, "kaiz", member["nickname"])
	assert.Equal(t, false, member["isActive"])
	assert.Equal(t, teamID, member["teamId"])

	var stored models.Member
	require.NoError(t, app.db.Where("id = ?", id).First(&stored).Error)
	assert.Equal(t, "kaiz", stored.Socials.Twitch)
	assert.False(t, stored.IsActive)

	w = app.do(t, http.MethodDelete, "/api/admin/members/"+id, nil, app.adminToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/api/members/"+id, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPartnerVisibility(t *testing.T) {
	app := newTestApp(t, nil)

	for _, body := range []map[string]any{
		{"name": "Acme", "type": "sponsor", "tier": "gold", "displayOrder": 2},
		{"name": "Byte", "type": "partner", "displayOrder": 1},
		{"name": "Cola", "type": "sponsor", "tier": "gold", "isActive": false},
	} {
		w := app.do(t, http.MethodPost, "/api/admin/partners", body, app.adminToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := app.do(t, http.MethodPost, "/api/admin/partners", map[string]any{"name": "Odd", "tier": "diamond"}, app.adminToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	names := func(w *httptest.ResponseRecorder) []string {
		t.Helper()
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var out []string
		for _, p := range decode(t, w)["partners"].([]any) {
			out = append(out, p.(map[string]any)["name"].(string))
		}
		return out
	}

	assert.Equal(t, []string{"Byte", "Acme"}, names(app.do(t, http.MethodGet, "/api/partners", nil, "")))
	assert.Equal(t, []string{"Acme"}, names(app.do(t, http.MethodGet, "/api/partners?type=sponsor", nil, "")))
	assert.Equal(t, []string{"Acme"}, names(app.do(t, http.MethodGet, "/api/partners?tier=gold", nil, "")))
	assert.Equal(t, []string{"Cola", "Acme"}, names(app.do(t, http.MethodGet, "/api/admin/partners?tier=gold", nil, app.adminToken)))
	assert.Equal(t, []string{"Cola"}, names(app.do(t, http.MethodGet, "/api/admin/partners?active=false", nil, app.adminToken)))
}

func TestVideoSources(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.do(t, http.MethodPost, "/api/admin/videos", map[string]any{"title": "Nothing attached"}, app.adminToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "A video URL or file is required.", decode(t, w)["message"])

	w = app.do(t, http.MethodPost, "/api/admin/videos", map[string]any{
		"title": "Grand Final", "url": "https://www.youtube.com/watch?v=abc",
	}, app.adminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	linked := decode(t, w)["video"].(map[string]any)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc", linked["url"])
	assert.Empty(t, linked["file"])

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("title", "Highlights"))
	part, err := writer.CreateFormFile("file", "highlights.mp4")
	require.NoError(t, err)
	_, err = part.Write(append([]byte("\x00\x00\x00\x18ftypmp42\x00\x00\x00\x00mp42isom"), make([]byte, 64)...))
	require.NoError(t, err)
	part, err = writer.CreateFormFile("thumbnail", "cover.png")
	require.NoError(t, err)
	_, err = part.Write(append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 64)...))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/videos", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+app.adminToken)
	w = httptest.NewRecorder()
	app.handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	uploaded := decode(t, w)["video"].(map[string]any)
	assert.Empty(t, uploaded["url"])
	assert.Regexp(t, `^/uploads/videos/`, uploaded["file"])
	assert.Regexp(t, `^/uploads/thumbnails/`, uploaded["thumbnail"])

	w = app.do(t, http.MethodGet, uploaded["file"].(string), nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	id := linked["id"].(string)
	for want := 1; want <= 2; want++ {
		w = app.do(t, http.MethodGet, "/api/videos/"+id, nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(want), decode(t, w)["views"])
	}

	var stored models.Video
	require.NoError(t, app.db.Where("id = ?", id).First(&stored).Error)
	assert.Equal(t, 2, stored.Views)
}

func TestSeedNormalizesAdminEmail(t *testing.T) {
	app := newTestApp(t, nil)
	require.NoError(t, config.Seed(app.db, "  Owner@Example.com ", "supersecret12"))
	require.NoError(t, config.Seed(app.db, "owner@example.com", "supersecret12"))

	var count int64
	require.NoError(t, app.db.Model(&models.User{}).Where("email = ?", "owner@example.com").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	w := app.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "Owner@Example.com", "password": "supersecret12",
	}, "")
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}
