package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/farellandr/esports-hub/internal/helpers"
	"github.com/farellandr/esports-hub/internal/notify"
	"github.com/farellandr/esports-hub/internal/store"
)

// AuthSettings holds the secrets used to issue admin tokens and sign
// registration passes.
type AuthSettings struct {
	JWTSecret  string
	TokenTTL   time.Duration
	PassSecret string
}

type Dependencies struct {
	DB        *gorm.DB
	Logger    *zap.Logger
	Stores    *store.Provider
	Publisher notify.Publisher
	Uploader  *helpers.Uploader
	Auth      AuthSettings
}

// DatabaseMiddleware puts the shared dependencies into the request context.
// "db" is only set when a database connection exists.
func DatabaseMiddleware(deps Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps.DB != nil {
			c.Set("db", deps.DB)
		}
		c.Set("logger", deps.Logger)
		c.Set("stores", deps.Stores)
		c.Set("publisher", deps.Publisher)
		c.Set("uploader", deps.Uploader)
		c.Set("auth", deps.Auth)
		c.Next()
	}
}

func GetLogger(c *gin.Context) *zap.Logger {
	logger, ok := c.Value("logger").(*zap.Logger)
	if !ok || logger == nil {
		return zap.NewNop()
	}
	return logger
}

func GetStores(c *gin.Context) *store.Provider {
	stores, _ := c.Value("stores").(*store.Provider)
	return stores
}

func GetPublisher(c *gin.Context) notify.Publisher {
	publisher, ok := c.Value("publisher").(notify.Publisher)
	if !ok || publisher == nil {
		return notify.NopPublisher{}
	}
	return publisher
}

func GetUploader(c *gin.Context) *helpers.Uploader {
	uploader, _ := c.Value("uploader").(*helpers.Uploader)
	return uploader
}

func GetAuthSettings(c *gin.Context) AuthSettings {
	auth, _ := c.Value("auth").(AuthSettings)
	return auth
}
