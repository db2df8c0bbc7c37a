package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/farellandr/esports-hub/config"
	"github.com/farellandr/esports-hub/internal/handlers"
	"github.com/farellandr/esports-hub/internal/helpers"
	"github.com/farellandr/esports-hub/internal/middleware"
	"github.com/farellandr/esports-hub/internal/models"
	"github.com/farellandr/esports-hub/internal/notify"
	"github.com/farellandr/esports-hub/internal/store"
)

type Options struct {
	Deps        middleware.Dependencies
	UploadDir   string
	CORSOrigins []string
}

// Start serves the API until SIGINT or SIGTERM. A database that cannot be
// opened is tolerated when the mock fallback is enabled.
func Start(cfg *config.Config, logger *zap.Logger) error {
	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		if !cfg.MockFallback {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		logger.Warn("Database unavailable, starting without it", zap.Error(err))
		db = nil
	}

	fallback := store.NewFallback(cfg.MockFallback, store.NewGormPinger(db), cfg.DBPingTimeout, logger)
	if db == nil {
		fallback.Latch(err)
	}

	broker, err := notify.New(notify.Config{
		Broker:           cfg.Broker,
		KafkaBrokers:     cfg.KafkaBrokers,
		KafkaTopic:       cfg.KafkaTopic,
		RabbitMQURL:      cfg.RabbitMQURL,
		RabbitMQExchange: cfg.RabbitMQExchange,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to create publisher: %w", err)
	}
	publisher := notify.Tracked(broker)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("Failed to close publisher", zap.Error(err))
		}
	}()

	handler := NewHandler(Options{
		Deps: middleware.Dependencies{
			DB:        db,
			Logger:    logger,
			Stores:    store.NewProvider(db, fallback, store.NewMockStore(time.Now())),
			Publisher: publisher,
			Uploader:  helpers.NewUploader(cfg.UploadDir),
			Auth: middleware.AuthSettings{
				JWTSecret:  cfg.JWTSecret,
				TokenTTL:   cfg.JWTTTL,
				PassSecret: cfg.PassSecret,
			},
		},
		UploadDir:   cfg.UploadDir,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Port), zap.Bool("database", db != nil))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("Server exited")
	return nil
}

// NewHandler wraps the router with CORS handling.
func NewHandler(opts Options) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader, handlers.DataSourceHeader},
		AllowCredentials: true,
		MaxAge:           600,
	})
	return c.Handler(NewRouter(opts))
}

func NewRouter(opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(opts.Deps.Logger))
	r.Use(middleware.PrometheusMiddleware())

	r.MaxMultipartMemory = 32 << 20
	if opts.UploadDir != "" {
		r.Static(helpers.PublicUploadPrefix, opts.UploadDir)
	}
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	setupRoutes(r, opts.Deps)
	return r
}

func setupRoutes(r *gin.Engine, deps middleware.Dependencies) {
	api := r.Group("/api")
	api.Use(middleware.DatabaseMiddleware(deps))

	public := api.Group("")
	{
		public.GET("/health", handlers.Health)
		public.POST("/auth/login", handlers.Login)

		public.GET("/events", handlers.ListEvents)
		public.GET("/events/:id", handlers.GetEvent)
		public.POST("/events/:id/registrations", handlers.CreateRegistration)
		public.GET("/registrations/:id/pass", handlers.GetRegistrationPass)

		public.GET("/members", handlers.ListMembers)
		public.GET("/members/:id", handlers.GetMember)
		public.GET("/teams", handlers.ListTeams)
		public.GET("/teams/:id", handlers.GetTeam)
		public.GET("/games", handlers.ListGames)
		public.GET("/games/:id", handlers.GetGame)
		public.GET("/news", handlers.ListNews)
		public.GET("/news/:id", handlers.GetNews)
		public.GET("/partners", handlers.ListPartners)
		public.GET("/partners/:id", handlers.GetPartner)
		public.GET("/products", handlers.ListProducts)
		public.GET("/products/:id", handlers.GetProduct)
		public.GET("/videos", handlers.ListVideos)
		public.GET("/videos/:id", handlers.GetVideo)

		public.POST("/orders", handlers.PlaceOrder)
		public.GET("/orders/track/:orderNumber", handlers.TrackOrder)
		public.POST("/contact", handlers.CreateContactMessage)
		public.GET("/shop/settings", handlers.GetShopSettings)
	}

	authenticated := api.Group("")
	authenticated.Use(middleware.JWTAuthMiddleware())
	authenticated.GET("/auth/me", handlers.Me)

	admin := api.Group("/admin")
	admin.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleAdmin, models.RoleEditor))
	{
		admin.POST("/events", handlers.CreateEvent)
		admin.PUT("/events/:id", handlers.UpdateEvent)
		admin.DELETE("/events/:id", handlers.DeleteEvent)
		admin.GET("/events/:id/registrations", handlers.ListRegistrations)

		admin.GET("/registrations", handlers.ListRegistrations)
		admin.PATCH("/registrations/:id/status", handlers.UpdateRegistrationStatus)
		admin.DELETE("/registrations/:id", handlers.DeleteRegistration)
		admin.POST("/registrations/check-in", handlers.CheckInRegistration)

		admin.POST("/members", handlers.CreateMember)
		admin.PUT("/members/:id", handlers.UpdateMember)
		admin.DELETE("/members/:id", handlers.DeleteMember)

		admin.POST("/teams", handlers.CreateTeam)
		admin.PUT("/teams/:id", handlers.UpdateTeam)
		admin.DELETE("/teams/:id", handlers.DeleteTeam)

		admin.POST("/games", handlers.CreateGame)
		admin.PUT("/games/:id", handlers.UpdateGame)
		admin.DELETE("/games/:id", handlers.DeleteGame)

		admin.GET("/news", handlers.ListNews)
		admin.GET("/news/:id", handlers.GetNews)
		admin.POST("/news", handlers.CreateNews)
		admin.PUT("/news/:id", handlers.UpdateNews)
		admin.DELETE("/news/:id", handlers.DeleteNews)

		admin.GET("/partners", handlers.ListPartners)
		admin.POST("/partners", handlers.CreatePartner)
		admin.PUT("/partners/:id", handlers.UpdatePartner)
		admin.DELETE("/partners/:id", handlers.DeletePartner)

		admin.GET("/products", handlers.ListProducts)
		admin.GET("/products/:id", handlers.GetProduct)
		admin.POST("/products", handlers.CreateProduct)
		admin.PUT("/products/:id", handlers.UpdateProduct)
		admin.DELETE("/products/:id", handlers.DeleteProduct)

		admin.POST("/videos", handlers.CreateVideo)
		admin.PUT("/videos/:id", handlers.UpdateVideo)
		admin.DELETE("/videos/:id", handlers.DeleteVideo)

		admin.GET("/orders", handlers.ListOrders)
		admin.GET("/orders/:id", handlers.GetOrder)
		admin.PATCH("/orders/:id/status", handlers.UpdateOrderStatus)
		admin.DELETE("/orders/:id", handlers.DeleteOrder)

		admin.GET("/contact", handlers.ListContactMessages)
		admin.GET("/contact/:id", handlers.GetContactMessage)
		admin.PATCH("/contact/:id/status", handlers.UpdateContactStatus)
		admin.DELETE("/contact/:id", handlers.DeleteContactMessage)

		admin.PUT("/shop/settings", handlers.UpdateShopSettings)
		admin.GET("/stats", handlers.GetStats)
		admin.POST("/uploads/:type", handlers.UploadFile)
	}

	users := admin.Group("/users")
	users.Use(middleware.RequireRole(models.RoleAdmin))
	{
		users.GET("", handlers.ListUsers)
		users.POST("", handlers.CreateUser)
		users.DELETE("/:id", handlers.DeleteUser)
	}
}
