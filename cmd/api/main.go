package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/adhunikethi/agritech-api/internal/config"
	"github.com/adhunikethi/agritech-api/internal/database"
	"github.com/adhunikethi/agritech-api/internal/handlers"
	"github.com/adhunikethi/agritech-api/internal/jobs"
	"github.com/adhunikethi/agritech-api/internal/middleware"
	"github.com/adhunikethi/agritech-api/internal/repository"
	"github.com/adhunikethi/agritech-api/internal/services"
	"github.com/adhunikethi/agritech-api/internal/storage"
	"github.com/adhunikethi/agritech-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// @title AgriTech API
// @version 1.0
// @description REST API for the AgriTech marketplace admin platform

// @contact.name API Support

// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("Database migrations applied")

	// Initialize storage for product images
	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	logger.Info("Initialized local storage")

	// Initialize repositories
	repos := repository.NewRepositories(db)

	// Initialize background worker
	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	// Initialize services
	svcs := services.NewServices(repos, worker, cfg, db)

	// Schedule recurring jobs
	scheduleJobs(worker, svcs)

	// Initialize handlers
	h := handlers.NewHandlers(svcs, store)

	// Setup router
	router := setupRouter(h, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	worker.Shutdown()
	logger.Info("Background worker stopped")

	// Flush Sentry events before exit
	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// Uploaded product images
	router.Static("/uploads", cfg.StoragePath)

	// Redirect root to swagger
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check (public)
		v1.GET("/health", h.Health.Index)

		// Authentication (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/logout", h.Auth.Logout)
		}

		// Protected routes (requires authentication)
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTSecret))
		{
			protected.GET("/auth/me", h.Auth.Me)

			// Admin-only routes
			admin := protected.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				// User management
				admin.GET("/users", h.User.Index)
				admin.POST("/users", h.User.Create)
				admin.DELETE("/users/:user_id", h.User.Delete)
				admin.PUT("/users/:user_id/toggle_status", h.User.ToggleStatus)
				admin.POST("/users/:user_id/restore", h.User.Restore)

				// Catalog management
				admin.POST("/products", h.Product.Create)
				admin.PUT("/products/:id", h.Product.Update)
				admin.DELETE("/products/:id", h.Product.Delete)
				admin.PATCH("/products/:id/status", h.Product.SetStatus)
				admin.POST("/products/:id/image", h.Product.UploadImage)
				admin.POST("/categories", h.Product.CreateCategory)

				// Order lifecycle (process/ship/deliver/cancel)
				admin.POST("/orders/:id/:event", h.Order.Transition)

				// Payment confirmation and reconciliation
				admin.PATCH("/payments/:id/status", h.Payment.SetStatus)
				admin.GET("/payments/transaction/:transaction_id", h.Payment.ShowByTransaction)

				// Inventory management
				inventory := admin.Group("/inventory")
				{
					inventory.GET("", h.Inventory.Index)
					inventory.GET("/low_stock", h.Inventory.LowStock)
					inventory.GET("/sku/:sku", h.Inventory.ShowBySKU)
					inventory.GET("/:id", h.Inventory.Show)
					inventory.POST("", h.Inventory.Create)
					inventory.PUT("/:id", h.Inventory.Update)
					inventory.DELETE("/:id", h.Inventory.Delete)
					inventory.POST("/:id/movements", h.Inventory.RecordMovement)
					inventory.GET("/:id/movements", h.Inventory.Movements)
				}

				// Dashboard analytics
				analytics := admin.Group("/analytics")
				{
					analytics.GET("/dashboard", h.Analytics.Dashboard)
					analytics.POST("/refresh", h.Analytics.Refresh)
					analytics.GET("/export", h.Analytics.Export)
				}

				// Audit log
				admin.GET("/audit", h.Audit.Index)

				// Background worker status
				admin.GET("/jobs/status", h.Job.Status)
			}

			// Profile access: admin or the account owner
			protected.GET("/users/:user_id", middleware.RequireAdminOrOwner(), h.User.Show)
			protected.PUT("/users/:user_id", middleware.RequireAdminOrOwner(), h.User.Update)
			protected.PATCH("/users/:user_id/change_password", middleware.RequireAdminOrOwner(), h.User.ChangePassword)

			// Catalog browsing (any authenticated user)
			protected.GET("/products", h.Product.Index)
			protected.GET("/products/:id", h.Product.Show)
			protected.GET("/categories", h.Product.Categories)

			// Orders (index/show scope to the caller unless admin)
			protected.GET("/orders", h.Order.Index)
			protected.GET("/orders/:id", h.Order.Show)
			protected.POST("/orders", h.Order.Create)

			// Payments (index/show scope to the caller unless admin)
			protected.GET("/payments", h.Payment.Index)
			protected.GET("/payments/:id", h.Payment.Show)
			protected.POST("/payments", h.Payment.Create)

			// Notifications (users manage their own)
			// Static route first so "read_all" is not matched as :id
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", h.Notification.Index)
				notifications.PATCH("/read_all", h.Notification.MarkAllAsRead)
				notifications.PATCH("/:id/read", h.Notification.MarkAsRead)
			}
		}
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services) {
	// Warm the dashboard cache right after startup
	worker.Enqueue(func(ctx context.Context) error {
		logger.Info("[Job] Warming analytics cache...")
		return svcs.Analytics.RefreshCache(ctx)
	})

	// Refresh analytics cache every 15 minutes
	worker.ScheduleEvery(15*time.Minute, func(ctx context.Context) error {
		logger.Info("[Job] Refreshing analytics cache...")
		return svcs.Analytics.RefreshCache(ctx)
	})

	// Check stock levels every hour and notify on low/out-of-stock items
	worker.ScheduleEvery(1*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Checking stock levels...")
		return svcs.Inventory.CheckStockLevels(ctx)
	})

	// Purge expired refresh tokens daily
	worker.ScheduleEvery(24*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Cleaning expired refresh tokens...")
		return svcs.Auth.CleanExpiredTokens(ctx)
	})

	logger.Info("Scheduled recurring jobs")
}
