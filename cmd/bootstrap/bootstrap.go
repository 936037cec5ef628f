package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"er-finder/config"
	deliveryHttp "er-finder/internal/delivery/http"
	"er-finder/internal/delivery/http/handler"
	"er-finder/internal/delivery/http/middleware"
	"er-finder/internal/domain/entity"
	"er-finder/internal/infrastructure/cache"
	"er-finder/internal/infrastructure/database"
	"er-finder/internal/repository"
	"er-finder/internal/service"
	"er-finder/internal/usecase"
	"er-finder/internal/view"
	"er-finder/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	hospitalsChannel     = "hospitals:changed"
	registrationsChannel = "registrations:changed"

	instanceIdentityKey = "er-finder:instance:id"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server

	directoryFeed *service.SnapshotFeed[entity.Hospital]
	ledgerFeed    *service.SnapshotFeed[entity.Registration]
	sessions      *view.SessionManager
	cancelMirror  func()
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Apply schema migrations before opening the pooled connection
	if err := database.Migrate(cfg.DB); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	if err := app.initialize(); err != nil {
		return nil, err
	}

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initialize wires repositories, feeds, usecases and the HTTP server.
func (app *App) initialize() error {
	cfg := app.Config
	log := logrus.StandardLogger()
	ctx := context.Background()

	// Stable identity for this installation, persisted across restarts.
	identity := service.NewDeviceIdentity(cache.NewRedisKVStore(app.RedisClient), instanceIdentityKey, log)
	instanceID, err := identity.ID(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve instance identity: %w", err)
	}
	log.Infof("Instance identity: %s", instanceID)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	directory := repository.NewHospitalDirectory(app.DB)
	ledger := repository.NewRegistrationLedger(app.DB)

	// Snapshot feeds: every write publishes, every subscriber re-derives
	// from the full collection.
	app.directoryFeed = service.NewSnapshotFeed(app.RedisClient, hospitalsChannel, directory.All, log)
	app.ledgerFeed = service.NewSnapshotFeed(app.RedisClient, registrationsChannel, ledger.All, log)

	if err := app.directoryFeed.Start(ctx); err != nil {
		return fmt.Errorf("failed to start directory feed: %w", err)
	}
	if err := app.ledgerFeed.Start(ctx); err != nil {
		return fmt.Errorf("failed to start ledger feed: %w", err)
	}

	// Shared directory mirror for the stateless discovery endpoints.
	mirror := view.NewCache()
	snapshots, cancelMirror := app.directoryFeed.Subscribe()
	app.cancelMirror = cancelMirror
	go func() {
		for snapshot := range snapshots {
			mirror.ReplaceAll(snapshot)
		}
	}()

	// Per-device map sessions
	home := view.Camera{
		Center: entity.Location{Latitude: cfg.Geo.HomeLat, Longitude: cfg.Geo.HomeLon},
		Zoom:   cfg.Geo.HomeZoom,
	}
	app.sessions = view.NewSessionManager(app.directoryFeed, func() *view.Handle {
		board := view.NewMarkerBoard()
		locations := view.NewLocationStore()
		return &view.Handle{
			Session:  view.NewSession(board, locations, cfg.Geo.RadiusMeters, home, log),
			Board:    board,
			Location: locations,
		}
	}, log)

	// Initialize usecases
	hospitalUsecase := usecase.NewHospitalUsecase(log, directory, mirror, app.directoryFeed, cfg.Geo.RadiusMeters)
	registrationUsecase := usecase.NewRegistrationUsecase(log, ledger, app.ledgerFeed, customValidator)
	bookingStatusUsecase := usecase.NewBookingStatusUsecase(log, ledger, directory)

	// Initialize handlers
	hospitalHandler := handler.NewHospitalHandler(hospitalUsecase, customValidator)
	registrationHandler := handler.NewRegistrationHandler(registrationUsecase, bookingStatusUsecase, app.ledgerFeed, customValidator)
	sessionHandler := handler.NewSessionHandler(app.sessions, customValidator)

	// Initialize middleware
	deviceMiddleware := middleware.NewDeviceMiddleware()
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(hospitalHandler, registrationHandler, sessionHandler, deviceMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	app.Server = &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}

	return nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close stops feeds and sessions and closes all connections.
func (app *App) Close() {
	if app.sessions != nil {
		app.sessions.Stop()
	}
	if app.cancelMirror != nil {
		app.cancelMirror()
	}
	if app.directoryFeed != nil {
		app.directoryFeed.Stop()
	}
	if app.ledgerFeed != nil {
		app.ledgerFeed.Stop()
	}

	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
