package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/terrawatch/report-engine/internal/chain"
	"github.com/terrawatch/report-engine/internal/config"
	"github.com/terrawatch/report-engine/internal/database"
	"github.com/terrawatch/report-engine/internal/dto"
	"github.com/terrawatch/report-engine/internal/handlers"
	"github.com/terrawatch/report-engine/internal/logging"
	"github.com/terrawatch/report-engine/internal/middleware"
	"github.com/terrawatch/report-engine/internal/routes"
	"github.com/terrawatch/report-engine/internal/services"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}
	if cfg.EngineAdminID == uuid.Nil {
		slog.Error("ENGINE_ADMIN_ID environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// Database log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// The logical clock is owned by the environment; the wall-clock adapter
	// stands in for the surrounding sequencer's height.
	clock := chain.NewWallClock(func() uint64 { return uint64(time.Now().Unix()) })
	locks := services.NewReportLocks()
	filter := services.NewContentFilter()

	// Services
	authService := services.NewAuthService(database.DB, cfg)
	adminService := services.NewAdminService(database.DB)
	reportService := services.NewReportService(database.DB, clock, locks, filter)
	versionService := services.NewVersionService(database.DB, clock, locks, cfg.MaxReportVersions)
	categoryService := services.NewCategoryService(database.DB, locks)
	collaboratorService := services.NewCollaboratorService(database.DB, clock, locks)
	statusService := services.NewStatusService(database.DB, clock, locks, cfg.IsTrustedVerifier)
	licenseService := services.NewLicenseService(database.DB, clock, locks)
	revenueService := services.NewRevenueService(database.DB, locks)
	eventService := services.NewEventService(database.DB)

	// Seed the singleton engine state on first boot
	if err := adminService.EnsureState(cfg.EngineAdminID); err != nil {
		slog.Error("engine state seeding failed", "error", err)
		os.Exit(1)
	}

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	routes.Setup(app, cfg, routes.Handlers{
		Auth:         handlers.NewAuthHandler(authService),
		Health:       handlers.NewHealthHandler(),
		Report:       handlers.NewReportHandler(reportService),
		Version:      handlers.NewVersionHandler(versionService),
		Category:     handlers.NewCategoryHandler(categoryService),
		Collaborator: handlers.NewCollaboratorHandler(collaboratorService),
		Status:       handlers.NewStatusHandler(statusService),
		License:      handlers.NewLicenseHandler(licenseService),
		Revenue:      handlers.NewRevenueHandler(revenueService),
		Engine:       handlers.NewEngineHandler(adminService),
		Event:        handlers.NewEventHandler(eventService),
		Webhook:      handlers.NewWebhookHandler(revenueService, cfg.DistributorToken),
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
	})
}
