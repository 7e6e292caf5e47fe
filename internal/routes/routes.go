package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/terrawatch/report-engine/internal/config"
	"github.com/terrawatch/report-engine/internal/handlers"
	"github.com/terrawatch/report-engine/internal/middleware"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	Health       *handlers.HealthHandler
	Report       *handlers.ReportHandler
	Version      *handlers.VersionHandler
	Category     *handlers.CategoryHandler
	Collaborator *handlers.CollaboratorHandler
	Status       *handlers.StatusHandler
	License      *handlers.LicenseHandler
	Revenue      *handlers.RevenueHandler
	Engine       *handlers.EngineHandler
	Event        *handlers.EventHandler
	Webhook      *handlers.WebhookHandler
}

func Setup(app *fiber.App, cfg *config.Config, h Handlers) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)

	// Auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)
	api.Post("/auth/logout", middleware.JWTProtected(cfg), h.Auth.Logout)

	// Public reads — absence is a normal result, not an error
	api.Get("/reports", h.Report.List)
	api.Get("/reports/:id", h.Report.Get)
	api.Get("/reports/:id/versions", h.Version.ListVersions)
	api.Get("/reports/:id/category", h.Category.GetCategory)
	api.Get("/reports/:id/collaborators", h.Collaborator.ListCollaborators)
	api.Get("/reports/:id/status-history", h.Status.History)
	api.Get("/reports/:id/licenses", h.License.ListLicenses)
	api.Get("/reports/:id/shares", h.Revenue.ListShares)
	api.Get("/events", h.Event.List)
	api.Get("/engine", h.Engine.State)

	// Mutating operations — authenticated; the engine applies its own
	// per-report authorization on top
	protected := api.Group("", middleware.JWTProtected(cfg))
	protected.Post("/reports", h.Report.Submit)
	protected.Patch("/reports/:id/metadata", h.Report.UpdateMetadata)
	protected.Post("/reports/:id/versions", h.Version.AddVersion)
	protected.Put("/reports/:id/category", h.Category.SetCategory)
	protected.Post("/reports/:id/collaborators", h.Collaborator.AddCollaborator)
	protected.Post("/reports/:id/status", h.Status.UpdateStatus)
	protected.Post("/reports/:id/licenses", h.License.GrantLicense)
	protected.Post("/reports/:id/shares", h.Revenue.SetShare)

	// Engine admin controls — the engine checks the admin identity itself
	protected.Post("/engine/pause", h.Engine.Pause)
	protected.Post("/engine/unpause", h.Engine.Unpause)
	protected.Post("/engine/admin", h.Engine.SetAdmin)

	// Reward-distribution webhook — shared-token auth, no JWT
	api.Post("/webhooks/distributions", h.Webhook.HandleDistribution)
}
