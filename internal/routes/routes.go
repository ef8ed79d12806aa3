package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/fittrack-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/fittrack-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/fittrack-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/fittrack-backend/internal/monitoring"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Handlers struct {
	Auth    *handlers.AuthHandler
	Health  *handlers.HealthHandler
	Legal   *handlers.LegalHandler
	Goal    *handlers.GoalHandler
	Profile *handlers.ProfileHandler
}

func Setup(app *fiber.App, cfg *config.Config, h Handlers) {
	// Unthrottled so scrapers and probes never hit the limiter.
	app.Get("/health", h.Health.Check)
	if cfg.MetricsEnabled {
		app.Get("/metrics", monitoring.PrometheusHandler())
	}

	app.Use(limiter.New(limiter.Config{
		Max:               cfg.RateLimitMax,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	app.Get("/legal/privacy", h.Legal.PrivacyPolicy)
	app.Get("/legal/terms", h.Legal.TermsOfService)

	// Auth-specific rate limit: 10 req/min per IP
	auth := app.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)

	protected := []fiber.Handler{middleware.JWTProtected(cfg), middleware.RequireSession()}
	withSession := func(handler fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, protected...), handler)
	}

	app.Post("/auth/logout", withSession(h.Auth.Logout)...)
	app.Delete("/auth/account", withSession(h.Auth.DeleteAccount)...)

	app.Get("/goals", withSession(h.Goal.List)...)
	app.Post("/goals-store", withSession(h.Goal.Store)...)
	app.Delete("/goals-delete/:id", withSession(h.Goal.Delete)...)

	app.Get("/information-board", withSession(h.Profile.Show)...)
	app.Post("/information-board-store", withSession(h.Profile.Store)...)
}
