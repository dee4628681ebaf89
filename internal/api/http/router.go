package http

import (
	"net/http"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/feeportal/fee-service/internal/api/http/handlers"
	"github.com/feeportal/fee-service/internal/auth"
	"github.com/feeportal/fee-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	FeeRequests    *handlers.FeeRequestsHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        http.Handler
	StaticDir      string
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect(domain.LandingSignup, fiber.StatusFound)
	})

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics))
	}

	app.Post("/signup", cfg.Auth.Signup)
	app.Post("/login", cfg.Auth.Login)

	authn := cfg.AuthMiddleware.Handle
	students := auth.RequireRole(domain.RoleStudent)
	faculty := auth.RequireRole(domain.RoleFaculty)

	app.Post("/request-fee", authn, students, cfg.FeeRequests.Submit)
	app.Post("/pay-fee", authn, students, cfg.FeeRequests.Pay)
	app.Get("/requests", authn, auth.RequireRole(domain.RoleFaculty, domain.RoleHOD), cfg.FeeRequests.ListPending)
	app.Get("/all-requests", authn, auth.RequireRole(domain.RoleHOD), cfg.FeeRequests.ListAll)
	app.Post("/faculty/update", authn, faculty, cfg.FeeRequests.Decide)
	app.Get("/request/:id", authn, auth.RequireAnyRole(), cfg.FeeRequests.GetByID)
	app.Get("/status/:regNumber", authn, auth.RequireAnyRole(), cfg.FeeRequests.StatusByRegNumber)

	if cfg.StaticDir != "" {
		if info, err := os.Stat(cfg.StaticDir); err == nil && info.IsDir() {
			app.Static("/", cfg.StaticDir)
		}
	}
}
