package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-service/internal/api/http/handlers"
	"github.com/spec-kit/user-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health *handlers.HealthHandler
	Auth   *handlers.AuthHandler
	Users  *handlers.UsersHandler
	Gate   *auth.Gate
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Health.Welcome)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	users := app.Group("/api/users")
	users.Post("/signup", cfg.Auth.Signup)
	users.Post("/login", cfg.Auth.Login)

	gate := cfg.Gate.Handle
	users.Post("/", gate, cfg.Users.Create)
	users.Get("/", gate, cfg.Users.List)
	users.Get("/:id", gate, cfg.Users.Get)
	users.Put("/:id", gate, cfg.Users.Update)
	users.Delete("/:id", gate, cfg.Users.Delete)
	users.Delete("/", gate, cfg.Users.DeleteAll)
}
