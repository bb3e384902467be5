package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/election-service/internal/api/http/handlers"
	"github.com/spec-kit/election-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Candidates     *handlers.CandidatesHandler
	Votes          *handlers.VotesHandler
	AuthMiddleware *auth.AuthMiddleware
	AdminGate      fiber.Handler
}

// RegisterRoutes wires HTTP routes. The vote/count and vote/:id routes must
// be registered before the parameterized candidate routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.Users.Signup)
	authGroup.Post("/login", cfg.Users.Login)

	candidates := app.Group("/candidates")
	candidates.Get("/vote/count", cfg.Votes.Count)
	candidates.Get("/vote/:id", cfg.AuthMiddleware.Handle, cfg.Votes.Cast)
	candidates.Get("/", cfg.Candidates.List)

	candidates.Post("/", cfg.AuthMiddleware.Handle, cfg.AdminGate, cfg.Candidates.Create)
	candidates.Put("/:id", cfg.AuthMiddleware.Handle, cfg.AdminGate, cfg.Candidates.Update)
	candidates.Delete("/:id", cfg.AuthMiddleware.Handle, cfg.AdminGate, cfg.Candidates.Delete)
}
