package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/resumes/api/http/handlers"
)

// Handlers groups everything Register mounts.
type Handlers struct {
	Auth    *handlers.AuthHandler
	Users   *handlers.UsersHandler
	Resumes *handlers.ResumesHandler
	Health  *handlers.HealthHandler
}

// Register wires all HTTP routes onto given Fiber app. authMW guards every
// route below /users and /resumes.
func Register(app *fiber.App, h Handlers, authMW fiber.Handler) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", h.Health.Health)
	v1.Get("/ready", h.Health.Ready)

	a := v1.Group("/auth")
	a.Post("/sign-up", h.Auth.SignUp)
	a.Post("/sign-in", h.Auth.SignIn)

	u := v1.Group("/users", authMW)
	u.Get("/me", h.Users.Me)

	rg := v1.Group("/resumes", authMW)
	rg.Post("/", h.Resumes.Create)
	rg.Get("/", h.Resumes.List)
	rg.Get("/:id", h.Resumes.Get)
	rg.Put("/:id", h.Resumes.Update)
	rg.Patch("/:id", h.Resumes.Update)
	rg.Delete("/:id", h.Resumes.Delete)
}
