package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/interview-service/internal/api/http/handlers"
	"github.com/spec-kit/interview-service/internal/auth"
	"github.com/spec-kit/interview-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Interviews     *handlers.InterviewsHandler
	JobTitles      *handlers.JobTitlesHandler
	AuthMiddleware *auth.AuthMiddleware
	Gatherer       prometheus.Gatherer
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Post("/refresh", cfg.Users.Refresh)
	authGroup.Post("/logout", cfg.Users.Logout)
	authGroup.Get("/options", cfg.Users.Options)

	protected := authGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	protected.Get("/me", cfg.Users.Me)
	protected.Post("/password/change", cfg.Users.ChangePassword)

	app.Get("/users", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.UserRoleManager), cfg.Users.List)

	jobTitles := app.Group("/job-titles", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	jobTitles.Get("/", cfg.JobTitles.List)
	jobTitles.Post("/", cfg.JobTitles.Create)

	interviews := app.Group("/interview", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	interviews.Get("/date", cfg.Interviews.ByDate)
	interviews.Get("/week", cfg.Interviews.Week)
	interviews.Get("/work-week", cfg.Interviews.WorkWeek)
	interviews.Get("/month", cfg.Interviews.Month)
	interviews.Get("/range", cfg.Interviews.Range)
	interviews.Get("/department", cfg.Interviews.Department)
	interviews.Get("/", cfg.Interviews.List)
	interviews.Post("/", cfg.Interviews.Create)
	interviews.Get("/:id<int>", cfg.Interviews.Get)
	interviews.Put("/:id<int>", cfg.Interviews.Update)
	interviews.Delete("/:id<int>", cfg.Interviews.Delete)
}
