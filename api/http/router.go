package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jobraft/backend/api/http/handlers"
	"github.com/jobraft/backend/pkg/profile"
)

// Register wires all HTTP routes onto given Fiber app. The authMW middleware
// authenticates; role guards sit on the employer and seeker route groups.
func Register(
	app *fiber.App,
	authMW fiber.Handler,
	requireRole func(profile.Role) fiber.Handler,
	auth *handlers.AuthHandler,
	prof *handlers.ProfileHandler,
	comp *handlers.CompanyHandler,
	jobs *handlers.JobHandler,
	apps *handlers.ApplicationHandler,
	saved *handlers.SavedJobHandler,
	health *handlers.HealthHandler,
) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", auth.Register)
	a.Post("/login", auth.Login)
	a.Post("/refresh", auth.Refresh)
	a.Post("/logout", auth.Logout)

	// Public browsing
	v1.Get("/jobs", jobs.List)
	v1.Get("/jobs/:id", jobs.GetByID)

	// Authenticated, any role
	me := v1.Group("/me", authMW)
	me.Get("/", prof.Me)
	me.Put("/profile", prof.UpdateProfile)
	me.Get("/applications", apps.Mine)
	me.Get("/saved-jobs", saved.Mine)

	v1.Get("/jobs/:id/saved", authMW, saved.State)
	v1.Put("/jobs/:id/saved", authMW, saved.Save)
	v1.Delete("/jobs/:id/saved", authMW, saved.Unsave)
	v1.Post("/jobs/:id/saved/toggle", authMW, saved.Toggle)

	// Seeker flow
	v1.Post("/jobs/:id/applications", authMW, requireRole(profile.RoleSeeker), apps.Apply)

	// Employer flow
	employer := requireRole(profile.RoleEmployer)
	v1.Post("/companies", authMW, employer, comp.Create)
	me.Get("/company", employer, comp.MyCompany)
	me.Get("/company/jobs", employer, comp.MyCompanyJobs)
	v1.Post("/jobs", authMW, employer, jobs.Publish)
	v1.Get("/jobs/:id/applications", authMW, employer, apps.ForJob)
	v1.Patch("/applications/:id/status", authMW, employer, apps.UpdateStatus)
}
