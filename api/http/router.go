package http

import (
	"github.com/gofiber/fiber/v2"

	"jobtion/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(
	app *fiber.App,
	health *handlers.HealthHandler,
	resume *handlers.ResumeHandler,
	extract *handlers.ExtractHandler,
	tailor *handlers.TailorHandler,
	jobs *handlers.JobsHandler,
	state *handlers.StateHandler,
) {
	api := app.Group("/api")

	// Health and readiness endpoints for probes/monitoring
	api.Get("/health", health.Health)
	api.Get("/ready", health.Ready)

	// AI pipeline
	api.Post("/parse-resume", resume.Parse)
	api.Post("/extract", extract.Extract)
	api.Post("/tailor-resume", tailor.Tailor)

	// Application tracker
	jg := api.Group("/jobs")
	jg.Get("/", jobs.List)
	jg.Post("/", jobs.Create)
	jg.Put("/:id", jobs.Update)
	jg.Patch("/:id/status", jobs.SetStatus)
	jg.Delete("/:id", jobs.Delete)

	// Stored resume and version snapshots
	api.Get("/resume", state.GetResume)
	api.Put("/resume", state.PutResume)
	api.Delete("/resume", state.DeleteResume)

	vg := api.Group("/versions")
	vg.Get("/", state.ListVersions)
	vg.Post("/", state.SaveVersion)
	vg.Get("/:id", state.GetVersion)
	vg.Delete("/:id", state.DeleteVersion)
}
