package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/provalab/prova-api/internal/config"
	"github.com/provalab/prova-api/internal/handler"
	"github.com/provalab/prova-api/internal/middleware"
	"github.com/provalab/prova-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	QuestionHandler   *handler.QuestionHandler
	ExamHandler       *handler.ExamHandler
	SubmissionHandler *handler.SubmissionHandler
	SeriesHandler     *handler.SeriesHandler
	ClassHandler      *handler.ClassHandler
	AnalyticsHandler  *handler.AnalyticsHandler
	ReportHandler     *handler.ReportHandler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	protected := api.Group("", jwtMiddleware)

	if deps.QuestionHandler != nil {
		deps.QuestionHandler.Register(protected.Group("/questions"))
	}

	if deps.ExamHandler != nil {
		exams := protected.Group("/exams")
		// Submissions arrive in bursts when a class scans the same QR code.
		exams.Use("/:id/submit", middleware.RateLimit("exam_submit", 30, time.Minute))
		deps.ExamHandler.Register(exams)
	}

	if deps.SubmissionHandler != nil {
		deps.SubmissionHandler.Register(protected.Group("/submissions"))
	}

	if deps.SeriesHandler != nil {
		deps.SeriesHandler.Register(protected.Group("/series"))
	}

	if deps.ClassHandler != nil {
		deps.ClassHandler.Register(protected.Group("/classes"))
	}

	if deps.AnalyticsHandler != nil {
		deps.AnalyticsHandler.Register(protected.Group("/analytics"))
	}

	if deps.ReportHandler != nil {
		// Exports are teacher-facing; student tokens never need them.
		reports := protected.Group("/reports", middleware.RequireRole("teacher", "admin"))
		deps.ReportHandler.Register(reports)
	}
}
