package http

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"

	"github.com/paypulse/backend/internal/metrics"
	"github.com/paypulse/backend/internal/service"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, pulseSvc *service.PulseService) {
	handler := NewHandler(pulseSvc)

	// Health check
	app.Get("/health", handler.HealthCheck)

	// Prometheus scrape endpoint
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	// API v1 routes
	api := app.Group("/api/v1")
	{
		// Catalog endpoints
		api.Get("/meta/periods", handler.GetPeriods)
		api.Get("/meta/case-studies", handler.GetCaseStudies)

		// Home view and map selection
		api.Get("/home", handler.GetHome)
		api.Post("/home/selection", handler.PostSelection)
		api.Delete("/home/selection", handler.DeleteSelection)

		// Case-study reports
		api.Get("/case-studies/:slug", handler.GetCaseStudy)
	}
}
