package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/paypulse/backend/internal/domain"
	"github.com/paypulse/backend/internal/metrics"
	"github.com/paypulse/backend/internal/service"
)

// Handler contains all HTTP handlers
type Handler struct {
	pulseSvc *service.PulseService
}

// NewHandler creates a new handler
func NewHandler(pulseSvc *service.PulseService) *Handler {
	return &Handler{
		pulseSvc: pulseSvc,
	}
}

// ErrorHandler renders every handler error as the API's JSON error shape.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}

// observeRender records one render pass outcome under a bounded view label.
func observeRender(view string, start time.Time, err error) {
	metrics.ViewRenderDurationMs.WithLabelValues(view).Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.ViewRenderFailuresTotal.WithLabelValues(view).Inc()
		return
	}
	metrics.ViewRendersTotal.WithLabelValues(view).Inc()
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	database := "ok"
	if err := h.pulseSvc.Health(c.Context()); err != nil {
		database = "unreachable"
	}
	return c.JSON(fiber.Map{
		"status":   "ok",
		"service":  "paypulse-backend",
		"version":  "1.0.0",
		"database": database,
	})
}

// GetPeriods returns the reporting calendar
func (h *Handler) GetPeriods(c *fiber.Ctx) error {
	catalog, err := h.pulseSvc.PeriodCatalog(c.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load period catalog")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    catalog,
	})
}

// GetCaseStudies returns the case-study catalog
func (h *Handler) GetCaseStudies(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.pulseSvc.CaseStudies(),
	})
}

// GetHome runs one full render pass of the home screen
func (h *Handler) GetHome(c *fiber.Ctx) error {
	ctx := c.Context()

	view := c.Query("view", string(domain.ViewTransactions))
	if view != string(domain.ViewTransactions) && view != string(domain.ViewUsers) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid view: must be transactions or users")
	}

	params := service.HomeParams{
		View:      domain.ViewKind(view),
		Year:      c.QueryInt("year", 0),
		Quarter:   c.QueryInt("quarter", 0),
		State:     c.Query("state"),
		SessionID: c.Query("session"),
	}
	if params.Year < 0 {
		params.Year = 0
	}
	if params.Quarter < 1 || params.Quarter > 4 {
		params.Quarter = 0
	}

	start := time.Now()
	data, err := h.pulseSvc.Home(ctx, params)
	observeRender("home", start, err)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to render home view")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// PostSelection resolves a map click and stores it for the session
func (h *Handler) PostSelection(c *fiber.Ctx) error {
	ctx := c.Context()

	var req domain.SelectionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	resp, err := h.pulseSvc.ResolveSelection(ctx, req)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to store selection")
	}
	if resp.State != nil {
		metrics.SelectionResolvedTotal.Inc()
	} else {
		metrics.SelectionEmptyTotal.Inc()
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    resp,
	})
}

// DeleteSelection forgets the session's clicked region
func (h *Handler) DeleteSelection(c *fiber.Ctx) error {
	if err := h.pulseSvc.ClearSelection(c.Context(), c.Query("session")); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to clear selection")
	}
	return c.JSON(fiber.Map{
		"success": true,
	})
}

// GetCaseStudy renders one case-study report
func (h *Handler) GetCaseStudy(c *fiber.Ctx) error {
	ctx := c.Context()
	slug := c.Params("slug")

	params := service.CaseStudyParams{
		Year:       c.QueryInt("year", 0),
		Quarter:    c.QueryInt("quarter", 0),
		State:      c.Query("state"),
		Brand:      c.Query("brand"),
		TrendState: c.Query("trend_state"),
	}
	if params.Year < 0 {
		params.Year = 0
	}
	if params.Quarter < 1 || params.Quarter > 4 {
		params.Quarter = 0
	}

	start := time.Now()
	data, err := h.pulseSvc.CaseStudy(ctx, slug, params)
	if errors.Is(err, service.ErrUnknownCaseStudy) {
		return fiber.NewError(fiber.StatusNotFound, "Unknown case study")
	}
	observeRender(slug, start, err)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to render case study")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}
