package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/provalab/prova-api/internal/dto"
	"github.com/provalab/prova-api/internal/report"
	"github.com/provalab/prova-api/internal/service"
	"github.com/provalab/prova-api/internal/utils"
	"github.com/provalab/prova-api/pkg/tabular"
)

// SeriesHandler manages grade-level series endpoints.
type SeriesHandler struct {
	service service.SeriesService
	reports service.ReportService
	logger  zerolog.Logger
}

// NewSeriesHandler builds a series handler instance.
func NewSeriesHandler(service service.SeriesService, reports service.ReportService, logger zerolog.Logger) *SeriesHandler {
	return &SeriesHandler{
		service: service,
		reports: reports,
		logger:  logger.With().Str("component", "series_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *SeriesHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/export", h.export)
	router.Get("/:id", h.get)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *SeriesHandler) list(c *fiber.Ctx) error {
	series, err := h.service.List(c.Context(), ownerFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "series retrieved", series)
}

func (h *SeriesHandler) get(c *fiber.Ctx) error {
	series, err := h.service.Get(c.Context(), ownerFromContext(c), c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "series retrieved", series)
}

func (h *SeriesHandler) create(c *fiber.Ctx) error {
	var payload dto.SeriesCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	series, err := h.service.Create(c.Context(), ownerFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "series created", series)
}

func (h *SeriesHandler) update(c *fiber.Ctx) error {
	var payload dto.SeriesUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	series, err := h.service.Update(c.Context(), ownerFromContext(c), c.Params("id"), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "series updated", series)
}

func (h *SeriesHandler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), ownerFromContext(c), c.Params("id")); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "series deleted", nil)
}

func (h *SeriesHandler) export(c *fiber.Ctx) error {
	var columns []string
	if raw := c.Query("columns"); raw != "" {
		columns = splitAndTrim(raw)
	}

	file, err := h.reports.Export(c.Context(), ownerFromContext(c), report.KindSeries, c.Query("format"), columns)
	if err != nil {
		return h.handleError(c, err)
	}

	return sendExportFile(c, file)
}

func (h *SeriesHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrSeriesNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "series not found")
	case errors.Is(err, service.ErrUnsupportedFormat), errors.Is(err, tabular.ErrNoColumns):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
