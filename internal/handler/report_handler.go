package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/provalab/prova-api/internal/report"
	"github.com/provalab/prova-api/internal/service"
	"github.com/provalab/prova-api/internal/utils"
	"github.com/provalab/prova-api/pkg/tabular"
)

// ReportHandler serves spreadsheet and CSV exports.
type ReportHandler struct {
	service service.ReportService
	logger  zerolog.Logger
}

// NewReportHandler builds a report handler instance.
func NewReportHandler(service service.ReportService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger.With().Str("component", "report_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *ReportHandler) Register(router fiber.Router) {
	router.Get("/:kind/export", h.export)
}

func (h *ReportHandler) export(c *fiber.Ctx) error {
	kind, err := report.ParseKind(c.Params("kind"))
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "unsupported report kind")
	}

	var columns []string
	if raw := c.Query("columns"); raw != "" {
		columns = splitAndTrim(raw)
	}

	file, err := h.service.Export(c.Context(), ownerFromContext(c), kind, c.Query("format"), columns)
	if err != nil {
		return h.handleError(c, err)
	}

	return sendExportFile(c, file)
}

func (h *ReportHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, report.ErrUnknownKind):
		return utils.SendError(c, fiber.StatusBadRequest, "unsupported report kind")
	case errors.Is(err, service.ErrUnsupportedFormat):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, tabular.ErrNoColumns):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
