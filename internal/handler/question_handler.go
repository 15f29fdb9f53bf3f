package handler

import (
	"errors"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/provalab/prova-api/internal/dto"
	"github.com/provalab/prova-api/internal/report"
	"github.com/provalab/prova-api/internal/service"
	"github.com/provalab/prova-api/internal/utils"
	"github.com/provalab/prova-api/pkg/tabular"
)

// QuestionHandler manages question bank endpoints.
type QuestionHandler struct {
	service   service.QuestionService
	importer  service.ImportService
	reports   service.ReportService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewQuestionHandler builds a question handler instance.
func NewQuestionHandler(service service.QuestionService, importer service.ImportService, reports service.ReportService, validator *validator.Validate, logger zerolog.Logger) *QuestionHandler {
	return &QuestionHandler{
		service:   service,
		importer:  importer,
		reports:   reports,
		validator: validator,
		logger:    logger.With().Str("component", "question_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *QuestionHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Post("/import", h.importQuestions)
	router.Get("/export", h.export)
	router.Get("/:id", h.get)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *QuestionHandler) list(c *fiber.Ctx) error {
	questions, err := h.service.List(c.Context(), ownerFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "questions retrieved", questions)
}

func (h *QuestionHandler) get(c *fiber.Ctx) error {
	question, err := h.service.Get(c.Context(), ownerFromContext(c), c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "question retrieved", question)
}

func (h *QuestionHandler) create(c *fiber.Ctx) error {
	var payload dto.QuestionCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	question, err := h.service.Create(c.Context(), ownerFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "question created", question)
}

func (h *QuestionHandler) update(c *fiber.Ctx) error {
	var payload dto.QuestionUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	question, err := h.service.Update(c.Context(), ownerFromContext(c), c.Params("id"), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "question updated", question)
}

func (h *QuestionHandler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), ownerFromContext(c), c.Params("id")); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "question deleted", nil)
}

func (h *QuestionHandler) importQuestions(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "file is required")
	}

	reader, err := file.Open()
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "failed to open file")
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "failed to read file")
	}
	if !isSupportedImportType(data) {
		return utils.SendError(c, fiber.StatusBadRequest, "unsupported file type, expected xlsx or csv")
	}

	summary, err := h.importer.ImportQuestions(c.Context(), ownerFromContext(c), data)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, summary.Summary(), summary)
}

func (h *QuestionHandler) export(c *fiber.Ctx) error {
	var columns []string
	if raw := c.Query("columns"); raw != "" {
		columns = splitAndTrim(raw)
	}

	file, err := h.reports.Export(c.Context(), ownerFromContext(c), report.KindQuestions, c.Query("format"), columns)
	if err != nil {
		return h.handleError(c, err)
	}

	return sendExportFile(c, file)
}

func (h *QuestionHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrQuestionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "question not found")
	case errors.Is(err, service.ErrInvalidChoices):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, tabular.ErrParse):
		return utils.SendError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrUnsupportedFormat), errors.Is(err, tabular.ErrNoColumns):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
