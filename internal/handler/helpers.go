package handler

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/provalab/prova-api/internal/middleware"
	"github.com/provalab/prova-api/internal/service"
)

// importMimeTypes lists the upload types the bulk importer accepts. CSV
// payloads are usually sniffed as plain text and xlsx archives as zip.
var importMimeTypes = []string{
	"text/csv",
	"text/plain",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"application/zip",
}

func isSupportedImportType(data []byte) bool {
	detected := mimetype.Detect(data)
	for _, allowed := range importMimeTypes {
		if detected.Is(allowed) {
			return true
		}
	}
	return false
}

func sendExportFile(c *fiber.Ctx, file service.ExportFile) error {
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.FileName))
	return c.Send(file.Content)
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ownerFromContext returns the authenticated user's identifier. The JWT
// middleware stores the token subject issued by the identity provider.
func ownerFromContext(c *fiber.Ctx) string {
	if v := c.Locals("user_id"); v != nil {
		if id, ok := v.(string); ok {
			return strings.TrimSpace(id)
		}
	}
	return ""
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}
