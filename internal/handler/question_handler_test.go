package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/provalab/prova-api/internal/handler"
	"github.com/provalab/prova-api/internal/models"
	"github.com/provalab/prova-api/internal/repository"
	"github.com/provalab/prova-api/internal/service"
	"github.com/provalab/prova-api/internal/store"
)

type questionApp struct {
	app       *fiber.App
	questions repository.QuestionRepository
}

func newQuestionApp(t *testing.T) questionApp {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	kv := store.NewRedisStore(client)
	questionRepo := repository.NewQuestionRepository(kv)
	seriesRepo := repository.NewSeriesRepository(kv)
	examRepo := repository.NewExamRepository(kv)
	submissionRepo := repository.NewSubmissionRepository(kv)

	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.New(io.Discard)

	questionService := service.NewQuestionService(questionRepo, validate, logger)
	importService := service.NewImportService(questionRepo, logger)
	reportService := service.NewReportService(questionRepo, seriesRepo, examRepo, submissionRepo, logger)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "teacher-1")
		return c.Next()
	})

	questionHandler := handler.NewQuestionHandler(questionService, importService, reportService, validate, logger)
	questionHandler.Register(app.Group("/questions"))

	return questionApp{app: app, questions: questionRepo}
}

func uploadRequest(t *testing.T, path string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", "questoes.csv")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set(fiber.HeaderContentType, writer.FormDataContentType())
	return req
}

func TestQuestionImportEndpoint(t *testing.T) {
	fixture := newQuestionApp(t)

	csv := strings.Join([]string{
		"Questão,Matéria,Série,Dificuldade,Tipo,Opções,Resposta Correta,Peso",
		"Quanto é 2 + 2?,Matemática,5º Ano,Fácil,Múltipla Escolha,3;4;5;6,1,1",
	}, "\n")

	resp, err := fixture.app.Test(uploadRequest(t, "/questions/import", []byte(csv)), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.True(t, payload.Success)
	require.Contains(t, payload.Message, "1 succeeded")

	questions, err := fixture.questions.List(context.Background(), "teacher-1")
	require.NoError(t, err)
	require.Len(t, questions, 1)
}

func TestQuestionImportRejectsUnsupportedType(t *testing.T) {
	fixture := newQuestionApp(t)

	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

	resp, err := fixture.app.Test(uploadRequest(t, "/questions/import", png), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestQuestionExportEndpoint(t *testing.T) {
	fixture := newQuestionApp(t)

	question := models.Question{
		ID:            "q1",
		Text:          "Quanto é 2 + 2?",
		Subject:       "Matemática",
		Type:          models.QuestionTypeMultipleChoice,
		Options:       []string{"3", "4"},
		CorrectAnswer: 1,
		IsActive:      true,
		Weight:        1.0,
	}
	require.NoError(t, fixture.questions.Save(context.Background(), "teacher-1", question))

	req := httptest.NewRequest(http.MethodGet, "/questions/export?format=csv", nil)

	resp, err := fixture.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "text/csv", resp.Header.Get(fiber.HeaderContentType))
	require.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "banco_de_questões.csv")

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "Questão,Matéria")
	require.Contains(t, string(body), "Quanto é 2 + 2?")
}
