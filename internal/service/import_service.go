package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/provalab/prova-api/internal/dto"
	"github.com/provalab/prova-api/internal/models"
	"github.com/provalab/prova-api/internal/repository"
	"github.com/provalab/prova-api/pkg/tabular"
)

// ImportService loads question bank entries from uploaded spreadsheets.
type ImportService interface {
	ImportQuestions(ctx context.Context, owner string, data []byte) (dto.ImportSummaryResponse, error)
}

type importService struct {
	questions repository.QuestionRepository
	logger    zerolog.Logger
	now       func() time.Time
	newID     func() string
}

// NewImportService constructs an ImportService instance.
func NewImportService(questionRepo repository.QuestionRepository, logger zerolog.Logger) ImportService {
	return &importService{
		questions: questionRepo,
		logger:    logger.With().Str("component", "import_service").Logger(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// ImportQuestions parses the uploaded file and attempts every row
// independently. A malformed row is counted and reported, never fatal for
// the batch. Parse failures of the file itself are fatal.
func (s *importService) ImportQuestions(ctx context.Context, owner string, data []byte) (dto.ImportSummaryResponse, error) {
	rows, err := tabular.Import(data)
	if err != nil {
		return dto.ImportSummaryResponse{}, err
	}

	summary := dto.ImportSummaryResponse{}
	for i, row := range rows {
		question, err := s.questionFromRow(row)
		if err != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}

		if err := s.questions.Save(ctx, owner, question); err != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}

		summary.Imported++
	}

	s.logger.Info().
		Int("imported", summary.Imported).
		Int("failed", summary.Failed).
		Msg("question import finished")

	return summary, nil
}

func (s *importService) questionFromRow(row map[string]string) (models.Question, error) {
	text := field(row, "Questão", "Questao", "Pergunta")
	if text == "" {
		return models.Question{}, fmt.Errorf("question text is required")
	}

	subject := field(row, "Matéria", "Materia", "Disciplina")
	if subject == "" {
		return models.Question{}, fmt.Errorf("subject is required")
	}

	options := splitOptions(field(row, "Opções", "Opcoes", "Alternativas"))
	questionType := parseQuestionType(field(row, "Tipo"), options)

	now := s.now()
	question := models.Question{
		ID:         s.newID(),
		Text:       text,
		Subject:    subject,
		Grade:      field(row, "Série", "Serie"),
		Difficulty: parseDifficulty(field(row, "Dificuldade")),
		Type:       questionType,
		Tags:       splitOptions(field(row, "Tags")),
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if raw := field(row, "Peso"); raw != "" {
		weight, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
		if err != nil || weight < 0 {
			return models.Question{}, fmt.Errorf("invalid weight %q", raw)
		}
		question.Weight = weight
	}

	if question.Type == models.QuestionTypeMultipleChoice {
		question.Options = options
		answer, err := parseCorrectAnswer(field(row, "Resposta Correta", "Resposta"), options)
		if err != nil {
			return models.Question{}, err
		}
		question.CorrectAnswer = answer
		if !question.HasValidChoices() {
			return models.Question{}, ErrInvalidChoices
		}
	}

	return question, nil
}

func field(row map[string]string, keys ...string) string {
	for _, key := range keys {
		if value, ok := row[key]; ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func splitOptions(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ";")
	options := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			options = append(options, trimmed)
		}
	}
	return options
}

func parseDifficulty(raw string) string {
	switch strings.ToLower(raw) {
	case "fácil", "facil", "easy":
		return models.DifficultyEasy
	case "difícil", "dificil", "hard":
		return models.DifficultyHard
	default:
		return models.DifficultyMedium
	}
}

func parseQuestionType(raw string, options []string) string {
	switch strings.ToLower(raw) {
	case "dissertativa", "essay":
		return models.QuestionTypeEssay
	case "múltipla escolha", "multipla escolha", "multiple-choice":
		return models.QuestionTypeMultipleChoice
	default:
		if len(options) > 0 {
			return models.QuestionTypeMultipleChoice
		}
		return models.QuestionTypeEssay
	}
}

// parseCorrectAnswer accepts either a zero-based index or the literal option
// text.
func parseCorrectAnswer(raw string, options []string) (int, error) {
	if raw == "" {
		return 0, fmt.Errorf("correct answer is required for multiple-choice questions")
	}

	if index, err := strconv.Atoi(raw); err == nil {
		if index < 0 || index >= len(options) {
			return 0, fmt.Errorf("correct answer index %d out of range", index)
		}
		return index, nil
	}

	for i, option := range options {
		if strings.EqualFold(option, raw) {
			return i, nil
		}
	}

	return 0, fmt.Errorf("correct answer %q does not match any option", raw)
}
