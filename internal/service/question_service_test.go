package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/provalab/prova-api/internal/dto"
	"github.com/provalab/prova-api/internal/models"
	"github.com/provalab/prova-api/internal/repository"
)

func newQuestionFixture(t *testing.T) (*questionService, repository.QuestionRepository) {
	t.Helper()

	kv := newMemStore()
	questionRepo := repository.NewQuestionRepository(kv)
	validate := validator.New(validator.WithRequiredStructEnabled())

	svc := NewQuestionService(questionRepo, validate, zerolog.New(io.Discard)).(*questionService)
	svc.now = fixedClock(time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC))
	svc.newID = sequentialIDs("question")

	return svc, questionRepo
}

func TestQuestionCreateMultipleChoice(t *testing.T) {
	svc, _ := newQuestionFixture(t)

	created, err := svc.Create(context.Background(), "teacher-1", dto.QuestionCreateRequest{
		Text:          "Quanto é 2 + 2?",
		Subject:       "Matemática",
		Difficulty:    models.DifficultyEasy,
		Type:          models.QuestionTypeMultipleChoice,
		Options:       []string{"3", "4"},
		CorrectAnswer: 1,
	})
	require.NoError(t, err)

	require.True(t, created.IsActive)
	require.Equal(t, 1.0, created.Weight)
	require.Equal(t, []string{"3", "4"}, created.Options)
}

func TestQuestionCreateEssayClearsChoices(t *testing.T) {
	svc, questionRepo := newQuestionFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "teacher-1", dto.QuestionCreateRequest{
		Text:          "Explique a fotossíntese.",
		Subject:       "Ciências",
		Difficulty:    models.DifficultyHard,
		Type:          models.QuestionTypeEssay,
		Options:       []string{"não", "faz sentido"},
		CorrectAnswer: 1,
	})
	require.NoError(t, err)

	stored, err := questionRepo.GetByID(ctx, "teacher-1", created.ID)
	require.NoError(t, err)
	require.Empty(t, stored.Options)
	require.Equal(t, 0, stored.CorrectAnswer)
}

func TestQuestionCreateRejectsInvalidChoices(t *testing.T) {
	svc, _ := newQuestionFixture(t)

	_, err := svc.Create(context.Background(), "teacher-1", dto.QuestionCreateRequest{
		Text:          "Quanto é 2 + 2?",
		Subject:       "Matemática",
		Difficulty:    models.DifficultyEasy,
		Type:          models.QuestionTypeMultipleChoice,
		Options:       []string{"3", "4"},
		CorrectAnswer: 5,
	})
	require.ErrorIs(t, err, ErrInvalidChoices)
}

func TestQuestionUpdateKeepsChoicesValid(t *testing.T) {
	svc, questionRepo := newQuestionFixture(t)
	ctx := context.Background()

	require.NoError(t, questionRepo.Save(ctx, "teacher-1", multipleChoiceQuestion("q1", 3, 0)))

	answer := 9
	_, err := svc.Update(ctx, "teacher-1", "q1", dto.QuestionUpdateRequest{CorrectAnswer: &answer})
	require.ErrorIs(t, err, ErrInvalidChoices)
}

func TestQuestionDeleteMissing(t *testing.T) {
	svc, _ := newQuestionFixture(t)

	err := svc.Delete(context.Background(), "teacher-1", "missing")
	require.ErrorIs(t, err, ErrQuestionNotFound)
}
