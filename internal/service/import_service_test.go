package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/provalab/prova-api/internal/models"
	"github.com/provalab/prova-api/internal/repository"
)

func newImportFixture(t *testing.T) (*importService, repository.QuestionRepository) {
	t.Helper()

	kv := newMemStore()
	questionRepo := repository.NewQuestionRepository(kv)

	svc := NewImportService(questionRepo, zerolog.New(io.Discard)).(*importService)
	svc.now = fixedClock(time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC))
	svc.newID = sequentialIDs("question")

	return svc, questionRepo
}

func TestImportQuestionsFromCSV(t *testing.T) {
	svc, questionRepo := newImportFixture(t)
	ctx := context.Background()

	csv := strings.Join([]string{
		"Questão,Matéria,Série,Dificuldade,Tipo,Opções,Resposta Correta,Peso",
		`Quanto é 2 + 2?,Matemática,5º Ano,Fácil,Múltipla Escolha,3;4;5;6,1,"2,5"`,
		"Explique a fotossíntese.,Ciências,6º Ano,Difícil,Dissertativa,,,",
	}, "\n")

	summary, err := svc.ImportQuestions(ctx, "teacher-1", []byte(csv))
	require.NoError(t, err)
	require.Equal(t, 2, summary.Imported)
	require.Equal(t, 0, summary.Failed)
	require.Empty(t, summary.Errors)

	questions, err := questionRepo.List(ctx, "teacher-1")
	require.NoError(t, err)
	require.Len(t, questions, 2)

	byText := make(map[string]models.Question, len(questions))
	for _, question := range questions {
		byText[question.Text] = question
	}

	mc := byText["Quanto é 2 + 2?"]
	require.Equal(t, models.QuestionTypeMultipleChoice, mc.Type)
	require.Equal(t, models.DifficultyEasy, mc.Difficulty)
	require.Equal(t, []string{"3", "4", "5", "6"}, mc.Options)
	require.Equal(t, 1, mc.CorrectAnswer)
	require.Equal(t, 2.5, mc.Weight)
	require.True(t, mc.IsActive)

	essay := byText["Explique a fotossíntese."]
	require.Equal(t, models.QuestionTypeEssay, essay.Type)
	require.Equal(t, models.DifficultyHard, essay.Difficulty)
	require.Empty(t, essay.Options)
}

func TestImportQuestionsPartialFailure(t *testing.T) {
	svc, questionRepo := newImportFixture(t)
	ctx := context.Background()

	csv := strings.Join([]string{
		"Questão,Matéria,Tipo,Opções,Resposta Correta",
		"Quanto é 2 + 2?,Matemática,Múltipla Escolha,3;4;5;6,1",
		",Matemática,Dissertativa,,",
		"Qual a capital do Brasil?,Geografia,Múltipla Escolha,Brasília;Rio de Janeiro,Brasília",
	}, "\n")

	summary, err := svc.ImportQuestions(ctx, "teacher-1", []byte(csv))
	require.NoError(t, err)
	require.Equal(t, 2, summary.Imported)
	require.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Errors, 1)
	require.Contains(t, summary.Summary(), "2 succeeded, 1 failed")

	questions, err := questionRepo.List(ctx, "teacher-1")
	require.NoError(t, err)
	require.Len(t, questions, 2)
}

func TestImportQuestionsCorrectAnswerByText(t *testing.T) {
	svc, _ := newImportFixture(t)

	csv := strings.Join([]string{
		"Questão,Matéria,Opções,Resposta Correta",
		"Qual a capital do Brasil?,Geografia,Brasília;Rio de Janeiro;Salvador,brasília",
	}, "\n")

	summary, err := svc.ImportQuestions(context.Background(), "teacher-1", []byte(csv))
	require.NoError(t, err)
	require.Equal(t, 1, summary.Imported)
}

func TestImportQuestionsInvalidIndexRejected(t *testing.T) {
	svc, _ := newImportFixture(t)

	csv := strings.Join([]string{
		"Questão,Matéria,Opções,Resposta Correta",
		"Quanto é 2 + 2?,Matemática,3;4,7",
	}, "\n")

	summary, err := svc.ImportQuestions(context.Background(), "teacher-1", []byte(csv))
	require.NoError(t, err)
	require.Equal(t, 0, summary.Imported)
	require.Equal(t, 1, summary.Failed)
}

func TestImportQuestionsUnparseableFile(t *testing.T) {
	svc, _ := newImportFixture(t)

	_, err := svc.ImportQuestions(context.Background(), "teacher-1", nil)
	require.Error(t, err)
}
