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

type scoringFixture struct {
	service     *scoringService
	exams       repository.ExamRepository
	submissions repository.SubmissionRepository
}

func newScoringFixture(t *testing.T) scoringFixture {
	t.Helper()

	kv := newMemStore()
	examRepo := repository.NewExamRepository(kv)
	submissionRepo := repository.NewSubmissionRepository(kv)
	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.New(io.Discard)

	svc := NewScoringService(examRepo, submissionRepo, validate, logger).(*scoringService)
	svc.now = fixedClock(time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC))
	svc.newID = sequentialIDs("submission")

	return scoringFixture{service: svc, exams: examRepo, submissions: submissionRepo}
}

func multipleChoiceQuestion(id string, correct int, weight float64) models.Question {
	return models.Question{
		ID:            id,
		Text:          "Quanto é 2 + 2?",
		Subject:       "Matemática",
		Type:          models.QuestionTypeMultipleChoice,
		Options:       []string{"3", "4", "5", "6"},
		CorrectAnswer: correct,
		Weight:        weight,
	}
}

func essayQuestion(id string) models.Question {
	return models.Question{
		ID:      id,
		Text:    "Explique a fotossíntese.",
		Subject: "Ciências",
		Type:    models.QuestionTypeEssay,
	}
}

func intPtr(v int) *int { return &v }

func TestSubmitAllCorrect(t *testing.T) {
	fixture := newScoringFixture(t)
	ctx := context.Background()

	exam := models.Exam{
		ID:    "exam-1",
		Title: "Prova de Matemática",
		Questions: []models.Question{
			multipleChoiceQuestion("q1", 1, 0),
			multipleChoiceQuestion("q2", 3, 0),
		},
	}
	require.NoError(t, fixture.exams.Save(ctx, "teacher-1", exam))

	response, err := fixture.service.Submit(ctx, "teacher-1", "exam-1", dto.SubmitExamRequest{
		StudentName: "Ana",
		Answers:     []*int{intPtr(1), intPtr(3)},
	})
	require.NoError(t, err)

	require.Equal(t, 100, response.Percentage)
	require.Equal(t, 2.0, response.Score)
	require.Equal(t, 2.0, response.TotalWeight)
	require.Equal(t, models.GradingStatusGraded, response.GradingStatus)
	require.Len(t, response.Results, 2)
	for _, result := range response.Results {
		require.NotNil(t, result.IsCorrect)
		require.True(t, *result.IsCorrect)
	}

	updated, err := fixture.exams.GetByID(ctx, "teacher-1", "exam-1")
	require.NoError(t, err)
	require.Equal(t, 1, updated.AppliedCount)
	require.Equal(t, 1, updated.StudentsCount)
	require.Equal(t, 100.0, updated.AverageScore)
	require.NotNil(t, updated.LastApplied)
}

func TestSubmitMixedWithEssay(t *testing.T) {
	fixture := newScoringFixture(t)
	ctx := context.Background()

	exam := models.Exam{
		ID:    "exam-1",
		Title: "Prova Mista",
		Questions: []models.Question{
			multipleChoiceQuestion("q1", 0, 0),
			multipleChoiceQuestion("q2", 1, 0),
			essayQuestion("q3"),
		},
	}
	require.NoError(t, fixture.exams.Save(ctx, "teacher-1", exam))

	response, err := fixture.service.Submit(ctx, "teacher-1", "exam-1", dto.SubmitExamRequest{
		StudentName:  "Bruno",
		Answers:      []*int{intPtr(0), intPtr(2), nil},
		EssayAnswers: []string{"", "", "As plantas convertem luz em energia."},
	})
	require.NoError(t, err)

	// One of two scored questions correct; the essay contributes no weight.
	require.Equal(t, 1.0, response.Score)
	require.Equal(t, 2.0, response.TotalWeight)
	require.Equal(t, 50, response.Percentage)
	require.Equal(t, 2, response.TotalQuestions)
	require.Equal(t, 1, response.TotalEssayQuestions)
	require.Equal(t, models.GradingStatusPendingReview, response.GradingStatus)
	require.Len(t, response.Results, 3)

	essayResult := response.Results[2]
	require.True(t, essayResult.RequiresManualGrading)
	require.Nil(t, essayResult.IsCorrect)
	require.Equal(t, "As plantas convertem luz em energia.", essayResult.EssayAnswer)
}

func TestSubmitAllEssay(t *testing.T) {
	fixture := newScoringFixture(t)
	ctx := context.Background()

	exam := models.Exam{
		ID:        "exam-1",
		Title:     "Prova Dissertativa",
		Questions: []models.Question{essayQuestion("q1"), essayQuestion("q2")},
	}
	require.NoError(t, fixture.exams.Save(ctx, "teacher-1", exam))

	response, err := fixture.service.Submit(ctx, "teacher-1", "exam-1", dto.SubmitExamRequest{
		StudentName:  "Clara",
		EssayAnswers: []string{"Resposta um.", "Resposta dois."},
	})
	require.NoError(t, err)

	require.Equal(t, 0, response.Percentage)
	require.Equal(t, 0.0, response.TotalWeight)
	require.Equal(t, 0, response.TotalQuestions)
	require.Equal(t, 2, response.TotalEssayQuestions)
	require.Equal(t, models.GradingStatusPendingReview, response.GradingStatus)
}

func TestSubmitWeightedScoring(t *testing.T) {
	fixture := newScoringFixture(t)
	ctx := context.Background()

	exam := models.Exam{
		ID:    "exam-1",
		Title: "Prova Ponderada",
		Questions: []models.Question{
			multipleChoiceQuestion("q1", 0, 2),
			multipleChoiceQuestion("q2", 0, 3),
		},
	}
	require.NoError(t, fixture.exams.Save(ctx, "teacher-1", exam))

	response, err := fixture.service.Submit(ctx, "teacher-1", "exam-1", dto.SubmitExamRequest{
		StudentName: "Davi",
		Answers:     []*int{intPtr(3), intPtr(0)},
	})
	require.NoError(t, err)

	require.Equal(t, 3.0, response.Score)
	require.Equal(t, 5.0, response.TotalWeight)
	require.Equal(t, 60, response.Percentage)
}

func TestSubmitUnansweredAndOutOfRange(t *testing.T) {
	fixture := newScoringFixture(t)
	ctx := context.Background()

	exam := models.Exam{
		ID:    "exam-1",
		Title: "Prova",
		Questions: []models.Question{
			multipleChoiceQuestion("q1", 0, 0),
			multipleChoiceQuestion("q2", 1, 0),
		},
	}
	require.NoError(t, fixture.exams.Save(ctx, "teacher-1", exam))

	response, err := fixture.service.Submit(ctx, "teacher-1", "exam-1", dto.SubmitExamRequest{
		StudentName: "Eva",
		Answers:     []*int{nil, intPtr(99)},
	})
	require.NoError(t, err)

	require.Equal(t, 0, response.Percentage)
	require.Equal(t, models.AnswerUnanswered, response.Results[0].UserAnswer)
	require.False(t, *response.Results[0].IsCorrect)
	require.Equal(t, 99, response.Results[1].UserAnswer)
	require.False(t, *response.Results[1].IsCorrect)
}

func TestSubmitExamNotFound(t *testing.T) {
	fixture := newScoringFixture(t)

	_, err := fixture.service.Submit(context.Background(), "teacher-1", "missing", dto.SubmitExamRequest{StudentName: "Ana"})
	require.ErrorIs(t, err, ErrExamNotFound)
}

func TestSubmitExamWithoutQuestions(t *testing.T) {
	fixture := newScoringFixture(t)
	ctx := context.Background()

	require.NoError(t, fixture.exams.Save(ctx, "teacher-1", models.Exam{ID: "exam-1", Title: "Vazia"}))

	_, err := fixture.service.Submit(ctx, "teacher-1", "exam-1", dto.SubmitExamRequest{StudentName: "Ana"})
	require.ErrorIs(t, err, ErrExamHasNoQuestions)
}

func TestReviewPendingSubmission(t *testing.T) {
	fixture := newScoringFixture(t)
	ctx := context.Background()

	exam := models.Exam{
		ID:        "exam-1",
		Title:     "Prova",
		Questions: []models.Question{essayQuestion("q1")},
	}
	require.NoError(t, fixture.exams.Save(ctx, "teacher-1", exam))

	submitted, err := fixture.service.Submit(ctx, "teacher-1", "exam-1", dto.SubmitExamRequest{
		StudentName:  "Gabi",
		EssayAnswers: []string{"Uma resposta."},
	})
	require.NoError(t, err)
	require.Equal(t, models.GradingStatusPendingReview, submitted.GradingStatus)

	reviewed, err := fixture.service.Review(ctx, "teacher-1", submitted.ID, dto.ReviewSubmissionRequest{
		ReviewNotes: "<script>alert(1)</script>Boa argumentação",
		Feedback:    "Continue assim",
	})
	require.NoError(t, err)

	require.Equal(t, models.GradingStatusReviewed, reviewed.GradingStatus)
	require.Equal(t, "Boa argumentação", reviewed.ReviewNotes)
	require.Equal(t, "Continue assim", reviewed.Feedback)
	require.NotNil(t, reviewed.ReviewedAt)
}

func TestReviewGradedSubmissionRejected(t *testing.T) {
	fixture := newScoringFixture(t)
	ctx := context.Background()

	exam := models.Exam{
		ID:        "exam-1",
		Title:     "Prova",
		Questions: []models.Question{multipleChoiceQuestion("q1", 0, 0)},
	}
	require.NoError(t, fixture.exams.Save(ctx, "teacher-1", exam))

	submitted, err := fixture.service.Submit(ctx, "teacher-1", "exam-1", dto.SubmitExamRequest{
		StudentName: "Hugo",
		Answers:     []*int{intPtr(0)},
	})
	require.NoError(t, err)
	require.Equal(t, models.GradingStatusGraded, submitted.GradingStatus)

	_, err = fixture.service.Review(ctx, "teacher-1", submitted.ID, dto.ReviewSubmissionRequest{ReviewNotes: "notas"})
	require.ErrorIs(t, err, ErrSubmissionNotReviewable)
}

func TestReviewMissingSubmission(t *testing.T) {
	fixture := newScoringFixture(t)

	_, err := fixture.service.Review(context.Background(), "teacher-1", "missing", dto.ReviewSubmissionRequest{ReviewNotes: "notas"})
	require.ErrorIs(t, err, ErrSubmissionNotFound)
}

func TestSubmitRunningAverage(t *testing.T) {
	fixture := newScoringFixture(t)
	ctx := context.Background()

	exam := models.Exam{
		ID:        "exam-1",
		Title:     "Prova",
		Questions: []models.Question{multipleChoiceQuestion("q1", 0, 0)},
	}
	require.NoError(t, fixture.exams.Save(ctx, "teacher-1", exam))

	_, err := fixture.service.Submit(ctx, "teacher-1", "exam-1", dto.SubmitExamRequest{
		StudentName: "Ana",
		Answers:     []*int{intPtr(0)},
	})
	require.NoError(t, err)

	_, err = fixture.service.Submit(ctx, "teacher-1", "exam-1", dto.SubmitExamRequest{
		StudentName: "Bia",
		Answers:     []*int{intPtr(1)},
	})
	require.NoError(t, err)

	updated, err := fixture.exams.GetByID(ctx, "teacher-1", "exam-1")
	require.NoError(t, err)
	require.Equal(t, 2, updated.AppliedCount)
	require.Equal(t, 50.0, updated.AverageScore)
}

func TestScoreExamIsPure(t *testing.T) {
	exam := models.Exam{
		ID:    "exam-1",
		Title: "Prova",
		Questions: []models.Question{
			multipleChoiceQuestion("q1", 2, 1.5),
			essayQuestion("q2"),
		},
	}
	answers := []int{2, models.AnswerUnanswered}
	essays := []string{"", "Texto"}

	first := ScoreExam(exam, answers, essays)
	second := ScoreExam(exam, answers, essays)

	require.Equal(t, first.Score, second.Score)
	require.Equal(t, first.Percentage, second.Percentage)
	require.Equal(t, first.GradingStatus, second.GradingStatus)
	require.Equal(t, first.Results, second.Results)
}
