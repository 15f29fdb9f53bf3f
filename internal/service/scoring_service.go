package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/provalab/prova-api/internal/dto"
	"github.com/provalab/prova-api/internal/models"
	"github.com/provalab/prova-api/internal/repository"
	"github.com/provalab/prova-api/internal/store"
)

// ScoringService is the single entry point for creating and reviewing scored
// submissions. Every submission path goes through Submit; there is no second
// code path with different counter side effects.
type ScoringService interface {
	Submit(ctx context.Context, owner, examID string, payload dto.SubmitExamRequest) (dto.SubmissionResponse, error)
	Review(ctx context.Context, owner, submissionID string, payload dto.ReviewSubmissionRequest) (dto.SubmissionResponse, error)
}

type scoringService struct {
	exams       repository.ExamRepository
	submissions repository.SubmissionRepository
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
	logger      zerolog.Logger
	now         func() time.Time
	newID       func() string
}

// NewScoringService constructs a ScoringService instance.
func NewScoringService(examRepo repository.ExamRepository, submissionRepo repository.SubmissionRepository, validate *validator.Validate, logger zerolog.Logger) ScoringService {
	return &scoringService{
		exams:       examRepo,
		submissions: submissionRepo,
		validator:   validate,
		sanitizer:   bluemonday.StrictPolicy(),
		logger:      logger.With().Str("component", "scoring_service").Logger(),
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

func (s *scoringService) Submit(ctx context.Context, owner, examID string, payload dto.SubmitExamRequest) (dto.SubmissionResponse, error) {
	tracer := otel.Tracer("github.com/provalab/prova-api/internal/service/scoring")
	ctx, span := tracer.Start(ctx, "scoring.submit")
	span.SetAttributes(attribute.String("scoring.exam_id", examID))
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.SubmissionResponse{}, err
	}

	exam, err := s.exams.GetByID(ctx, owner, examID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			span.SetStatus(codes.Error, "exam_not_found")
			return dto.SubmissionResponse{}, ErrExamNotFound
		}
		span.RecordError(err)
		return dto.SubmissionResponse{}, err
	}

	if len(exam.Questions) == 0 {
		span.SetStatus(codes.Error, "exam_has_no_questions")
		return dto.SubmissionResponse{}, ErrExamHasNoQuestions
	}

	answers := normalizeAnswers(payload.Answers, len(exam.Questions))
	essayAnswers := s.sanitizeEssayAnswers(payload.EssayAnswers)

	submission := ScoreExam(exam, answers, essayAnswers)
	submission.ID = s.newID()
	submission.UserID = owner
	submission.StudentName = strings.TrimSpace(payload.StudentName)
	submission.SubmittedAt = s.now()

	if err := s.submissions.Save(ctx, owner, submission); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "submission_write_failed")
		return dto.SubmissionResponse{}, err
	}

	// The exam counter update is a second, independent write. Losing it
	// leaves a persisted submission with stale counters, never the reverse.
	if err := s.updateExamCounters(ctx, owner, exam, submission); err != nil {
		s.logger.Warn().Err(err).Str("exam_id", exam.ID).Msg("failed to update exam counters")
		span.RecordError(err)
	}

	span.SetAttributes(
		attribute.Int("scoring.percentage", submission.Percentage),
		attribute.String("scoring.grading_status", submission.GradingStatus),
	)
	s.logger.Info().
		Str("submission_id", submission.ID).
		Str("exam_id", exam.ID).
		Int("percentage", submission.Percentage).
		Msg("submission scored")

	return dto.NewSubmissionResponse(submission), nil
}

func (s *scoringService) Review(ctx context.Context, owner, submissionID string, payload dto.ReviewSubmissionRequest) (dto.SubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionResponse{}, err
	}

	submission, err := s.submissions.GetByID(ctx, owner, submissionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	if submission.GradingStatus == models.GradingStatusGraded {
		return dto.SubmissionResponse{}, ErrSubmissionNotReviewable
	}

	submission.ReviewNotes = s.sanitizer.Sanitize(strings.TrimSpace(payload.ReviewNotes))
	submission.Feedback = s.sanitizer.Sanitize(strings.TrimSpace(payload.Feedback))
	submission.GradingStatus = models.GradingStatusReviewed
	reviewedAt := s.now()
	submission.ReviewedAt = &reviewedAt

	if err := s.submissions.Save(ctx, owner, submission); err != nil {
		return dto.SubmissionResponse{}, err
	}

	s.logger.Info().Str("submission_id", submission.ID).Msg("submission reviewed")

	return dto.NewSubmissionResponse(submission), nil
}

// ScoreExam computes the weighted score and per-question breakdown for one
// attempt. Questions are walked in order by position; answers and essay
// answers are aligned to that same position, not to a per-type counter.
// Essay questions never contribute to the automatic score or total weight.
func ScoreExam(exam models.Exam, answers []int, essayAnswers []string) models.Submission {
	submission := models.Submission{
		ExamID:        exam.ID,
		ExamTitle:     exam.Title,
		Answers:       answers,
		EssayAnswers:  essayAnswers,
		GradingStatus: models.GradingStatusGraded,
		Results:       make([]models.QuestionResult, 0, len(exam.Questions)),
	}

	for i, question := range exam.Questions {
		if question.IsEssay() {
			essayAnswer := ""
			if i < len(essayAnswers) {
				essayAnswer = essayAnswers[i]
			}
			submission.TotalEssayQuestions++
			submission.GradingStatus = models.GradingStatusPendingReview
			submission.Results = append(submission.Results, models.QuestionResult{
				QuestionID:            question.ID,
				UserAnswer:            models.AnswerUnanswered,
				CorrectAnswer:         models.AnswerUnanswered,
				Weight:                question.EffectiveWeight(),
				EssayAnswer:           essayAnswer,
				RequiresManualGrading: true,
			})
			continue
		}

		answer := models.AnswerUnanswered
		if i < len(answers) {
			answer = answers[i]
		}

		weight := question.EffectiveWeight()
		// Out-of-range answer values are accepted and scored as incorrect.
		isCorrect := answer == question.CorrectAnswer
		pointsEarned := 0.0
		if isCorrect {
			pointsEarned = weight
			submission.Score += weight
		}

		submission.TotalQuestions++
		submission.TotalWeight += weight
		correct := isCorrect
		submission.Results = append(submission.Results, models.QuestionResult{
			QuestionID:    question.ID,
			UserAnswer:    answer,
			CorrectAnswer: question.CorrectAnswer,
			IsCorrect:     &correct,
			Weight:        weight,
			PointsEarned:  pointsEarned,
			Explanation:   correctAnswerExplanation(question),
		})
	}

	if submission.TotalWeight > 0 {
		submission.Percentage = int(math.Round(submission.Score / submission.TotalWeight * 100))
	}

	return submission
}

func correctAnswerExplanation(question models.Question) string {
	if question.CorrectAnswer >= 0 && question.CorrectAnswer < len(question.Options) {
		return "Resposta correta: " + question.Options[question.CorrectAnswer]
	}
	return ""
}

// normalizeAnswers converts nullable wire answers into the sentinel form.
func normalizeAnswers(raw []*int, questionCount int) []int {
	answers := make([]int, questionCount)
	for i := range answers {
		answers[i] = models.AnswerUnanswered
		if i < len(raw) && raw[i] != nil {
			answers[i] = *raw[i]
		}
	}
	return answers
}

func (s *scoringService) sanitizeEssayAnswers(raw []string) []string {
	sanitized := make([]string, len(raw))
	for i, answer := range raw {
		sanitized[i] = s.sanitizer.Sanitize(answer)
	}
	return sanitized
}

func (s *scoringService) updateExamCounters(ctx context.Context, owner string, exam models.Exam, submission models.Submission) error {
	applied := exam.AppliedCount
	exam.AverageScore = (exam.AverageScore*float64(applied) + float64(submission.Percentage)) / float64(applied+1)
	exam.AppliedCount = applied + 1
	exam.StudentsCount++
	lastApplied := submission.SubmittedAt
	exam.LastApplied = &lastApplied
	exam.UpdatedAt = submission.SubmittedAt

	return s.exams.Save(ctx, owner, exam)
}
