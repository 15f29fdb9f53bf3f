package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/provalab/prova-api/internal/dto"
	"github.com/provalab/prova-api/internal/models"
	"github.com/provalab/prova-api/internal/repository"
	"github.com/provalab/prova-api/internal/store"
)

// ExamService orchestrates exam authoring workflows.
type ExamService interface {
	List(ctx context.Context, owner string) ([]dto.ExamResponse, error)
	Get(ctx context.Context, owner, id string) (dto.ExamResponse, error)
	Create(ctx context.Context, owner string, payload dto.ExamCreateRequest) (dto.ExamResponse, error)
	Update(ctx context.Context, owner, id string, payload dto.ExamUpdateRequest) (dto.ExamResponse, error)
	Delete(ctx context.Context, owner, id string) error
}

type examService struct {
	exams     repository.ExamRepository
	questions repository.QuestionRepository
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
	newID     func() string
}

// NewExamService constructs an ExamService instance.
func NewExamService(examRepo repository.ExamRepository, questionRepo repository.QuestionRepository, validate *validator.Validate, logger zerolog.Logger) ExamService {
	return &examService{
		exams:     examRepo,
		questions: questionRepo,
		validator: validate,
		logger:    logger.With().Str("component", "exam_service").Logger(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

func (s *examService) List(ctx context.Context, owner string) ([]dto.ExamResponse, error) {
	exams, err := s.exams.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	return dto.NewExamResponseSlice(exams), nil
}

func (s *examService) Get(ctx context.Context, owner, id string) (dto.ExamResponse, error) {
	exam, err := s.exams.GetByID(ctx, owner, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return dto.ExamResponse{}, ErrExamNotFound
		}
		return dto.ExamResponse{}, err
	}
	return dto.NewExamResponse(exam), nil
}

// Create assembles an exam from bank questions. Each question is snapshotted
// by value: later edits to the bank never change an existing exam.
func (s *examService) Create(ctx context.Context, owner string, payload dto.ExamCreateRequest) (dto.ExamResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ExamResponse{}, err
	}

	now := s.now()
	snapshots := make([]models.Question, 0, len(payload.QuestionIDs))
	for _, questionID := range payload.QuestionIDs {
		question, err := s.questions.GetByID(ctx, owner, questionID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return dto.ExamResponse{}, ErrQuestionNotFound
			}
			return dto.ExamResponse{}, err
		}
		if !question.HasValidChoices() {
			return dto.ExamResponse{}, ErrInvalidChoices
		}
		snapshots = append(snapshots, snapshotQuestion(question))

		question.UsageCount++
		question.UpdatedAt = now
		if err := s.questions.Save(ctx, owner, question); err != nil {
			s.logger.Warn().Err(err).Str("question_id", question.ID).Msg("failed to bump question usage count")
		}
	}

	exam := models.Exam{
		ID:               s.newID(),
		Title:            strings.TrimSpace(payload.Title),
		Description:      strings.TrimSpace(payload.Description),
		SeriesID:         payload.SeriesID,
		ClassID:          payload.ClassID,
		Questions:        snapshots,
		TimeLimitMinutes: payload.TimeLimitMinutes,
		Status:           models.ExamStatusDraft,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.exams.Save(ctx, owner, exam); err != nil {
		return dto.ExamResponse{}, err
	}

	s.logger.Info().Str("exam_id", exam.ID).Int("questions", len(snapshots)).Msg("exam created")

	return dto.NewExamResponse(exam), nil
}

func (s *examService) Update(ctx context.Context, owner, id string, payload dto.ExamUpdateRequest) (dto.ExamResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ExamResponse{}, err
	}

	exam, err := s.exams.GetByID(ctx, owner, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return dto.ExamResponse{}, ErrExamNotFound
		}
		return dto.ExamResponse{}, err
	}

	if payload.Title != nil {
		exam.Title = strings.TrimSpace(*payload.Title)
	}
	if payload.Description != nil {
		exam.Description = strings.TrimSpace(*payload.Description)
	}
	if payload.TimeLimitMinutes != nil {
		exam.TimeLimitMinutes = *payload.TimeLimitMinutes
	}
	if payload.Status != nil {
		exam.Status = *payload.Status
	}

	exam.UpdatedAt = s.now()

	if err := s.exams.Save(ctx, owner, exam); err != nil {
		return dto.ExamResponse{}, err
	}

	s.logger.Info().Str("exam_id", exam.ID).Msg("exam updated")

	return dto.NewExamResponse(exam), nil
}

func (s *examService) Delete(ctx context.Context, owner, id string) error {
	if err := s.exams.Delete(ctx, owner, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrExamNotFound
		}
		return err
	}

	s.logger.Info().Str("exam_id", id).Msg("exam deleted")

	return nil
}

// snapshotQuestion copies a bank question by value, including its slices, so
// the exam owns an independent snapshot.
func snapshotQuestion(question models.Question) models.Question {
	snapshot := question
	snapshot.Options = append([]string(nil), question.Options...)
	snapshot.Tags = append([]string(nil), question.Tags...)
	return snapshot
}
