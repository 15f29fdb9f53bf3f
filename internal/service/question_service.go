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

// QuestionService orchestrates question bank workflows.
type QuestionService interface {
	List(ctx context.Context, owner string) ([]dto.QuestionResponse, error)
	Get(ctx context.Context, owner, id string) (dto.QuestionResponse, error)
	Create(ctx context.Context, owner string, payload dto.QuestionCreateRequest) (dto.QuestionResponse, error)
	Update(ctx context.Context, owner, id string, payload dto.QuestionUpdateRequest) (dto.QuestionResponse, error)
	Delete(ctx context.Context, owner, id string) error
}

type questionService struct {
	questions repository.QuestionRepository
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
	newID     func() string
}

// NewQuestionService constructs a QuestionService instance.
func NewQuestionService(questionRepo repository.QuestionRepository, validate *validator.Validate, logger zerolog.Logger) QuestionService {
	return &questionService{
		questions: questionRepo,
		validator: validate,
		logger:    logger.With().Str("component", "question_service").Logger(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

func (s *questionService) List(ctx context.Context, owner string) ([]dto.QuestionResponse, error) {
	questions, err := s.questions.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	return dto.NewQuestionResponseSlice(questions), nil
}

func (s *questionService) Get(ctx context.Context, owner, id string) (dto.QuestionResponse, error) {
	question, err := s.questions.GetByID(ctx, owner, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return dto.QuestionResponse{}, ErrQuestionNotFound
		}
		return dto.QuestionResponse{}, err
	}
	return dto.NewQuestionResponse(question), nil
}

func (s *questionService) Create(ctx context.Context, owner string, payload dto.QuestionCreateRequest) (dto.QuestionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.QuestionResponse{}, err
	}

	now := s.now()
	question := models.Question{
		ID:            s.newID(),
		Text:          strings.TrimSpace(payload.Text),
		Subject:       strings.TrimSpace(payload.Subject),
		Grade:         strings.TrimSpace(payload.Grade),
		Difficulty:    payload.Difficulty,
		Type:          payload.Type,
		Options:       payload.Options,
		CorrectAnswer: payload.CorrectAnswer,
		Tags:          payload.Tags,
		Weight:        payload.Weight,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if question.IsEssay() {
		question.Options = nil
		question.CorrectAnswer = 0
	} else if !question.HasValidChoices() {
		return dto.QuestionResponse{}, ErrInvalidChoices
	}

	if err := s.questions.Save(ctx, owner, question); err != nil {
		return dto.QuestionResponse{}, err
	}

	s.logger.Info().Str("question_id", question.ID).Msg("question created")

	return dto.NewQuestionResponse(question), nil
}

func (s *questionService) Update(ctx context.Context, owner, id string, payload dto.QuestionUpdateRequest) (dto.QuestionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.QuestionResponse{}, err
	}

	question, err := s.questions.GetByID(ctx, owner, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return dto.QuestionResponse{}, ErrQuestionNotFound
		}
		return dto.QuestionResponse{}, err
	}

	if payload.Text != nil {
		question.Text = strings.TrimSpace(*payload.Text)
	}
	if payload.Subject != nil {
		question.Subject = strings.TrimSpace(*payload.Subject)
	}
	if payload.Grade != nil {
		question.Grade = strings.TrimSpace(*payload.Grade)
	}
	if payload.Difficulty != nil {
		question.Difficulty = *payload.Difficulty
	}
	if payload.Options != nil {
		question.Options = *payload.Options
	}
	if payload.CorrectAnswer != nil {
		question.CorrectAnswer = *payload.CorrectAnswer
	}
	if payload.Tags != nil {
		question.Tags = *payload.Tags
	}
	if payload.Weight != nil {
		question.Weight = *payload.Weight
	}
	if payload.IsActive != nil {
		question.IsActive = *payload.IsActive
	}

	if !question.HasValidChoices() {
		return dto.QuestionResponse{}, ErrInvalidChoices
	}

	question.UpdatedAt = s.now()

	if err := s.questions.Save(ctx, owner, question); err != nil {
		return dto.QuestionResponse{}, err
	}

	s.logger.Info().Str("question_id", question.ID).Msg("question updated")

	return dto.NewQuestionResponse(question), nil
}

func (s *questionService) Delete(ctx context.Context, owner, id string) error {
	if err := s.questions.Delete(ctx, owner, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrQuestionNotFound
		}
		return err
	}

	s.logger.Info().Str("question_id", id).Msg("question deleted")

	return nil
}
