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

// ClassService orchestrates class workflows.
type ClassService interface {
	List(ctx context.Context, owner string) ([]dto.ClassResponse, error)
	Get(ctx context.Context, owner, id string) (dto.ClassResponse, error)
	Create(ctx context.Context, owner string, payload dto.ClassCreateRequest) (dto.ClassResponse, error)
	Update(ctx context.Context, owner, id string, payload dto.ClassUpdateRequest) (dto.ClassResponse, error)
	Delete(ctx context.Context, owner, id string) error
}

type classService struct {
	classes   repository.ClassRepository
	series    repository.SeriesRepository
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
	newID     func() string
}

// NewClassService constructs a ClassService instance.
func NewClassService(classRepo repository.ClassRepository, seriesRepo repository.SeriesRepository, validate *validator.Validate, logger zerolog.Logger) ClassService {
	return &classService{
		classes:   classRepo,
		series:    seriesRepo,
		validator: validate,
		logger:    logger.With().Str("component", "class_service").Logger(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

func (s *classService) List(ctx context.Context, owner string) ([]dto.ClassResponse, error) {
	classes, err := s.classes.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	return dto.NewClassResponseSlice(classes), nil
}

func (s *classService) Get(ctx context.Context, owner, id string) (dto.ClassResponse, error) {
	class, err := s.classes.GetByID(ctx, owner, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return dto.ClassResponse{}, ErrClassNotFound
		}
		return dto.ClassResponse{}, err
	}
	return dto.NewClassResponse(class), nil
}

func (s *classService) Create(ctx context.Context, owner string, payload dto.ClassCreateRequest) (dto.ClassResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ClassResponse{}, err
	}

	if _, err := s.series.GetByID(ctx, owner, payload.SeriesID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return dto.ClassResponse{}, ErrSeriesNotFound
		}
		return dto.ClassResponse{}, err
	}

	now := s.now()
	class := models.Class{
		ID:            s.newID(),
		Name:          strings.TrimSpace(payload.Name),
		SeriesID:      payload.SeriesID,
		Subject:       strings.TrimSpace(payload.Subject),
		TeacherName:   strings.TrimSpace(payload.TeacherName),
		StudentsCount: payload.StudentsCount,
		Year:          payload.Year,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.classes.Save(ctx, owner, class); err != nil {
		return dto.ClassResponse{}, err
	}

	s.logger.Info().Str("class_id", class.ID).Msg("class created")

	return dto.NewClassResponse(class), nil
}

func (s *classService) Update(ctx context.Context, owner, id string, payload dto.ClassUpdateRequest) (dto.ClassResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ClassResponse{}, err
	}

	class, err := s.classes.GetByID(ctx, owner, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return dto.ClassResponse{}, ErrClassNotFound
		}
		return dto.ClassResponse{}, err
	}

	if payload.Name != nil {
		class.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.Subject != nil {
		class.Subject = strings.TrimSpace(*payload.Subject)
	}
	if payload.TeacherName != nil {
		class.TeacherName = strings.TrimSpace(*payload.TeacherName)
	}
	if payload.StudentsCount != nil {
		class.StudentsCount = *payload.StudentsCount
	}
	if payload.Year != nil {
		class.Year = *payload.Year
	}

	class.UpdatedAt = s.now()

	if err := s.classes.Save(ctx, owner, class); err != nil {
		return dto.ClassResponse{}, err
	}

	return dto.NewClassResponse(class), nil
}

func (s *classService) Delete(ctx context.Context, owner, id string) error {
	if err := s.classes.Delete(ctx, owner, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrClassNotFound
		}
		return err
	}
	return nil
}
