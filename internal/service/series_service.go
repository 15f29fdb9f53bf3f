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

// SeriesService orchestrates grade-level series workflows.
type SeriesService interface {
	List(ctx context.Context, owner string) ([]dto.SeriesResponse, error)
	Get(ctx context.Context, owner, id string) (dto.SeriesResponse, error)
	Create(ctx context.Context, owner string, payload dto.SeriesCreateRequest) (dto.SeriesResponse, error)
	Update(ctx context.Context, owner, id string, payload dto.SeriesUpdateRequest) (dto.SeriesResponse, error)
	Delete(ctx context.Context, owner, id string) error
}

type seriesService struct {
	series    repository.SeriesRepository
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
	newID     func() string
}

// NewSeriesService constructs a SeriesService instance.
func NewSeriesService(seriesRepo repository.SeriesRepository, validate *validator.Validate, logger zerolog.Logger) SeriesService {
	return &seriesService{
		series:    seriesRepo,
		validator: validate,
		logger:    logger.With().Str("component", "series_service").Logger(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

func (s *seriesService) List(ctx context.Context, owner string) ([]dto.SeriesResponse, error) {
	series, err := s.series.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	return dto.NewSeriesResponseSlice(series), nil
}

func (s *seriesService) Get(ctx context.Context, owner, id string) (dto.SeriesResponse, error) {
	series, err := s.series.GetByID(ctx, owner, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return dto.SeriesResponse{}, ErrSeriesNotFound
		}
		return dto.SeriesResponse{}, err
	}
	return dto.NewSeriesResponse(series), nil
}

func (s *seriesService) Create(ctx context.Context, owner string, payload dto.SeriesCreateRequest) (dto.SeriesResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SeriesResponse{}, err
	}

	now := s.now()
	series := models.Series{
		ID:            s.newID(),
		Name:          strings.TrimSpace(payload.Name),
		Level:         payload.Level,
		Shift:         payload.Shift,
		Year:          payload.Year,
		StudentsCount: payload.StudentsCount,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.series.Save(ctx, owner, series); err != nil {
		return dto.SeriesResponse{}, err
	}

	s.logger.Info().Str("series_id", series.ID).Msg("series created")

	return dto.NewSeriesResponse(series), nil
}

func (s *seriesService) Update(ctx context.Context, owner, id string, payload dto.SeriesUpdateRequest) (dto.SeriesResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SeriesResponse{}, err
	}

	series, err := s.series.GetByID(ctx, owner, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return dto.SeriesResponse{}, ErrSeriesNotFound
		}
		return dto.SeriesResponse{}, err
	}

	if payload.Name != nil {
		series.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.Level != nil {
		series.Level = *payload.Level
	}
	if payload.Shift != nil {
		series.Shift = *payload.Shift
	}
	if payload.Year != nil {
		series.Year = *payload.Year
	}
	if payload.StudentsCount != nil {
		series.StudentsCount = *payload.StudentsCount
	}
	if payload.IsActive != nil {
		series.IsActive = *payload.IsActive
	}

	series.UpdatedAt = s.now()

	if err := s.series.Save(ctx, owner, series); err != nil {
		return dto.SeriesResponse{}, err
	}

	return dto.NewSeriesResponse(series), nil
}

func (s *seriesService) Delete(ctx context.Context, owner, id string) error {
	if err := s.series.Delete(ctx, owner, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrSeriesNotFound
		}
		return err
	}
	return nil
}
