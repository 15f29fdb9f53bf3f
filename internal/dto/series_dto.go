package dto

import (
	"time"

	"github.com/provalab/prova-api/internal/models"
)

// SeriesCreateRequest registers a grade-level series.
type SeriesCreateRequest struct {
	Name          string `json:"name" validate:"required,min=2"`
	Level         int    `json:"level" validate:"gte=0"`
	Shift         string `json:"shift" validate:"omitempty,oneof=morning afternoon evening"`
	Year          int    `json:"year" validate:"gte=0"`
	StudentsCount int    `json:"students_count" validate:"gte=0"`
}

// SeriesUpdateRequest updates a series.
type SeriesUpdateRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=2"`
	Level         *int    `json:"level" validate:"omitempty,gte=0"`
	Shift         *string `json:"shift" validate:"omitempty,oneof=morning afternoon evening"`
	Year          *int    `json:"year" validate:"omitempty,gte=0"`
	StudentsCount *int    `json:"students_count" validate:"omitempty,gte=0"`
	IsActive      *bool   `json:"is_active"`
}

// SeriesResponse is returned to API clients when viewing series.
type SeriesResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Level         int       `json:"level"`
	Shift         string    `json:"shift"`
	Year          int       `json:"year"`
	StudentsCount int       `json:"students_count"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewSeriesResponse converts a model into its API representation.
func NewSeriesResponse(series models.Series) SeriesResponse {
	return SeriesResponse{
		ID:            series.ID,
		Name:          series.Name,
		Level:         series.Level,
		Shift:         series.Shift,
		Year:          series.Year,
		StudentsCount: series.StudentsCount,
		IsActive:      series.IsActive,
		CreatedAt:     series.CreatedAt,
		UpdatedAt:     series.UpdatedAt,
	}
}

// NewSeriesResponseSlice converts a list of models.
func NewSeriesResponseSlice(series []models.Series) []SeriesResponse {
	responses := make([]SeriesResponse, 0, len(series))
	for _, s := range series {
		responses = append(responses, NewSeriesResponse(s))
	}
	return responses
}
