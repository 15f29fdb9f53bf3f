package dto

import (
	"time"

	"github.com/provalab/prova-api/internal/models"
)

// ClassCreateRequest registers a class inside a series.
type ClassCreateRequest struct {
	Name          string `json:"name" validate:"required,min=1"`
	SeriesID      string `json:"series_id" validate:"required"`
	Subject       string `json:"subject"`
	TeacherName   string `json:"teacher_name"`
	StudentsCount int    `json:"students_count" validate:"gte=0"`
	Year          int    `json:"year" validate:"gte=0"`
}

// ClassUpdateRequest updates a class.
type ClassUpdateRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1"`
	Subject       *string `json:"subject"`
	TeacherName   *string `json:"teacher_name"`
	StudentsCount *int    `json:"students_count" validate:"omitempty,gte=0"`
	Year          *int    `json:"year" validate:"omitempty,gte=0"`
}

// ClassResponse is returned to API clients when viewing classes.
type ClassResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	SeriesID      string    `json:"series_id"`
	Subject       string    `json:"subject"`
	TeacherName   string    `json:"teacher_name"`
	StudentsCount int       `json:"students_count"`
	Year          int       `json:"year"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewClassResponse converts a model into its API representation.
func NewClassResponse(class models.Class) ClassResponse {
	return ClassResponse{
		ID:            class.ID,
		Name:          class.Name,
		SeriesID:      class.SeriesID,
		Subject:       class.Subject,
		TeacherName:   class.TeacherName,
		StudentsCount: class.StudentsCount,
		Year:          class.Year,
		CreatedAt:     class.CreatedAt,
		UpdatedAt:     class.UpdatedAt,
	}
}

// NewClassResponseSlice converts a list of models.
func NewClassResponseSlice(classes []models.Class) []ClassResponse {
	responses := make([]ClassResponse, 0, len(classes))
	for _, class := range classes {
		responses = append(responses, NewClassResponse(class))
	}
	return responses
}
