package dto

import (
	"time"

	"github.com/provalab/prova-api/internal/models"
)

// ExamCreateRequest assembles an exam from question bank entries. The
// referenced questions are snapshotted into the exam at creation time.
type ExamCreateRequest struct {
	Title            string   `json:"title" validate:"required,min=3"`
	Description      string   `json:"description"`
	SeriesID         string   `json:"series_id"`
	ClassID          string   `json:"class_id"`
	QuestionIDs      []string `json:"question_ids" validate:"required,min=1,dive,required"`
	TimeLimitMinutes int      `json:"time_limit_minutes" validate:"gte=0"`
}

// ExamUpdateRequest updates exam metadata. Question snapshots are immutable.
type ExamUpdateRequest struct {
	Title            *string `json:"title" validate:"omitempty,min=3"`
	Description      *string `json:"description"`
	TimeLimitMinutes *int    `json:"time_limit_minutes" validate:"omitempty,gte=0"`
	Status           *string `json:"status" validate:"omitempty,oneof=draft active archived"`
}

// ExamResponse is returned to API clients when viewing exams.
type ExamResponse struct {
	ID               string             `json:"id"`
	Title            string             `json:"title"`
	Description      string             `json:"description"`
	SeriesID         string             `json:"series_id"`
	ClassID          string             `json:"class_id"`
	Questions        []QuestionResponse `json:"questions"`
	QuestionCount    int                `json:"question_count"`
	TimeLimitMinutes int                `json:"time_limit_minutes"`
	Status           string             `json:"status"`
	AppliedCount     int                `json:"applied_count"`
	StudentsCount    int                `json:"students_count"`
	AverageScore     float64            `json:"average_score"`
	LastApplied      *time.Time         `json:"last_applied"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// NewExamResponse converts a model into its API representation.
func NewExamResponse(exam models.Exam) ExamResponse {
	return ExamResponse{
		ID:               exam.ID,
		Title:            exam.Title,
		Description:      exam.Description,
		SeriesID:         exam.SeriesID,
		ClassID:          exam.ClassID,
		Questions:        NewQuestionResponseSlice(exam.Questions),
		QuestionCount:    len(exam.Questions),
		TimeLimitMinutes: exam.TimeLimitMinutes,
		Status:           exam.Status,
		AppliedCount:     exam.AppliedCount,
		StudentsCount:    exam.StudentsCount,
		AverageScore:     exam.AverageScore,
		LastApplied:      exam.LastApplied,
		CreatedAt:        exam.CreatedAt,
		UpdatedAt:        exam.UpdatedAt,
	}
}

// NewExamResponseSlice converts a list of models.
func NewExamResponseSlice(exams []models.Exam) []ExamResponse {
	responses := make([]ExamResponse, 0, len(exams))
	for _, exam := range exams {
		responses = append(responses, NewExamResponse(exam))
	}
	return responses
}
