package dto

import (
	"time"

	"github.com/provalab/prova-api/internal/models"
)

// QuestionCreateRequest describes the payload for adding a bank question.
type QuestionCreateRequest struct {
	Text          string   `json:"question" validate:"required,min=3"`
	Subject       string   `json:"subject" validate:"required"`
	Grade         string   `json:"grade"`
	Difficulty    string   `json:"difficulty" validate:"required,oneof=easy medium hard"`
	Type          string   `json:"question_type" validate:"required,oneof=multiple-choice essay"`
	Options       []string `json:"options" validate:"omitempty,min=2,dive,required"`
	CorrectAnswer int      `json:"correct_answer" validate:"gte=0"`
	Tags          []string `json:"tags"`
	Weight        float64  `json:"weight" validate:"gte=0"`
}

// QuestionUpdateRequest updates an existing bank question.
type QuestionUpdateRequest struct {
	Text          *string   `json:"question" validate:"omitempty,min=3"`
	Subject       *string   `json:"subject"`
	Grade         *string   `json:"grade"`
	Difficulty    *string   `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Options       *[]string `json:"options" validate:"omitempty,min=2,dive,required"`
	CorrectAnswer *int      `json:"correct_answer" validate:"omitempty,gte=0"`
	Tags          *[]string `json:"tags"`
	Weight        *float64  `json:"weight" validate:"omitempty,gte=0"`
	IsActive      *bool     `json:"is_active"`
}

// QuestionResponse is returned to API clients when viewing bank questions.
type QuestionResponse struct {
	ID            string    `json:"id"`
	Text          string    `json:"question"`
	Subject       string    `json:"subject"`
	Grade         string    `json:"grade"`
	Difficulty    string    `json:"difficulty"`
	Type          string    `json:"question_type"`
	Options       []string  `json:"options"`
	CorrectAnswer int       `json:"correct_answer"`
	Tags          []string  `json:"tags"`
	Weight        float64   `json:"weight"`
	UsageCount    int       `json:"usage_count"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewQuestionResponse converts a model into its API representation.
func NewQuestionResponse(question models.Question) QuestionResponse {
	return QuestionResponse{
		ID:            question.ID,
		Text:          question.Text,
		Subject:       question.Subject,
		Grade:         question.Grade,
		Difficulty:    question.Difficulty,
		Type:          question.Type,
		Options:       question.Options,
		CorrectAnswer: question.CorrectAnswer,
		Tags:          question.Tags,
		Weight:        question.EffectiveWeight(),
		UsageCount:    question.UsageCount,
		IsActive:      question.IsActive,
		CreatedAt:     question.CreatedAt,
		UpdatedAt:     question.UpdatedAt,
	}
}

// NewQuestionResponseSlice converts a list of models.
func NewQuestionResponseSlice(questions []models.Question) []QuestionResponse {
	responses := make([]QuestionResponse, 0, len(questions))
	for _, question := range questions {
		responses = append(responses, NewQuestionResponse(question))
	}
	return responses
}
