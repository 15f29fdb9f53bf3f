package dto

import (
	"time"

	"github.com/provalab/prova-api/internal/models"
)

// SubmitExamRequest carries a student's answers. Multiple-choice answers are
// aligned by position to the exam questions; a null entry means unanswered.
type SubmitExamRequest struct {
	StudentName  string   `json:"student_name"`
	Answers      []*int   `json:"answers"`
	EssayAnswers []string `json:"essay_answers"`
}

// ReviewSubmissionRequest finalizes the manual review of essay answers.
type ReviewSubmissionRequest struct {
	ReviewNotes string `json:"review_notes" validate:"required,min=3"`
	Feedback    string `json:"feedback"`
}

// SubmissionFilter describes query string filters for listing submissions.
type SubmissionFilter struct {
	ExamID        *string `query:"exam_id"`
	GradingStatus *string `query:"grading_status" validate:"omitempty,oneof=graded pending-review reviewed"`
}

// QuestionResultResponse serializes one per-question scoring outcome.
type QuestionResultResponse struct {
	QuestionID            string  `json:"question_id"`
	UserAnswer            int     `json:"user_answer"`
	CorrectAnswer         int     `json:"correct_answer"`
	IsCorrect             *bool   `json:"is_correct"`
	Weight                float64 `json:"weight"`
	PointsEarned          float64 `json:"points_earned"`
	Explanation           string  `json:"explanation,omitempty"`
	EssayAnswer           string  `json:"essay_answer,omitempty"`
	RequiresManualGrading bool    `json:"requires_manual_grading"`
}

// SubmissionResponse is returned to API clients when viewing submissions.
type SubmissionResponse struct {
	ID                  string                   `json:"id"`
	ExamID              string                   `json:"exam_id"`
	UserID              string                   `json:"user_id"`
	StudentName         string                   `json:"student_name"`
	ExamTitle           string                   `json:"exam_title"`
	Score               float64                  `json:"score"`
	TotalWeight         float64                  `json:"total_weight"`
	TotalQuestions      int                      `json:"total_questions"`
	TotalEssayQuestions int                      `json:"total_essay_questions"`
	Percentage          int                      `json:"percentage"`
	Results             []QuestionResultResponse `json:"results"`
	GradingStatus       string                   `json:"grading_status"`
	ReviewNotes         string                   `json:"review_notes,omitempty"`
	Feedback            string                   `json:"feedback,omitempty"`
	ReviewedAt          *time.Time               `json:"reviewed_at,omitempty"`
	SubmittedAt         time.Time                `json:"submitted_at"`
}

// NewSubmissionResponse converts a model into its API representation.
func NewSubmissionResponse(submission models.Submission) SubmissionResponse {
	results := make([]QuestionResultResponse, 0, len(submission.Results))
	for _, result := range submission.Results {
		results = append(results, QuestionResultResponse{
			QuestionID:            result.QuestionID,
			UserAnswer:            result.UserAnswer,
			CorrectAnswer:         result.CorrectAnswer,
			IsCorrect:             result.IsCorrect,
			Weight:                result.Weight,
			PointsEarned:          result.PointsEarned,
			Explanation:           result.Explanation,
			EssayAnswer:           result.EssayAnswer,
			RequiresManualGrading: result.RequiresManualGrading,
		})
	}

	return SubmissionResponse{
		ID:                  submission.ID,
		ExamID:              submission.ExamID,
		UserID:              submission.UserID,
		StudentName:         submission.StudentName,
		ExamTitle:           submission.ExamTitle,
		Score:               submission.Score,
		TotalWeight:         submission.TotalWeight,
		TotalQuestions:      submission.TotalQuestions,
		TotalEssayQuestions: submission.TotalEssayQuestions,
		Percentage:          submission.Percentage,
		Results:             results,
		GradingStatus:       submission.GradingStatus,
		ReviewNotes:         submission.ReviewNotes,
		Feedback:            submission.Feedback,
		ReviewedAt:          submission.ReviewedAt,
		SubmittedAt:         submission.SubmittedAt,
	}
}

// NewSubmissionResponseSlice converts a list of models.
func NewSubmissionResponseSlice(submissions []models.Submission) []SubmissionResponse {
	responses := make([]SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		responses = append(responses, NewSubmissionResponse(submission))
	}
	return responses
}
