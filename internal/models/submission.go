package models

import "time"

// Grading states for a submission.
const (
	// GradingStatusGraded indicates every question was scored automatically.
	GradingStatusGraded = "graded"
	// GradingStatusPendingReview indicates at least one essay answer awaits manual grading.
	GradingStatusPendingReview = "pending-review"
	// GradingStatusReviewed indicates a teacher completed the manual review.
	GradingStatusReviewed = "reviewed"
)

// AnswerUnanswered is the sentinel stored for a skipped multiple-choice
// question. It never equals a valid option index, so it always scores as
// incorrect.
const AnswerUnanswered = -1

// QuestionResult records the outcome of a single exam question, in question
// order. Essay results carry no correctness verdict until reviewed.
type QuestionResult struct {
	QuestionID            string  `json:"question_id"`
	UserAnswer            int     `json:"user_answer"`
	CorrectAnswer         int     `json:"correct_answer"`
	IsCorrect             *bool   `json:"is_correct"`
	Weight                float64 `json:"weight"`
	PointsEarned          float64 `json:"points_earned"`
	Explanation           string  `json:"explanation"`
	EssayAnswer           string  `json:"essay_answer,omitempty"`
	RequiresManualGrading bool    `json:"requires_manual_grading"`
}

// Submission is one student's scored attempt at an exam. StudentName and
// ExamTitle are denormalized snapshots so reports never need a join.
type Submission struct {
	ID                  string           `json:"id"`
	ExamID              string           `json:"exam_id"`
	UserID              string           `json:"user_id"`
	StudentName         string           `json:"student_name"`
	ExamTitle           string           `json:"exam_title"`
	Answers             []int            `json:"answers"`
	EssayAnswers        []string         `json:"essay_answers"`
	Score               float64          `json:"score"`
	TotalWeight         float64          `json:"total_weight"`
	TotalQuestions      int              `json:"total_questions"`
	TotalEssayQuestions int              `json:"total_essay_questions"`
	Percentage          int              `json:"percentage"`
	Results             []QuestionResult `json:"results"`
	GradingStatus       string           `json:"grading_status"`
	ReviewNotes         string           `json:"review_notes,omitempty"`
	Feedback            string           `json:"feedback,omitempty"`
	ReviewedAt          *time.Time       `json:"reviewed_at,omitempty"`
	SubmittedAt         time.Time        `json:"submitted_at"`
}

// IsPassing reports whether the submission reached the passing threshold.
func (s Submission) IsPassing() bool {
	return s.Percentage >= 60
}
