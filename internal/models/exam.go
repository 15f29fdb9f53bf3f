package models

import "time"

// Exam lifecycle states.
const (
	ExamStatusDraft    = "draft"
	ExamStatusActive   = "active"
	ExamStatusArchived = "archived"
)

// Exam is a timed assessment assembled from question snapshots. The snapshots
// are copied from the bank at creation time; later edits to bank questions do
// not change an existing exam.
type Exam struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	SeriesID         string     `json:"series_id"`
	ClassID          string     `json:"class_id"`
	Questions        []Question `json:"questions"`
	TimeLimitMinutes int        `json:"time_limit_minutes"`
	Status           string     `json:"status"`
	AppliedCount     int        `json:"applied_count"`
	StudentsCount    int        `json:"students_count"`
	AverageScore     float64    `json:"average_score"`
	LastApplied      *time.Time `json:"last_applied"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// IsActive reports whether the exam currently accepts submissions.
func (e Exam) IsActive() bool {
	return e.Status == ExamStatusActive
}
