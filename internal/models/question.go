package models

import "time"

// Question types supported by the question bank.
const (
	QuestionTypeMultipleChoice = "multiple-choice"
	QuestionTypeEssay          = "essay"
)

// Difficulty levels for bank questions.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Question is a single entry in a teacher's question bank.
type Question struct {
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

// IsEssay reports whether the question requires manual grading.
func (q Question) IsEssay() bool {
	return q.Type == QuestionTypeEssay
}

// EffectiveWeight returns the question weight, defaulting to 1.0 when unset.
func (q Question) EffectiveWeight() float64 {
	if q.Weight > 0 {
		return q.Weight
	}
	return 1.0
}

// HasValidChoices reports whether a multiple-choice question satisfies the
// options invariant: at least two options and a correct answer inside them.
func (q Question) HasValidChoices() bool {
	if q.IsEssay() {
		return true
	}
	return len(q.Options) >= 2 && q.CorrectAnswer >= 0 && q.CorrectAnswer < len(q.Options)
}
