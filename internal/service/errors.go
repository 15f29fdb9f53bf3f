package service

import "errors"

// Sentinel errors shared by the service layer. Handlers map these onto HTTP
// statuses.
var (
	ErrQuestionNotFound   = errors.New("question not found")
	ErrExamNotFound       = errors.New("exam not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrSeriesNotFound     = errors.New("series not found")
	ErrClassNotFound      = errors.New("class not found")

	// ErrExamHasNoQuestions indicates an exam record without a question
	// snapshot, which cannot be scored.
	ErrExamHasNoQuestions = errors.New("exam has no questions")

	// ErrInvalidChoices indicates a multiple-choice question without at
	// least two options and a correct answer inside them.
	ErrInvalidChoices = errors.New("multiple-choice question requires at least two options and a valid correct answer")

	// ErrSubmissionNotReviewable indicates a review was requested for a
	// submission with no essay answers awaiting manual grading.
	ErrSubmissionNotReviewable = errors.New("submission has no answers awaiting review")

	// ErrUnsupportedFormat indicates an unknown export format.
	ErrUnsupportedFormat = errors.New("unsupported export format")
)
