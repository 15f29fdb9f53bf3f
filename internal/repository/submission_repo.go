package repository

import (
	"context"
	"sort"

	"github.com/provalab/prova-api/internal/models"
	"github.com/provalab/prova-api/internal/store"
)

// SubmissionFilter narrows submission listings.
type SubmissionFilter struct {
	ExamID        *string
	GradingStatus *string
}

// SubmissionRepository defines data operations for scored submissions.
type SubmissionRepository interface {
	List(ctx context.Context, owner string, filter SubmissionFilter) ([]models.Submission, error)
	GetByID(ctx context.Context, owner, id string) (models.Submission, error)
	Save(ctx context.Context, owner string, submission models.Submission) error
}

type submissionRepository struct {
	kv store.Store
}

// NewSubmissionRepository instantiates the repository.
func NewSubmissionRepository(kv store.Store) SubmissionRepository {
	return &submissionRepository{kv: kv}
}

func (r *submissionRepository) List(ctx context.Context, owner string, filter SubmissionFilter) ([]models.Submission, error) {
	payloads, err := r.kv.List(ctx, owner, store.EntitySubmissions)
	if err != nil {
		return nil, err
	}

	submissions, err := decodeSlice[models.Submission](payloads)
	if err != nil {
		return nil, err
	}

	filtered := submissions[:0]
	for _, submission := range submissions {
		if filter.ExamID != nil && submission.ExamID != *filter.ExamID {
			continue
		}
		if filter.GradingStatus != nil && submission.GradingStatus != *filter.GradingStatus {
			continue
		}
		filtered = append(filtered, submission)
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].SubmittedAt.After(filtered[j].SubmittedAt)
	})

	return filtered, nil
}

func (r *submissionRepository) GetByID(ctx context.Context, owner, id string) (models.Submission, error) {
	payload, err := r.kv.Get(ctx, owner, store.EntitySubmissions, id)
	if err != nil {
		return models.Submission{}, err
	}
	return decode[models.Submission](payload)
}

func (r *submissionRepository) Save(ctx context.Context, owner string, submission models.Submission) error {
	payload, err := encode(submission)
	if err != nil {
		return err
	}
	return r.kv.Put(ctx, owner, store.EntitySubmissions, submission.ID, payload)
}
