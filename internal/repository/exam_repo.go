package repository

import (
	"context"
	"sort"

	"github.com/provalab/prova-api/internal/models"
	"github.com/provalab/prova-api/internal/store"
)

// ExamRepository defines data operations for exams.
type ExamRepository interface {
	List(ctx context.Context, owner string) ([]models.Exam, error)
	GetByID(ctx context.Context, owner, id string) (models.Exam, error)
	Save(ctx context.Context, owner string, exam models.Exam) error
	Delete(ctx context.Context, owner, id string) error
}

type examRepository struct {
	kv store.Store
}

// NewExamRepository instantiates the repository.
func NewExamRepository(kv store.Store) ExamRepository {
	return &examRepository{kv: kv}
}

func (r *examRepository) List(ctx context.Context, owner string) ([]models.Exam, error) {
	payloads, err := r.kv.List(ctx, owner, store.EntityExams)
	if err != nil {
		return nil, err
	}

	exams, err := decodeSlice[models.Exam](payloads)
	if err != nil {
		return nil, err
	}

	sort.Slice(exams, func(i, j int) bool {
		return exams[i].CreatedAt.After(exams[j].CreatedAt)
	})

	return exams, nil
}

func (r *examRepository) GetByID(ctx context.Context, owner, id string) (models.Exam, error) {
	payload, err := r.kv.Get(ctx, owner, store.EntityExams, id)
	if err != nil {
		return models.Exam{}, err
	}
	return decode[models.Exam](payload)
}

func (r *examRepository) Save(ctx context.Context, owner string, exam models.Exam) error {
	payload, err := encode(exam)
	if err != nil {
		return err
	}
	return r.kv.Put(ctx, owner, store.EntityExams, exam.ID, payload)
}

func (r *examRepository) Delete(ctx context.Context, owner, id string) error {
	return r.kv.Delete(ctx, owner, store.EntityExams, id)
}
