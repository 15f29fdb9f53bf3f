package repository

import (
	"context"
	"sort"

	"github.com/provalab/prova-api/internal/models"
	"github.com/provalab/prova-api/internal/store"
)

// QuestionRepository defines data operations for the question bank.
type QuestionRepository interface {
	List(ctx context.Context, owner string) ([]models.Question, error)
	GetByID(ctx context.Context, owner, id string) (models.Question, error)
	Save(ctx context.Context, owner string, question models.Question) error
	Delete(ctx context.Context, owner, id string) error
}

type questionRepository struct {
	kv store.Store
}

// NewQuestionRepository instantiates the repository.
func NewQuestionRepository(kv store.Store) QuestionRepository {
	return &questionRepository{kv: kv}
}

func (r *questionRepository) List(ctx context.Context, owner string) ([]models.Question, error) {
	payloads, err := r.kv.List(ctx, owner, store.EntityQuestions)
	if err != nil {
		return nil, err
	}

	questions, err := decodeSlice[models.Question](payloads)
	if err != nil {
		return nil, err
	}

	sort.Slice(questions, func(i, j int) bool {
		return questions[i].CreatedAt.After(questions[j].CreatedAt)
	})

	return questions, nil
}

func (r *questionRepository) GetByID(ctx context.Context, owner, id string) (models.Question, error) {
	payload, err := r.kv.Get(ctx, owner, store.EntityQuestions, id)
	if err != nil {
		return models.Question{}, err
	}
	return decode[models.Question](payload)
}

func (r *questionRepository) Save(ctx context.Context, owner string, question models.Question) error {
	payload, err := encode(question)
	if err != nil {
		return err
	}
	return r.kv.Put(ctx, owner, store.EntityQuestions, question.ID, payload)
}

func (r *questionRepository) Delete(ctx context.Context, owner, id string) error {
	return r.kv.Delete(ctx, owner, store.EntityQuestions, id)
}
