package repository

import (
	"context"
	"sort"

	"github.com/provalab/prova-api/internal/models"
	"github.com/provalab/prova-api/internal/store"
)

// ClassRepository defines data operations for classes.
type ClassRepository interface {
	List(ctx context.Context, owner string) ([]models.Class, error)
	GetByID(ctx context.Context, owner, id string) (models.Class, error)
	Save(ctx context.Context, owner string, class models.Class) error
	Delete(ctx context.Context, owner, id string) error
}

type classRepository struct {
	kv store.Store
}

// NewClassRepository instantiates the repository.
func NewClassRepository(kv store.Store) ClassRepository {
	return &classRepository{kv: kv}
}

func (r *classRepository) List(ctx context.Context, owner string) ([]models.Class, error) {
	payloads, err := r.kv.List(ctx, owner, store.EntityClasses)
	if err != nil {
		return nil, err
	}

	classes, err := decodeSlice[models.Class](payloads)
	if err != nil {
		return nil, err
	}

	sort.Slice(classes, func(i, j int) bool {
		return classes[i].Name < classes[j].Name
	})

	return classes, nil
}

func (r *classRepository) GetByID(ctx context.Context, owner, id string) (models.Class, error) {
	payload, err := r.kv.Get(ctx, owner, store.EntityClasses, id)
	if err != nil {
		return models.Class{}, err
	}
	return decode[models.Class](payload)
}

func (r *classRepository) Save(ctx context.Context, owner string, class models.Class) error {
	payload, err := encode(class)
	if err != nil {
		return err
	}
	return r.kv.Put(ctx, owner, store.EntityClasses, class.ID, payload)
}

func (r *classRepository) Delete(ctx context.Context, owner, id string) error {
	return r.kv.Delete(ctx, owner, store.EntityClasses, id)
}
