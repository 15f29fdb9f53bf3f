package repository

import (
	"context"
	"sort"

	"github.com/provalab/prova-api/internal/models"
	"github.com/provalab/prova-api/internal/store"
)

// SeriesRepository defines data operations for grade-level series.
type SeriesRepository interface {
	List(ctx context.Context, owner string) ([]models.Series, error)
	GetByID(ctx context.Context, owner, id string) (models.Series, error)
	Save(ctx context.Context, owner string, series models.Series) error
	Delete(ctx context.Context, owner, id string) error
}

type seriesRepository struct {
	kv store.Store
}

// NewSeriesRepository instantiates the repository.
func NewSeriesRepository(kv store.Store) SeriesRepository {
	return &seriesRepository{kv: kv}
}

func (r *seriesRepository) List(ctx context.Context, owner string) ([]models.Series, error) {
	payloads, err := r.kv.List(ctx, owner, store.EntitySeries)
	if err != nil {
		return nil, err
	}

	series, err := decodeSlice[models.Series](payloads)
	if err != nil {
		return nil, err
	}

	sort.Slice(series, func(i, j int) bool {
		if series[i].Level != series[j].Level {
			return series[i].Level < series[j].Level
		}
		return series[i].Name < series[j].Name
	})

	return series, nil
}

func (r *seriesRepository) GetByID(ctx context.Context, owner, id string) (models.Series, error) {
	payload, err := r.kv.Get(ctx, owner, store.EntitySeries, id)
	if err != nil {
		return models.Series{}, err
	}
	return decode[models.Series](payload)
}

func (r *seriesRepository) Save(ctx context.Context, owner string, series models.Series) error {
	payload, err := encode(series)
	if err != nil {
		return err
	}
	return r.kv.Put(ctx, owner, store.EntitySeries, series.ID, payload)
}

func (r *seriesRepository) Delete(ctx context.Context, owner, id string) error {
	return r.kv.Delete(ctx, owner, store.EntitySeries, id)
}
