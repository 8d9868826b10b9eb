package repository

import (
	"errors"
	"sync"
	"time"

	"github.com/fadilmartias/stress-manometer/internal/model"
	"github.com/google/uuid"
)

var ErrDatasetNotFound = errors.New("dataset not found")

// DatasetRepository keeps uploaded datasets in memory. Entries older than the
// TTL are treated as gone and swept on the next write.
type DatasetRepository struct {
	mu       sync.RWMutex
	datasets map[uuid.UUID]*model.Dataset
	ttl      time.Duration
	now      func() time.Time
}

func NewDatasetRepository(ttl time.Duration) *DatasetRepository {
	return &DatasetRepository{
		datasets: make(map[uuid.UUID]*model.Dataset),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (r *DatasetRepository) Create(ds *model.Dataset) error {
	if ds.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		ds.ID = id
	}
	ds.CreatedAt = r.now()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepLocked()
	r.datasets[ds.ID] = ds
	return nil
}

func (r *DatasetRepository) FindByID(id uuid.UUID) (*model.Dataset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ds, ok := r.datasets[id]
	if !ok || r.expired(ds) {
		return nil, ErrDatasetNotFound
	}
	return ds, nil
}

func (r *DatasetRepository) Delete(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.datasets, id)
}

func (r *DatasetRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.datasets)
}

func (r *DatasetRepository) expired(ds *model.Dataset) bool {
	return r.ttl > 0 && r.now().Sub(ds.CreatedAt) > r.ttl
}

func (r *DatasetRepository) sweepLocked() {
	for id, ds := range r.datasets {
		if r.expired(ds) {
			delete(r.datasets, id)
		}
	}
}
