package products

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/ktpm/catalog/internal/common"
	"github.com/ktpm/catalog/internal/server/models"
)

// MemoryRepository keeps products in insertion order. Used when no DSN is configured.
type MemoryRepository struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]models.Product
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]models.Product)}
}

func (r *MemoryRepository) List(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Product, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.byID[id])
	}
	return result, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &p, nil
}

func (r *MemoryRepository) Create(_ context.Context, p *models.Product) (*models.Product, error) {
	stored := *p
	stored.ID = uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	return &stored, nil
}

func (r *MemoryRepository) Update(_ context.Context, p *models.Product) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[p.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	stored := *p
	r.byID[p.ID] = stored
	return &stored, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.byID, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
