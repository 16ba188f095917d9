package repomanager

import (
	"context"
	"sync"

	"github.com/ktpm/catalog/internal/server/repositories/products"
	"github.com/ktpm/catalog/internal/server/repositories/users"
)

// InMemoryRepositoryManager serves the process-local stores. Atomic
// serializes units of work but cannot roll them back.
type InMemoryRepositoryManager struct {
	mu sync.Mutex
	repositories
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		repositories: repositories{
			users:    users.NewMemoryRepository(),
			products: products.NewMemoryRepository(),
		},
	}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context) error {
	return nil
}

func (m *InMemoryRepositoryManager) Atomic(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx, m.repositories)
}

func (m *InMemoryRepositoryManager) Close() error {
	return nil
}
