package repomanager

import (
	"context"

	"github.com/ktpm/catalog/internal/server/repositories/products"
	"github.com/ktpm/catalog/internal/server/repositories/users"
)

// Repositories is the set of stores a service can touch inside one unit of work.
type Repositories interface {
	Users() users.Repository
	Products() products.Repository
}

type RepositoryManager interface {
	Repositories
	RunMigrations(ctx context.Context) error
	// Atomic runs fn with repositories bound to a single transaction.
	Atomic(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error
	Close() error
}

type repositories struct {
	users    users.Repository
	products products.Repository
}

func (r repositories) Users() users.Repository       { return r.users }
func (r repositories) Products() products.Repository { return r.products }
