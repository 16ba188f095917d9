// Package products stores the catalog items served behind the session gate.
package products

import (
	"context"

	"github.com/ktpm/catalog/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.Product, error)
	// GetByID yields common.ErrorNotFound for an unknown id.
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) (*models.Product, error)
	// Update replaces every field of the product with p.ID.
	Update(ctx context.Context, p *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}
