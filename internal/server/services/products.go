package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ktpm/catalog/internal/common"
	"github.com/ktpm/catalog/internal/logging"
	"github.com/ktpm/catalog/internal/server/models"
	"github.com/ktpm/catalog/internal/server/repositories/repomanager"
	"github.com/ktpm/catalog/internal/validation"
)

// ProductService is the catalog CRUD reached through the session gate.
type ProductService struct {
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewProductService(m repomanager.RepositoryManager, log logging.Logger) *ProductService {
	return &ProductService{repomanager: m, log: log.With("module", "products")}
}

// ValidationError lists the product fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid product fields: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error { return common.ErrValidation }

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	list, err := s.repomanager.Products().List(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return list, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	p, err := s.repomanager.Products().GetByID(ctx, id)
	if err != nil {
		return nil, productError(err)
	}
	return p, nil
}

func (s *ProductService) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	if err := checkProduct(p); err != nil {
		return nil, err
	}
	created, err := s.repomanager.Products().Create(ctx, p)
	if err != nil {
		return nil, storeError(err)
	}
	s.log.Info(ctx, "product created", "product_id", created.ID)
	return created, nil
}

// Update replaces the product with the given id. The id in the body, if
// any, is ignored.
func (s *ProductService) Update(ctx context.Context, id string, p *models.Product) (*models.Product, error) {
	if err := checkProduct(p); err != nil {
		return nil, err
	}

	var updated *models.Product
	err := s.repomanager.Atomic(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		if _, err := r.Products().GetByID(ctx, id); err != nil {
			return productError(err)
		}
		next := *p
		next.ID = id
		var err error
		updated, err = r.Products().Update(ctx, &next)
		if err != nil {
			return productError(err)
		}
		return nil
	})
	if err != nil {
		return nil, productError(err)
	}
	s.log.Info(ctx, "product updated", "product_id", id)
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.repomanager.Products().Delete(ctx, id); err != nil {
		return productError(err)
	}
	s.log.Info(ctx, "product deleted", "product_id", id)
	return nil
}

// checkProduct trims the free-text fields, normalises the category spelling
// and then runs field validation on the values that will be stored.
func checkProduct(p *models.Product) error {
	if c, ok := models.ParseCategory(string(p.Category)); ok {
		p.Category = c
	}
	p.ProductName = strings.TrimSpace(p.ProductName)
	p.Description = strings.TrimSpace(p.Description)
	if problems := validation.ProductProblems(p); len(problems) > 0 {
		return &ValidationError{Fields: problems}
	}
	return nil
}

func productError(err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrProductNotFound
	}
	if errors.Is(err, common.ErrProductNotFound) || errors.Is(err, common.ErrStore) {
		return err
	}
	return fmt.Errorf("%w: %w", common.ErrStore, err)
}
