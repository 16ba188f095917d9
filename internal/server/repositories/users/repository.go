// Package users is the credential store: lookups, creation and deletion of
// accounts. Username uniqueness is enforced by the store itself.
package users

import (
	"context"

	"github.com/ktpm/catalog/internal/server/models"
)

type Repository interface {
	// Create stores user and returns it with ID and CreatedAt set. A duplicate username
	// yields common.ErrUsernameExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetUserByLogin yields common.ErrorNotFound for an unknown username.
	GetUserByLogin(ctx context.Context, userName string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Delete(ctx context.Context, id string) error
}
