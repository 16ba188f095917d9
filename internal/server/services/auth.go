// Package services contains the server-side business logic: account
// authentication and registration, and the product catalog.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ktpm/catalog/internal/common"
	"github.com/ktpm/catalog/internal/logging"
	"github.com/ktpm/catalog/internal/server/auth"
	"github.com/ktpm/catalog/internal/server/models"
	"github.com/ktpm/catalog/internal/server/repositories/repomanager"
	"github.com/ktpm/catalog/internal/validation"
)

// AuthService checks credentials, registers accounts and mints session
// tokens. It keeps no state of its own.
type AuthService struct {
	repomanager repomanager.RepositoryManager
	hasher      auth.PasswordHasher
	tokens      *auth.TokenService
	log         logging.Logger
}

func NewAuthService(m repomanager.RepositoryManager, h auth.PasswordHasher, t *auth.TokenService, log logging.Logger) *AuthService {
	return &AuthService{
		repomanager: m,
		hasher:      h,
		tokens:      t,
		log:         log.With("module", "auth"),
	}
}

// Authenticate returns the identity for a username/password pair. Malformed
// input fails with common.ErrValidation before the store is consulted.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.Identity, error) {
	username, password = strings.TrimSpace(username), strings.TrimSpace(password)
	if !validation.IsValidUsername(username) || !validation.IsValidPassword(password) {
		return nil, common.ErrValidation
	}

	user, err := s.repomanager.Users().GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.log.Info(ctx, "login rejected", "username", username, "reason", "unknown user")
			return nil, common.ErrUserNotFound
		}
		return nil, storeError(err)
	}

	ok, err := s.hasher.Compare(user.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("compare password: %w", err)
	}
	if !ok {
		s.log.Info(ctx, "login rejected", "username", username, "reason", "wrong password")
		return nil, common.ErrWrongPassword
	}

	return &models.Identity{ID: user.ID, UserName: user.UserName}, nil
}

// Register creates an account. Checks run in a fixed order: field shape,
// username availability, then password confirmation. Surrounding whitespace
// is dropped from every field before any check, so the stored name and the
// hashed password are the trimmed values.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	req.UserName = strings.TrimSpace(req.UserName)
	req.Password = strings.TrimSpace(req.Password)
	req.VerifyPassword = strings.TrimSpace(req.VerifyPassword)

	if validation.IsBlank(req.UserName) || validation.IsBlank(req.Password) || validation.IsBlank(req.VerifyPassword) {
		return nil, common.ErrValidation
	}
	if !validation.IsValidUsername(req.UserName) || !validation.IsValidPassword(req.Password) {
		return nil, common.ErrValidation
	}

	var created *models.User
	err := s.repomanager.Atomic(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		_, err := r.Users().GetUserByLogin(ctx, req.UserName)
		switch {
		case err == nil:
			return common.ErrUsernameExists
		case !errors.Is(err, common.ErrorNotFound):
			return storeError(err)
		}

		if req.Password != req.VerifyPassword {
			return common.ErrPasswordMismatch
		}

		hash, err := s.hasher.Hash(req.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		created, err = r.Users().Create(ctx, &models.User{UserName: req.UserName, PasswordHash: hash})
		if err != nil {
			if errors.Is(err, common.ErrUsernameExists) {
				return common.ErrUsernameExists
			}
			return storeError(err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrUsernameExists) || errors.Is(err, common.ErrPasswordMismatch) || errors.Is(err, common.ErrStore) {
			return nil, err
		}
		return nil, storeError(err)
	}

	s.log.Info(ctx, "user registered", "user_id", created.ID, "username", created.UserName)
	return created, nil
}

// GetCurrentUser reads the identity carried by a session token. The token's
// claims are trusted once the signature checks out.
func (s *AuthService) GetCurrentUser(token string) (*models.Identity, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	return &models.Identity{ID: claims.UserID, UserName: claims.Subject}, nil
}

// IssueToken mints the session token for an authenticated identity.
func (s *AuthService) IssueToken(id *models.Identity) (string, error) {
	return s.tokens.Issue(id.ID, id.UserName)
}

// DeleteUser removes the account with the given id.
func (s *AuthService) DeleteUser(ctx context.Context, id string) error {
	if err := s.repomanager.Users().Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrUserNotFound
		}
		return storeError(err)
	}
	s.log.Info(ctx, "user deleted", "user_id", id)
	return nil
}

func storeError(err error) error {
	return fmt.Errorf("%w: %w", common.ErrStore, err)
}
