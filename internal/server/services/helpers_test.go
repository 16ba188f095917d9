package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ktpm/catalog/internal/logging"
	"github.com/ktpm/catalog/internal/server/auth"
	"github.com/ktpm/catalog/internal/server/models"
	"github.com/ktpm/catalog/internal/server/repositories/products"
	"github.com/ktpm/catalog/internal/server/repositories/repomanager"
	"github.com/ktpm/catalog/internal/server/repositories/users"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTokens(t *testing.T) *auth.TokenService {
	t.Helper()
	ts, err := auth.NewTokenService([]byte("test-secret"), 0, auth.WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	return ts
}

func newAuthService(t *testing.T, m repomanager.RepositoryManager) *AuthService {
	t.Helper()
	return NewAuthService(m, auth.NewBcryptHasher(bcrypt.MinCost), newTokens(t), logging.Nop{})
}

// countingHasher records calls so ordering guarantees can be asserted.
type countingHasher struct {
	auth.PasswordHasher
	hashes, compares int
}

func (h *countingHasher) Hash(pw string) (string, error) {
	h.hashes++
	return h.PasswordHasher.Hash(pw)
}

func (h *countingHasher) Compare(hash, pw string) (bool, error) {
	h.compares++
	return h.PasswordHasher.Compare(hash, pw)
}

// fakeUsersRepo fails every call with err and counts calls.
type fakeUsersRepo struct {
	err   error
	calls int
}

func (f *fakeUsersRepo) Create(context.Context, *models.User) (*models.User, error) {
	f.calls++
	return nil, f.err
}

func (f *fakeUsersRepo) GetUserByLogin(context.Context, string) (*models.User, error) {
	f.calls++
	return nil, f.err
}

func (f *fakeUsersRepo) GetByID(context.Context, string) (*models.User, error) {
	f.calls++
	return nil, f.err
}

func (f *fakeUsersRepo) Delete(context.Context, string) error {
	f.calls++
	return f.err
}

type fakeRepoManager struct {
	users    users.Repository
	products products.Repository
}

func (m *fakeRepoManager) Users() users.Repository             { return m.users }
func (m *fakeRepoManager) Products() products.Repository       { return m.products }
func (m *fakeRepoManager) RunMigrations(context.Context) error { return nil }
func (m *fakeRepoManager) Close() error                        { return nil }

func (m *fakeRepoManager) Atomic(ctx context.Context, fn func(context.Context, repomanager.Repositories) error) error {
	return fn(ctx, m)
}
