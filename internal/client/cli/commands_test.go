package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ktpm/catalog/internal/client/client"
	"github.com/ktpm/catalog/internal/client/config"
	"github.com/ktpm/catalog/internal/common"
	"github.com/ktpm/catalog/internal/server/models"
)

type fakeAPI struct {
	regUser, regPass, regVerify string
	regErr                      error

	loginUser, loginPass string
	loginErr             error

	current    *models.Identity
	currentErr error

	products    []models.Product
	productsErr error

	logoutCalled bool
}

func (f *fakeAPI) Register(_ context.Context, u, p, v string) error {
	f.regUser, f.regPass, f.regVerify = u, p, v
	return f.regErr
}

func (f *fakeAPI) Login(_ context.Context, u, p string) (*models.Identity, error) {
	f.loginUser, f.loginPass = u, p
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &models.Identity{ID: "u-1", UserName: u}, nil
}

func (f *fakeAPI) Current(context.Context) (*models.Identity, error) {
	return f.current, f.currentErr
}

func (f *fakeAPI) Logout(context.Context) error {
	f.logoutCalled = true
	return nil
}

func (f *fakeAPI) Products(context.Context) ([]models.Product, error) {
	return f.products, f.productsErr
}

// stubInputs replaces the prompt helpers; passwords are handed out in order.
func stubInputs(t *testing.T, username string, passwords ...string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return username, nil }
	getPassword = func(string, io.Writer) ([]byte, error) {
		if len(passwords) == 0 {
			return nil, io.EOF
		}
		pw := passwords[0]
		passwords = passwords[1:]
		return []byte(pw), nil
	}
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func newTestApp(api API) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &App{config: &config.Config{}, api: api, out: out}, out
}

func TestRegister(t *testing.T) {
	f := &fakeAPI{}
	a, out := newTestApp(f)
	stubInputs(t, "alice01", "secret123", "secret123")

	require.NoError(t, a.Register(context.Background()))
	assert.Equal(t, "alice01", f.regUser)
	assert.Equal(t, "secret123", f.regPass)
	assert.Equal(t, "secret123", f.regVerify)
	assert.Contains(t, out.String(), "Registered")
	assert.False(t, a.isLoggedIn())
}

func TestRegister_Errors(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{common.ErrUsernameExists, "User name already taken"},
		{common.ErrPasswordMismatch, "Passwords do not match"},
		{common.ErrValidation, "Invalid input"},
		{fmt.Errorf("%w: dial", client.ErrUnavailable), "Server unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			a, out := newTestApp(&fakeAPI{regErr: tt.err})
			stubInputs(t, "alice01", "secret123", "secret123")

			assert.ErrorIs(t, a.Register(context.Background()), tt.err)
			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestRegister_PasswordReadFails(t *testing.T) {
	f := &fakeAPI{}
	a, _ := newTestApp(f)
	stubInputs(t, "alice01", "secret123")

	assert.ErrorIs(t, a.Register(context.Background()), io.EOF)
	assert.Empty(t, f.regUser)
}

func TestLoginAndLogout(t *testing.T) {
	f := &fakeAPI{}
	a, out := newTestApp(f)
	stubInputs(t, "alice01", "secret123")

	require.NoError(t, a.Login(context.Background()))
	assert.True(t, a.isLoggedIn())
	assert.Equal(t, "alice01", a.status())
	assert.Equal(t, "secret123", f.loginPass)
	assert.Contains(t, out.String(), "Logged in as alice01")

	require.NoError(t, a.Logout(context.Background()))
	assert.True(t, f.logoutCalled)
	assert.False(t, a.isLoggedIn())
	assert.Equal(t, "anonymous", a.status())
}

func TestLogin_Errors(t *testing.T) {
	for _, tc := range []struct {
		err  error
		want string
	}{
		{common.ErrUserNotFound, "User not found"},
		{common.ErrWrongPassword, "Wrong password"},
	} {
		a, out := newTestApp(&fakeAPI{loginErr: tc.err})
		stubInputs(t, "alice01", "secret123")

		assert.ErrorIs(t, a.Login(context.Background()), tc.err)
		assert.False(t, a.isLoggedIn())
		assert.Contains(t, out.String(), tc.want)
	}
}

func TestWhoAmI(t *testing.T) {
	a, out := newTestApp(&fakeAPI{current: &models.Identity{ID: "u-7", UserName: "bob_99"}})

	require.NoError(t, a.WhoAmI(context.Background()))
	assert.Equal(t, "bob_99 (u-7)\n", out.String())
	assert.True(t, a.isLoggedIn())
}

func TestWhoAmI_ExpiredSessionClearsIdentity(t *testing.T) {
	a, out := newTestApp(&fakeAPI{currentErr: client.ErrUnauthorized})
	a.identity = &models.Identity{ID: "u-1", UserName: "alice01"}

	assert.ErrorIs(t, a.WhoAmI(context.Background()), client.ErrUnauthorized)
	assert.False(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Not logged in")
}

func TestProducts(t *testing.T) {
	a, out := newTestApp(&fakeAPI{products: []models.Product{
		{ID: "p-1", ProductName: "Pixel 9", Category: models.CategorySmartphone, Price: 799.5, Quantity: 3},
	}})

	require.NoError(t, a.Products(context.Background()))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "Pixel 9")
	assert.Contains(t, lines[1], "SMARTPHONE")
	assert.Contains(t, lines[1], "799.50")
}

func TestProducts_EmptyAndError(t *testing.T) {
	a, out := newTestApp(&fakeAPI{})
	require.NoError(t, a.Products(context.Background()))
	assert.Equal(t, "No products.\n", out.String())

	a, out = newTestApp(&fakeAPI{productsErr: client.ErrUnauthorized})
	assert.Error(t, a.Products(context.Background()))
	assert.Contains(t, out.String(), "Not logged in")
}

func TestNewApp_BadURL(t *testing.T) {
	_, err := NewApp(&config.Config{ServerURL: "::bad"})
	assert.Error(t, err)

	a, err := NewApp(&config.Config{ServerURL: "http://127.0.0.1:1"})
	require.NoError(t, err)
	assert.False(t, a.isLoggedIn())
}
