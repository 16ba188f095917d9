package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ktpm/catalog/internal/common"
	"github.com/ktpm/catalog/internal/logging"
	"github.com/ktpm/catalog/internal/server/auth"
)

func TestGate_ProtectedWithoutCookie(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/products", "/products/123", "/users/me", "/no/such/route"} {
		t.Run(path, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, path, nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, unauthorizedBody, rec.Body.String())
		})
	}
}

func TestGate_GarbageAndEmptyCookie(t *testing.T) {
	env := newTestEnv(t)

	for _, v := range []string{"", "garbage", "a.b.c"} {
		rec := env.do(t, http.MethodGet, "/products", nil, &http.Cookie{Name: "token", Value: v})
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "cookie %q", v)
		assert.JSONEq(t, unauthorizedBody, rec.Body.String())
	}
}

func TestGate_IgnoresHeaders(t *testing.T) {
	env := newTestEnv(t)
	c := env.registerAndLogin(t, "alice01", "secret123")

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("Authorization", "Bearer "+c.Value)
	req.Header.Set("X-Forwarded-For", "127.0.0.1")
	req.Header.Set("X-User-Id", "admin")
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGate_ValidCookiePasses(t *testing.T) {
	env := newTestEnv(t)
	c := env.registerAndLogin(t, "alice01", "secret123")

	rec := env.do(t, http.MethodGet, "/products", nil, c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGate_ExpiredToken(t *testing.T) {
	env := newTestEnv(t)
	c := env.registerAndLogin(t, "alice01", "secret123")

	env.now = env.now.Add(23*time.Hour + 59*time.Minute)
	rec := env.do(t, http.MethodGet, "/products", nil, c)
	assert.Equal(t, http.StatusOK, rec.Code)

	env.now = env.now.Add(time.Minute + time.Second)
	rec = env.do(t, http.MethodGet, "/products", nil, c)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, unauthorizedBody, rec.Body.String())
}

func TestGate_PublicPaths(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/auth/logout", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGate_BindsIdentity(t *testing.T) {
	tokens, err := auth.NewTokenService([]byte("k"), time.Hour)
	require.NoError(t, err)
	token, err := tokens.Issue("u-1", "alice01")
	require.NoError(t, err)

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := IdentityFrom(r.Context())
		require.NotNil(t, id)
		seen = id.ID + "/" + id.UserName
	})

	g := NewGate(tokens, common.SessionCookieName, []string{"/auth/"}, nil, logging.Nop{})
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.AddCookie(&http.Cookie{Name: common.SessionCookieName, Value: token})
	g.Middleware(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "u-1/alice01", seen)
}

func TestGate_PublicRequestHasNoIdentity(t *testing.T) {
	tokens, err := auth.NewTokenService([]byte("k"), time.Hour)
	require.NoError(t, err)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Nil(t, IdentityFrom(r.Context()))
	})

	g := NewGate(tokens, "token", []string{"/auth/"}, nil, logging.Nop{})
	g.Middleware(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/auth/login", nil))
	assert.True(t, called)
}
