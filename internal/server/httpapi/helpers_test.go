package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ktpm/catalog/internal/logging"
	"github.com/ktpm/catalog/internal/server/auth"
	"github.com/ktpm/catalog/internal/server/repositories/repomanager"
	"github.com/ktpm/catalog/internal/server/services"
)

type testEnv struct {
	handler http.Handler
	now     time.Time
	metrics *Metrics
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}

	tokens, err := auth.NewTokenService([]byte("http-test-secret"), 24*time.Hour,
		auth.WithClock(func() time.Time { return env.now }))
	require.NoError(t, err)

	m := repomanager.NewInMemoryRepositoryManager()
	log := logging.Nop{}
	env.metrics = NewMetrics(prometheus.NewRegistry())

	env.handler = NewRouter(Deps{
		Auth:    services.NewAuthService(m, auth.NewBcryptHasher(bcrypt.MinCost), tokens, log),
		Catalog: services.NewProductService(m, log),
		Tokens:  tokens,
		Cookie:  CookieConfig{Name: "token", Secure: true, TTL: 24 * time.Hour},
		Public:  []string{"/auth/", "/healthz", "/metrics"},
		Metrics: env.metrics,
		Logger:  log,
	})
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) registerAndLogin(t *testing.T, name, pw string) *http.Cookie {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/auth/register", map[string]string{
		"username": name, "password": pw, "verifyPassword": pw,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = e.do(t, http.MethodPost, "/auth/login", map[string]string{"username": name, "password": pw})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return sessionCookie(t, rec)
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	t.Fatalf("no session cookie in response")
	return nil
}

const unauthorizedBody = `{"error":"Invalid or missing token"}`

func jsonDecode(rec *httptest.ResponseRecorder, v any) error {
	return json.NewDecoder(rec.Body).Decode(v)
}

func stringsReader(s string) *bytes.Reader {
	return bytes.NewReader([]byte(s))
}
