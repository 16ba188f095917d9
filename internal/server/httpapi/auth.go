package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ktpm/catalog/internal/common"
	"github.com/ktpm/catalog/internal/logging"
	"github.com/ktpm/catalog/internal/server/models"
)

// Authenticator is the account API the auth handlers are built on.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*models.Identity, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	GetCurrentUser(token string) (*models.Identity, error)
	IssueToken(id *models.Identity) (string, error)
	DeleteUser(ctx context.Context, id string) error
}

// CookieConfig describes the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

type AuthHandler struct {
	svc     Authenticator
	cookie  CookieConfig
	metrics *Metrics
	log     logging.Logger
}

func NewAuthHandler(svc Authenticator, cookie CookieConfig, m *Metrics, log logging.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, cookie: cookie, metrics: m, log: log.With("module", "auth_http")}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	user, err := h.svc.Register(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, models.Identity{ID: user.ID, UserName: user.UserName})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.Credentials
	if err := decodeJSON(w, r, &req); err != nil {
		h.countLogin("invalid")
		h.fail(w, r, err)
		return
	}

	id, err := h.svc.Authenticate(r.Context(), req.UserName, req.Password)
	if err != nil {
		h.countLogin(loginOutcome(err))
		h.fail(w, r, err)
		return
	}

	token, err := h.svc.IssueToken(id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.countLogin("ok")
	http.SetCookie(w, h.sessionCookie(token, int(h.cookie.TTL.Seconds())))
	writeJSON(w, http.StatusOK, id)
}

// Current reports the identity carried by the session cookie.
func (h *AuthHandler) Current(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(h.cookie.Name)
	if err != nil || c.Value == "" {
		writeUnauthorized(w)
		return
	}

	id, err := h.svc.GetCurrentUser(c.Value)
	if err != nil {
		writeUnauthorized(w)
		return
	}
	writeJSON(w, http.StatusOK, id)
}

// Logout expires the session cookie. The token itself stays valid until it
// expires.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessionCookie("", -1))
	w.WriteHeader(http.StatusOK)
}

// DeleteMe removes the calling account and clears its cookie.
func (h *AuthHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	id := IdentityFrom(r.Context())
	if id == nil {
		writeUnauthorized(w)
		return
	}

	if err := h.svc.DeleteUser(r.Context(), id.ID); err != nil {
		h.fail(w, r, err)
		return
	}
	http.SetCookie(w, h.sessionCookie("", -1))
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookie.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	writeErrorMessage(w, status, messageFor(err))
}

func (h *AuthHandler) countLogin(outcome string) {
	if h.metrics != nil {
		h.metrics.LoginsTotal.WithLabelValues(outcome).Inc()
	}
}

func loginOutcome(err error) string {
	switch {
	case errors.Is(err, common.ErrValidation):
		return "invalid"
	case errors.Is(err, common.ErrUserNotFound):
		return "unknown_user"
	case errors.Is(err, common.ErrWrongPassword):
		return "wrong_password"
	default:
		return "error"
	}
}
