package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/ktpm/catalog/internal/logging"
	"github.com/ktpm/catalog/internal/server/auth"
	"github.com/ktpm/catalog/internal/server/models"
)

type ctxKey string

const identityKey ctxKey = "identity"

// TokenParser is the part of auth.TokenService the gate depends on.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// Gate rejects requests outside the public prefixes unless they carry a
// valid session cookie. Only the cookie is consulted; forwarding and
// Authorization headers are ignored.
type Gate struct {
	tokens     TokenParser
	cookieName string
	public     []string
	metrics    *Metrics
	log        logging.Logger
}

func NewGate(tokens TokenParser, cookieName string, public []string, m *Metrics, log logging.Logger) *Gate {
	return &Gate{
		tokens:     tokens,
		cookieName: cookieName,
		public:     public,
		metrics:    m,
		log:        log.With("module", "gate"),
	}
}

func (g *Gate) isPublic(path string) bool {
	for _, p := range g.public {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if g.isPublic(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		c, err := r.Cookie(g.cookieName)
		if err != nil || c.Value == "" {
			g.reject(w, r, "missing")
			return
		}

		claims, err := g.tokens.Parse(c.Value)
		if err != nil {
			g.log.Debug(r.Context(), "token rejected", "path", r.URL.Path, "error", err)
			g.reject(w, r, "invalid")
			return
		}

		id := &models.Identity{ID: claims.UserID, UserName: claims.Subject}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

func (g *Gate) reject(w http.ResponseWriter, r *http.Request, reason string) {
	if g.metrics != nil {
		g.metrics.GateRejections.WithLabelValues(reason).Inc()
	}
	writeUnauthorized(w)
}

func WithIdentity(ctx context.Context, id *models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom returns the identity bound by the gate, or nil.
func IdentityFrom(ctx context.Context) *models.Identity {
	id, _ := ctx.Value(identityKey).(*models.Identity)
	return id
}
