// Package httpapi is the REST surface of the catalog: the session gate, the
// /auth endpoints, the product CRUD and the operational endpoints.
package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ktpm/catalog/internal/logging"
)

// Deps bundles what NewRouter wires together.
type Deps struct {
	Auth    Authenticator
	Catalog Catalog
	Tokens  TokenParser
	Cookie  CookieConfig
	Public  []string
	Metrics *Metrics
	Logger  logging.Logger
}

// NewRouter returns the full handler chain. The gate wraps the router so
// unknown paths are refused to anonymous callers as well.
func NewRouter(d Deps) http.Handler {
	ah := NewAuthHandler(d.Auth, d.Cookie, d.Metrics, d.Logger)
	ph := NewProductHandler(d.Catalog, d.Logger)

	r := mux.NewRouter()
	r.Use(d.Metrics.Middleware, requestLogger(d.Logger))

	a := r.PathPrefix("/auth").Subrouter()
	a.HandleFunc("/register", ah.Register).Methods(http.MethodPost)
	a.HandleFunc("/login", ah.Login).Methods(http.MethodPost)
	a.HandleFunc("/current", ah.Current).Methods(http.MethodGet)
	a.HandleFunc("/logout", ah.Logout).Methods(http.MethodPost)

	r.HandleFunc("/products", ph.List).Methods(http.MethodGet)
	r.HandleFunc("/products", ph.Create).Methods(http.MethodPost)
	r.HandleFunc("/products/{id}", ph.Get).Methods(http.MethodGet)
	r.HandleFunc("/products/{id}", ph.Update).Methods(http.MethodPut)
	r.HandleFunc("/products/{id}", ph.Delete).Methods(http.MethodDelete)
	r.HandleFunc("/users/me", ah.DeleteMe).Methods(http.MethodDelete)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	r.Handle("/metrics", d.Metrics.Handler()).Methods(http.MethodGet)

	gate := NewGate(d.Tokens, d.Cookie.Name, d.Public, d.Metrics, d.Logger)
	return recoverer(d.Logger)(gate.Middleware(r))
}
