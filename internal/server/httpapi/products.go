package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ktpm/catalog/internal/logging"
	"github.com/ktpm/catalog/internal/server/models"
	"github.com/ktpm/catalog/internal/server/services"
)

// Catalog is the product API behind the gate.
type Catalog interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) (*models.Product, error)
	Update(ctx context.Context, id string, p *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

type ProductHandler struct {
	svc Catalog
	log logging.Logger
}

func NewProductHandler(svc Catalog, log logging.Logger) *ProductHandler {
	return &ProductHandler{svc: svc, log: log.With("module", "products_http")}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p models.Product
	if err := decodeJSON(w, r, &p); err != nil {
		h.fail(w, r, err)
		return
	}

	created, err := h.svc.Create(r.Context(), &p)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var p models.Product
	if err := decodeJSON(w, r, &p); err != nil {
		h.fail(w, r, err)
		return
	}

	updated, err := h.svc.Update(r.Context(), mux.Vars(r)["id"], &p)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		details := make(map[string]string, len(verr.Fields))
		for _, f := range verr.Fields {
			details[f] = "invalid"
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: messageFor(err), Details: details})
		return
	}

	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	writeErrorMessage(w, status, messageFor(err))
}
