package httpapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ktpm/catalog/internal/server/models"
)

func TestProducts_CRUD(t *testing.T) {
	env := newTestEnv(t)
	c := env.registerAndLogin(t, "alice01", "secret123")

	body := map[string]any{
		"productName": "MacBook Air",
		"price":       1199.0,
		"quantity":    4,
		"description": "13-inch laptop",
		"category":    "laptops",
	}
	rec := env.do(t, http.MethodPost, "/products", body, c)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created models.Product
	require.NoError(t, jsonDecode(rec, &created))
	assert.Equal(t, models.CategoryLaptops, created.Category)

	rec = env.do(t, http.MethodGet, "/products/"+created.ID, nil, c)
	require.Equal(t, http.StatusOK, rec.Code)

	body["quantity"] = 0
	rec = env.do(t, http.MethodPut, "/products/"+created.ID, body, c)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated models.Product
	require.NoError(t, jsonDecode(rec, &updated))
	assert.Equal(t, 0, updated.Quantity)

	rec = env.do(t, http.MethodDelete, "/products/"+created.ID, nil, c)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, "/products/"+created.ID, nil, c)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProducts_ValidationDetails(t *testing.T) {
	env := newTestEnv(t)
	c := env.registerAndLogin(t, "alice01", "secret123")

	rec := env.do(t, http.MethodPost, "/products", map[string]any{
		"productName": "x' OR 1=1 --",
		"price":       1.5,
		"quantity":    1,
		"description": "fine",
		"category":    "CAMERAS",
	}, c)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"validation error","details":{"productName":"invalid"}}`, rec.Body.String())
}

func TestProducts_UnknownID(t *testing.T) {
	env := newTestEnv(t)
	c := env.registerAndLogin(t, "alice01", "secret123")

	rec := env.do(t, http.MethodDelete, "/products/nope", nil, c)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"product not found"}`, rec.Body.String())
}
