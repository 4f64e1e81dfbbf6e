package catalog_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/shopgate/internal/catalog"
)

func newTestRouter(t *testing.T, storage catalog.Storage) http.Handler {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := catalog.NewService(storage)
	h := catalog.NewHandler(svc, log)

	r := chi.NewRouter()
	r.Route("/products", h.Register)
	return r
}

func doRequest(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_CreateAndList(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, newMemStorage())

	rec := doRequest(t, router, http.MethodPost, "/products", map[string]any{
		"pname":       "Widget",
		"description": "a widget",
		"price":       9.99,
		"stock":       5,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"message":"Product added"}`, rec.Body.String())

	rec = doRequest(t, router, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var products []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 1)
	// Price must survive as an exact decimal number on the wire.
	assert.Equal(t, "9.99", string(products[0]["price"]))
	assert.Equal(t, `"Widget"`, string(products[0]["name"]))
}

func TestHandler_Create_MissingFields(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, newMemStorage())

	for name, body := range map[string]map[string]any{
		"no name":  {"price": 1.0, "stock": 1},
		"no price": {"pname": "Widget", "stock": 1},
		"no stock": {"pname": "Widget", "price": 1.0},
	} {
		t.Run(name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodPost, "/products", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"error":"missing fields"}`, rec.Body.String())
		})
	}
}

func TestHandler_List_Empty(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, newMemStorage())

	rec := doRequest(t, router, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandler_Update(t *testing.T) {
	t.Parallel()
	storage := newMemStorage()
	router := newTestRouter(t, storage)

	rec := doRequest(t, router, http.MethodPost, "/products", map[string]any{
		"pname": "Widget", "description": "a widget", "price": 9.99, "stock": 5,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	products, err := storage.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	id := products[0].ID

	rec = doRequest(t, router, http.MethodPut, "/products/"+id.String(), map[string]any{"stock": 7})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Product updated"}`, rec.Body.String())

	got, err := storage.GetProduct(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Name)
	assert.Equal(t, "a widget", got.Description)
	assert.True(t, got.Price.Equal(mustDecimal(t, "9.99")))
	assert.Equal(t, int32(7), got.Stock)
}

func TestHandler_Update_NotFound(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, newMemStorage())

	rec := doRequest(t, router, http.MethodPut, "/products/"+uuid.NewString(), map[string]any{"stock": 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"product not found"}`, rec.Body.String())

	// A malformed id is indistinguishable from a missing product.
	rec = doRequest(t, router, http.MethodPut, "/products/not-a-uuid", map[string]any{"stock": 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Delete(t *testing.T) {
	t.Parallel()
	storage := newMemStorage()
	router := newTestRouter(t, storage)

	rec := doRequest(t, router, http.MethodPost, "/products", map[string]any{
		"pname": "Widget", "price": 9.99, "stock": 5,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	products, err := storage.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	id := products[0].ID

	rec = doRequest(t, router, http.MethodDelete, "/products/"+id.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Product deleted"}`, rec.Body.String())

	rec = doRequest(t, router, http.MethodDelete, "/products/"+id.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"product not found"}`, rec.Body.String())
}
