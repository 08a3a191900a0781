package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmehra2102/grocery-order-service/internal/inventory/application"
	"github.com/dmehra2102/grocery-order-service/internal/inventory/domain"
	"github.com/dmehra2102/grocery-order-service/internal/inventory/infrastructure/memory"
)

type stubSearcher struct{}

func (stubSearcher) SearchPhoto(context.Context, string) (string, error) {
	return "https://images.pexels.com/x.jpg", nil
}

func newTestHandler(t *testing.T) (http.Handler, *memory.Repository) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := memory.NewRepository(
		domain.Item{ID: "A", Name: "Apple", Category: "Fruits", Price: decimal.RequireFromString("120"), StockQuantity: 50, Unit: "kg", IsActive: true},
		domain.Item{ID: "M", Name: "Milk", Category: "Dairy", Price: decimal.RequireFromString("60.5"), StockQuantity: 0, Unit: "liter", IsActive: true},
	)
	h := NewHandler(log,
		application.NewService(log, repo),
		application.NewStockManager(log, repo, false),
		application.NewImageService(log, stubSearcher{}),
	)
	return h.Routes(), repo
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, r))
	return rec
}

func TestCatalogReads(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := do(h, http.MethodGet, "/items/A", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"price":120.00`)
	assert.Contains(t, rec.Body.String(), `"stockQuantity":50`)

	assert.Equal(t, http.StatusNotFound, do(h, http.MethodGet, "/items/zzz", "").Code)

	rec = do(h, http.MethodGet, "/categories", "")
	assert.JSONEq(t, `["Fruits","Dairy"]`, rec.Body.String())

	rec = do(h, http.MethodGet, "/items/category/all", "")
	assert.Equal(t, 2, strings.Count(rec.Body.String(), `"id"`))

	rec = do(h, http.MethodGet, "/items/category/dairy", "")
	assert.Contains(t, rec.Body.String(), "Milk")
	assert.NotContains(t, rec.Body.String(), "Apple")

	rec = do(h, http.MethodGet, "/search?q=app", "")
	assert.Contains(t, rec.Body.String(), "Apple")
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodGet, "/search", "").Code)
}

func TestStockEndpoints(t *testing.T) {
	h, repo := newTestHandler(t)

	rec := do(h, http.MethodGet, "/items/A/stock-check?quantity=50", "")
	assert.Equal(t, "true\n", rec.Body.String())
	rec = do(h, http.MethodGet, "/items/A/stock-check?quantity=51", "")
	assert.Equal(t, "false\n", rec.Body.String())
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodGet, "/items/A/stock-check?quantity=x", "").Code)

	assert.Equal(t, http.StatusOK, do(h, http.MethodPut, "/items/M/stock?stock=12", "").Code)
	it, _ := repo.Get(context.Background(), "M")
	assert.Equal(t, 12, it.StockQuantity)

	assert.Equal(t, http.StatusNotFound, do(h, http.MethodPut, "/items/nope/stock?stock=1", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodPut, "/items/M/stock?stock=-3", "").Code)
}

func TestAddItem(t *testing.T) {
	h, repo := newTestHandler(t)

	rec := do(h, http.MethodPost, "/items", `{"name":"Kiwi","category":"Fruits","price":250.00,"stockQuantity":30,"unit":"kg"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"isActive":true`)

	found, err := repo.SearchActive(context.Background(), "kiwi")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.NotEmpty(t, found[0].ID)

	rec = do(h, http.MethodPost, "/items", `{"name":"Bad","price":-1,"stockQuantity":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(h, http.MethodPost, "/items", `{"name":"Hidden","price":"3.50","stockQuantity":1,"isActive":false}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"isActive":false`)

	rec = do(h, http.MethodPost, "/items", `{"id":"A","name":"Green Apple","category":"Fruits","price":130,"stockQuantity":1,"unit":"kg"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"stockQuantity":50`)
	apple, err := repo.Get(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, "Green Apple", apple.Name)
	assert.Equal(t, 50, apple.StockQuantity)
}

func TestImageEndpoints(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := do(h, http.MethodGet, "/images?name=Apple&category=Fruits", "")
	assert.JSONEq(t, `{"imageUrl":"https://images.pexels.com/x.jpg"}`, rec.Body.String())

	rec = do(h, http.MethodGet, "/images/cache", "")
	assert.JSONEq(t, `{"cacheSize":1}`, rec.Body.String())

	assert.Equal(t, http.StatusOK, do(h, http.MethodDelete, "/images/cache", "").Code)
	rec = do(h, http.MethodGet, "/images/cache", "")
	assert.JSONEq(t, `{"cacheSize":0}`, rec.Body.String())
}
