package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmehra2102/grocery-order-service/internal/inventory/application"
	"github.com/dmehra2102/grocery-order-service/internal/inventory/domain"
	"github.com/dmehra2102/grocery-order-service/pkg/api/decode"
	"github.com/dmehra2102/grocery-order-service/pkg/api/response"
)

type Handler struct {
	log     *slog.Logger
	catalog *application.Service
	stock   *application.StockManager
	images  *application.ImageService
	tracer  trace.Tracer
}

func NewHandler(log *slog.Logger, catalog *application.Service, stock *application.StockManager, images *application.ImageService) *Handler {
	return &Handler{
		log:     log,
		catalog: catalog,
		stock:   stock,
		images:  images,
		tracer:  otel.Tracer("inventory-http"),
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/items", h.listItems)
	r.Post("/items", h.addItem)
	r.Get("/items/category/{category}", h.listByCategory)
	r.Get("/items/{id}", h.getItem)
	r.Put("/items/{id}/stock", h.updateStock)
	r.Get("/items/{id}/stock-check", h.checkStock)
	r.Get("/categories", h.categories)
	r.Get("/search", h.search)

	r.Get("/images", h.productImage)
	r.Get("/images/cache", h.imageCacheSize)
	r.Delete("/images/cache", h.clearImageCache)
	return r
}

type itemJSON struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	Category      string      `json:"category"`
	Price         json.Number `json:"price"`
	StockQuantity int         `json:"stockQuantity"`
	ImageURL      string      `json:"imageUrl"`
	Unit          string      `json:"unit"`
	IsActive      bool        `json:"isActive"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

func toJSON(it domain.Item) itemJSON {
	return itemJSON{
		ID:            it.ID,
		Name:          it.Name,
		Description:   it.Description,
		Category:      it.Category,
		Price:         json.Number(it.Price.StringFixed(2)),
		StockQuantity: it.StockQuantity,
		ImageURL:      it.ImageURL,
		Unit:          it.Unit,
		IsActive:      it.IsActive,
		CreatedAt:     it.CreatedAt,
		UpdatedAt:     it.UpdatedAt,
	}
}

func toJSONList(items []domain.Item) []itemJSON {
	out := make([]itemJSON, 0, len(items))
	for _, it := range items {
		out = append(out, toJSON(it))
	}
	return out
}

type addItemReq struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	ImageURL      string          `json:"imageUrl"`
	Unit          string          `json:"unit"`
	IsActive      *bool           `json:"isActive"`
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.ListActive(r.Context())
	if err != nil {
		h.fail(w, "list items", err)
		return
	}
	response.OK(w, toJSONList(items))
}

func (h *Handler) listByCategory(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.ListByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		h.fail(w, "list by category", err)
		return
	}
	response.OK(w, toJSONList(items))
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.catalog.Categories(r.Context())
	if err != nil {
		h.fail(w, "categories", err)
		return
	}
	response.OK(w, cats)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	it, err := h.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, "get item", err)
		return
	}
	response.OK(w, toJSON(it))
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	q, ok := r.URL.Query()["q"]
	if !ok {
		response.BadRequest(w, "missing query parameter q")
		return
	}
	items, err := h.catalog.Search(r.Context(), q[0])
	if err != nil {
		h.fail(w, "search", err)
		return
	}
	response.OK(w, toJSONList(items))
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "AddItem")
	defer span.End()

	var req addItemReq
	if err := decode.JSON(r, &req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	saved, err := h.catalog.SaveItem(ctx, domain.Item{
		ID:            req.ID,
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		ImageURL:      req.ImageURL,
		Unit:          req.Unit,
		IsActive:      active,
	})
	if err != nil {
		h.fail(w, "add item", err)
		return
	}
	span.SetAttributes(attribute.String("item.id", saved.ID))
	response.OK(w, toJSON(saved))
}

func (h *Handler) updateStock(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "UpdateStock")
	defer span.End()

	id := chi.URLParam(r, "id")
	stock, err := strconv.Atoi(r.URL.Query().Get("stock"))
	if err != nil {
		response.BadRequest(w, "invalid stock")
		return
	}
	ok, err := h.stock.SetStock(ctx, id, stock)
	if err != nil {
		h.fail(w, "set stock", err)
		return
	}
	if !ok {
		response.NotFound(w, "item not found")
		return
	}
	response.OK(w, map[string]string{"message": "Stock updated successfully"})
}

func (h *Handler) checkStock(w http.ResponseWriter, r *http.Request) {
	q, err := strconv.Atoi(r.URL.Query().Get("quantity"))
	if err != nil {
		response.BadRequest(w, "invalid quantity")
		return
	}
	in, err := h.stock.IsInStock(r.Context(), chi.URLParam(r, "id"), q)
	if err != nil {
		h.fail(w, "stock check", err)
		return
	}
	response.OK(w, in)
}

func (h *Handler) productImage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	url := h.images.ProductImage(r.Context(), q.Get("name"), q.Get("category"))
	response.OK(w, map[string]string{"imageUrl": url})
}

func (h *Handler) imageCacheSize(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]int{"cacheSize": h.images.CacheSize()})
}

func (h *Handler) clearImageCache(w http.ResponseWriter, _ *http.Request) {
	h.images.ClearCache()
	response.OK(w, map[string]string{"message": "Image cache cleared"})
}

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, domain.ErrInvalidItem):
		response.BadRequest(w, err.Error())
	default:
		h.log.Error(op+" failed", "err", err)
		response.InternalError(w, "Error "+op+": "+err.Error())
	}
}
