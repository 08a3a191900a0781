package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmehra2102/grocery-order-service/internal/cart/application"
	"github.com/dmehra2102/grocery-order-service/internal/cart/domain"
	"github.com/dmehra2102/grocery-order-service/pkg/api/decode"
	"github.com/dmehra2102/grocery-order-service/pkg/api/response"
	"github.com/dmehra2102/grocery-order-service/pkg/auth"
)

// Handler serves the shopper's cart. Routes expect auth.Middleware in front.
type Handler struct {
	log    *slog.Logger
	svc    *application.Service
	tracer trace.Tracer
}

func NewHandler(log *slog.Logger, svc *application.Service) *Handler {
	return &Handler{log: log, svc: svc, tracer: otel.Tracer("cart-http")}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.getCart)
	r.Post("/add", h.addItem)
	r.Put("/update", h.updateItem)
	r.Delete("/remove/{itemId}", h.removeItem)
	r.Delete("/clear", h.clear)
	r.Get("/summary", h.summary)
	return r
}

type lineJSON struct {
	ItemID     string      `json:"itemId"`
	Name       string      `json:"name"`
	Category   string      `json:"category"`
	Price      json.Number `json:"price"`
	Quantity   int         `json:"quantity"`
	ImageURL   string      `json:"imageUrl"`
	Unit       string      `json:"unit"`
	TotalPrice json.Number `json:"totalPrice"`
	InStock    bool        `json:"inStock"`
}

type cartJSON struct {
	UserID    string              `json:"userId"`
	Items     map[string]lineJSON `json:"items"`
	UpdatedAt *time.Time          `json:"updatedAt,omitempty"`
}

type summaryJSON struct {
	TotalItems  int         `json:"totalItems"`
	TotalAmount json.Number `json:"totalAmount"`
	AllInStock  bool        `json:"allInStock"`
	ItemCount   int         `json:"itemCount"`
}

type changeReq struct {
	ItemID   string `json:"itemId"`
	Quantity *int   `json:"quantity"`
}

func toCartJSON(c *domain.Cart) cartJSON {
	out := cartJSON{UserID: c.UserID, Items: make(map[string]lineJSON, len(c.Items)), UpdatedAt: c.UpdatedAt}
	for id, l := range c.Items {
		out.Items[id] = lineJSON{
			ItemID:     l.ItemID,
			Name:       l.Name,
			Category:   l.Category,
			Price:      json.Number(l.Price.StringFixed(2)),
			Quantity:   l.Quantity,
			ImageURL:   l.ImageURL,
			Unit:       l.Unit,
			TotalPrice: json.Number(l.TotalPrice.StringFixed(2)),
			InStock:    l.InStock,
		}
	}
	return out
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.user(w, r)
	if !ok {
		return
	}
	c, err := h.svc.GetCart(r.Context(), uid)
	if err != nil {
		h.fail(w, "get cart", err)
		return
	}
	response.OK(w, toCartJSON(c))
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "AddToCart")
	defer span.End()

	uid, ok := h.user(w, r)
	if !ok {
		return
	}
	req, ok := h.decodeChange(w, r)
	if !ok {
		return
	}
	span.SetAttributes(attribute.String("item.id", req.ItemID), attribute.Int("item.quantity", *req.Quantity))

	total, err := h.svc.AddItem(ctx, uid, req.ItemID, *req.Quantity)
	if err != nil {
		h.fail(w, "add to cart", err)
		return
	}
	response.OK(w, map[string]any{
		"success":       true,
		"message":       "Item added to cart successfully",
		"totalQuantity": total,
	})
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "UpdateCartItem")
	defer span.End()

	uid, ok := h.user(w, r)
	if !ok {
		return
	}
	req, ok := h.decodeChange(w, r)
	if !ok {
		return
	}
	if err := h.svc.UpdateItem(ctx, uid, req.ItemID, *req.Quantity); err != nil {
		h.fail(w, "update cart", err)
		return
	}
	if *req.Quantity == 0 {
		response.OK(w, map[string]any{"success": true, "message": "Item removed from cart"})
		return
	}
	response.OK(w, map[string]any{
		"success":  true,
		"message":  "Cart updated successfully",
		"quantity": *req.Quantity,
	})
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.user(w, r)
	if !ok {
		return
	}
	if err := h.svc.RemoveItem(r.Context(), uid, chi.URLParam(r, "itemId")); err != nil {
		h.fail(w, "remove from cart", err)
		return
	}
	response.OK(w, map[string]any{"success": true, "message": "Item removed from cart successfully"})
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.user(w, r)
	if !ok {
		return
	}
	if err := h.svc.Clear(r.Context(), uid); err != nil {
		h.fail(w, "clear cart", err)
		return
	}
	response.OK(w, map[string]any{"success": true, "message": "Cart cleared successfully"})
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.user(w, r)
	if !ok {
		return
	}
	s, err := h.svc.GetSummary(r.Context(), uid)
	if err != nil {
		h.fail(w, "cart summary", err)
		return
	}
	response.OK(w, summaryJSON{
		TotalItems:  s.TotalItems,
		TotalAmount: json.Number(s.TotalAmount.StringFixed(2)),
		AllInStock:  s.AllInStock,
		ItemCount:   s.ItemCount,
	})
}

func (h *Handler) user(w http.ResponseWriter, r *http.Request) (string, bool) {
	uid, ok := auth.UserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthenticated")
	}
	return uid, ok
}

func (h *Handler) decodeChange(w http.ResponseWriter, r *http.Request) (changeReq, bool) {
	var req changeReq
	if err := decode.JSON(r, &req); err != nil {
		response.BadRequest(w, err.Error())
		return req, false
	}
	if req.ItemID == "" {
		response.BadRequest(w, "itemId is required")
		return req, false
	}
	if req.Quantity == nil {
		response.BadRequest(w, domain.ErrInvalidQuantity.Error())
		return req, false
	}
	return req, true
}

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	if domain.IsRejection(err) {
		response.BadRequest(w, err.Error())
		return
	}
	h.log.Error(op+" failed", "err", err)
	response.InternalError(w, "Error "+op+": "+err.Error())
}
