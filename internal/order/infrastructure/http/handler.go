package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmehra2102/grocery-order-service/internal/order/application"
	"github.com/dmehra2102/grocery-order-service/internal/order/domain"
	"github.com/dmehra2102/grocery-order-service/pkg/api/decode"
	"github.com/dmehra2102/grocery-order-service/pkg/api/response"
	"github.com/dmehra2102/grocery-order-service/pkg/auth"
)

type Handler struct {
	log      *slog.Logger
	checkout *application.Checkout
	orders   *application.Service
	tracer   trace.Tracer
}

func NewHandler(log *slog.Logger, checkout *application.Checkout, orders *application.Service) *Handler {
	return &Handler{
		log:      log,
		checkout: checkout,
		orders:   orders,
		tracer:   otel.Tracer("order-http"),
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Post("/checkout", h.placeOrder)
	r.Get("/history", h.history)
	r.Get("/track/{trackingId}", h.track)
	r.Get("/{orderId}", h.getOrder)
	r.Put("/{orderId}/status", h.updateStatus)
	return r
}

type checkoutReq struct {
	DeliveryAddress string `json:"deliveryAddress"`
	PaymentMethod   string `json:"paymentMethod"`
}

type statusReq struct {
	Status string `json:"status"`
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

type orderJSON struct {
	OrderID         string        `json:"orderId"`
	UserID          string        `json:"userId"`
	Items           []lineJSON    `json:"items"`
	TotalAmount     json.Number   `json:"totalAmount"`
	Status          domain.Status `json:"status"`
	OrderDate       *time.Time    `json:"orderDate"`
	DeliveryDate    *time.Time    `json:"deliveryDate,omitempty"`
	DeliveryAddress string        `json:"deliveryAddress"`
	PaymentMethod   string        `json:"paymentMethod"`
	TrackingID      string        `json:"trackingId"`
	UpdatedAt       *time.Time    `json:"updatedAt,omitempty"`
}

func toJSON(o domain.Order) orderJSON {
	items := make([]lineJSON, 0, len(o.Items))
	for _, l := range o.Items {
		items = append(items, lineJSON{
			ItemID:     l.ItemID,
			Name:       l.Name,
			Category:   l.Category,
			Price:      json.Number(l.Price.StringFixed(2)),
			Quantity:   l.Quantity,
			ImageURL:   l.ImageURL,
			Unit:       l.Unit,
			TotalPrice: json.Number(l.TotalPrice.StringFixed(2)),
			InStock:    l.InStock,
		})
	}
	return orderJSON{
		OrderID:         o.ID,
		UserID:          o.UserID,
		Items:           items,
		TotalAmount:     json.Number(o.TotalAmount.StringFixed(2)),
		Status:          o.Status,
		OrderDate:       o.OrderDate,
		DeliveryDate:    o.DeliveryDate,
		DeliveryAddress: o.DeliveryAddress,
		PaymentMethod:   o.PaymentMethod,
		TrackingID:      o.TrackingID,
		UpdatedAt:       o.UpdatedAt,
	}
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Checkout")
	defer span.End()

	uid, ok := h.user(w, r)
	if !ok {
		return
	}
	var req checkoutReq
	if err := decode.JSON(r, &req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	receipt, err := h.checkout.Place(ctx, uid, application.PlaceOrder{
		DeliveryAddress: req.DeliveryAddress,
		PaymentMethod:   req.PaymentMethod,
	})
	var issues *domain.CheckoutError
	if errors.As(err, &issues) {
		response.JSON(w, http.StatusBadRequest, map[string]any{
			"success":          false,
			"error":            issues.Error(),
			"issues":           issues.Issues(),
			"outOfStockItems":  nonNil(issues.OutOfStock),
			"unavailableItems": nonNil(issues.Unavailable),
		})
		return
	}
	if err != nil {
		h.fail(w, "checkout", err)
		return
	}

	span.SetAttributes(attribute.String("order.id", receipt.OrderID))
	response.OK(w, map[string]any{
		"success":     true,
		"message":     "Order placed successfully",
		"orderId":     receipt.OrderID,
		"trackingId":  receipt.TrackingID,
		"totalAmount": json.Number(receipt.TotalAmount.StringFixed(2)),
	})
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.user(w, r)
	if !ok {
		return
	}
	orders := h.orders.List(r.Context(), uid)
	out := make([]orderJSON, 0, len(orders))
	for _, o := range orders {
		out = append(out, toJSON(o))
	}
	response.OK(w, out)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.user(w, r)
	if !ok {
		return
	}
	o, err := h.orders.Get(r.Context(), uid, chi.URLParam(r, "orderId"))
	if err != nil {
		h.fail(w, "get order", err)
		return
	}
	response.OK(w, toJSON(o))
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "UpdateOrderStatus")
	defer span.End()

	var req statusReq
	if err := decode.JSON(r, &req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	id := chi.URLParam(r, "orderId")
	span.SetAttributes(attribute.String("order.id", id), attribute.String("order.status", req.Status))

	if err := h.orders.UpdateStatus(ctx, id, req.Status); err != nil {
		h.fail(w, "update order status", err)
		return
	}
	response.OK(w, map[string]string{"message": "Order status updated successfully"})
}

func (h *Handler) track(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.user(w, r)
	if !ok {
		return
	}
	t, err := h.orders.Track(r.Context(), uid, chi.URLParam(r, "trackingId"))
	if err != nil {
		h.fail(w, "track order", err)
		return
	}
	response.OK(w, t)
}

func (h *Handler) user(w http.ResponseWriter, r *http.Request) (string, bool) {
	uid, ok := auth.UserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthenticated")
	}
	return uid, ok
}

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		response.Forbidden(w, err.Error())
	case errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrMissingDeliveryAddress),
		errors.Is(err, domain.ErrInvalidStatus):
		response.BadRequest(w, err.Error())
	default:
		h.log.Error(op+" failed", "err", err)
		response.InternalError(w, "Error "+op+": "+err.Error())
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
