package domain

import (
	"time"

	"github.com/shopspring/decimal"

	cartdomain "github.com/dmehra2102/grocery-order-service/internal/cart/domain"
)

type Status string

const (
	StatusPending        Status = "PENDING"
	StatusConfirmed      Status = "CONFIRMED"
	StatusPreparing      Status = "PREPARING"
	StatusOutForDelivery Status = "OUT_FOR_DELIVERY"
	StatusDelivered      Status = "DELIVERED"
	StatusCancelled      Status = "CANCELLED"
)

// Order is a placed order. Lines are the cart lines re-priced at checkout.
type Order struct {
	ID              string
	UserID          string
	Items           []cartdomain.Line
	TotalAmount     decimal.Decimal
	Status          Status
	OrderDate       *time.Time
	DeliveryDate    *time.Time
	DeliveryAddress string
	PaymentMethod   string
	TrackingID      string
	UpdatedAt       *time.Time
}

// SetStatus moves the order to s. Any status is accepted; delivery stamps
// the delivery date.
func (o *Order) SetStatus(s Status, now time.Time) {
	o.Status = s
	o.UpdatedAt = &now
	if s == StatusDelivered {
		o.DeliveryDate = &now
	}
}

func (o Order) IsDelivered() bool {
	return o.Status == StatusDelivered
}

// Tracking is the public view of an order's progress.
type Tracking struct {
	TrackingID   string     `json:"trackingId"`
	Status       Status     `json:"status"`
	OrderDate    *time.Time `json:"orderDate"`
	DeliveryDate *time.Time `json:"deliveryDate"`
	IsDelivered  bool       `json:"isDelivered"`
}

func (o Order) Tracking() Tracking {
	return Tracking{
		TrackingID:   o.TrackingID,
		Status:       o.Status,
		OrderDate:    o.OrderDate,
		DeliveryDate: o.DeliveryDate,
		IsDelivered:  o.IsDelivered(),
	}
}
