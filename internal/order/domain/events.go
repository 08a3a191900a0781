package domain

import (
	"encoding/json"
	"time"
)

const (
	AggregateType          = "order"
	EventOrderPlaced       = "OrderPlaced"
	EventOrderStatusChange = "OrderStatusChanged"
)

type EventLine struct {
	ItemID   string      `json:"itemId"`
	Quantity int         `json:"quantity"`
	Price    json.Number `json:"price"`
}

type OrderPlaced struct {
	OrderID     string      `json:"orderId"`
	UserID      string      `json:"userId"`
	TrackingID  string      `json:"trackingId"`
	TotalAmount json.Number `json:"totalAmount"`
	Items       []EventLine `json:"items"`
	PlacedAt    time.Time   `json:"placedAt"`
}

type OrderStatusChanged struct {
	OrderID   string    `json:"orderId"`
	UserID    string    `json:"userId"`
	Status    Status    `json:"status"`
	ChangedAt time.Time `json:"changedAt"`
}

func NewOrderPlaced(o Order, at time.Time) OrderPlaced {
	lines := make([]EventLine, 0, len(o.Items))
	for _, l := range o.Items {
		lines = append(lines, EventLine{ItemID: l.ItemID, Quantity: l.Quantity, Price: json.Number(l.Price.StringFixed(2))})
	}
	return OrderPlaced{
		OrderID:     o.ID,
		UserID:      o.UserID,
		TrackingID:  o.TrackingID,
		TotalAmount: json.Number(o.TotalAmount.StringFixed(2)),
		Items:       lines,
		PlacedAt:    at,
	}
}
