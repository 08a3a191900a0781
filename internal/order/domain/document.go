package domain

import (
	"fmt"
	"time"

	cartdomain "github.com/dmehra2102/grocery-order-service/internal/cart/domain"
	"github.com/dmehra2102/grocery-order-service/pkg/document"
)

// Document is the stored shape of an order.
type Document = map[string]any

func EncodeOrder(o Order) Document {
	items := make([]any, 0, len(o.Items))
	for _, l := range o.Items {
		items = append(items, cartdomain.EncodeLine(l))
	}
	doc := Document{
		"orderId":         o.ID,
		"userId":          o.UserID,
		"items":           items,
		"totalAmount":     document.Number(o.TotalAmount),
		"status":          string(o.Status),
		"deliveryAddress": o.DeliveryAddress,
		"paymentMethod":   o.PaymentMethod,
		"trackingId":      o.TrackingID,
	}
	putTime(doc, "orderDate", o.OrderDate)
	putTime(doc, "deliveryDate", o.DeliveryDate)
	putTime(doc, "updatedAt", o.UpdatedAt)
	return doc
}

func putTime(doc Document, key string, t *time.Time) {
	if t != nil {
		doc[key] = t.UTC().Format(time.RFC3339Nano)
	}
}

// DecodeOrder rebuilds an order. id is used when the document carries no
// orderId. Any malformed line fails the whole order.
func DecodeOrder(id string, doc Document) (Order, error) {
	if doc == nil {
		return Order{}, fmt.Errorf("order %s: empty document", id)
	}
	o := Order{
		ID:              document.String(doc["orderId"]),
		UserID:          document.String(doc["userId"]),
		Status:          Status(document.String(doc["status"])),
		DeliveryAddress: document.String(doc["deliveryAddress"]),
		PaymentMethod:   document.String(doc["paymentMethod"]),
		TrackingID:      document.String(doc["trackingId"]),
	}
	if o.ID == "" {
		o.ID = id
	}

	total, err := document.Decimal(doc["totalAmount"])
	if err != nil {
		return Order{}, fmt.Errorf("order %s: totalAmount: %w", o.ID, err)
	}
	o.TotalAmount = total

	for key, dst := range map[string]**time.Time{
		"orderDate":    &o.OrderDate,
		"deliveryDate": &o.DeliveryDate,
		"updatedAt":    &o.UpdatedAt,
	} {
		t, err := document.Time(doc[key])
		if err != nil {
			return Order{}, fmt.Errorf("order %s: %s: %w", o.ID, key, err)
		}
		*dst = t
	}

	raw, _ := doc["items"].([]any)
	for i, v := range raw {
		line, err := cartdomain.DecodeLine("", v)
		if err != nil {
			return Order{}, fmt.Errorf("order %s: line %d: %w", o.ID, i, err)
		}
		o.Items = append(o.Items, line)
	}
	return o, nil
}
