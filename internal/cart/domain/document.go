package domain

import (
	"fmt"
	"time"

	"github.com/dmehra2102/grocery-order-service/pkg/document"
)

// Document is the stored shape of a cart: {userId, items, updatedAt}.
type Document = map[string]any

// LineError describes a stored line that could not be decoded.
type LineError struct {
	ItemID string
	Err    error
}

func (e LineError) Error() string {
	return fmt.Sprintf("cart line %s: %v", e.ItemID, e.Err)
}

func (e LineError) Unwrap() error { return e.Err }

// DecodeCart rebuilds a cart from its stored document. A nil document is an
// empty cart. Lines that fail to decode are kept aside and reported.
func DecodeCart(userID string, doc Document) (*Cart, []LineError) {
	c := NewCart(userID)
	if doc == nil {
		return c, nil
	}
	if t, err := document.Time(doc["updatedAt"]); err == nil {
		c.UpdatedAt = t
	}

	raw, _ := document.Map(doc["items"])
	var errs []LineError
	for key, v := range raw {
		line, err := DecodeLine(key, v)
		if err != nil {
			if c.malformed == nil {
				c.malformed = make(map[string]any)
			}
			c.malformed[key] = v
			errs = append(errs, LineError{ItemID: key, Err: err})
			continue
		}
		c.Items[key] = line
	}
	return c, errs
}

// DecodeLine decodes one stored line. fallbackID is used when the line
// carries no itemId of its own.
func DecodeLine(fallbackID string, v any) (Line, error) {
	m, ok := document.Map(v)
	if !ok {
		return Line{}, fmt.Errorf("not an object: %T", v)
	}
	qty, err := document.Int(m["quantity"])
	if err != nil {
		return Line{}, fmt.Errorf("quantity: %w", err)
	}
	if qty <= 0 {
		return Line{}, fmt.Errorf("quantity %d is not positive", qty)
	}
	price, err := document.Decimal(m["price"])
	if err != nil {
		return Line{}, fmt.Errorf("price: %w", err)
	}

	id := document.String(m["itemId"])
	if id == "" {
		id = fallbackID
	}
	line := Line{
		ItemID:   id,
		Name:     document.String(m["name"]),
		Category: document.String(m["category"]),
		Price:    price,
		ImageURL: document.String(m["imageUrl"]),
		Unit:     document.String(m["unit"]),
		InStock:  document.BoolOr(m["inStock"], true),
	}
	return line.WithQuantity(qty), nil
}

func EncodeCart(c *Cart) Document {
	items := make(map[string]any, len(c.Items)+len(c.malformed))
	for k, v := range c.malformed {
		items[k] = v
	}
	for k, l := range c.Items {
		items[k] = EncodeLine(l)
	}
	doc := Document{
		"userId": c.UserID,
		"items":  items,
	}
	if c.UpdatedAt != nil {
		doc["updatedAt"] = c.UpdatedAt.UTC().Format(time.RFC3339Nano)
	}
	return doc
}

func EncodeLine(l Line) map[string]any {
	return map[string]any{
		"itemId":     l.ItemID,
		"name":       l.Name,
		"category":   l.Category,
		"price":      document.Number(l.Price),
		"quantity":   l.Quantity,
		"imageUrl":   l.ImageURL,
		"unit":       l.Unit,
		"totalPrice": document.Number(l.TotalPrice),
		"inStock":    l.InStock,
	}
}
