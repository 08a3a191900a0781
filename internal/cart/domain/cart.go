package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmehra2102/grocery-order-service/pkg/document"
)

// Line is one item in a cart. Price is the catalog price captured when the
// line was last written by an add.
type Line struct {
	ItemID     string          `json:"itemId"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
	ImageURL   string          `json:"imageUrl"`
	Unit       string          `json:"unit"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	InStock    bool            `json:"inStock"`
}

// WithQuantity returns l holding q units with the total recomputed.
func (l Line) WithQuantity(q int) Line {
	l.Quantity = q
	l.TotalPrice = l.Price.Mul(decimal.NewFromInt(int64(q)))
	return l
}

type Cart struct {
	UserID    string
	Items     map[string]Line
	UpdatedAt *time.Time

	// malformed holds stored lines that could not be decoded. They are
	// written back untouched so a bad line never destroys its neighbours.
	malformed map[string]any
}

func NewCart(userID string) *Cart {
	return &Cart{UserID: userID, Items: make(map[string]Line)}
}

// Quantity returns the quantity held for itemID, or 0. A malformed line
// still holds the units recorded in its quantity field.
func (c *Cart) Quantity(itemID string) int {
	if line, ok := c.Items[itemID]; ok {
		return line.Quantity
	}
	return malformedQuantity(c.malformed[itemID])
}

// Held returns the quantity of every line, malformed ones included.
func (c *Cart) Held() map[string]int {
	held := make(map[string]int, len(c.Items)+len(c.malformed))
	for id, v := range c.malformed {
		held[id] = malformedQuantity(v)
	}
	for id, line := range c.Items {
		held[id] = line.Quantity
	}
	return held
}

func malformedQuantity(v any) int {
	m, ok := document.Map(v)
	if !ok {
		return 0
	}
	return max(document.IntOr(m["quantity"], 0), 0)
}

func (c *Cart) Put(line Line) {
	delete(c.malformed, line.ItemID)
	c.Items[line.ItemID] = line
}

func (c *Cart) Remove(itemID string) {
	delete(c.Items, itemID)
	delete(c.malformed, itemID)
}

// Empty drops every line, malformed ones included.
func (c *Cart) Empty() {
	c.Items = make(map[string]Line)
	c.malformed = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) Touch(now time.Time) {
	c.UpdatedAt = &now
}

type Summary struct {
	TotalItems  int             `json:"totalItems"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	AllInStock  bool            `json:"allInStock"`
	ItemCount   int             `json:"itemCount"`
}
