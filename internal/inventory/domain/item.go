package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrItemNotFound = errors.New("item not found")
	ErrInvalidItem  = errors.New("invalid item")
)

// Item is one catalog entry. Items are deactivated rather than deleted.
type Item struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	ImageURL      string          `json:"imageUrl"`
	Unit          string          `json:"unit"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func (i Item) Validate() error {
	switch {
	case i.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidItem)
	case i.Price.IsNegative():
		return fmt.Errorf("%w: price must not be negative", ErrInvalidItem)
	case i.StockQuantity < 0:
		return fmt.Errorf("%w: stock quantity must not be negative", ErrInvalidItem)
	}
	return nil
}

// HasStock reports whether at least q units are on hand.
func (i Item) HasStock(q int) bool {
	return i.StockQuantity >= q
}
