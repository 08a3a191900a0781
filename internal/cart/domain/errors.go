package domain

import (
	"errors"
	"fmt"
)

// Rule violations reported back to the shopper.
var (
	ErrInvalidQuantity    = errors.New("Invalid quantity")
	ErrProductNotFound    = errors.New("Product not found")
	ErrProductUnavailable = errors.New("Product is not available")
	ErrOutOfStock         = errors.New("Product is out of stock")
	ErrReserveFailed      = errors.New("Failed to reserve stock for the item")
)

type InsufficientStockError struct {
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock. Only %d items available", e.Available)
}

// AddLimitError reports how many more units fit on top of what the cart
// already holds.
type AddLimitError struct {
	Requested int
	Remaining int
}

func (e *AddLimitError) Error() string {
	return fmt.Sprintf("Cannot add %d items. Only %d more items can be added", e.Requested, e.Remaining)
}

// IsRejection reports whether err is a rule violation rather than a store
// failure.
func IsRejection(err error) bool {
	var (
		insufficient *InsufficientStockError
		limit        *AddLimitError
	)
	switch {
	case errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrProductUnavailable),
		errors.Is(err, ErrOutOfStock),
		errors.Is(err, ErrReserveFailed),
		errors.As(err, &insufficient),
		errors.As(err, &limit):
		return true
	}
	return false
}
