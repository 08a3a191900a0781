package domain

import "errors"

var (
	ErrEmptyCart              = errors.New("Cart is empty")
	ErrMissingDeliveryAddress = errors.New("deliveryAddress is required")
	ErrInvalidStatus          = errors.New("status is required")
	ErrOrderNotFound          = errors.New("order not found")
	ErrForbidden              = errors.New("Access denied")
)

// CheckoutError lists cart lines that could not be ordered.
type CheckoutError struct {
	OutOfStock  []string
	Unavailable []string
}

func (e *CheckoutError) Error() string {
	return "Some items in your cart are not available"
}

// Issues returns every problem, out of stock lines first.
func (e *CheckoutError) Issues() []string {
	out := make([]string, 0, len(e.OutOfStock)+len(e.Unavailable))
	out = append(out, e.OutOfStock...)
	return append(out, e.Unavailable...)
}

func (e *CheckoutError) HasIssues() bool {
	return len(e.OutOfStock) > 0 || len(e.Unavailable) > 0
}
