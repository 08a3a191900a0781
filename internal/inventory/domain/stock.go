package domain

import "fmt"

// Restock is a command from the supplier feed adding units to an item.
type Restock struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

func (r Restock) Validate() error {
	if r.ItemID == "" {
		return fmt.Errorf("restock: missing itemId")
	}
	if r.Quantity <= 0 {
		return fmt.Errorf("restock: quantity must be positive, got %d", r.Quantity)
	}
	return nil
}
