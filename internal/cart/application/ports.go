package application

import (
	"context"

	"github.com/dmehra2102/grocery-order-service/internal/cart/domain"
	invdomain "github.com/dmehra2102/grocery-order-service/internal/inventory/domain"
)

// Store keeps one cart document per user. Load returns a nil document for a
// user that has never written a cart.
type Store interface {
	Load(ctx context.Context, userID string) (domain.Document, error)
	Save(ctx context.Context, userID string, doc domain.Document) error
}

type Catalog interface {
	Get(ctx context.Context, id string) (invdomain.Item, error)
}

type Stock interface {
	IsInStock(ctx context.Context, itemID string, quantity int) (bool, error)
	Reserve(ctx context.Context, itemID string, quantity int) (bool, error)
	Release(ctx context.Context, itemID string, quantity int) (bool, error)
}
