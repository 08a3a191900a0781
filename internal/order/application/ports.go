package application

import (
	"context"

	cartdomain "github.com/dmehra2102/grocery-order-service/internal/cart/domain"
	invdomain "github.com/dmehra2102/grocery-order-service/internal/inventory/domain"
	"github.com/dmehra2102/grocery-order-service/internal/order/domain"
	"github.com/dmehra2102/grocery-order-service/pkg/outbox"
)

// Record is one stored order document with its key.
type Record struct {
	ID  string
	Doc domain.Document
}

// Repository stores order documents. Writes carry an outbox event that is
// persisted atomically with the document.
type Repository interface {
	NewID() string
	Create(ctx context.Context, id, userID string, doc domain.Document, event outbox.Event) error
	Get(ctx context.Context, id string) (domain.Document, error)
	ListByUser(ctx context.Context, userID string) ([]Record, error)
	Update(ctx context.Context, id string, doc domain.Document, event outbox.Event) error
}

type Carts interface {
	Current(ctx context.Context, userID string) (*cartdomain.Cart, error)
	Empty(ctx context.Context, userID string) error
}

type Catalog interface {
	Get(ctx context.Context, id string) (invdomain.Item, error)
}

type Stock interface {
	IsInStock(ctx context.Context, itemID string, quantity int) (bool, error)
}
