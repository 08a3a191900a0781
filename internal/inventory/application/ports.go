package application

import (
	"context"
	"time"

	"github.com/dmehra2102/grocery-order-service/internal/inventory/domain"
)

// Repository is the catalog store. Missing items are reported as
// domain.ErrItemNotFound.
type Repository interface {
	Get(ctx context.Context, id string) (domain.Item, error)
	ListActive(ctx context.Context) ([]domain.Item, error)
	// ListActiveByCategory matches category case-insensitively.
	ListActiveByCategory(ctx context.Context, category string) ([]domain.Item, error)
	// SearchActive matches term as a case-insensitive substring of the name.
	SearchActive(ctx context.Context, term string) ([]domain.Item, error)
	Save(ctx context.Context, item domain.Item) error
	Count(ctx context.Context) (int, error)

	UpdateStock(ctx context.Context, id string, quantity int, at time.Time) error
	// AdjustStock adds delta in a single conditional write and reports false
	// when the result would be negative.
	AdjustStock(ctx context.Context, id string, delta int, at time.Time) (bool, error)
}

type ImageSearcher interface {
	SearchPhoto(ctx context.Context, query string) (string, error)
}
