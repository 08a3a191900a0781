package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmehra2102/grocery-order-service/internal/inventory/domain"
)

var ErrNonPositiveQuantity = errors.New("quantity must be positive")

// StockManager is the only writer of stock quantities.
//
// By default reserve and release read the item and write back the new
// quantity, so two concurrent reservations of the same item can both
// succeed against the same starting stock. With atomic set they become a
// single conditional update in the store.
type StockManager struct {
	log    *slog.Logger
	repo   Repository
	atomic bool
	now    func() time.Time
}

func NewStockManager(log *slog.Logger, repo Repository, atomic bool) *StockManager {
	return &StockManager{log: log, repo: repo, atomic: atomic, now: time.Now}
}

func (m *StockManager) IsInStock(ctx context.Context, itemID string, quantity int) (bool, error) {
	item, err := m.repo.Get(ctx, itemID)
	if errors.Is(err, domain.ErrItemNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stock check %s: %w", itemID, err)
	}
	return item.HasStock(quantity), nil
}

// Reserve takes quantity units out of stock. It reports false without any
// effect when the item is missing or has fewer units.
func (m *StockManager) Reserve(ctx context.Context, itemID string, quantity int) (bool, error) {
	if quantity <= 0 {
		return false, ErrNonPositiveQuantity
	}
	if m.atomic {
		return m.adjust(ctx, itemID, -quantity)
	}

	item, err := m.repo.Get(ctx, itemID)
	if errors.Is(err, domain.ErrItemNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reserve %s: %w", itemID, err)
	}
	if !item.HasStock(quantity) {
		return false, nil
	}
	return m.write(ctx, itemID, item.StockQuantity-quantity)
}

// Release puts quantity units back. There is no upper bound.
func (m *StockManager) Release(ctx context.Context, itemID string, quantity int) (bool, error) {
	if quantity <= 0 {
		return false, ErrNonPositiveQuantity
	}
	if m.atomic {
		return m.adjust(ctx, itemID, quantity)
	}

	item, err := m.repo.Get(ctx, itemID)
	if errors.Is(err, domain.ErrItemNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("release %s: %w", itemID, err)
	}
	return m.write(ctx, itemID, item.StockQuantity+quantity)
}

func (m *StockManager) SetStock(ctx context.Context, itemID string, quantity int) (bool, error) {
	if quantity < 0 {
		return false, fmt.Errorf("%w: stock quantity must not be negative", domain.ErrInvalidItem)
	}
	return m.write(ctx, itemID, quantity)
}

func (m *StockManager) write(ctx context.Context, itemID string, quantity int) (bool, error) {
	err := m.repo.UpdateStock(ctx, itemID, quantity, m.now().UTC())
	if errors.Is(err, domain.ErrItemNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("update stock %s: %w", itemID, err)
	}
	m.log.Debug("stock updated", "item_id", itemID, "stock", quantity)
	return true, nil
}

func (m *StockManager) adjust(ctx context.Context, itemID string, delta int) (bool, error) {
	ok, err := m.repo.AdjustStock(ctx, itemID, delta, m.now().UTC())
	if errors.Is(err, domain.ErrItemNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("adjust stock %s: %w", itemID, err)
	}
	return ok, nil
}
