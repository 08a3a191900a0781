// Package memory is the in-process catalog store used by the memory storage
// driver and by tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dmehra2102/grocery-order-service/internal/inventory/domain"
)

type Repository struct {
	mu    sync.RWMutex
	items map[string]domain.Item
}

func NewRepository(items ...domain.Item) *Repository {
	r := &Repository{items: make(map[string]domain.Item, len(items))}
	for _, it := range items {
		r.items[it.ID] = it
	}
	return r
}

func (r *Repository) Get(_ context.Context, id string) (domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	it, ok := r.items[id]
	if !ok {
		return domain.Item{}, domain.ErrItemNotFound
	}
	return it, nil
}

func (r *Repository) ListActive(_ context.Context) ([]domain.Item, error) {
	return r.filter(func(domain.Item) bool { return true }), nil
}

func (r *Repository) ListActiveByCategory(_ context.Context, category string) ([]domain.Item, error) {
	return r.filter(func(it domain.Item) bool {
		return strings.EqualFold(it.Category, category)
	}), nil
}

func (r *Repository) SearchActive(_ context.Context, term string) ([]domain.Item, error) {
	term = strings.ToLower(term)
	return r.filter(func(it domain.Item) bool {
		return strings.Contains(strings.ToLower(it.Name), term)
	}), nil
}

// Save inserts item, or updates its catalog fields. Stock of an existing item
// only changes through UpdateStock and AdjustStock.
func (r *Repository) Save(_ context.Context, item domain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.items[item.ID]; ok {
		item.StockQuantity = old.StockQuantity
		item.CreatedAt = old.CreatedAt
	}
	r.items[item.ID] = item
	return nil
}

func (r *Repository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items), nil
}

func (r *Repository) UpdateStock(_ context.Context, id string, quantity int, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return domain.ErrItemNotFound
	}
	it.StockQuantity = quantity
	it.UpdatedAt = at
	r.items[id] = it
	return nil
}

func (r *Repository) AdjustStock(_ context.Context, id string, delta int, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return false, domain.ErrItemNotFound
	}
	if it.StockQuantity+delta < 0 {
		return false, nil
	}
	it.StockQuantity += delta
	it.UpdatedAt = at
	r.items[id] = it
	return true, nil
}

// filter returns matching active items sorted by name.
func (r *Repository) filter(match func(domain.Item) bool) []domain.Item {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Item, 0)
	for _, it := range r.items {
		if it.IsActive && match(it) {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}
