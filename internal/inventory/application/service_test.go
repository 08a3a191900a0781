package application

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmehra2102/grocery-order-service/internal/inventory/domain"
	"github.com/dmehra2102/grocery-order-service/internal/inventory/infrastructure/memory"
)

func catalog() *memory.Repository {
	mk := func(id, name, cat string, active bool) domain.Item {
		return domain.Item{ID: id, Name: name, Category: cat, Price: decimal.NewFromInt(1), StockQuantity: 1, IsActive: active}
	}
	return memory.NewRepository(
		mk("1", "Apple", "Fruits", true),
		mk("2", "Banana", "Fruits", true),
		mk("3", "Carrot", "Vegetables", true),
		mk("4", "Durian", "Exotic", false),
		mk("5", "Pineapple Juice", "Beverages", true),
	)
}

func TestServiceQueries(t *testing.T) {
	ctx := context.Background()
	s := NewService(discardLogger(), catalog())

	all, err := s.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	viaAll, err := s.ListByCategory(ctx, "ALL")
	require.NoError(t, err)
	assert.Equal(t, all, viaAll)

	fruits, err := s.ListByCategory(ctx, "fruits")
	require.NoError(t, err)
	assert.Len(t, fruits, 2)

	exotic, err := s.ListByCategory(ctx, "Exotic")
	require.NoError(t, err)
	assert.Empty(t, exotic)

	cats, err := s.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fruits", "Vegetables", "Beverages"}, cats)

	found, err := s.Search(ctx, " APPLE ")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	_, err = s.Get(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestServiceSaveItem(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()
	s := NewService(discardLogger(), repo)
	now := time.Date(2025, 2, 2, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	s.newID = func() string { return "generated" }

	saved, err := s.SaveItem(ctx, domain.Item{Name: "Kiwi", Price: decimal.RequireFromString("250.00"), StockQuantity: 30, IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, "generated", saved.ID)
	assert.Equal(t, now, saved.CreatedAt)
	assert.Equal(t, now, saved.UpdatedAt)

	got, err := repo.Get(ctx, "generated")
	require.NoError(t, err)
	assert.Equal(t, "Kiwi", got.Name)

	_, err = s.SaveItem(ctx, domain.Item{Name: "Bad", Price: decimal.NewFromInt(-5)})
	assert.ErrorIs(t, err, domain.ErrInvalidItem)
}

func TestServiceSaveItemKeepsStoredStock(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	repo := memory.NewRepository(domain.Item{
		ID: "kiwi", Name: "Kiwi", Price: decimal.NewFromInt(250), StockQuantity: 30, IsActive: true, CreatedAt: created,
	})
	s := NewService(discardLogger(), repo)
	now := time.Date(2025, 2, 2, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	saved, err := s.SaveItem(ctx, domain.Item{
		ID: "kiwi", Name: "Golden Kiwi", Price: decimal.NewFromInt(300), StockQuantity: 999, IsActive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 30, saved.StockQuantity)
	assert.Equal(t, created, saved.CreatedAt)
	assert.Equal(t, now, saved.UpdatedAt)

	got, err := repo.Get(ctx, "kiwi")
	require.NoError(t, err)
	assert.Equal(t, "Golden Kiwi", got.Name)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, 30, got.StockQuantity)

	fresh, err := s.SaveItem(ctx, domain.Item{ID: "lime", Name: "Lime", Price: decimal.NewFromInt(20), StockQuantity: 12})
	require.NoError(t, err)
	assert.Equal(t, 12, fresh.StockQuantity)
}

func TestServiceSeedIfEmpty(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()
	s := NewService(discardLogger(), repo)

	n, err := s.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(domain.DefaultCatalog(time.Now())), n)

	n, err = s.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
