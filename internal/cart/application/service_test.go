package application

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmehra2102/grocery-order-service/internal/cart/domain"
	cartmem "github.com/dmehra2102/grocery-order-service/internal/cart/infrastructure/memory"
	invapp "github.com/dmehra2102/grocery-order-service/internal/inventory/application"
	invdomain "github.com/dmehra2102/grocery-order-service/internal/inventory/domain"
	invmem "github.com/dmehra2102/grocery-order-service/internal/inventory/infrastructure/memory"
)

type fixture struct {
	svc     *Service
	catalog *invmem.Repository
	carts   *cartmem.Store
}

func newFixture(items ...invdomain.Item) *fixture {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	catalog := invmem.NewRepository(items...)
	carts := cartmem.NewStore()
	svc := NewService(log, carts, catalog, invapp.NewStockManager(log, catalog, false))
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	return &fixture{svc: svc, catalog: catalog, carts: carts}
}

func (f *fixture) stock(t *testing.T, id string) int {
	t.Helper()
	it, err := f.catalog.Get(context.Background(), id)
	require.NoError(t, err)
	return it.StockQuantity
}

func item(id string, stock int, price string) invdomain.Item {
	return invdomain.Item{
		ID:            id,
		Name:          "Item " + id,
		Category:      "Fruits",
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
		Unit:          "kg",
		IsActive:      true,
	}
}

func TestCartLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(item("A", 50, "120.00"))

	total, err := f.svc.AddItem(ctx, "u1", "A", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, 48, f.stock(t, "A"))

	cart, err := f.svc.GetCart(ctx, "u1")
	require.NoError(t, err)
	require.Contains(t, cart.Items, "A")
	assert.Equal(t, "240", cart.Items["A"].TotalPrice.String())
	assert.True(t, cart.Items["A"].InStock)
	require.NotNil(t, cart.UpdatedAt)

	require.NoError(t, f.svc.UpdateItem(ctx, "u1", "A", 5))
	assert.Equal(t, 45, f.stock(t, "A"))

	require.NoError(t, f.svc.UpdateItem(ctx, "u1", "A", 1))
	assert.Equal(t, 49, f.stock(t, "A"))

	require.NoError(t, f.svc.RemoveItem(ctx, "u1", "A"))
	assert.Equal(t, 50, f.stock(t, "A"))

	cart, err = f.svc.GetCart(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestAddItemAccumulates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(item("A", 10, "2.50"))

	_, err := f.svc.AddItem(ctx, "u1", "A", 3)
	require.NoError(t, err)
	total, err := f.svc.AddItem(ctx, "u1", "A", 4)
	require.NoError(t, err)
	assert.Equal(t, 7, total)
	assert.Equal(t, 3, f.stock(t, "A"))

	cart, err := f.svc.GetCart(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "17.5", cart.Items["A"].TotalPrice.String())
}

func TestAddItemRejections(t *testing.T) {
	inactive := item("I", 10, "1.00")
	inactive.IsActive = false

	tests := []struct {
		name     string
		itemID   string
		quantity int
		check    func(t *testing.T, err error)
	}{
		{"zero quantity", "A", 0, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
		}},
		{"unknown item", "nope", 1, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, domain.ErrProductNotFound)
		}},
		{"inactive item", "I", 1, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, domain.ErrProductUnavailable)
		}},
		{"no stock", "Z", 1, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, domain.ErrOutOfStock)
			assert.EqualError(t, err, "Product is out of stock")
		}},
		{"more than stock", "A", 4, func(t *testing.T, err error) {
			var ise *domain.InsufficientStockError
			require.ErrorAs(t, err, &ise)
			assert.Equal(t, 3, ise.Available)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(item("A", 3, "1.00"), item("Z", 0, "1.00"), inactive)
			_, err := f.svc.AddItem(context.Background(), "u1", tt.itemID, tt.quantity)
			require.Error(t, err)
			assert.True(t, domain.IsRejection(err))
			tt.check(t, err)
		})
	}
}

func TestAddItemLimitCountsStockNotCart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(item("A", 5, "1.00"))

	_, err := f.svc.AddItem(ctx, "u1", "A", 3)
	require.NoError(t, err)

	// Stock is now 2 and the cart holds 3, so a total of 5 exceeds live stock.
	_, err = f.svc.AddItem(ctx, "u1", "A", 2)
	var limit *domain.AddLimitError
	require.ErrorAs(t, err, &limit)
	assert.Equal(t, 2, limit.Requested)
	assert.Equal(t, -1, limit.Remaining)
	assert.Equal(t, 2, f.stock(t, "A"))
}

func TestUpdateItem(t *testing.T) {
	ctx := context.Background()

	t.Run("zero removes and releases", func(t *testing.T) {
		f := newFixture(item("A", 10, "1.00"))
		_, err := f.svc.AddItem(ctx, "u1", "A", 4)
		require.NoError(t, err)

		require.NoError(t, f.svc.UpdateItem(ctx, "u1", "A", 0))
		assert.Equal(t, 10, f.stock(t, "A"))
		cart, err := f.svc.GetCart(ctx, "u1")
		require.NoError(t, err)
		assert.NotContains(t, cart.Items, "A")
	})

	t.Run("negative rejected", func(t *testing.T) {
		f := newFixture(item("A", 10, "1.00"))
		assert.ErrorIs(t, f.svc.UpdateItem(ctx, "u1", "A", -1), domain.ErrInvalidQuantity)
	})

	t.Run("increase beyond stock", func(t *testing.T) {
		f := newFixture(item("A", 5, "1.00"))
		_, err := f.svc.AddItem(ctx, "u1", "A", 2)
		require.NoError(t, err)

		err = f.svc.UpdateItem(ctx, "u1", "A", 9)
		var ise *domain.InsufficientStockError
		require.ErrorAs(t, err, &ise)
		assert.Equal(t, 3, ise.Available)
		assert.Equal(t, 3, f.stock(t, "A"))
	})

	t.Run("keeps snapshot price", func(t *testing.T) {
		f := newFixture(item("A", 10, "1.00"))
		_, err := f.svc.AddItem(ctx, "u1", "A", 1)
		require.NoError(t, err)

		repriced := item("A", 9, "3.00")
		require.NoError(t, f.catalog.Save(ctx, repriced))
		require.NoError(t, f.svc.UpdateItem(ctx, "u1", "A", 2))

		cart, err := f.svc.GetCart(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "1", cart.Items["A"].Price.String())
		assert.Equal(t, "2", cart.Items["A"].TotalPrice.String())
	})

	t.Run("missing line is created", func(t *testing.T) {
		f := newFixture(item("A", 10, "1.50"))
		require.NoError(t, f.svc.UpdateItem(ctx, "u1", "A", 2))
		assert.Equal(t, 8, f.stock(t, "A"))

		cart, err := f.svc.GetCart(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, 2, cart.Items["A"].Quantity)
	})
}

func TestClearReleasesEverything(t *testing.T) {
	ctx := context.Background()
	f := newFixture(item("A", 10, "1.00"), item("B", 10, "2.00"))
	_, err := f.svc.AddItem(ctx, "u1", "A", 3)
	require.NoError(t, err)
	_, err = f.svc.AddItem(ctx, "u1", "B", 5)
	require.NoError(t, err)

	require.NoError(t, f.svc.Clear(ctx, "u1"))
	assert.Equal(t, 10, f.stock(t, "A"))
	assert.Equal(t, 10, f.stock(t, "B"))

	sum, err := f.svc.GetSummary(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, sum.ItemCount)
	assert.True(t, sum.TotalAmount.IsZero())
}

func TestEmptyKeepsStockReserved(t *testing.T) {
	ctx := context.Background()
	f := newFixture(item("A", 10, "1.00"))
	_, err := f.svc.AddItem(ctx, "u1", "A", 3)
	require.NoError(t, err)

	require.NoError(t, f.svc.Empty(ctx, "u1"))
	assert.Equal(t, 7, f.stock(t, "A"))
}

func TestGetSummary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(item("A", 10, "120.00"), item("B", 10, "0.75"))
	_, err := f.svc.AddItem(ctx, "u1", "A", 2)
	require.NoError(t, err)
	_, err = f.svc.AddItem(ctx, "u1", "B", 4)
	require.NoError(t, err)

	sum, err := f.svc.GetSummary(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 6, sum.TotalItems)
	assert.Equal(t, "243", sum.TotalAmount.String())
	assert.Equal(t, 2, sum.ItemCount)
	assert.True(t, sum.AllInStock)

	// B now has 6 left while the cart holds 4, so drain it below that.
	require.NoError(t, f.catalog.UpdateStock(ctx, "B", 1, time.Now()))

	sum, err = f.svc.GetSummary(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, sum.AllInStock)
}

func TestGetCartSkipsMalformedLines(t *testing.T) {
	ctx := context.Background()
	f := newFixture(item("A", 10, "1.00"))
	f.carts.Put("u1", []byte(`{"userId":"u1","items":{
		"A":{"itemId":"A","name":"Item A","price":"1.00","quantity":2},
		"X":{"itemId":"X","price":"oops","quantity":1}
	}}`))

	sum, err := f.svc.GetSummary(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, sum.ItemCount)
	assert.Equal(t, 2, sum.TotalItems)

	// The bad line survives a rewrite of the good one.
	require.NoError(t, f.svc.UpdateItem(ctx, "u1", "A", 3))
	doc, err := f.carts.Load(ctx, "u1")
	require.NoError(t, err)
	items := doc["items"].(map[string]any)
	assert.Contains(t, items, "X")
}

func TestMalformedLinesReleaseTheirUnits(t *testing.T) {
	ctx := context.Background()

	t.Run("remove", func(t *testing.T) {
		f := newFixture(item("A", 7, "1.00"))
		f.carts.Put("u1", []byte(`{"userId":"u1","items":{"A":{"price":"oops","quantity":3}}}`))

		require.NoError(t, f.svc.RemoveItem(ctx, "u1", "A"))
		assert.Equal(t, 10, f.stock(t, "A"))
		doc, err := f.carts.Load(ctx, "u1")
		require.NoError(t, err)
		assert.Empty(t, doc["items"])
	})

	t.Run("clear", func(t *testing.T) {
		f := newFixture(item("A", 7, "1.00"), item("B", 7, "2.00"))
		f.carts.Put("u1", []byte(`{"userId":"u1","items":{
			"A":{"itemId":"A","price":"oops","quantity":2},
			"B":{"itemId":"B","name":"Item B","price":"2.00","quantity":1}
		}}`))

		require.NoError(t, f.svc.Clear(ctx, "u1"))
		assert.Equal(t, 9, f.stock(t, "A"))
		assert.Equal(t, 8, f.stock(t, "B"))
	})

	t.Run("update reserves only the difference", func(t *testing.T) {
		f := newFixture(item("A", 7, "1.00"))
		f.carts.Put("u1", []byte(`{"userId":"u1","items":{"A":{"price":"oops","quantity":3}}}`))

		require.NoError(t, f.svc.UpdateItem(ctx, "u1", "A", 4))
		assert.Equal(t, 6, f.stock(t, "A"))
		cart, err := f.svc.GetCart(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, 4, cart.Items["A"].Quantity)
		assert.True(t, cart.Items["A"].Price.Equal(decimal.RequireFromString("1.00")))
	})

	t.Run("update to zero", func(t *testing.T) {
		f := newFixture(item("A", 7, "1.00"))
		f.carts.Put("u1", []byte(`{"userId":"u1","items":{"A":{"price":"oops","quantity":3}}}`))

		require.NoError(t, f.svc.UpdateItem(ctx, "u1", "A", 0))
		assert.Equal(t, 10, f.stock(t, "A"))
	})
}

func TestGetCartSkipsLinesForUnknownItems(t *testing.T) {
	ctx := context.Background()
	f := newFixture(item("A", 10, "1.00"))
	f.carts.Put("u1", []byte(`{"userId":"u1","items":{
		"A":{"itemId":"A","price":"1.00","quantity":1},
		"gone":{"itemId":"gone","price":"4.00","quantity":1}
	}}`))

	cart, err := f.svc.GetCart(ctx, "u1")
	require.NoError(t, err)
	assert.Contains(t, cart.Items, "A")
	assert.Contains(t, cart.Items, "gone")
	assert.False(t, cart.Items["gone"].InStock)
}

type brokenStore struct{}

func (brokenStore) Load(context.Context, string) (domain.Document, error) {
	return nil, errors.New("connection refused")
}

func (brokenStore) Save(context.Context, string, domain.Document) error {
	return errors.New("connection refused")
}

func TestStoreFailuresAreNotRejections(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	catalog := invmem.NewRepository(item("A", 10, "1.00"))
	svc := NewService(log, brokenStore{}, catalog, invapp.NewStockManager(log, catalog, false))

	_, err := svc.GetCart(context.Background(), "u1")
	require.Error(t, err)
	assert.False(t, domain.IsRejection(err))
}
