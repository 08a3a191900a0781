package grpc

import (
	"context"
	"io"
	"log/slog"
	"net"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/dmehra2102/grocery-order-service/internal/inventory/application"
	"github.com/dmehra2102/grocery-order-service/internal/inventory/domain"
	"github.com/dmehra2102/grocery-order-service/internal/inventory/infrastructure/memory"
)

func startServer(t *testing.T) *Client {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := memory.NewRepository(domain.Item{
		ID: "A", Name: "Apple", Category: "Fruits", Price: decimal.RequireFromString("120.5"),
		StockQuantity: 10, Unit: "kg", IsActive: true,
	})
	srv := NewServer(log, application.NewStockManager(log, repo, false), application.NewService(log, repo))

	lis := bufconn.Listen(1 << 20)
	gs := NewGRPCServer(log, srv)
	go func() { _ = gs.Serve(lis) }()
	t.Cleanup(gs.Stop)

	c, err := NewClient("passthrough:///bufnet", grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCheckStock(t *testing.T) {
	c := startServer(t)
	ctx := context.Background()

	resp, err := c.CheckStock(ctx, []StockLine{{ItemID: "A", Quantity: 10}})
	require.NoError(t, err)
	assert.True(t, resp.Available)

	resp, err = c.CheckStock(ctx, []StockLine{{ItemID: "A", Quantity: 11}, {ItemID: "ghost", Quantity: 1}})
	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, []string{"A", "ghost"}, resp.Short)

	_, err = c.CheckStock(ctx, nil)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestGetItem(t *testing.T) {
	c := startServer(t)
	ctx := context.Background()

	it, err := c.GetItem(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, "Apple", it.Name)
	assert.Equal(t, "120.50", it.Price)
	assert.Equal(t, 10, it.StockQuantity)

	_, err = c.GetItem(ctx, "nope")
	assert.Equal(t, codes.NotFound, status.Code(err))
}
