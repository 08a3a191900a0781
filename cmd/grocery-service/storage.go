package main

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	cartapp "github.com/dmehra2102/grocery-order-service/internal/cart/application"
	cartmem "github.com/dmehra2102/grocery-order-service/internal/cart/infrastructure/memory"
	cartpg "github.com/dmehra2102/grocery-order-service/internal/cart/infrastructure/postgres"
	"github.com/dmehra2102/grocery-order-service/internal/config"
	invapp "github.com/dmehra2102/grocery-order-service/internal/inventory/application"
	invmem "github.com/dmehra2102/grocery-order-service/internal/inventory/infrastructure/memory"
	invpg "github.com/dmehra2102/grocery-order-service/internal/inventory/infrastructure/postgres"
	orderapp "github.com/dmehra2102/grocery-order-service/internal/order/application"
	ordermem "github.com/dmehra2102/grocery-order-service/internal/order/infrastructure/memory"
	orderpg "github.com/dmehra2102/grocery-order-service/internal/order/infrastructure/postgres"
	"github.com/dmehra2102/grocery-order-service/pkg/outbox"
	"github.com/dmehra2102/grocery-order-service/pkg/pgstore"
)

type stores struct {
	catalog invapp.Repository
	carts   cartapp.Store
	orders  orderapp.Repository
	outbox  outbox.Store
	close   func()
}

func openStores(ctx context.Context, log *slog.Logger, cfg *config.Config) (*stores, error) {
	if cfg.Storage.Driver == config.DriverMemory {
		log.Warn("using in-memory storage, data is lost on restart")
		box := outbox.NewMemoryStore()
		return &stores{
			catalog: invmem.NewRepository(),
			carts:   cartmem.NewStore(),
			orders:  ordermem.NewRepository(box),
			outbox:  box,
			close:   func() {},
		}, nil
	}

	pool, err := pgstore.Connect(ctx, pgstore.Config{
		DSN:             cfg.Postgres.DSN,
		MaxConns:        cfg.Postgres.MaxConns,
		MinConns:        cfg.Postgres.MinConns,
		MaxConnLifetime: cfg.Postgres.MaxConnLifetime,
		MaxConnIdleTime: cfg.Postgres.MaxConnIdleTime,
	})
	if err != nil {
		return nil, err
	}
	if err := pgstore.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return postgresStores(log, pool), nil
}

func postgresStores(log *slog.Logger, pool *pgxpool.Pool) *stores {
	return &stores{
		catalog: invpg.NewRepository(log, pool),
		carts:   cartpg.NewStore(pool),
		orders:  orderpg.NewRepository(log, pool),
		outbox:  orderpg.NewOutboxStore(log, pool),
		close:   pool.Close,
	}
}
