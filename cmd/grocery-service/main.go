package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	cartapp "github.com/dmehra2102/grocery-order-service/internal/cart/application"
	carthttp "github.com/dmehra2102/grocery-order-service/internal/cart/infrastructure/http"
	"github.com/dmehra2102/grocery-order-service/internal/config"
	invapp "github.com/dmehra2102/grocery-order-service/internal/inventory/application"
	invgrpc "github.com/dmehra2102/grocery-order-service/internal/inventory/infrastructure/grpc"
	invhttp "github.com/dmehra2102/grocery-order-service/internal/inventory/infrastructure/http"
	invkafka "github.com/dmehra2102/grocery-order-service/internal/inventory/infrastructure/kafka"
	"github.com/dmehra2102/grocery-order-service/internal/inventory/infrastructure/pexels"
	orderapp "github.com/dmehra2102/grocery-order-service/internal/order/application"
	orderhttp "github.com/dmehra2102/grocery-order-service/internal/order/infrastructure/http"
	orderkafka "github.com/dmehra2102/grocery-order-service/internal/order/infrastructure/kafka"
	"github.com/dmehra2102/grocery-order-service/pkg/api/middleware"
	"github.com/dmehra2102/grocery-order-service/pkg/api/response"
	"github.com/dmehra2102/grocery-order-service/pkg/auth"
	"github.com/dmehra2102/grocery-order-service/pkg/idempotency"
	"github.com/dmehra2102/grocery-order-service/pkg/logging"
	"github.com/dmehra2102/grocery-order-service/pkg/outbox"
	"github.com/dmehra2102/grocery-order-service/pkg/shutdown"
	"github.com/dmehra2102/grocery-order-service/pkg/tracing"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}
	log := logging.New(cfg.App.LogLevel, cfg.App.Name)

	if err := run(cfg, log); err != nil {
		log.Error("grocery-service stopped", "err", err)
		os.Exit(1)
	}
	log.Info("grocery-service shutdown complete")
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	tp, err := tracing.Init(ctx, cfg.App.Name, cfg.Telemetry.OTLPEndpoint, log)
	if err != nil {
		return fmt.Errorf("otel init: %w", err)
	}

	st, err := openStores(ctx, log, cfg)
	if err != nil {
		return err
	}
	defer st.close()

	// Inventory
	catalog := invapp.NewService(log, st.catalog)
	stock := invapp.NewStockManager(log, st.catalog, cfg.Stock.AtomicReserve)
	images := invapp.NewImageService(log, pexels.NewClient(pexels.Config{
		APIKey:         cfg.Pexels.APIKey,
		BaseURL:        cfg.Pexels.BaseURL,
		Timeout:        cfg.Pexels.Timeout,
		CBMaxFailures:  cfg.Pexels.CBMaxFailures,
		CBResetTimeout: cfg.Pexels.CBResetTimeout,
	}))
	if cfg.Catalog.Seed {
		n, err := catalog.SeedIfEmpty(ctx)
		if err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
		if n > 0 {
			log.Info("catalog seeded", "items", n)
		}
	}

	// Cart & orders
	carts := cartapp.NewService(log, st.carts, st.catalog, stock)
	checkout := orderapp.NewCheckout(log, st.orders, carts, st.catalog, stock, orderapp.CheckoutOptions{
		TrackingPrefix:       cfg.Orders.TrackingPrefix,
		DefaultPaymentMethod: cfg.Orders.DefaultPaymentMethod,
	})
	orders := orderapp.NewService(log, st.orders)

	verifier, err := newVerifier(ctx, log, cfg.Firebase)
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID, middleware.Recovery(log), middleware.RequestLog(log))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		response.OK(w, map[string]string{"status": "ok"})
	})
	r.Route("/api", func(r chi.Router) {
		r.Mount("/inventory", invhttp.NewHandler(log, catalog, stock, images).Routes())
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(log, verifier))
			r.Mount("/cart", carthttp.NewHandler(log, carts).Routes())
			r.Mount("/orders", orderhttp.NewHandler(log, checkout, orders).Routes())
		})
	})

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      otelhttp.NewHandler(r, "grocery-http"),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	gs, err := invgrpc.Run(log, cfg.GRPC.Addr, invgrpc.NewServer(log, stock, catalog))
	if err != nil {
		return fmt.Errorf("grpc listen: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	closers := []func(context.Context) error{srv.Shutdown}

	if cfg.Kafka.Enabled {
		writer := orderkafka.NewWriter(cfg.Kafka.Brokers)
		dispatch := outbox.NewDispatcher(log, writer, cfg.Kafka.OrderTopic)
		relay := outbox.NewRelay(log, st.outbox, dispatch, cfg.App.Name+"-relay", outbox.Options{
			BatchSize:  cfg.Outbox.BatchSize,
			Interval:   cfg.Outbox.PollInterval,
			Lease:      cfg.Outbox.Lease,
			MaxRetries: cfg.Outbox.MaxRetries,
		})
		g.Go(func() error { return relay.Run(gctx) })

		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		reader := invkafka.NewReader(cfg.Kafka.Brokers, cfg.Kafka.RestockTopic, cfg.Kafka.ConsumerGroup)
		idem := idempotency.NewStore(rdb, "restock", cfg.Redis.IdempotencyTTL)
		consumer := invkafka.NewConsumer(log, reader, stock, idem)
		g.Go(func() error { return consumer.Run(gctx) })

		closers = append(closers,
			func(context.Context) error { return writer.Close() },
			func(context.Context) error { return rdb.Close() },
		)
	}

	g.Go(func() error {
		log.Info("http listening", "addr", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		gs.GracefulStop()
		return shutdown.Drain(cfg.HTTP.ShutdownTimeout, append(closers, tp.Shutdown)...)
	})

	return g.Wait()
}

func newVerifier(ctx context.Context, log *slog.Logger, cfg config.Firebase) (auth.Verifier, error) {
	if cfg.ProjectID == "" {
		if len(cfg.DevTokens) == 0 {
			return nil, errors.New("auth: FIREBASE_PROJECT_ID or AUTH_DEV_TOKENS is required")
		}
		log.Warn("firebase not configured, accepting static dev tokens", "tokens", len(cfg.DevTokens))
		return auth.Static(cfg.DevTokens), nil
	}
	v, err := auth.NewFirebaseVerifier(ctx, auth.FirebaseConfig{
		ProjectID:       cfg.ProjectID,
		CredentialsFile: cfg.CredentialsFile,
		CredentialsJSON: cfg.CredentialsJSON,
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}
