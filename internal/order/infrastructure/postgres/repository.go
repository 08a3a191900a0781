package postgres

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmehra2102/grocery-order-service/internal/order/application"
	"github.com/dmehra2102/grocery-order-service/internal/order/domain"
	"github.com/dmehra2102/grocery-order-service/pkg/outbox"
)

// Repository keeps orders as JSONB documents. Every write inserts its
// outbox row in the same transaction.
type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

func (r *Repository) NewID() string {
	return uuid.NewString()
}

func (r *Repository) Create(ctx context.Context, id, userID string, doc domain.Document, event outbox.Event) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode order: %w", err)
	}
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO orders (id, user_id, doc, created_at) VALUES ($1, $2, $3, now())`,
			id, userID, raw); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		return insertEvent(ctx, tx, event)
	})
}

func (r *Repository) Update(ctx context.Context, id string, doc domain.Document, event outbox.Event) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode order: %w", err)
	}
	return r.inTx(ctx, func(tx pgx.Tx) error {
		ct, err := tx.Exec(ctx, `UPDATE orders SET doc = $2 WHERE id = $1`, id, raw)
		if err != nil {
			return fmt.Errorf("update order: %w", err)
		}
		if ct.RowsAffected() == 0 {
			return domain.ErrOrderNotFound
		}
		return insertEvent(ctx, tx, event)
	})
}

func (r *Repository) Get(ctx context.Context, id string) (domain.Document, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, `SELECT doc FROM orders WHERE id = $1`, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select order: %w", err)
	}
	return decode(raw)
}

func (r *Repository) ListByUser(ctx context.Context, userID string) ([]application.Record, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, doc FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var out []application.Record
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		doc, err := decode(raw)
		if err != nil {
			r.log.Warn("skipping undecodable order", "order_id", id, "err", err)
			continue
		}
		out = append(out, application.Record{ID: id, Doc: doc})
	}
	return out, rows.Err()
}

func (r *Repository) inTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertEvent(ctx context.Context, tx pgx.Tx, e outbox.Event) error {
	headers := e.Headers
	if headers == nil {
		headers = map[string]string{}
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO outbox (aggregate_type, aggregate_id, type, payload, headers, traceparent, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'pending')`,
		e.AggregateType, e.AggregateID, e.Type, e.Payload, headers, e.Traceparent)
	if err != nil {
		return fmt.Errorf("insert outbox: %w", err)
	}
	return nil
}

func decode(raw []byte) (domain.Document, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc domain.Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}
	return doc, nil
}

// OutboxStore hands pending outbox rows to a relay under a lease. Rows whose
// lease ran out are picked up again.
type OutboxStore struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewOutboxStore(log *slog.Logger, pool *pgxpool.Pool) *OutboxStore {
	return &OutboxStore{log: log, pool: pool}
}

func (s *OutboxStore) LockBatch(ctx context.Context, relayID string, batchSize, maxRetries int, lease time.Duration) ([]outbox.Event, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	rows, err := tx.Query(ctx, `
		SELECT id, aggregate_type, aggregate_id, type, payload, headers, traceparent, created_at, retry_count
		FROM outbox
		WHERE status = 'pending'
		   OR (status = 'in_progress' AND lease_until < now())
		   OR (status = 'failed' AND retry_count < $2)
		ORDER BY id
		FOR UPDATE SKIP LOCKED
		LIMIT $1
	`, batchSize, maxRetries)
	if err != nil {
		return nil, err
	}

	var events []outbox.Event
	for rows.Next() {
		var e outbox.Event
		if err := rows.Scan(&e.ID, &e.AggregateType, &e.AggregateID, &e.Type, &e.Payload, &e.Headers, &e.Traceparent, &e.CreatedAt, &e.RetryCount); err != nil {
			rows.Close()
			return nil, err
		}
		e.Status = outbox.StatusInProgress
		events = append(events, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, tx.Commit(ctx)
	}

	ids := make([]int64, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	_, err = tx.Exec(ctx, `
		UPDATE outbox
		SET status = 'in_progress', relay_id = $1, lease_until = now() + make_interval(secs => $2)
		WHERE id = ANY($3)`,
		relayID, lease.Seconds(), ids)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *OutboxStore) MarkSent(ctx context.Context, ids []int64) error {
	ct, err := s.pool.Exec(ctx, `UPDATE outbox SET status = 'sent', lease_until = NULL WHERE id = ANY($1)`, ids)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errors.New("no rows updated")
	}
	return nil
}

func (s *OutboxStore) MarkFailed(ctx context.Context, id int64, errMsg string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE outbox SET status = 'failed', last_error = $2, retry_count = retry_count + 1, lease_until = NULL WHERE id = $1`,
		id, errMsg)
	return err
}
