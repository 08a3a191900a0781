package postgres

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmehra2102/grocery-order-service/internal/cart/domain"
)

// Store keeps one JSONB document per user in the carts table.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Load(ctx context.Context, userID string) (domain.Document, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT doc FROM carts WHERE user_id = $1`, userID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select cart: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc domain.Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return doc, nil
}

func (s *Store) Save(ctx context.Context, userID string, doc domain.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO carts (user_id, doc, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`,
		userID, raw)
	if err != nil {
		return fmt.Errorf("upsert cart: %w", err)
	}
	return nil
}
