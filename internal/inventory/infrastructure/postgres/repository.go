package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/dmehra2102/grocery-order-service/internal/inventory/domain"
)

const itemColumns = `id, name, description, category, price::text, stock_quantity, image_url, unit, is_active, created_at, updated_at`

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

func (r *Repository) Get(ctx context.Context, id string) (domain.Item, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id=$1`, id)
	it, err := scanItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Item{}, domain.ErrItemNotFound
	}
	return it, err
}

func (r *Repository) ListActive(ctx context.Context) ([]domain.Item, error) {
	return r.query(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE is_active ORDER BY name, id`)
}

func (r *Repository) ListActiveByCategory(ctx context.Context, category string) ([]domain.Item, error) {
	return r.query(ctx, `SELECT `+itemColumns+` FROM inventory_items
		WHERE is_active AND lower(category) = lower($1) ORDER BY name, id`, category)
}

func (r *Repository) SearchActive(ctx context.Context, term string) ([]domain.Item, error) {
	return r.query(ctx, `SELECT `+itemColumns+` FROM inventory_items
		WHERE is_active AND strpos(lower(name), lower($1)) > 0 ORDER BY name, id`, term)
}

// Save upserts the catalog fields. Stock of an existing row is left alone.
func (r *Repository) Save(ctx context.Context, it domain.Item) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO inventory_items
			(id, name, description, category, price, stock_quantity, image_url, unit, is_active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5::numeric,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (id) DO UPDATE SET
			name=$2, description=$3, category=$4, price=$5::numeric,
			image_url=$7, unit=$8, is_active=$9, updated_at=$11`,
		it.ID, it.Name, it.Description, it.Category, it.Price.String(), it.StockQuantity,
		it.ImageURL, it.Unit, it.IsActive, it.CreatedAt, it.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert item: %w", err)
	}
	return nil
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM inventory_items`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *Repository) UpdateStock(ctx context.Context, id string, quantity int, at time.Time) error {
	ct, err := r.pool.Exec(ctx, `UPDATE inventory_items SET stock_quantity=$2, updated_at=$3 WHERE id=$1`, id, quantity, at)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// AdjustStock applies delta only while the result stays non-negative. A zero
// row count is disambiguated with a follow-up existence check.
func (r *Repository) AdjustStock(ctx context.Context, id string, delta int, at time.Time) (bool, error) {
	ct, err := r.pool.Exec(ctx, `UPDATE inventory_items
		SET stock_quantity = stock_quantity + $2, updated_at = $3
		WHERE id = $1 AND stock_quantity + $2 >= 0`, id, delta, at)
	if err != nil {
		return false, err
	}
	if ct.RowsAffected() == 1 {
		return true, nil
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM inventory_items WHERE id=$1)`, id).Scan(&exists); err != nil {
		return false, err
	}
	if !exists {
		return false, domain.ErrItemNotFound
	}
	return false, nil
}

func (r *Repository) query(ctx context.Context, sql string, args ...any) ([]domain.Item, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func scanItem(row pgx.Row) (domain.Item, error) {
	var (
		it    domain.Item
		price string
	)
	err := row.Scan(&it.ID, &it.Name, &it.Description, &it.Category, &price, &it.StockQuantity,
		&it.ImageURL, &it.Unit, &it.IsActive, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return domain.Item{}, err
	}
	if it.Price, err = decimal.NewFromString(price); err != nil {
		return domain.Item{}, fmt.Errorf("item %s price %q: %w", it.ID, price, err)
	}
	return it, nil
}
