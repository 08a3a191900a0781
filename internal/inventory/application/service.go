package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmehra2102/grocery-order-service/internal/inventory/domain"
)

const allCategories = "all"

// Service answers catalog queries and handles admin writes.
type Service struct {
	log   *slog.Logger
	repo  Repository
	now   func() time.Time
	newID func() string
}

func NewService(log *slog.Logger, repo Repository) *Service {
	return &Service{
		log:   log,
		repo:  repo,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

func (s *Service) ListActive(ctx context.Context) ([]domain.Item, error) {
	return s.repo.ListActive(ctx)
}

func (s *Service) ListByCategory(ctx context.Context, category string) ([]domain.Item, error) {
	if strings.EqualFold(category, allCategories) {
		return s.repo.ListActive(ctx)
	}
	return s.repo.ListActiveByCategory(ctx, category)
}

// Categories lists the distinct categories of active items in the order the
// store returns them.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	items, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0)
	for _, it := range items {
		if _, ok := seen[it.Category]; ok {
			continue
		}
		seen[it.Category] = struct{}{}
		out = append(out, it.Category)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Item, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Search(ctx context.Context, term string) ([]domain.Item, error) {
	return s.repo.SearchActive(ctx, strings.TrimSpace(term))
}

// SaveItem creates an item or updates the catalog fields of an existing one.
// The stored stock of an existing item is kept; stock moves only through the
// StockManager.
func (s *Service) SaveItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	if err := item.Validate(); err != nil {
		return domain.Item{}, err
	}
	now := s.now().UTC()
	if item.ID == "" {
		item.ID = s.newID()
	} else {
		old, err := s.repo.Get(ctx, item.ID)
		switch {
		case err == nil:
			item.StockQuantity = old.StockQuantity
			item.CreatedAt = old.CreatedAt
		case !errors.Is(err, domain.ErrItemNotFound):
			return domain.Item{}, fmt.Errorf("load item %s: %w", item.ID, err)
		}
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	if err := s.repo.Save(ctx, item); err != nil {
		return domain.Item{}, fmt.Errorf("save item %s: %w", item.ID, err)
	}
	return item, nil
}

// SeedIfEmpty inserts the default catalog when the store has no items.
func (s *Service) SeedIfEmpty(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	if n > 0 {
		s.log.Info("catalog already populated", "items", n)
		return 0, nil
	}

	items := domain.DefaultCatalog(s.now().UTC())
	for _, it := range items {
		if _, err := s.SaveItem(ctx, it); err != nil {
			return 0, err
		}
	}
	s.log.Info("catalog seeded", "items", len(items))
	return len(items), nil
}
