package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmehra2102/grocery-order-service/internal/cart/domain"
	invdomain "github.com/dmehra2102/grocery-order-service/internal/inventory/domain"
)

// Service keeps reserved stock in step with cart quantities. Every mutation
// reads the whole cart, changes it in memory and writes it back. Stock and
// cart writes are separate calls with no transaction around them.
type Service struct {
	log     *slog.Logger
	store   Store
	catalog Catalog
	stock   Stock
	now     func() time.Time
}

func NewService(log *slog.Logger, store Store, catalog Catalog, stock Stock) *Service {
	return &Service{log: log, store: store, catalog: catalog, stock: stock, now: time.Now}
}

// AddItem reserves quantity more units and returns the new line quantity.
func (s *Service) AddItem(ctx context.Context, userID, itemID string, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, domain.ErrInvalidQuantity
	}
	item, err := s.activeItem(ctx, itemID)
	if err != nil {
		return 0, err
	}
	if item.StockQuantity <= 0 {
		return 0, domain.ErrOutOfStock
	}
	if ok, err := s.stock.IsInStock(ctx, itemID, quantity); err != nil {
		return 0, err
	} else if !ok {
		return 0, &domain.InsufficientStockError{Available: item.StockQuantity}
	}

	cart, err := s.load(ctx, userID)
	if err != nil {
		return 0, err
	}
	existing := cart.Quantity(itemID)
	total := existing + quantity

	if ok, err := s.stock.IsInStock(ctx, itemID, total); err != nil {
		return 0, err
	} else if !ok {
		return 0, &domain.AddLimitError{Requested: quantity, Remaining: item.StockQuantity - existing}
	}
	if ok, err := s.stock.Reserve(ctx, itemID, quantity); err != nil {
		return 0, err
	} else if !ok {
		return 0, domain.ErrReserveFailed
	}

	cart.Put(lineFor(item, total))
	if err := s.save(ctx, cart); err != nil {
		return 0, err
	}
	s.log.Info("cart item added", "user_id", userID, "item_id", itemID, "quantity", quantity, "total", total)
	return total, nil
}

// UpdateItem sets the line quantity, reserving or releasing the difference.
// Zero removes the line.
func (s *Service) UpdateItem(ctx context.Context, userID, itemID string, quantity int) error {
	if quantity < 0 {
		return domain.ErrInvalidQuantity
	}
	cart, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	current := cart.Quantity(itemID)

	if quantity == 0 {
		if current > 0 {
			s.release(ctx, itemID, current)
		}
		cart.Remove(itemID)
		return s.save(ctx, cart)
	}

	item, err := s.activeItem(ctx, itemID)
	if err != nil {
		return err
	}

	switch delta := quantity - current; {
	case delta > 0:
		ok, err := s.stock.IsInStock(ctx, itemID, delta)
		if err != nil {
			return err
		}
		if !ok {
			return &domain.InsufficientStockError{Available: item.StockQuantity}
		}
		if ok, err = s.stock.Reserve(ctx, itemID, delta); err != nil {
			return err
		} else if !ok {
			return domain.ErrReserveFailed
		}
	case delta < 0:
		s.release(ctx, itemID, -delta)
	}

	line, ok := cart.Items[itemID]
	if !ok {
		line = lineFor(item, quantity)
	}
	cart.Put(line.WithQuantity(quantity))
	return s.save(ctx, cart)
}

// RemoveItem releases the line's units and drops it.
func (s *Service) RemoveItem(ctx context.Context, userID, itemID string) error {
	cart, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	if q := cart.Quantity(itemID); q > 0 {
		s.release(ctx, itemID, q)
	}
	cart.Remove(itemID)
	return s.save(ctx, cart)
}

// Clear releases every line and empties the cart.
func (s *Service) Clear(ctx context.Context, userID string) error {
	cart, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	for id, q := range cart.Held() {
		if q > 0 {
			s.release(ctx, id, q)
		}
	}
	cart.Empty()
	return s.save(ctx, cart)
}

// GetCart returns the cart with the in-stock flag refreshed per line. Lines
// that cannot be decoded or checked are left out.
func (s *Service) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	for id, line := range cart.Items {
		in, err := s.stock.IsInStock(ctx, id, line.Quantity)
		if err != nil {
			s.log.Warn("cart line skipped", "user_id", userID, "item_id", id, "err", err)
			delete(cart.Items, id)
			continue
		}
		line.InStock = in
		cart.Items[id] = line
	}
	return cart, nil
}

func (s *Service) GetSummary(ctx context.Context, userID string) (domain.Summary, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return domain.Summary{}, err
	}
	sum := domain.Summary{TotalAmount: decimal.Zero, AllInStock: true}
	for _, line := range cart.Items {
		sum.TotalItems += line.Quantity
		sum.TotalAmount = sum.TotalAmount.Add(line.TotalPrice)
		sum.AllInStock = sum.AllInStock && line.InStock
		sum.ItemCount++
	}
	return sum, nil
}

// Current returns the stored cart without refreshing stock flags.
func (s *Service) Current(ctx context.Context, userID string) (*domain.Cart, error) {
	return s.load(ctx, userID)
}

// Empty drops every line without touching stock. Checkout uses it once the
// reserved units belong to an order.
func (s *Service) Empty(ctx context.Context, userID string) error {
	cart, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	cart.Empty()
	return s.save(ctx, cart)
}

func (s *Service) activeItem(ctx context.Context, itemID string) (invdomain.Item, error) {
	item, err := s.catalog.Get(ctx, itemID)
	if errors.Is(err, invdomain.ErrItemNotFound) {
		return invdomain.Item{}, domain.ErrProductNotFound
	}
	if err != nil {
		return invdomain.Item{}, fmt.Errorf("load item %s: %w", itemID, err)
	}
	if !item.IsActive {
		return invdomain.Item{}, domain.ErrProductUnavailable
	}
	return item, nil
}

// release returns units to stock. Failures are logged, never returned.
func (s *Service) release(ctx context.Context, itemID string, quantity int) {
	ok, err := s.stock.Release(ctx, itemID, quantity)
	if err != nil {
		s.log.Error("stock release failed", "item_id", itemID, "quantity", quantity, "err", err)
		return
	}
	if !ok {
		s.log.Warn("stock release for unknown item", "item_id", itemID, "quantity", quantity)
	}
}

func (s *Service) load(ctx context.Context, userID string) (*domain.Cart, error) {
	doc, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart %s: %w", userID, err)
	}
	cart, lineErrs := domain.DecodeCart(userID, doc)
	for _, le := range lineErrs {
		s.log.Warn("malformed cart line", "user_id", userID, "item_id", le.ItemID, "err", le.Err)
	}
	return cart, nil
}

func (s *Service) save(ctx context.Context, cart *domain.Cart) error {
	cart.Touch(s.now().UTC())
	if err := s.store.Save(ctx, cart.UserID, domain.EncodeCart(cart)); err != nil {
		return fmt.Errorf("save cart %s: %w", cart.UserID, err)
	}
	return nil
}

func lineFor(item invdomain.Item, quantity int) domain.Line {
	return domain.Line{
		ItemID:   item.ID,
		Name:     item.Name,
		Category: item.Category,
		Price:    item.Price,
		ImageURL: item.ImageURL,
		Unit:     item.Unit,
		InStock:  true,
	}.WithQuantity(quantity)
}
