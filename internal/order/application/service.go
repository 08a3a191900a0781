package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/dmehra2102/grocery-order-service/internal/order/domain"
)

// Service answers order queries and applies status changes.
type Service struct {
	log  *slog.Logger
	repo Repository
	now  func() time.Time
}

func NewService(log *slog.Logger, repo Repository) *Service {
	return &Service{log: log, repo: repo, now: time.Now}
}

// List returns the user's orders, newest first. Orders without a date sort
// last. A store failure yields an empty list.
func (s *Service) List(ctx context.Context, userID string) []domain.Order {
	recs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.log.Error("list orders failed", "user_id", userID, "err", err)
		return []domain.Order{}
	}

	orders := make([]domain.Order, 0, len(recs))
	for _, rec := range recs {
		o, err := domain.DecodeOrder(rec.ID, rec.Doc)
		if err != nil {
			s.log.Warn("skipping unreadable order", "order_id", rec.ID, "err", err)
			continue
		}
		orders = append(orders, o)
	}
	sort.SliceStable(orders, func(i, j int) bool {
		a, b := orders[i].OrderDate, orders[j].OrderDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return a.After(*b)
	})
	return orders
}

// Get returns an order owned by userID.
func (s *Service) Get(ctx context.Context, userID, orderID string) (domain.Order, error) {
	o, err := s.load(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if o.UserID != userID {
		return domain.Order{}, domain.ErrForbidden
	}
	return o, nil
}

// UpdateStatus sets any non-empty status. Ownership is not checked.
func (s *Service) UpdateStatus(ctx context.Context, orderID, status string) error {
	status = strings.TrimSpace(status)
	if status == "" {
		return domain.ErrInvalidStatus
	}
	o, err := s.load(ctx, orderID)
	if err != nil {
		return err
	}

	now := s.now().UTC()
	o.SetStatus(domain.Status(status), now)
	event, err := newEvent(ctx, o, domain.EventOrderStatusChange, domain.OrderStatusChanged{
		OrderID:   o.ID,
		UserID:    o.UserID,
		Status:    o.Status,
		ChangedAt: now,
	})
	if err != nil {
		return err
	}
	if err := s.repo.Update(ctx, o.ID, domain.EncodeOrder(o), event); err != nil {
		return fmt.Errorf("update order %s: %w", orderID, err)
	}
	s.log.Info("order status changed", "order_id", o.ID, "status", status)
	return nil
}

// Track finds one of the user's orders by tracking id.
func (s *Service) Track(ctx context.Context, userID, trackingID string) (domain.Tracking, error) {
	recs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return domain.Tracking{}, fmt.Errorf("list orders: %w", err)
	}
	for _, rec := range recs {
		o, err := domain.DecodeOrder(rec.ID, rec.Doc)
		if err != nil {
			s.log.Warn("skipping unreadable order", "order_id", rec.ID, "err", err)
			continue
		}
		if o.TrackingID == trackingID {
			return o.Tracking(), nil
		}
	}
	return domain.Tracking{}, domain.ErrOrderNotFound
}

func (s *Service) load(ctx context.Context, orderID string) (domain.Order, error) {
	doc, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	o, err := domain.DecodeOrder(orderID, doc)
	if err != nil {
		return domain.Order{}, fmt.Errorf("decode order: %w", err)
	}
	return o, nil
}
