package application_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmehra2102/grocery-order-service/internal/order/application"
	"github.com/dmehra2102/grocery-order-service/internal/order/domain"
	ordermem "github.com/dmehra2102/grocery-order-service/internal/order/infrastructure/memory"
	"github.com/dmehra2102/grocery-order-service/pkg/outbox"
)

func seedOrder(t *testing.T, repo *ordermem.Repository, id, userID, date, tracking string) {
	t.Helper()
	doc := domain.Document{
		"orderId":     id,
		"userId":      userID,
		"items":       []any{},
		"totalAmount": "10.00",
		"status":      "CONFIRMED",
		"trackingId":  tracking,
	}
	if date != "" {
		doc["orderDate"] = date
	}
	require.NoError(t, repo.Create(context.Background(), id, userID, doc, outbox.Event{AggregateID: id}))
}

func newQueryService() (*application.Service, *ordermem.Repository, *outbox.MemoryStore) {
	box := outbox.NewMemoryStore()
	repo := ordermem.NewRepository(box)
	return application.NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), repo), repo, box
}

func TestListOrdersNewestFirst(t *testing.T) {
	svc, repo, _ := newQueryService()
	seedOrder(t, repo, "o1", "u1", "2026-01-01T10:00:00Z", "SKY1")
	seedOrder(t, repo, "o2", "u1", "", "SKY2")
	seedOrder(t, repo, "o3", "u1", "2026-03-01T10:00:00Z", "SKY3")
	seedOrder(t, repo, "o4", "u2", "2026-04-01T10:00:00Z", "SKY4")
	seedOrder(t, repo, "bad", "u1", "not a date", "SKY5")

	var ids []string
	for _, o := range svc.List(context.Background(), "u1") {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []string{"o3", "o1", "o2"}, ids)
}

type failingRepo struct{ application.Repository }

func (failingRepo) ListByUser(context.Context, string) ([]application.Record, error) {
	return nil, errors.New("store down")
}

func TestListOrdersStoreFailureIsEmpty(t *testing.T) {
	svc := application.NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), failingRepo{})
	orders := svc.List(context.Background(), "u1")
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}

func TestTrackStoreFailureIsNotNotFound(t *testing.T) {
	svc := application.NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), failingRepo{})
	_, err := svc.Track(context.Background(), "u1", "SKY1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrOrderNotFound)
	assert.ErrorContains(t, err, "store down")
}

func TestGetOrderOwnership(t *testing.T) {
	svc, repo, _ := newQueryService()
	seedOrder(t, repo, "o1", "u1", "2026-01-01T10:00:00Z", "SKY1")

	_, err := svc.Get(context.Background(), "u1", "o1")
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), "u2", "o1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.Get(context.Background(), "u1", "missing")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestUpdateStatusAndTrack(t *testing.T) {
	ctx := context.Background()
	svc, repo, box := newQueryService()
	seedOrder(t, repo, "o1", "u1", "2026-01-01T10:00:00Z", "SKY1")

	tr, err := svc.Track(ctx, "u1", "SKY1")
	require.NoError(t, err)
	assert.False(t, tr.IsDelivered)
	assert.Nil(t, tr.DeliveryDate)

	require.NoError(t, svc.UpdateStatus(ctx, "o1", "DELIVERED"))
	tr, err = svc.Track(ctx, "u1", "SKY1")
	require.NoError(t, err)
	assert.True(t, tr.IsDelivered)
	assert.NotNil(t, tr.DeliveryDate)
	assert.Equal(t, domain.StatusDelivered, tr.Status)

	events := box.Events()
	last := events[len(events)-1]
	assert.Equal(t, domain.EventOrderStatusChange, last.Type)
	var changed domain.OrderStatusChanged
	require.NoError(t, json.Unmarshal(last.Payload, &changed))
	assert.Equal(t, domain.StatusDelivered, changed.Status)

	assert.ErrorIs(t, svc.UpdateStatus(ctx, "o1", " "), domain.ErrInvalidStatus)
	assert.ErrorIs(t, svc.UpdateStatus(ctx, "nope", "PREPARING"), domain.ErrOrderNotFound)

	_, err = svc.Track(ctx, "u2", "SKY1")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}
