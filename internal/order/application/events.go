package application

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmehra2102/grocery-order-service/internal/order/domain"
	"github.com/dmehra2102/grocery-order-service/pkg/outbox"
	"github.com/dmehra2102/grocery-order-service/pkg/tracing"
)

func newEvent(ctx context.Context, o domain.Order, eventType string, payload any) (outbox.Event, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return outbox.Event{}, fmt.Errorf("encode %s: %w", eventType, err)
	}
	return outbox.Event{
		AggregateType: domain.AggregateType,
		AggregateID:   o.ID,
		Type:          eventType,
		Payload:       body,
		Headers:       map[string]string{"user_id": o.UserID},
		Traceparent:   tracing.Traceparent(ctx),
	}, nil
}
