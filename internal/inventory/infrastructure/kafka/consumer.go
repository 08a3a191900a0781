package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmehra2102/grocery-order-service/internal/inventory/application"
	"github.com/dmehra2102/grocery-order-service/internal/inventory/domain"
	"github.com/dmehra2102/grocery-order-service/pkg/idempotency"
	"github.com/dmehra2102/grocery-order-service/pkg/tracing"
)

type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

const maxBackoff = 5 * time.Second

// Consumer applies restock commands from the supplier topic.
type Consumer struct {
	log    *slog.Logger
	reader MessageReader
	stock  *application.StockManager
	idem   *idempotency.Store
	tracer trace.Tracer

	attempts int
	backoff  time.Duration
}

func NewReader(brokers []string, topic, group string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: group,
	})
}

func NewConsumer(log *slog.Logger, reader MessageReader, stock *application.StockManager, idem *idempotency.Store) *Consumer {
	return &Consumer{
		log:    log,
		reader: reader,
		stock:  stock,
		idem:   idem,
		tracer: otel.Tracer("inventory-restock-consumer"),

		attempts: 5,
		backoff:  200 * time.Millisecond,
	}
}

func (c *Consumer) Run(ctx context.Context) error {
	defer c.reader.Close()
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if err := c.process(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.log.Error("restock not applied", "offset", msg.Offset, "partition", msg.Partition, "err", err)
			// Uncommitted: the group resumes from this offset on restart.
			return fmt.Errorf("restock at offset %d: %w", msg.Offset, err)
		}
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.log.Error("commit failed", "offset", msg.Offset, "err", err)
		}
	}
}

// process retries handle for msg with exponential backoff and gives up after
// c.attempts tries.
func (c *Consumer) process(ctx context.Context, msg kafka.Message) error {
	delay := c.backoff
	for attempt := 1; ; attempt++ {
		err := c.handle(ctx, msg)
		if err == nil || attempt >= c.attempts {
			return err
		}
		c.log.Warn("restock failed, retrying",
			"offset", msg.Offset, "attempt", attempt, "retry_delay_ms", delay.Milliseconds(), "err", err)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		delay = min(delay*2, maxBackoff)
	}
}

// handle returns an error only when the message should be retried.
// Malformed commands are logged and dropped.
func (c *Consumer) handle(ctx context.Context, msg kafka.Message) error {
	key := c.idem.Key(msg.Topic, msg.Partition, msg.Offset)
	seen, err := c.idem.Seen(ctx, key)
	if err != nil {
		return err
	}
	if seen {
		c.log.Info("duplicate message skipped", "key", key)
		return nil
	}

	msgCtx := tracing.ExtractKafkaHeaders(ctx, msg.Headers)
	msgCtx, span := c.tracer.Start(msgCtx, "ConsumeRestock")
	defer span.End()

	var cmd domain.Restock
	if err := json.Unmarshal(msg.Value, &cmd); err != nil {
		c.log.Error("restock unmarshal failed", "key", key, "err", err)
		return nil
	}
	if err := cmd.Validate(); err != nil {
		c.log.Error("restock rejected", "key", key, "err", err)
		return nil
	}
	span.SetAttributes(attribute.String("item.id", cmd.ItemID), attribute.Int("restock.quantity", cmd.Quantity))

	ok, err := c.stock.Release(msgCtx, cmd.ItemID, cmd.Quantity)
	if err != nil {
		span.RecordError(err)
		if ferr := c.idem.Forget(ctx, key); ferr != nil {
			err = errors.Join(err, ferr)
		}
		return fmt.Errorf("restock %s: %w", cmd.ItemID, err)
	}
	if !ok {
		c.log.Warn("restock for unknown item", "item_id", cmd.ItemID)
		return nil
	}
	c.log.Info("restock applied", "item_id", cmd.ItemID, "quantity", cmd.Quantity)
	return nil
}
