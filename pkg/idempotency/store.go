package idempotency

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store records processed message keys in Redis with SETNX so a redelivered
// message can be recognised and skipped.
type Store struct {
	rdb    redis.Cmdable
	prefix string
	ttl    time.Duration
}

func NewStore(rdb redis.Cmdable, prefix string, ttl time.Duration) *Store {
	if prefix == "" {
		prefix = "idem"
	}
	return &Store{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (s *Store) Key(topic string, partition int, offset int64) string {
	return fmt.Sprintf("%s:%s:%d:%d", s.prefix, topic, partition, offset)
}

// Seen marks key as processed and reports whether it already was.
func (s *Store) Seen(ctx context.Context, key string) (bool, error) {
	ok, err := s.rdb.SetNX(ctx, key, "1", s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("idempotency setnx %s: %w", key, err)
	}
	return !ok, nil
}

// Forget drops key so the message is processed again on redelivery.
func (s *Store) Forget(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("idempotency del %s: %w", key, err)
	}
	return nil
}
