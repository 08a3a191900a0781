package idempotency

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	s := NewStore(nil, "", time.Hour)
	assert.Equal(t, "idem:inventory.restock:2:41", s.Key("inventory.restock", 2, 41))

	s = NewStore(nil, "restock", time.Hour)
	assert.Equal(t, "restock:t:0:1", s.Key("t", 0, 1))
}

func TestSeen(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := NewStore(db, "idem", time.Hour)
	ctx := context.Background()

	mock.ExpectSetNX("idem:t:0:1", "1", time.Hour).SetVal(true)
	seen, err := s.Seen(ctx, "idem:t:0:1")
	require.NoError(t, err)
	assert.False(t, seen)

	mock.ExpectSetNX("idem:t:0:1", "1", time.Hour).SetVal(false)
	seen, err = s.Seen(ctx, "idem:t:0:1")
	require.NoError(t, err)
	assert.True(t, seen)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeenRedisError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := NewStore(db, "idem", time.Minute)

	mock.ExpectSetNX("k", "1", time.Minute).SetErr(errors.New("connection refused"))
	_, err := s.Seen(context.Background(), "k")
	assert.ErrorContains(t, err, "connection refused")
}

func TestForget(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := NewStore(db, "idem", time.Minute)

	mock.ExpectDel("k").SetVal(1)
	require.NoError(t, s.Forget(context.Background(), "k"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
