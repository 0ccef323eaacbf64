package session

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/ariefcatur/go-marketplace.git/internal/redisx"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	id := uuid.NewString()

	require.NoError(t, s.Create(ctx, Session{ID: id, Data: map[string]any{"user": "ann"}, Expires: time.Now().Add(time.Hour)}))

	got, ok, err := s.Get(ctx, id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "ann", got.Data["user"])

	require.NoError(t, s.Touch(ctx, id, time.Now().Add(3*time.Hour)))
	got, ok, err = s.Get(ctx, id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.Expires.After(time.Now().Add(2*time.Hour)))

	require.NoError(t, s.Destroy(ctx, id))
	_, ok, err = s.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.ErrorIs(t, s.Touch(ctx, id, time.Now().Add(time.Hour)), ErrNotFound)

	_, err = s.PruneExpired(ctx)
	require.NoError(t, err)
}

func TestPGStore(t *testing.T) {
	dsn := os.Getenv("MARKET_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("MARKET_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	s, err := NewPGStore(ctx, pool, "session_test")
	require.NoError(t, err)
	exerciseStore(t, s)
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("MARKET_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("MARKET_TEST_REDIS_ADDR not set")
	}
	rdb := redisx.New(addr)
	defer rdb.Close()
	require.NoError(t, redisx.Ping(context.Background(), rdb))

	exerciseStore(t, NewRedisStore(rdb))
}

func TestMemoryStoreConformance(t *testing.T) {
	exerciseStore(t, NewMemoryStore(time.Hour))
}
