package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Hour)

	err := s.Create(ctx, Session{ID: "a", Data: map[string]any{"userId": 1}, Expires: time.Now().Add(time.Hour)})
	require.NoError(t, err)

	got, ok, err := s.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a", got.ID)
	assert.Equal(t, 1, got.Data["userId"])

	later := time.Now().Add(2 * time.Hour)
	require.NoError(t, s.Touch(ctx, "a", later))
	got, ok, _ = s.Get(ctx, "a")
	require.True(t, ok)
	assert.True(t, got.Expires.Equal(later))

	require.NoError(t, s.Destroy(ctx, "a"))
	_, ok, _ = s.Get(ctx, "a")
	assert.False(t, ok)
	assert.NoError(t, s.Destroy(ctx, "a"))
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)
	data := map[string]any{"cart": "x"}
	require.NoError(t, s.Create(ctx, Session{ID: "a", Data: data, Expires: time.Now().Add(time.Hour)}))

	data["cart"] = "mutated"
	got, _, _ := s.Get(ctx, "a")
	got.Data["cart"] = "also mutated"

	again, _, _ := s.Get(ctx, "a")
	assert.Equal(t, "x", again.Data["cart"])
}

func TestMemoryStoreTouchUnknown(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	err := s.Touch(context.Background(), "nope", time.Now().Add(time.Minute))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStorePruneExpired(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Hour)
	require.NoError(t, s.Create(ctx, Session{ID: "live", Expires: time.Now().Add(time.Hour)}))
	require.NoError(t, s.Create(ctx, Session{ID: "dead", Expires: time.Now().Add(-time.Minute)}))

	_, ok, _ := s.Get(ctx, "dead")
	assert.False(t, ok)

	n, err := s.PruneExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, ok, _ = s.Get(ctx, "live")
	assert.True(t, ok)
}

func TestMemoryStoreGetAndPruneAgreeOnExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Hour)
	require.NoError(t, s.Create(ctx, Session{ID: "short", Expires: time.Now().Add(20 * time.Millisecond)}))
	require.NoError(t, s.Create(ctx, Session{ID: "long", Expires: time.Now().Add(time.Hour)}))

	_, ok, _ := s.Get(ctx, "short")
	require.True(t, ok)

	time.Sleep(50 * time.Millisecond)
	_, ok, _ = s.Get(ctx, "short")
	assert.False(t, ok)

	n, err := s.PruneExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, ok, _ = s.Get(ctx, "long")
	assert.True(t, ok)
}

func TestRunPrunerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		RunPruner(ctx, NewMemoryStore(time.Hour), time.Millisecond, nil)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pruner did not stop")
	}
}
