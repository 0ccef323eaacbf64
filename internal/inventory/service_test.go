package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/ariefcatur/go-marketplace.git/internal/events"
	kafkax "github.com/ariefcatur/go-marketplace.git/internal/kafka"
	"github.com/ariefcatur/go-marketplace.git/internal/market"
	"github.com/ariefcatur/go-marketplace.git/internal/storage/memory"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memDedup struct {
	mu   sync.Mutex
	seen map[string]bool
	err  error
}

func (d *memDedup) First(_ context.Context, key string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return false, d.err
	}
	if d.seen == nil {
		d.seen = map[string]bool{}
	}
	if d.seen[key] {
		return false, nil
	}
	d.seen[key] = true
	return true, nil
}

func (d *memDedup) Forget(_ context.Context, key string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.seen, key)
	return nil
}

type recorder struct {
	mu   sync.Mutex
	envs []events.Envelope
}

func (r *recorder) Publish(_, value []byte, _ ...kafkago.Header) {
	var env events.Envelope
	if err := json.Unmarshal(value, &env); err != nil {
		panic(err)
	}
	r.mu.Lock()
	r.envs = append(r.envs, env)
	r.mu.Unlock()
}

func orderCreated(t *testing.T, p events.OrderCreatedPayload) kafkago.Message {
	t.Helper()
	env, err := events.New(events.EventOrderCreated, "market-api", p.OrderID, p)
	require.NoError(t, err)
	return kafkago.Message{Value: kafkax.MustMarshal(env)}
}

func TestHandleOrderCreatedTakesStock(t *testing.T) {
	ctx := context.Background()
	st := memory.New(nil)
	a, _ := st.CreateProduct(ctx, market.NewProduct{Name: "a", Stock: market.Ptr(10)})
	b, _ := st.CreateProduct(ctx, market.NewProduct{Name: "b", Stock: market.Ptr(1)})

	rec := &recorder{}
	svc := &Service{Store: st, Dedup: &memDedup{}, Adjusted: rec, ServiceName: "inventory"}
	msg := orderCreated(t, events.OrderCreatedPayload{OrderID: 1, Items: []events.ItemQty{
		{ProductID: a.ID, Qty: 3},
		{ProductID: b.ID, Qty: 5},
		{ProductID: 99, Qty: 1},
	}})
	require.NoError(t, svc.HandleOrderCreated(ctx, msg))

	got, _, _ := st.GetProductByID(ctx, a.ID)
	assert.Equal(t, 7, got.Stock)
	got, _, _ = st.GetProductByID(ctx, b.ID)
	assert.Equal(t, 0, got.Stock)

	require.Len(t, rec.envs, 2)
	adj, err := kafkax.UnwrapPayload[events.StockAdjustedPayload](rec.envs[1].Payload)
	require.NoError(t, err)
	assert.Equal(t, events.StockAdjustedPayload{OrderID: 1, ProductID: b.ID, Before: 1, After: 0}, adj)
	assert.Equal(t, events.EventStockAdjusted, rec.envs[1].EventType)

	// redelivery of the same event is ignored
	require.NoError(t, svc.HandleOrderCreated(ctx, msg))
	got, _, _ = st.GetProductByID(ctx, a.ID)
	assert.Equal(t, 7, got.Stock)
	assert.Len(t, rec.envs, 2)
}

func TestHandleIgnoresOtherEvents(t *testing.T) {
	env, err := events.New(events.EventProductDeleted, "market-api", 1, events.ProductDeletedPayload{ProductID: 1})
	require.NoError(t, err)
	svc := &Service{Store: memory.New(nil)}
	assert.NoError(t, svc.HandleOrderCreated(context.Background(), kafkago.Message{Value: kafkax.MustMarshal(env)}))
}

func TestHandleBadPayloadIsRetryable(t *testing.T) {
	ctx := context.Background()
	d := &memDedup{}
	svc := &Service{Store: memory.New(nil), Dedup: d, ServiceName: "inventory"}

	env, err := events.New(events.EventOrderCreated, "market-api", 1, map[string]any{"items": "nope"})
	require.NoError(t, err)
	msg := kafkago.Message{Value: kafkax.MustMarshal(env)}

	require.Error(t, svc.HandleOrderCreated(ctx, msg))
	assert.Empty(t, d.seen, "failed events must be forgotten")
}

func TestHandleDedupError(t *testing.T) {
	svc := &Service{Store: memory.New(nil), Dedup: &memDedup{err: errors.New("redis down")}}
	err := svc.HandleOrderCreated(context.Background(), orderCreated(t, events.OrderCreatedPayload{OrderID: 1}))
	assert.ErrorContains(t, err, "redis down")
}

func TestHandleMalformedMessage(t *testing.T) {
	svc := &Service{Store: memory.New(nil)}
	assert.Error(t, svc.HandleOrderCreated(context.Background(), kafkago.Message{Value: []byte("{")}))
}
