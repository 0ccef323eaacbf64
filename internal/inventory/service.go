package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/ariefcatur/go-marketplace.git/internal/events"
	kafkax "github.com/ariefcatur/go-marketplace.git/internal/kafka"
	"github.com/ariefcatur/go-marketplace.git/internal/market"
	"github.com/ariefcatur/go-marketplace.git/internal/redisx"
	"github.com/ariefcatur/go-marketplace.git/internal/storage"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Dedup is satisfied by redisx.Dedup.
type Dedup interface {
	First(ctx context.Context, key string) (bool, error)
	Forget(ctx context.Context, key string) error
}

// Publisher is satisfied by *kafka.Producer.
type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

// Service takes ordered quantities out of product stock.
type Service struct {
	Store       storage.Storage
	Dedup       Dedup
	Adjusted    Publisher // optional; receives a StockAdjusted per changed product
	ServiceName string
	Log         *zap.Logger

	locks sync.Map // product id -> *sync.Mutex
}

// HandleOrderCreated is installed as the consumer handler.
func (s *Service) HandleOrderCreated(ctx context.Context, m kafkago.Message) error {
	var env events.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != events.EventOrderCreated {
		return nil
	}

	key := redisx.DedupKey(s.ServiceName, env.EventID)
	if s.Dedup != nil {
		first, err := s.Dedup.First(ctx, key)
		if err != nil {
			return fmt.Errorf("dedup: %w", err)
		}
		if !first {
			return nil
		}
	}

	p, err := kafkax.UnwrapPayload[events.OrderCreatedPayload](env.Payload)
	if err == nil {
		err = s.reserve(ctx, p)
	}
	if err != nil && s.Dedup != nil {
		_ = s.Dedup.Forget(ctx, key)
	}
	return err
}

func (s *Service) reserve(ctx context.Context, p events.OrderCreatedPayload) error {
	for _, it := range p.Items {
		before, after, ok, err := s.take(ctx, it.ProductID, it.Qty)
		if err != nil {
			return fmt.Errorf("order %d product %d: %w", p.OrderID, it.ProductID, err)
		}
		if !ok {
			s.logger().Warn("ordered product missing",
				zap.Int64("order_id", p.OrderID), zap.Int64("product_id", it.ProductID))
			continue
		}
		if before < it.Qty {
			s.logger().Warn("stock short",
				zap.Int64("order_id", p.OrderID), zap.Int64("product_id", it.ProductID),
				zap.Int("required", it.Qty), zap.Int("available", before))
		}
		s.logger().Debug("stock adjusted",
			zap.Int64("order_id", p.OrderID), zap.Int64("product_id", it.ProductID),
			zap.Int("before", before), zap.Int("after", after))
		s.announce(p.OrderID, it.ProductID, before, after)
	}
	return nil
}

func (s *Service) announce(orderID, productID int64, before, after int) {
	if s.Adjusted == nil {
		return
	}
	env, err := events.New(events.EventStockAdjusted, s.ServiceName, productID, events.StockAdjustedPayload{
		OrderID: orderID, ProductID: productID, Before: before, After: after,
	})
	if err != nil {
		s.logger().Warn("build event", zap.Error(err))
		return
	}
	s.Adjusted.Publish(events.PartitionKey(productID), kafkax.MustMarshal(env),
		kafkago.Header{Key: "x-event-type", Value: []byte(events.EventStockAdjusted)},
		kafkago.Header{Key: "x-event-version", Value: []byte(strconv.Itoa(events.Version))},
	)
}

// take removes qty from the product's stock, never going below zero.
func (s *Service) take(ctx context.Context, productID int64, qty int) (before, after int, ok bool, err error) {
	mu := s.lock(productID)
	mu.Lock()
	defer mu.Unlock()

	prod, ok, err := s.Store.GetProductByID(ctx, productID)
	if err != nil || !ok {
		return 0, 0, ok, err
	}
	next := max(prod.Stock-qty, 0)
	if _, ok, err = s.Store.UpdateProduct(ctx, productID, market.ProductPatch{Stock: &next}); err != nil || !ok {
		return 0, 0, ok, err
	}
	return prod.Stock, next, true, nil
}

func (s *Service) lock(id int64) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (s *Service) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}
