// Package notify decorates a storage.Storage so that selected writes are
// announced on Kafka once they have committed.
package notify

import (
	"context"

	"github.com/ariefcatur/go-marketplace.git/internal/events"
	kafkax "github.com/ariefcatur/go-marketplace.git/internal/kafka"
	"github.com/ariefcatur/go-marketplace.git/internal/market"
	"github.com/ariefcatur/go-marketplace.git/internal/storage"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Publisher is satisfied by *kafka.Producer.
type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

// Storage forwards every call to the wrapped store. Publishing never
// changes the result the caller sees.
type Storage struct {
	storage.Storage

	orders   Publisher
	products Publisher
	service  string
	log      *zap.Logger
}

var _ storage.Storage = (*Storage)(nil)

// Wrap returns inner with event publishing. A nil publisher disables that
// event family.
func Wrap(inner storage.Storage, orders, products Publisher, service string, log *zap.Logger) *Storage {
	if log == nil {
		log = zap.NewNop()
	}
	return &Storage{Storage: inner, orders: orders, products: products, service: service, log: log}
}

func (s *Storage) CreateOrder(ctx context.Context, in market.NewOrder, items []market.NewOrderItem) (market.Order, error) {
	o, err := s.Storage.CreateOrder(ctx, in, items)
	if err != nil || s.orders == nil {
		return o, err
	}
	qty := make([]events.ItemQty, 0, len(items))
	for _, it := range items {
		qty = append(qty, events.ItemQty{ProductID: it.ProductID, Qty: it.Qty})
	}
	s.publish(s.orders, events.EventOrderCreated, o.ID, events.OrderCreatedPayload{
		OrderID:    o.ID,
		UserID:     o.UserID,
		Status:     string(o.Status),
		TotalCents: o.TotalCents,
		Items:      qty,
	})
	return o, nil
}

func (s *Storage) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	ok, err := s.Storage.DeleteProduct(ctx, id)
	if err != nil || !ok || s.products == nil {
		return ok, err
	}
	s.publish(s.products, events.EventProductDeleted, id, events.ProductDeletedPayload{ProductID: id})
	return ok, nil
}

func (s *Storage) publish(p Publisher, eventType string, id int64, payload any) {
	env, err := events.New(eventType, s.service, id, payload)
	if err != nil {
		s.log.Error("build event", zap.String("event_type", eventType), zap.Int64("id", id), zap.Error(err))
		return
	}
	p.Publish(events.PartitionKey(id), kafkax.MustMarshal(env),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
