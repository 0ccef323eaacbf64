package events

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const (
	EventOrderCreated   = "OrderCreated"
	EventProductDeleted = "ProductDeleted"
	EventStockAdjusted  = "StockAdjusted"
)

const (
	TopicOrderCreated   = "market.order.created"
	TopicProductDeleted = "market.product.deleted"
	TopicStockAdjusted  = "market.stock.adjusted"
)

const Version = 1

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order or product id
	Payload       json.RawMessage `json:"payload"`
}

// New wraps payload in a fresh v1 envelope.
func New(eventType, producer string, correlationID int64, payload any) (Envelope, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  Version,
		OccurredAt:    time.Now().UTC(),
		Producer:      producer,
		CorrelationID: strconv.FormatInt(correlationID, 10),
		Payload:       b,
	}, nil
}

// PartitionKey keeps every event about one entity on one partition.
func PartitionKey(id int64) []byte { return []byte(strconv.FormatInt(id, 10)) }

// ---- payloads ----

type ItemQty struct {
	ProductID int64 `json:"product_id"`
	Qty       int   `json:"qty"`
}

type OrderCreatedPayload struct {
	OrderID    int64     `json:"order_id"`
	UserID     int64     `json:"user_id"`
	Status     string    `json:"status"`
	TotalCents int       `json:"total_cents"`
	Items      []ItemQty `json:"items"`
}

type ProductDeletedPayload struct {
	ProductID int64 `json:"product_id"`
}

type StockAdjustedPayload struct {
	OrderID   int64 `json:"order_id"`
	ProductID int64 `json:"product_id"`
	Before    int   `json:"before"`
	After     int   `json:"after"`
}
