package notifications

import (
	"encoding/json"
	"log"
	"time"
)

// Event types published to the notification topic.
const (
	EventLowStock   = "LowStock"
	EventOutOfStock = "OutOfStock"
	EventNewOrder   = "NewOrder"
)

// Envelope wraps every published notification event.
type Envelope struct {
	EventID      string          `json:"event_id"`
	EventType    string          `json:"event_type"`
	EventVersion int             `json:"event_version"`
	OccurredAt   time.Time       `json:"occurred_at"`
	Producer     string          `json:"producer"`
	Payload      json.RawMessage `json:"payload"`
}

type StockEventPayload struct {
	UserID      string `json:"user_id"`
	ProductName string `json:"product_name"`
	Remaining   int64  `json:"remaining"`
}

type NewOrderPayload struct {
	UserID      string `json:"user_id"`
	OrderNumber string `json:"order_number"`
	TotalCents  int64  `json:"total_cents"`
}

func mustMarshal(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("marshal event payload: %v", err)
		return json.RawMessage(`{}`)
	}
	return b
}
