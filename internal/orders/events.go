package orders

import (
	"encoding/json"
	"fmt"
	"time"
)

const EventOrderPlaced = "OrderPlaced"

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"` // session id
	Payload       json.RawMessage `json:"payload"`
}

type PlacedItem struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

type OrderPlacedPayload struct {
	OrderID       int64        `json:"order_id"`
	SessionID     string       `json:"session_id"`
	Customer      string       `json:"customer"`
	PaymentMethod string       `json:"payment_method"`
	Status        string       `json:"status"`
	OrderDate     string       `json:"order_date"` // ISO-8601, as stored in the order log
	Items         []PlacedItem `json:"items"`
	Total         string       `json:"total"`
}

// Archived converts the payload into its archive row.
func (p OrderPlacedPayload) Archived() (ArchivedOrder, error) {
	at, err := time.Parse(time.RFC3339Nano, p.OrderDate)
	if err != nil {
		return ArchivedOrder{}, fmt.Errorf("order %d: order date: %w", p.OrderID, err)
	}
	items := make([]ArchivedItem, 0, len(p.Items))
	for i, it := range p.Items {
		items = append(items, ArchivedItem{Position: i, Name: it.Name, Price: it.Price})
	}
	return ArchivedOrder{
		OrderID:       p.OrderID,
		SessionID:     p.SessionID,
		Customer:      p.Customer,
		PaymentMethod: p.PaymentMethod,
		Status:        p.Status,
		Total:         p.Total,
		Items:         items,
		OrderedAt:     at,
	}, nil
}
