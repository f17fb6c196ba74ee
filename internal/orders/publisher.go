package orders

import (
	"context"
	"time"

	"github.com/ariefcatur/go-cart-sidebar/internal/cart"
	kafkax "github.com/ariefcatur/go-cart-sidebar/internal/kafka"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

type producer interface {
	Publish(key, value []byte, headers ...kafkago.Header) error
}

// Publisher announces placed orders of one session on TopicOrderPlaced.
type Publisher struct {
	Producer  producer
	Service   string
	SessionID string
}

func (p *Publisher) OrderPlaced(ctx context.Context, o cart.Order) error {
	ev := Envelope{
		EventID:       uuid.NewString(),
		EventType:     EventOrderPlaced,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      p.Service,
		CorrelationID: p.SessionID,
		Payload:       kafkax.MustMarshal(PlacedPayload(p.SessionID, o)),
	}
	return p.Producer.Publish(PartitionKey(p.SessionID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(EventOrderPlaced)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func PlacedPayload(sessionID string, o cart.Order) OrderPlacedPayload {
	items := make([]PlacedItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, PlacedItem{Name: it.Name, Price: it.Price.String()})
	}
	return OrderPlacedPayload{
		OrderID:       o.ID,
		SessionID:     sessionID,
		Customer:      o.Customer,
		PaymentMethod: o.PaymentMethod,
		Status:        string(o.Status),
		OrderDate:     o.OrderDate,
		Items:         items,
		Total:         o.Total().StringFixed(2),
	}
}
