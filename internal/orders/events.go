package orders

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/printcraftlabs/printcraft-backend/pkg/enums"
	"github.com/printcraftlabs/printcraft-backend/pkg/logger"
)

const (
	eventOrderCreated       = "order.created"
	eventOrderStatusChanged = "order.status_changed"
)

// EventPublisher is the broker surface order events are emitted through.
// A nil publisher disables eventing.
type EventPublisher interface {
	Publish(ctx context.Context, data []byte, attrs map[string]string) (string, error)
}

// OrderCreatedEvent is published after a successful submit.
type OrderCreatedEvent struct {
	OrderID     uuid.UUID         `json:"order_id"`
	UserID      uuid.UUID         `json:"user_id"`
	Status      enums.OrderStatus `json:"status"`
	TotalAmount float64           `json:"total_amount"`
	ItemCount   int               `json:"item_count"`
	CreatedAt   time.Time         `json:"created_at"`
}

// OrderStatusChangedEvent is published when an admin moves an order.
type OrderStatusChangedEvent struct {
	OrderID    uuid.UUID         `json:"order_id"`
	FromStatus enums.OrderStatus `json:"from_status"`
	ToStatus   enums.OrderStatus `json:"to_status"`
	ChangedAt  time.Time         `json:"changed_at"`
}

// emitEvent publishes best-effort. A broker outage must never fail the
// customer-facing write that triggered the event.
func emitEvent(ctx context.Context, pub EventPublisher, logg *logger.Logger, eventType string, payload any) {
	if pub == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		if logg != nil {
			logg.Error(ctx, "marshaling order event", err)
		}
		return
	}

	if _, err := pub.Publish(ctx, data, map[string]string{"event_type": eventType}); err != nil {
		if logg != nil {
			logg.Error(ctx, "publishing order event", err)
		}
	}
}
