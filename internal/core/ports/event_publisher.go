package ports

import (
	"context"

	"marketplace/internal/core/domain/model/order"
)

// EventPublisher fans domain events out to live subscribers. Delivery is
// best-effort: there is no persistence and no replay, and publishing never
// fails the command that produced the events.
type EventPublisher interface {
	Publish(ctx context.Context, events ...order.DomainEvent)
}
