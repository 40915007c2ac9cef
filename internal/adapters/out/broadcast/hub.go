// Package broadcast provides the in-memory live channel for order events.
// The hub fans order state changes and courier position updates out to
// subscribed sessions. Delivery is best-effort: nothing is persisted, there
// is no replay, and a session that reconnects after a gap must re-fetch
// current state through the order store.
package broadcast

import (
	"context"
	"log/slog"
	"sync"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// subscriberBuffer is the per-session event buffer. A session that falls
// this far behind is pruned rather than allowed to block publishing.
const subscriberBuffer = 16

// Subscription is one session's membership in one order's roster.
type Subscription struct {
	id      kernel.UUID
	orderID kernel.UUID
	events  chan order.DomainEvent
}

// ID returns the session identifier, used for implicit unsubscribe on
// disconnect.
func (s *Subscription) ID() kernel.UUID {
	return s.id
}

// OrderID returns the order this subscription listens to.
func (s *Subscription) OrderID() kernel.UUID {
	return s.orderID
}

// Events returns the receive side of the session's event stream. The channel
// is closed when the session unsubscribes, is pruned, or the order reaches a
// terminal status.
func (s *Subscription) Events() <-chan order.DomainEvent {
	return s.events
}

// Hub is the subscription roster and fan-out loop of the live channel.
// It implements ports.EventPublisher for the command side and the
// subscribe/unsubscribe surface for the transport adapter.
//
// The roster is the only shared state and is guarded by one mutex; a publish
// never blocks on a slow subscriber.
type Hub struct {
	mu sync.Mutex
	// orderID string -> subscription id string -> subscription
	rosters map[string]map[string]*Subscription
	log     *slog.Logger
}

// NewHub creates an empty hub.
func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		rosters: make(map[string]map[string]*Subscription),
		log:     log.With("component", "broadcast_hub"),
	}
}

// Subscribe admits a session to an order's roster. The session's actor must
// be a party to the order (client, merchant, or courier reference match, or
// admin); anyone else fails with Forbidden and is not added.
func (h *Hub) Subscribe(actor kernel.Actor, aggregate *order.Order) (*Subscription, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}

	if !aggregate.IsParty(actor) {
		return nil, errs.NewForbiddenError("subscribe to order", actor.String())
	}

	sub := &Subscription{
		id:      kernel.NewUUID(),
		orderID: aggregate.ID(),
		events:  make(chan order.DomainEvent, subscriberBuffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	orderKey := aggregate.ID().String()
	roster, ok := h.rosters[orderKey]
	if !ok {
		roster = make(map[string]*Subscription)
		h.rosters[orderKey] = roster
	}
	roster[sub.id.String()] = sub

	h.log.Debug("session subscribed", "order_id", orderKey, "session_id", sub.id.String())
	return sub, nil
}

// Unsubscribe removes one session from one order's roster and closes its
// stream. Unknown subscriptions are a no-op.
func (h *Hub) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(sub.orderID.String(), sub.id.String())
}

// Drop removes a session from every roster it belongs to. Called on session
// disconnect so a dead session never leaks subscriptions.
func (h *Hub) Drop(sessionID kernel.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sessionKey := sessionID.String()
	for orderKey, roster := range h.rosters {
		if _, ok := roster[sessionKey]; ok {
			h.removeLocked(orderKey, sessionKey)
		}
	}
}

// CloseOrder closes every stream on an order's roster and forgets the
// roster. Used when the order reaches a terminal status.
func (h *Hub) CloseOrder(orderID kernel.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closeOrderLocked(orderID.String())
}

// Publish delivers events to every session subscribed to the event's order.
// A session whose buffer is full is pruned. A terminal status change closes
// the order's roster after delivery.
func (h *Hub) Publish(_ context.Context, events ...order.DomainEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, event := range events {
		orderKey := event.EventOrderID().String()
		roster, ok := h.rosters[orderKey]
		if ok {
			for sessionKey, sub := range roster {
				select {
				case sub.events <- event:
				default:
					h.log.Warn("pruning slow subscriber",
						"order_id", orderKey, "session_id", sessionKey)
					h.removeLocked(orderKey, sessionKey)
				}
			}
		}

		if changed, isChange := event.(order.StatusChanged); isChange && changed.To.IsTerminal() {
			h.closeOrderLocked(orderKey)
		}
	}
}

// SubscriberCount reports the roster size for one order.
func (h *Hub) SubscriberCount(orderID kernel.UUID) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rosters[orderID.String()])
}

func (h *Hub) removeLocked(orderKey, sessionKey string) {
	roster, ok := h.rosters[orderKey]
	if !ok {
		return
	}

	if sub, ok := roster[sessionKey]; ok {
		close(sub.events)
		delete(roster, sessionKey)
	}
	if len(roster) == 0 {
		delete(h.rosters, orderKey)
	}
}

func (h *Hub) closeOrderLocked(orderKey string) {
	roster, ok := h.rosters[orderKey]
	if !ok {
		return
	}

	for _, sub := range roster {
		close(sub.events)
	}
	delete(h.rosters, orderKey)
}
