package order

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

// DomainEvent is implemented by every event the order core emits.
// Events are collected on the aggregate during a transition and published
// through the live channel after the write commits.
type DomainEvent interface {
	// EventName returns a stable snake_case event identifier.
	EventName() string

	// EventOrderID returns the order the event is scoped to.
	EventOrderID() kernel.UUID
}

// StatusChanged is emitted on every successful status transition.
type StatusChanged struct {
	OrderID kernel.UUID
	From    Status
	To      Status
	Actor   kernel.Actor
	Reason  *ProblemReason
	At      time.Time
}

// EventName implements DomainEvent.
func (e StatusChanged) EventName() string { return "order_status_changed" }

// EventOrderID implements DomainEvent.
func (e StatusChanged) EventOrderID() kernel.UUID { return e.OrderID }

// CourierAssigned is emitted when a courier reference is set on an order.
type CourierAssigned struct {
	OrderID   kernel.UUID
	CourierID kernel.UUID
	Actor     kernel.Actor
	At        time.Time
}

// EventName implements DomainEvent.
func (e CourierAssigned) EventName() string { return "order_courier_assigned" }

// EventOrderID implements DomainEvent.
func (e CourierAssigned) EventOrderID() kernel.UUID { return e.OrderID }

// CourierPositionUpdated is emitted when the assigned courier reports a
// position while the order is in an active delivery state.
type CourierPositionUpdated struct {
	OrderID   kernel.UUID
	CourierID kernel.UUID
	Position  kernel.GeoPoint
	At        time.Time
}

// EventName implements DomainEvent.
func (e CourierPositionUpdated) EventName() string { return "courier_position_updated" }

// EventOrderID implements DomainEvent.
func (e CourierPositionUpdated) EventOrderID() kernel.UUID { return e.OrderID }

// AwaitingAssignmentReminder is emitted by the reminder job for accepted
// orders that still have no courier.
type AwaitingAssignmentReminder struct {
	OrderID kernel.UUID
	Since   time.Time
	At      time.Time
}

// EventName implements DomainEvent.
func (e AwaitingAssignmentReminder) EventName() string { return "order_awaiting_assignment" }

// EventOrderID implements DomainEvent.
func (e AwaitingAssignmentReminder) EventOrderID() kernel.UUID { return e.OrderID }
