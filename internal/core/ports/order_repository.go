package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders persist indefinitely, terminal states included, as the audit record
// of each delivery.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists a state transition with compare-and-set semantics:
	// the write succeeds only if the stored row still carries fromStatus and
	// the version the aggregate was loaded with. A concurrent transition that
	// got there first makes the write fail with Conflict.
	Update(ctx context.Context, aggregate *order.Order, fromStatus order.Status) error

	// UpdateAssignment persists the courier reference with compare-and-set
	// semantics on the unset courier column: the write succeeds only if the
	// stored row is still in preparation and has no courier. A racing second
	// assignment fails with Conflict.
	UpdateAssignment(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Fails with ObjectNotFound when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllForParty retrieves every order the actor is a party to: orders
	// whose client, merchant, or courier reference matches the actor's id.
	// Admins see all orders.
	GetAllForParty(ctx context.Context, actor kernel.Actor) ([]*order.Order, error)

	// GetAllAwaitingAssignment retrieves orders in preparation that have no
	// courier assigned yet. Feeds the assignment reminder job.
	GetAllAwaitingAssignment(ctx context.Context) ([]*order.Order, error)
}
