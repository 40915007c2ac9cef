// Package ports defines the contracts between the application core and its
// infrastructure adapters, enabling dependency inversion and testability.
package ports

import (
	"context"

	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a new courier aggregate to storage.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Update persists changes to an existing courier aggregate. The write is
	// guarded by the version the aggregate was loaded with; a concurrent
	// write makes it fail with Conflict.
	Update(ctx context.Context, aggregate *courier.Courier) error

	// Get retrieves a courier aggregate by its unique identifier.
	// Fails with ObjectNotFound when no such courier exists.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAllAvailable retrieves all couriers currently accepting work.
	GetAllAvailable(ctx context.Context) ([]*courier.Courier, error)
}
