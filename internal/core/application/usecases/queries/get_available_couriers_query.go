package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetAvailableCouriersQueryIsNotConstructed = errors.New(
	"GetAvailableCouriersQuery must be created via NewGetAvailableCouriersQuery constructor",
)

// GetAvailableCouriersQuery retrieves couriers currently accepting work,
// ranked by distance from a pickup origin (typically the merchant's address).
type GetAvailableCouriersQuery struct { //nolint:recvcheck //using for validation
	origin kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewGetAvailableCouriersQuery creates a query ranked from the given origin.
func NewGetAvailableCouriersQuery(origin kernel.GeoPoint) (GetAvailableCouriersQuery, error) {
	q := GetAvailableCouriersQuery{guard: guard.NewConstructorGuard()}
	if err := q.setOrigin(origin); err != nil {
		return GetAvailableCouriersQuery{}, err
	}
	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableCouriersQueryIsNotConstructed)
}

// Origin returns the ranking origin.
func (q GetAvailableCouriersQuery) Origin() kernel.GeoPoint {
	return q.origin
}

func (q *GetAvailableCouriersQuery) setOrigin(origin kernel.GeoPoint) error {
	if err := origin.Validate(); err != nil {
		return err
	}

	q.origin = origin
	return nil
}

// GetAvailableCouriersQueryResponse is the ranked courier read model.
// DistanceMeters is nil for couriers that never reported a position; those
// rank after all positioned couriers.
type GetAvailableCouriersQueryResponse struct {
	ID             kernel.UUID
	Name           string
	Position       *kernel.GeoPoint
	PositionAt     *time.Time
	DistanceMeters *float64
}
