package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetCourierPositionQueryIsNotConstructed = errors.New(
	"GetCourierPositionQuery must be created via NewGetCourierPositionQuery constructor",
)

// GetCourierPositionQuery retrieves the latest known position of one courier.
type GetCourierPositionQuery struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCourierPositionQuery creates a query for one courier's position.
func NewGetCourierPositionQuery(courierID kernel.UUID) (GetCourierPositionQuery, error) {
	q := GetCourierPositionQuery{guard: guard.NewConstructorGuard()}
	if err := q.setCourierID(courierID); err != nil {
		return GetCourierPositionQuery{}, err
	}
	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCourierPositionQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierPositionQueryIsNotConstructed)
}

// CourierID returns the courier whose position is requested.
func (q GetCourierPositionQuery) CourierID() kernel.UUID {
	return q.courierID
}

func (q *GetCourierPositionQuery) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	q.courierID = courierID
	return nil
}

// GetCourierPositionQueryResponse is the latest-position read model.
type GetCourierPositionQueryResponse struct {
	CourierID  kernel.UUID
	Position   kernel.GeoPoint
	CapturedAt time.Time
}
