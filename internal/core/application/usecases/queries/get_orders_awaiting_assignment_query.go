package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetOrdersAwaitingAssignmentQueryIsNotConstructed = errors.New(
	"GetOrdersAwaitingAssignmentQuery must be created via NewGetOrdersAwaitingAssignmentQuery constructor",
)

// GetOrdersAwaitingAssignmentQuery retrieves orders in preparation that have
// no courier yet. Feeds the assignment reminder job.
type GetOrdersAwaitingAssignmentQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOrdersAwaitingAssignmentQuery creates the parameterless query.
func NewGetOrdersAwaitingAssignmentQuery() GetOrdersAwaitingAssignmentQuery {
	return GetOrdersAwaitingAssignmentQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersAwaitingAssignmentQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersAwaitingAssignmentQueryIsNotConstructed)
}

// GetOrdersAwaitingAssignmentQueryResponse identifies one unassigned order.
type GetOrdersAwaitingAssignmentQueryResponse struct {
	ID         kernel.UUID
	MerchantID kernel.UUID
	CreatedAt  time.Time
}
