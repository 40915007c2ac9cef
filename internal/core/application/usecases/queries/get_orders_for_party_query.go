// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrGetOrdersForPartyQueryIsNotConstructed = errors.New(
	"GetOrdersForPartyQuery must be created via NewGetOrdersForPartyQuery constructor",
)

// GetOrdersForPartyQuery retrieves every order the actor is a party to:
// orders where the actor's id matches the client, merchant, or courier
// reference. Admins see all orders.
type GetOrdersForPartyQuery struct { //nolint:recvcheck //using for validation
	actor kernel.Actor

	guard guard.ConstructorGuard
}

// NewGetOrdersForPartyQuery creates a query scoped to one actor.
func NewGetOrdersForPartyQuery(actor kernel.Actor) (GetOrdersForPartyQuery, error) {
	q := GetOrdersForPartyQuery{guard: guard.NewConstructorGuard()}
	if err := q.setActor(actor); err != nil {
		return GetOrdersForPartyQuery{}, err
	}
	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersForPartyQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersForPartyQueryIsNotConstructed)
}

// Actor returns the requesting party.
func (q GetOrdersForPartyQuery) Actor() kernel.Actor {
	return q.actor
}

func (q *GetOrdersForPartyQuery) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	q.actor = actor
	return nil
}

// GetOrdersForPartyQueryResponse is the order read model exposed to parties.
// Confirmation codes are deliberately absent; they travel out of band.
type GetOrdersForPartyQueryResponse struct {
	ID            kernel.UUID
	ClientID      kernel.UUID
	MerchantID    kernel.UUID
	CourierID     *kernel.UUID
	Status        order.Status
	TotalCents    int64
	Street        string
	City          string
	PostalCode    string
	CreatedAt     time.Time
	PickedUpAt    *time.Time
	DeliveredAt   *time.Time
	ProblemReason *order.ProblemReason
}
