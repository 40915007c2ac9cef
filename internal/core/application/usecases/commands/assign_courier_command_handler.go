package commands

import (
	"context"
	"time"

	"marketplace/internal/core/ports"
)

// AssignCourierCommandHandler attaches a courier to an order in preparation.
//
// The aggregate gates the operation on role and status; the repository write
// additionally compare-and-sets on the unset courier column so a racing
// second assignment fails with Conflict instead of overwriting.
type AssignCourierCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

// NewAssignCourierCommandHandler creates a handler for courier assignment.
// Requires a UoWFactory because the courier's existence is checked in the
// same transaction as the order write.
func NewAssignCourierCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the courier assignment command.
func (h AssignCourierCommandHandler) Handle(ctx context.Context, cmd AssignCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierAggregate, err := uow.CourierRepository().Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.AssignCourier(cmd.Actor(), courierAggregate.ID(), time.Now()); err != nil {
		return err
	}

	if err = orderRepo.UpdateAssignment(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, aggregate.PendingEvents()...)
	aggregate.ClearPendingEvents()

	return nil
}
