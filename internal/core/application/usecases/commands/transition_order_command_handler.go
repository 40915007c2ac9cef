package commands

import (
	"context"
	"time"

	"marketplace/internal/core/ports"
)

// TransitionOrderCommandHandler applies a lifecycle transition to an order.
//
// The aggregate enforces the edge, role, and precondition rules; the
// repository write re-checks the source status and version so that of two
// racing transitions only one commits and the loser observes Conflict.
// Domain events are published after the commit succeeds.
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewTransitionOrderCommandHandler creates a handler for order transitions.
func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the transition command.
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	fromStatus := aggregate.Status()
	if err = aggregate.TransitionTo(cmd.Actor(), cmd.Target(), cmd.Reason(), time.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate, fromStatus); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, aggregate.PendingEvents()...)
	aggregate.ClearPendingEvents()

	return nil
}
