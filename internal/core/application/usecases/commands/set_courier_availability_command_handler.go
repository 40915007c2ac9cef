package commands

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// SetCourierAvailabilityCommandHandler flips a courier's availability flag.
type SetCourierAvailabilityCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewSetCourierAvailabilityCommandHandler creates a handler for availability changes.
func NewSetCourierAvailabilityCommandHandler(uowFactory CourierUoWFactory) SetCourierAvailabilityCommandHandler {
	return SetCourierAvailabilityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the availability change. A courier may only change their
// own flag; admins may change anyone's.
func (h SetCourierAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetCourierAvailabilityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	actor := cmd.Actor()
	ownFlag := actor.Role() == kernel.RoleCourier && actor.ID().IsEqual(cmd.CourierID())
	if !ownFlag && actor.Role() != kernel.RoleAdmin {
		return errs.NewForbiddenError("set courier availability", actor.String())
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	aggregate, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if err = aggregate.SetAvailability(cmd.Available()); err != nil {
		return err
	}

	if err = courierRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
