package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrSetCourierAvailabilityCommandIsNotConstructed = errors.New(
	"SetCourierAvailabilityCommand must be created via NewSetCourierAvailabilityCommand constructor",
)

// SetCourierAvailabilityCommand represents a request to flip a courier's
// availability flag. Couriers flip their own flag; admins may flip anyone's.
type SetCourierAvailabilityCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	actor     kernel.Actor
	available bool

	guard guard.ConstructorGuard
}

// NewSetCourierAvailabilityCommand creates a command to set availability.
func NewSetCourierAvailabilityCommand(
	courierID kernel.UUID,
	actor kernel.Actor,
	available bool,
) (SetCourierAvailabilityCommand, error) {
	cmd := SetCourierAvailabilityCommand{
		available: available,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCourierID(courierID),
		cmd.setActor(actor),
	); err != nil {
		return SetCourierAvailabilityCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetCourierAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetCourierAvailabilityCommandIsNotConstructed)
}

// CourierID returns the courier whose flag is being set.
func (c SetCourierAvailabilityCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Actor returns the party requesting the change.
func (c SetCourierAvailabilityCommand) Actor() kernel.Actor {
	return c.actor
}

// Available returns the requested flag value.
func (c SetCourierAvailabilityCommand) Available() bool {
	return c.available
}

func (c *SetCourierAvailabilityCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

func (c *SetCourierAvailabilityCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
