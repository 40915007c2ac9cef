package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrAssignCourierCommandIsNotConstructed = errors.New(
	"AssignCourierCommand must be created via NewAssignCourierCommand constructor",
)

// AssignCourierCommand represents a request to attach a courier to an order
// that is in preparation. The order status is left unchanged; moving to
// ready_for_pickup is a separate transition.
type AssignCourierCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	actor     kernel.Actor
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignCourierCommand creates a command to assign a courier to an order.
func NewAssignCourierCommand(
	orderID kernel.UUID,
	actor kernel.Actor,
	courierID kernel.UUID,
) (AssignCourierCommand, error) {
	cmd := AssignCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setCourierID(courierID),
	); err != nil {
		return AssignCourierCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignCourierCommand) Validate() error {
	return c.guard.Validate(ErrAssignCourierCommandIsNotConstructed)
}

// OrderID returns the order to assign a courier to.
func (c AssignCourierCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the party requesting the assignment.
func (c AssignCourierCommand) Actor() kernel.Actor {
	return c.actor
}

// CourierID returns the courier being assigned.
func (c AssignCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c *AssignCourierCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AssignCourierCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *AssignCourierCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}
