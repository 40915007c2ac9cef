package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand represents a request to move an order to a new
// lifecycle status on behalf of an actor. A problem reason accompanies
// transitions into the problem status and is nil otherwise.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor
	target  order.Status
	reason  *order.ProblemReason

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a command to transition an order.
func NewTransitionOrderCommand(
	orderID kernel.UUID,
	actor kernel.Actor,
	target order.Status,
	reason *order.ProblemReason,
) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setTarget(target),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the party requesting the transition.
func (c TransitionOrderCommand) Actor() kernel.Actor {
	return c.actor
}

// Target returns the requested destination status.
func (c TransitionOrderCommand) Target() order.Status {
	return c.target
}

// Reason returns the problem reason, nil unless the target is problem.
func (c TransitionOrderCommand) Reason() *order.ProblemReason {
	return c.reason
}

func (c *TransitionOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *TransitionOrderCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}
