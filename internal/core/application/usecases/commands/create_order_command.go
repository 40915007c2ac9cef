package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a client's request to place a new order with
// a merchant. Carries the raw address and price data; value objects are
// constructed by the handler.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	actor      kernel.Actor
	merchantID kernel.UUID
	totalCents int64
	street     string
	city       string
	postalCode string
	lat        float64
	lng        float64

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// The actor must be the ordering client; the address fields locate the
// delivery destination.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	actor kernel.Actor,
	merchantID kernel.UUID,
	totalCents int64,
	street, city, postalCode string,
	lat, lng float64,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		totalCents: totalCents,
		street:     street,
		city:       city,
		postalCode: postalCode,
		lat:        lat,
		lng:        lng,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setMerchantID(merchantID),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the ordering client.
func (c CreateOrderCommand) Actor() kernel.Actor {
	return c.actor
}

// MerchantID returns the merchant the order is placed with.
func (c CreateOrderCommand) MerchantID() kernel.UUID {
	return c.merchantID
}

// TotalCents returns the order total in cents.
func (c CreateOrderCommand) TotalCents() int64 {
	return c.totalCents
}

// Street returns the delivery street address.
func (c CreateOrderCommand) Street() string {
	return c.street
}

// City returns the delivery city.
func (c CreateOrderCommand) City() string {
	return c.city
}

// PostalCode returns the delivery postal code.
func (c CreateOrderCommand) PostalCode() string {
	return c.postalCode
}

// Lat returns the delivery latitude.
func (c CreateOrderCommand) Lat() float64 {
	return c.lat
}

// Lng returns the delivery longitude.
func (c CreateOrderCommand) Lng() float64 {
	return c.lng
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *CreateOrderCommand) setMerchantID(merchantID kernel.UUID) error {
	if err := merchantID.Validate(); err != nil {
		return err
	}

	c.merchantID = merchantID
	return nil
}
