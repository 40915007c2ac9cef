package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// New orders start in pending status with both confirmation codes generated.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command. Only a client may place an
// order, and the order is created on the client's own behalf.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if cmd.Actor().Role() != kernel.RoleClient {
		return errs.NewForbiddenError("create order", cmd.Actor().String())
	}

	point, err := kernel.NewGeoPoint(cmd.Lat(), cmd.Lng())
	if err != nil {
		return err
	}

	address, err := kernel.NewAddress(cmd.Street(), cmd.City(), cmd.PostalCode(), point)
	if err != nil {
		return err
	}

	total, err := kernel.NewMoney(cmd.TotalCents())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := order.NewOrder(
		cmd.OrderID(), cmd.Actor().ID(), cmd.MerchantID(), total, address, time.Now(),
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
