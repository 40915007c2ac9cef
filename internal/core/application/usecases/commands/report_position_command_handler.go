package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// ReportPositionCommandHandler ingests a courier position sample.
//
// The courier aggregate gates the report on availability and discards stale
// samples. An applied sample is additionally appended to the route trace of
// the courier's active order, if any, and published to that order's channel.
// A discarded stale sample is a silent no-op.
type ReportPositionCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

// NewReportPositionCommandHandler creates a handler for position reports.
func NewReportPositionCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
) ReportPositionCommandHandler {
	return ReportPositionCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the position report command.
func (h ReportPositionCommandHandler) Handle(ctx context.Context, cmd ReportPositionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if cmd.Actor().Role() != kernel.RoleCourier {
		return errs.NewForbiddenError("report position", cmd.Actor().String())
	}

	point, err := kernel.NewGeoPoint(cmd.Lat(), cmd.Lng())
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

	courierRepo := uow.CourierRepository()
	courierAggregate, err := courierRepo.Get(ctx, cmd.Actor().ID())
	if err != nil {
		return err
	}

	applied, err := courierAggregate.RecordPosition(point, cmd.CapturedAt())
	if err != nil {
		return err
	}
	if !applied {
		return nil
	}

	if err = courierRepo.Update(ctx, courierAggregate); err != nil {
		return err
	}

	activeOrder, err := h.findActiveOrder(ctx, uow.OrderRepository(), cmd.Actor())
	if err != nil {
		return err
	}
	if activeOrder != nil {
		fromStatus := activeOrder.Status()
		if err = activeOrder.RecordRoutePoint(point, cmd.CapturedAt()); err != nil {
			return err
		}
		if err = uow.OrderRepository().Update(ctx, activeOrder, fromStatus); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if activeOrder != nil {
		h.publisher.Publish(ctx, order.CourierPositionUpdated{
			OrderID:   activeOrder.ID(),
			CourierID: courierAggregate.ID(),
			Position:  point,
			At:        time.Now().UTC(),
		})
	}

	return nil
}

// findActiveOrder returns the courier's order currently in an active delivery
// status, or nil when the courier is not mid-delivery.
func (h ReportPositionCommandHandler) findActiveOrder(
	ctx context.Context,
	repo ports.OrderRepository,
	actor kernel.Actor,
) (*order.Order, error) {
	orders, err := repo.GetAllForParty(ctx, actor)
	if err != nil {
		return nil, err
	}

	for _, o := range orders {
		if o.Status().IsActiveDelivery() {
			return o, nil
		}
	}
	return nil, nil
}
