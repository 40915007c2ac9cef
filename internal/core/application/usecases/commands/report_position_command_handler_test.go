package commands_test

import (
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// courierWithActiveOrder returns a courier mid-delivery together with the
// picked-up order and the courier actor.
func courierWithActiveOrder(t *testing.T) (*courier.Courier, *order.Order, kernel.Actor) {
	t.Helper()
	c, err := courier.NewCourier(kernel.NewUUID(), "Jean Dupont")
	require.NoError(t, err)

	o, merchant := orderInPreparation(t)
	require.NoError(t, o.AssignCourier(merchant, c.ID(), time.Now()))
	require.NoError(t, o.TransitionTo(merchant, order.StatusReadyForPickup, nil, time.Now()))

	actor, err := kernel.NewActor(c.ID(), kernel.RoleCourier)
	require.NoError(t, err)
	require.NoError(t, o.TransitionTo(actor, order.StatusPickedUp, nil, time.Now()))
	o.ClearPendingEvents()

	return c, o, actor
}

func TestReportPositionCommandHandler_Handle_AppliedWithActiveOrder(t *testing.T) {
	ctx := t.Context()
	c, o, actor := courierWithActiveOrder(t)

	cmd, err := commands.NewReportPositionCommand(actor, 48.8600, 2.3600, time.Now())
	require.NoError(t, err)

	courierRepo := new(MockCourierRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("Get", mock.Anything, c.ID()).Return(c, nil).Once(),
		courierRepo.On("Update", mock.Anything, c).Return(nil).Once(),
		orderRepo.On("GetAllForParty", mock.Anything, actor).Return([]*order.Order{o}, nil).Once(),
		orderRepo.On("Update", mock.Anything, o, order.StatusPickedUp).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	uow.On("OrderRepository").Return(orderRepo)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(events []order.DomainEvent) bool {
		if len(events) != 1 {
			return false
		}
		moved, ok := events[0].(order.CourierPositionUpdated)
		return ok && moved.OrderID.IsEqual(o.ID()) && moved.CourierID.IsEqual(c.ID())
	})).Once()

	h := commands.NewReportPositionCommandHandler(factory, publisher)
	require.NoError(t, h.Handle(ctx, cmd))

	require.NotNil(t, c.LastPosition())
	assert.Len(t, o.TraceMerchant(), 1)
	publisher.AssertExpectations(t)
	courierRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestReportPositionCommandHandler_Handle_AppliedWithoutActiveOrder(t *testing.T) {
	ctx := t.Context()
	c, err := courier.NewCourier(kernel.NewUUID(), "Jean Dupont")
	require.NoError(t, err)
	actor, err := kernel.NewActor(c.ID(), kernel.RoleCourier)
	require.NoError(t, err)

	cmd, err := commands.NewReportPositionCommand(actor, 48.8600, 2.3600, time.Now())
	require.NoError(t, err)

	courierRepo := new(MockCourierRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("Get", mock.Anything, c.ID()).Return(c, nil).Once(),
		courierRepo.On("Update", mock.Anything, c).Return(nil).Once(),
		orderRepo.On("GetAllForParty", mock.Anything, actor).Return([]*order.Order{}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	uow.On("OrderRepository").Return(orderRepo)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := new(MockEventPublisher)

	h := commands.NewReportPositionCommandHandler(factory, publisher)
	require.NoError(t, h.Handle(ctx, cmd))
	publisher.AssertNotCalled(t, "Publish")
}

func TestReportPositionCommandHandler_Handle_StaleSampleIsSilentNoOp(t *testing.T) {
	ctx := t.Context()
	c, err := courier.NewCourier(kernel.NewUUID(), "Jean Dupont")
	require.NoError(t, err)
	actor, err := kernel.NewActor(c.ID(), kernel.RoleCourier)
	require.NoError(t, err)

	base := time.Now()
	point, err := kernel.NewGeoPoint(48.8566, 2.3522)
	require.NoError(t, err)
	applied, err := c.RecordPosition(point, base)
	require.NoError(t, err)
	require.True(t, applied)

	cmd, err := commands.NewReportPositionCommand(actor, 48.8600, 2.3600, base.Add(-time.Minute))
	require.NoError(t, err)

	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("Get", mock.Anything, c.ID()).Return(c, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := new(MockEventPublisher)

	h := commands.NewReportPositionCommandHandler(factory, publisher)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, base, c.LastPosition().CapturedAt())
	courierRepo.AssertNotCalled(t, "Update")
	publisher.AssertNotCalled(t, "Publish")
}

func TestReportPositionCommandHandler_Handle_UnavailableCourierForbidden(t *testing.T) {
	ctx := t.Context()
	c, err := courier.NewCourier(kernel.NewUUID(), "Jean Dupont")
	require.NoError(t, err)
	require.NoError(t, c.SetAvailability(false))
	actor, err := kernel.NewActor(c.ID(), kernel.RoleCourier)
	require.NoError(t, err)

	cmd, err := commands.NewReportPositionCommand(actor, 48.8600, 2.3600, time.Now())
	require.NoError(t, err)

	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("Get", mock.Anything, c.ID()).Return(c, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReportPositionCommandHandler(factory, new(MockEventPublisher))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrForbidden)
	assert.Nil(t, c.LastPosition())
	courierRepo.AssertNotCalled(t, "Update")
}

func TestReportPositionCommandHandler_Handle_NonCourierForbidden(t *testing.T) {
	ctx := t.Context()
	actor := newActor(t, kernel.RoleClient)

	cmd, err := commands.NewReportPositionCommand(actor, 48.8600, 2.3600, time.Now())
	require.NoError(t, err)

	factory := new(MockUoWFactory)
	h := commands.NewReportPositionCommandHandler(factory, new(MockEventPublisher))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrForbidden)
	factory.AssertNotCalled(t, "Create")
}

func TestNewReportPositionCommand(t *testing.T) {
	t.Run("should fail with zero capture time", func(t *testing.T) {
		actor := newActor(t, kernel.RoleCourier)
		_, err := commands.NewReportPositionCommand(actor, 48.8566, 2.3522, time.Time{})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value should fail validation", func(t *testing.T) {
		cmd := commands.ReportPositionCommand{}
		require.ErrorIs(t, cmd.Validate(), commands.ErrReportPositionCommandIsNotConstructed)
	})
}
