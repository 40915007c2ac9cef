package cmd

import (
	"context"
	"log/slog"

	httpin "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/broadcast"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	hub        *broadcast.Hub
	logger     *slog.Logger
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		hub:        broadcast.NewHub(logger),
		logger:     logger,
	}
}

// Hub returns the live order event channel.
func (c *CompositionRoot) Hub() *broadcast.Hub {
	return c.hub
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(f, c.hub)
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignCourierCommandHandler(f, c.hub)
}

func (c *CompositionRoot) CreateReportPositionCommandHandler() commands.ReportPositionCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewReportPositionCommandHandler(f, c.hub)
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateCourierCommandHandler(f)
}

func (c *CompositionRoot) CreateSetCourierAvailabilityCommandHandler() commands.SetCourierAvailabilityCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetCourierAvailabilityCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrdersForPartyQueryHandler() queries.GetOrdersForPartyQueryHandler {
	return queries.NewGetOrdersForPartyQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableCouriersQueryHandler() queries.GetAvailableCouriersQueryHandler {
	return queries.NewGetAvailableCouriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCourierPositionQueryHandler() queries.GetCourierPositionQueryHandler {
	return queries.NewGetCourierPositionQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersAwaitingAssignmentQueryHandler() queries.GetOrdersAwaitingAssignmentQueryHandler {
	return queries.NewGetOrdersAwaitingAssignmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateGetOrdersAwaitingAssignmentQueryHandler(), c.hub, c.logger)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateTransitionOrderCommandHandler(),
		c.CreateAssignCourierCommandHandler(),
		c.CreateReportPositionCommandHandler(),
		c.CreateCreateCourierCommandHandler(),
		c.CreateSetCourierAvailabilityCommandHandler(),
		c.CreateGetOrdersForPartyQueryHandler(),
		c.CreateGetAvailableCouriersQueryHandler(),
		c.CreateGetCourierPositionQueryHandler(),
		c.hub,
		uowOrderFinder{factory: &c.uowFactory},
	)
}

// uowOrderFinder loads order aggregates for subscription gating through a
// fresh unit of work per read.
type uowOrderFinder struct {
	factory *postgres.GormUnitOfWorkFactory
}

func (f uowOrderFinder) Get(ctx context.Context, orderID kernel.UUID) (*order.Order, error) {
	return f.factory.Create().OrderRepository().Get(ctx, orderID)
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
