package cmd

import (
	"log/slog"

	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/platform"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	notifier   ports.DriverNotifier
	logger     *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	notifier ports.DriverNotifier,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:   notifier,
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateDeliveryCommandHandler() commands.CreateDeliveryCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateDeliveryCommandHandler(f, platform.NewGormOrderClient(c.gormDB))
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignDriverCommandHandler(
		f, platform.NewGormDriverClient(c.gormDB), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateAssignNearestDriverCommandHandler() commands.AssignNearestDriverCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignNearestDriverCommandHandler(
		f, platform.NewGormDriverClient(c.gormDB), c.notifier, c.logger,
		c.config.DriverSearchRadiusKm)
}

func (c *CompositionRoot) CreateUpdateDeliveryStatusCommandHandler() commands.UpdateDeliveryStatusCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateDeliveryStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateDriverLocationCommandHandler() commands.UpdateDriverLocationCommandHandler {
	var f commands.LocationUoWFactory = FuncLocationUoWFactory(func() commands.LocationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateDriverLocationCommandHandler(f, c.config.LocationMinInterval)
}

func (c *CompositionRoot) CreateRecordDeliveryLocationCommandHandler() commands.RecordDeliveryLocationCommandHandler {
	var f commands.TransitUoWFactory = FuncTransitUoWFactory(func() commands.TransitUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordDeliveryLocationCommandHandler(f)
}

func (c *CompositionRoot) CreatePruneLocationHistoryCommandHandler() commands.PruneLocationHistoryCommandHandler {
	var f commands.LocationUoWFactory = FuncLocationUoWFactory(func() commands.LocationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPruneLocationHistoryCommandHandler(f)
}

func (c *CompositionRoot) CreateFindNearbyDriversQueryHandler() queries.FindNearbyDriversQueryHandler {
	return queries.NewFindNearbyDriversQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateFindNearbyDeliveriesQueryHandler() queries.FindNearbyDeliveriesQueryHandler {
	return queries.NewFindNearbyDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDriverLocationQueryHandler() queries.GetDriverLocationQueryHandler {
	return queries.NewGetDriverLocationQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryTimelineQueryHandler() queries.GetDeliveryTimelineQueryHandler {
	return queries.NewGetDeliveryTimelineQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreatePruneLocationHistoryCommandHandler(),
		c.logger,
		c.config.LocationHistoryKeep,
		c.config.LocationStaleAfter,
	)
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncLocationUoWFactory func() commands.LocationUoW

func (f FuncLocationUoWFactory) Create() commands.LocationUoW {
	return f()
}

type FuncTransitUoWFactory func() commands.TransitUoW

func (f FuncTransitUoWFactory) Create() commands.TransitUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
