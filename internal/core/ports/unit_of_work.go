package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// UnitOfWork coordinates a business transaction across repositories.
// Repositories obtained from a unit of work execute inside its transaction
// once Begin has been called; Commit and Rollback are all-or-nothing for
// every write performed through them.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	DeliveryRepository() DeliveryRepository
	DriverLocationRepository() DriverLocationRepository
	DeliveryLocationRepository() DeliveryLocationRepository

	// TrackAggregate registers an aggregate modified in this unit of work,
	// enabling post-commit processing such as event publication.
	TrackAggregate(id kernel.UUID, aggregate any)
}

// UnitOfWorkFactory produces isolated UnitOfWork instances; concurrent
// operations must each use their own instance.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
