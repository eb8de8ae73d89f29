// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS split.
// All commands follow a consistent pattern: validation, transaction
// management, and persistence.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. Each handler depends on the narrowest interface covering the
// repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// DeliveryRepoFactory provides access to the delivery repository within
	// a transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// DriverLocationRepoFactory provides access to the driver location
	// repository within a transaction.
	DriverLocationRepoFactory interface {
		DriverLocationRepository() ports.DriverLocationRepository
	}

	// DeliveryLocationRepoFactory provides access to the delivery location
	// repository within a transaction.
	DeliveryLocationRepoFactory interface {
		DeliveryLocationRepository() ports.DeliveryLocationRepository
	}

	// DeliveryUoW manages transactions for delivery-only operations.
	DeliveryUoW interface {
		TxManager
		DeliveryRepoFactory
	}

	// DeliveryUoWFactory creates delivery unit of work instances.
	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// LocationUoW manages transactions for driver-location-only operations.
	LocationUoW interface {
		TxManager
		DriverLocationRepoFactory
	}

	// LocationUoWFactory creates location unit of work instances.
	LocationUoWFactory interface {
		Create() LocationUoW
	}

	// TransitUoW manages transactions spanning a delivery and its transit
	// samples, used when a timeline event and a location sample must commit
	// together.
	TransitUoW interface {
		TxManager
		DeliveryRepoFactory
		DeliveryLocationRepoFactory
	}

	// TransitUoWFactory creates transit unit of work instances.
	TransitUoWFactory interface {
		Create() TransitUoW
	}

	// UoW manages transactions across deliveries and driver locations, used
	// by commands that match the two (e.g. assigning the nearest driver).
	UoW interface {
		TxManager
		DeliveryRepoFactory
		DriverLocationRepoFactory
	}

	// UoWFactory creates cross-aggregate unit of work instances.
	UoWFactory interface {
		Create() UoW
	}
)
