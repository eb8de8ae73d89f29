// Package ports defines the driven-side interfaces of the core: repository
// and unit-of-work contracts implemented by persistence adapters, and
// collaborator contracts implemented by the surrounding platform.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
)

// DeliveryRepository persists Delivery aggregates together with their
// uncommitted timeline events. Add and Update write the delivery row and
// its pending events in the ambient transaction, so a status change is
// never committed without its timeline entry, nor vice versa.
type DeliveryRepository interface {
	// Add saves a new delivery and its pending timeline events.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update saves an existing delivery and appends its pending timeline
	// events. Returns an error if the delivery row does not exist.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery by ID without locking.
	// Returns errs.ObjectNotFoundError if missing.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetForUpdate retrieves a delivery by ID with a row-level lock, so
	// concurrent status transitions on the same delivery serialize. Must
	// run inside a unit-of-work transaction.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetByOrderID retrieves the delivery backing an order, enforcing the
	// one-delivery-per-order ownership at lookup time.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error)

	// FindNearby returns deliveries whose destination lies within radiusKm
	// of center, nearest first with ties broken by ID. A nil status matches
	// all statuses; radiusKm <= 0 yields an empty result.
	FindNearby(
		ctx context.Context,
		center kernel.GeoPoint,
		radiusKm float64,
		status *delivery.Status,
	) ([]*delivery.Delivery, error)
}
