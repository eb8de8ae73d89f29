package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/tracking"
)

// DriverLocationRepository is the proximity index over driver positions.
// Reads are non-blocking with respect to concurrent location writes; a
// concurrent query may observe a driver's position as of any point between
// its last two accepted updates.
type DriverLocationRepository interface {
	// Add appends a new location record; it becomes the driver's current
	// location by recency.
	Add(ctx context.Context, record *tracking.DriverLocation) error

	// GetCurrent returns the driver's most recent active record.
	// Returns errs.ObjectNotFoundError when the driver has none.
	GetCurrent(ctx context.Context, driverID kernel.UUID) (*tracking.DriverLocation, error)

	// FindNearbyDrivers returns drivers whose current location lies within
	// radiusKm of center, nearest first with ties broken by record ID.
	// activeOnly restricts results to is_active records. The center point
	// itself is included at distance zero unless excludeDriverID matches;
	// exclusion is never implicit. radiusKm <= 0 yields an empty result.
	FindNearbyDrivers(
		ctx context.Context,
		center kernel.GeoPoint,
		radiusKm float64,
		activeOnly bool,
		excludeDriverID *kernel.UUID,
	) ([]tracking.NearbyDriver, error)

	// PruneHistory deletes, per driver, all records older than the newest
	// keepPerDriver ones. Returns the number of rows removed. Runs out of
	// band; it is not part of the request path.
	PruneHistory(ctx context.Context, keepPerDriver int) (int64, error)

	// DeactivateStale flips is_active off on current records older than the
	// cutoff so silent drivers drop out of proximity search. Returns the
	// number of rows touched.
	DeactivateStale(ctx context.Context, cutoff time.Time) (int64, error)
}

// DeliveryLocationRepository stores append-only in-transit samples.
type DeliveryLocationRepository interface {
	// Add appends a transit sample for a delivery.
	Add(ctx context.Context, sample *tracking.DeliveryLocation) error

	// GetLatest returns the most recent sample for a delivery.
	// Returns errs.ObjectNotFoundError when the delivery has none.
	GetLatest(ctx context.Context, deliveryID kernel.UUID) (*tracking.DeliveryLocation, error)
}
