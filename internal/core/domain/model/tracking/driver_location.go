package tracking

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrDriverLocationIsNotConstructed is returned when using an improperly
// initialized DriverLocation.
var ErrDriverLocationIsNotConstructed = errors.New(
	"DriverLocation must be created via NewDriverLocation constructor")

// DriverLocation is one position ping from a driver's device. Records are
// superseded by newer records for the same driver rather than updated in
// place: the driver's current location is the most recent active record by
// RecordedAt. Old records remain as bounded history until pruned.
type DriverLocation struct {
	// id uniquely identifies the record
	id kernel.UUID
	// driverID is the driver who reported the position
	driverID kernel.UUID
	// point is the reported position
	point kernel.GeoPoint
	// recordedAt is when the ping was accepted
	recordedAt time.Time
	// isActive marks the record as eligible for proximity search; stale
	// records are deactivated out of band
	isActive bool
	// guard ensures the record was properly constructed
	guard guard.ConstructorGuard
}

// NewDriverLocation creates an active location record for a driver ping.
func NewDriverLocation(
	id kernel.UUID,
	driverID kernel.UUID,
	point kernel.GeoPoint,
	recordedAt time.Time,
) (*DriverLocation, error) {
	if err := errors.Join(id.Validate(), driverID.Validate(), point.Validate()); err != nil {
		return nil, err
	}
	if recordedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("recordedAt")
	}

	return &DriverLocation{
		id:         id,
		driverID:   driverID,
		point:      point,
		recordedAt: recordedAt,
		isActive:   true,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// RestoreDriverLocation reconstructs a record from persistence, including
// its activity flag.
func RestoreDriverLocation(
	id kernel.UUID,
	driverID kernel.UUID,
	point kernel.GeoPoint,
	recordedAt time.Time,
	isActive bool,
) (*DriverLocation, error) {
	record, err := NewDriverLocation(id, driverID, point, recordedAt)
	if err != nil {
		return nil, err
	}
	record.isActive = isActive
	return record, nil
}

// Validate ensures the record was created via its constructor.
func (l *DriverLocation) Validate() error {
	if l == nil {
		return ErrDriverLocationIsNotConstructed
	}
	return l.guard.Validate(ErrDriverLocationIsNotConstructed)
}

// ID returns the record identifier.
func (l *DriverLocation) ID() kernel.UUID { return l.id }

// DriverID returns the reporting driver's identifier.
func (l *DriverLocation) DriverID() kernel.UUID { return l.driverID }

// Point returns the reported position.
func (l *DriverLocation) Point() kernel.GeoPoint { return l.point }

// RecordedAt returns when the ping was accepted.
func (l *DriverLocation) RecordedAt() time.Time { return l.recordedAt }

// IsActive reports whether the record participates in proximity search.
func (l *DriverLocation) IsActive() bool { return l.isActive }

// Deactivate removes the record from proximity search, e.g. when the
// driver's app has gone silent past the staleness window.
func (l *DriverLocation) Deactivate() { l.isActive = false }

// NearbyDriver is a read model produced by proximity search: a driver's
// current position together with its distance from the query center,
// ordered nearest-first by the index.
type NearbyDriver struct {
	DriverID   kernel.UUID
	Point      kernel.GeoPoint
	DistanceKm float64
}
