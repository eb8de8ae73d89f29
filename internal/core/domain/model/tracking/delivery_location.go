package tracking

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrDeliveryLocationIsNotConstructed is returned when using an improperly
// initialized DeliveryLocation.
var ErrDeliveryLocationIsNotConstructed = errors.New(
	"DeliveryLocation must be created via NewDeliveryLocation constructor")

// DeliveryLocation is one location sample taken during an active delivery's
// transit. Samples are append-only; "latest" queries order by RecordedAt
// descending.
type DeliveryLocation struct {
	id         kernel.UUID
	deliveryID kernel.UUID
	driverID   kernel.UUID
	point      kernel.GeoPoint
	recordedAt time.Time
	guard      guard.ConstructorGuard
}

// NewDeliveryLocation creates a transit location sample.
func NewDeliveryLocation(
	id kernel.UUID,
	deliveryID kernel.UUID,
	driverID kernel.UUID,
	point kernel.GeoPoint,
	recordedAt time.Time,
) (*DeliveryLocation, error) {
	if err := errors.Join(
		id.Validate(), deliveryID.Validate(), driverID.Validate(), point.Validate(),
	); err != nil {
		return nil, err
	}
	if recordedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("recordedAt")
	}

	return &DeliveryLocation{
		id:         id,
		deliveryID: deliveryID,
		driverID:   driverID,
		point:      point,
		recordedAt: recordedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// RestoreDeliveryLocation reconstructs a sample from persistence.
func RestoreDeliveryLocation(
	id kernel.UUID,
	deliveryID kernel.UUID,
	driverID kernel.UUID,
	point kernel.GeoPoint,
	recordedAt time.Time,
) (*DeliveryLocation, error) {
	return NewDeliveryLocation(id, deliveryID, driverID, point, recordedAt)
}

// Validate ensures the sample was created via its constructor.
func (l *DeliveryLocation) Validate() error {
	if l == nil {
		return ErrDeliveryLocationIsNotConstructed
	}
	return l.guard.Validate(ErrDeliveryLocationIsNotConstructed)
}

// ID returns the sample identifier.
func (l *DeliveryLocation) ID() kernel.UUID { return l.id }

// DeliveryID returns the delivery the sample belongs to.
func (l *DeliveryLocation) DeliveryID() kernel.UUID { return l.deliveryID }

// DriverID returns the driver who reported the sample.
func (l *DeliveryLocation) DriverID() kernel.UUID { return l.driverID }

// Point returns the sampled position.
func (l *DeliveryLocation) Point() kernel.GeoPoint { return l.point }

// RecordedAt returns when the sample was taken.
func (l *DeliveryLocation) RecordedAt() time.Time { return l.recordedAt }
