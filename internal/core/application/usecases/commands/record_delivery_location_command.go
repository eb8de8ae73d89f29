package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrRecordDeliveryLocationCommandIsNotConstructed = errors.New(
	"RecordDeliveryLocationCommand must be created via NewRecordDeliveryLocationCommand constructor",
)

// RecordDeliveryLocationCommand records an in-transit location sample for a
// delivery that is out for delivery.
type RecordDeliveryLocationCommand struct {
	deliveryID kernel.UUID
	driverID   kernel.UUID
	location   kernel.GeoPoint
	guard      guard.ConstructorGuard
}

// NewRecordDeliveryLocationCommand creates a transit sample command.
func NewRecordDeliveryLocationCommand(
	deliveryID kernel.UUID,
	driverID kernel.UUID,
	location kernel.GeoPoint,
) (RecordDeliveryLocationCommand, error) {
	if err := errors.Join(
		deliveryID.Validate(), driverID.Validate(), location.Validate(),
	); err != nil {
		return RecordDeliveryLocationCommand{}, err
	}

	return RecordDeliveryLocationCommand{
		deliveryID: deliveryID,
		driverID:   driverID,
		location:   location,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// DeliveryID returns the delivery being sampled.
func (c *RecordDeliveryLocationCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// DriverID returns the reporting driver.
func (c *RecordDeliveryLocationCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Location returns the sampled position.
func (c *RecordDeliveryLocationCommand) Location() kernel.GeoPoint {
	return c.location
}

// Validate ensures the command was created through the constructor.
func (c *RecordDeliveryLocationCommand) Validate() error {
	return c.guard.Validate(ErrRecordDeliveryLocationCommandIsNotConstructed)
}
