package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateDeliveryStatusCommandIsNotConstructed = errors.New(
	"UpdateDeliveryStatusCommand must be created via NewUpdateDeliveryStatusCommand constructor",
)

// UpdateDeliveryStatusCommand transitions a delivery to a new status with
// optional notes and location attached to the timeline event.
type UpdateDeliveryStatusCommand struct {
	deliveryID kernel.UUID
	status     delivery.Status
	notes      *string
	location   *kernel.GeoPoint
	guard      guard.ConstructorGuard
}

// NewUpdateDeliveryStatusCommand creates a status update command.
// The target status literal is validated here; whether the transition is
// allowed from the current status is decided by the aggregate.
func NewUpdateDeliveryStatusCommand(
	deliveryID kernel.UUID,
	status delivery.Status,
	notes *string,
	location *kernel.GeoPoint,
) (UpdateDeliveryStatusCommand, error) {
	if err := errors.Join(deliveryID.Validate(), status.Validate()); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return UpdateDeliveryStatusCommand{}, err
		}
	}

	return UpdateDeliveryStatusCommand{
		deliveryID: deliveryID,
		status:     status,
		notes:      notes,
		location:   location,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// DeliveryID returns the delivery to transition.
func (c *UpdateDeliveryStatusCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Status returns the target status.
func (c *UpdateDeliveryStatusCommand) Status() delivery.Status {
	return c.status
}

// Notes returns the optional notes, or nil.
func (c *UpdateDeliveryStatusCommand) Notes() *string {
	return c.notes
}

// Location returns the optional location, or nil.
func (c *UpdateDeliveryStatusCommand) Location() *kernel.GeoPoint {
	return c.location
}

// Validate ensures the command was created through the constructor.
func (c *UpdateDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryStatusCommandIsNotConstructed)
}
