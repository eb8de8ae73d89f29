package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateDriverLocationCommandIsNotConstructed = errors.New(
	"UpdateDriverLocationCommand must be created via NewUpdateDriverLocationCommand constructor",
)

// UpdateDriverLocationCommand records a driver's position ping.
type UpdateDriverLocationCommand struct {
	driverID kernel.UUID
	location kernel.GeoPoint
	guard    guard.ConstructorGuard
}

// NewUpdateDriverLocationCommand creates a location ping command.
func NewUpdateDriverLocationCommand(
	driverID kernel.UUID,
	location kernel.GeoPoint,
) (UpdateDriverLocationCommand, error) {
	if err := errors.Join(driverID.Validate(), location.Validate()); err != nil {
		return UpdateDriverLocationCommand{}, err
	}

	return UpdateDriverLocationCommand{
		driverID: driverID,
		location: location,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// DriverID returns the reporting driver.
func (c *UpdateDriverLocationCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Location returns the reported position.
func (c *UpdateDriverLocationCommand) Location() kernel.GeoPoint {
	return c.location
}

// Validate ensures the command was created through the constructor.
func (c *UpdateDriverLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDriverLocationCommandIsNotConstructed)
}
