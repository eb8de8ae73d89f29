package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand assigns a specific driver to a pending delivery.
type AssignDriverCommand struct {
	deliveryID kernel.UUID
	driverID   kernel.UUID
	guard      guard.ConstructorGuard
}

// NewAssignDriverCommand creates a command assigning driverID to deliveryID.
func NewAssignDriverCommand(deliveryID kernel.UUID, driverID kernel.UUID) (AssignDriverCommand, error) {
	if err := errors.Join(deliveryID.Validate(), driverID.Validate()); err != nil {
		return AssignDriverCommand{}, err
	}

	return AssignDriverCommand{
		deliveryID: deliveryID,
		driverID:   driverID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// DeliveryID returns the delivery to assign.
func (c *AssignDriverCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// DriverID returns the driver to assign.
func (c *AssignDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Validate ensures the command was created through the constructor.
func (c *AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}
