package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAssignNearestDriverCommandIsNotConstructed = errors.New(
	"AssignNearestDriverCommand must be created via NewAssignNearestDriverCommand constructor",
)

// AssignNearestDriverCommand assigns the nearest available driver to a
// pending delivery using the proximity index around the pickup point.
type AssignNearestDriverCommand struct {
	deliveryID kernel.UUID
	guard      guard.ConstructorGuard
}

// NewAssignNearestDriverCommand creates a command for the given delivery.
func NewAssignNearestDriverCommand(deliveryID kernel.UUID) (AssignNearestDriverCommand, error) {
	if err := deliveryID.Validate(); err != nil {
		return AssignNearestDriverCommand{}, err
	}

	return AssignNearestDriverCommand{
		deliveryID: deliveryID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// DeliveryID returns the delivery to assign.
func (c *AssignNearestDriverCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Validate ensures the command was created through the constructor.
func (c *AssignNearestDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignNearestDriverCommandIsNotConstructed)
}
