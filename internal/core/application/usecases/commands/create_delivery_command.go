package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCreateDeliveryCommandIsNotConstructed = errors.New(
	"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
)

// CreateDeliveryCommand creates a delivery for a paid order. Order data is
// snapshotted into the delivery at creation time; the delivery never
// re-reads order state afterward.
//
// Example:
//
//	cmd, err := commands.NewCreateDeliveryCommand(kernel.NewUUID(), orderID)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type CreateDeliveryCommand struct {
	deliveryID kernel.UUID
	orderID    kernel.UUID
	guard      guard.ConstructorGuard
}

// NewCreateDeliveryCommand creates a command with the identifier for the
// new delivery and the backing order. Both IDs must be valid.
func NewCreateDeliveryCommand(deliveryID kernel.UUID, orderID kernel.UUID) (CreateDeliveryCommand, error) {
	if err := errors.Join(deliveryID.Validate(), orderID.Validate()); err != nil {
		return CreateDeliveryCommand{}, err
	}

	return CreateDeliveryCommand{
		deliveryID: deliveryID,
		orderID:    orderID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// DeliveryID returns the identifier for the delivery to create.
func (c *CreateDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// OrderID returns the backing order identifier.
func (c *CreateDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Validate ensures the command was created through the constructor.
func (c *CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}
