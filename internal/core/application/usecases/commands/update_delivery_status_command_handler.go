package commands

import (
	"context"
)

// UpdateDeliveryStatusCommandHandler performs validated status transitions.
// The delivery row is locked, the transition validated against the state
// machine, and the status change plus its mirroring timeline event are
// committed atomically. Two concurrent transitions from the same status
// serialize on the row lock; the loser fails with InvalidTransitionError.
type UpdateDeliveryStatusCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewUpdateDeliveryStatusCommandHandler creates a handler for status updates.
func NewUpdateDeliveryStatusCommandHandler(uowFactory DeliveryUoWFactory) UpdateDeliveryStatusCommandHandler {
	return UpdateDeliveryStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status update command.
func (h UpdateDeliveryStatusCommandHandler) Handle(ctx context.Context, command UpdateDeliveryStatusCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()

	aggregate, err := deliveryRepo.GetForUpdate(ctx, command.DeliveryID())
	if err != nil {
		return err
	}

	if err = aggregate.ChangeStatus(command.Status(), command.Notes(), command.Location()); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
