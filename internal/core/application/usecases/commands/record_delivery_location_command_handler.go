package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/tracking"
	"dispatch/internal/pkg/errs"
)

// RecordDeliveryLocationCommandHandler stores in-transit location samples.
// The sample and its mirroring timeline event commit in one transaction, so
// the delivery's timeline and its transit trail never disagree.
type RecordDeliveryLocationCommandHandler struct {
	uowFactory TransitUoWFactory
}

// NewRecordDeliveryLocationCommandHandler creates a handler for transit
// samples.
func NewRecordDeliveryLocationCommandHandler(uowFactory TransitUoWFactory) RecordDeliveryLocationCommandHandler {
	return RecordDeliveryLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the transit sample command.
// Fails with errs.ValueIsInvalidError when the reporting driver is not the
// delivery's assigned driver, and delivery.ErrDeliveryNotInTransit when the
// delivery is not out for delivery.
func (h RecordDeliveryLocationCommandHandler) Handle(ctx context.Context, command RecordDeliveryLocationCommand) error {
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

	assigned := aggregate.Driver()
	if assigned == nil || !assigned.IsEqual(command.DriverID()) {
		return errs.NewValueIsInvalidErrorWithCause("driverID",
			fmt.Errorf("driver %s is not assigned to delivery %s",
				command.DriverID(), command.DeliveryID()))
	}

	if err = aggregate.RecordTransitLocation(command.Location()); err != nil {
		return err
	}

	sample, err := tracking.NewDeliveryLocation(
		kernel.NewUUID(),
		command.DeliveryID(),
		command.DriverID(),
		command.Location(),
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err = uow.DeliveryLocationRepository().Add(ctx, sample); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
