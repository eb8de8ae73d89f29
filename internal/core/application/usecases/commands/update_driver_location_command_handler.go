package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/tracking"
	"dispatch/internal/pkg/errs"
)

// UpdateDriverLocationCommandHandler records driver position pings.
//
// Pings arriving within minInterval of the driver's current record are
// coalesced: the handler returns nil without writing, so high-frequency
// devices do not flood the history. Accepted pings become the driver's
// current location immediately.
type UpdateDriverLocationCommandHandler struct {
	uowFactory  LocationUoWFactory
	minInterval time.Duration
}

// NewUpdateDriverLocationCommandHandler creates a handler that coalesces
// pings closer together than minInterval.
func NewUpdateDriverLocationCommandHandler(
	uowFactory LocationUoWFactory,
	minInterval time.Duration,
) UpdateDriverLocationCommandHandler {
	return UpdateDriverLocationCommandHandler{
		uowFactory:  uowFactory,
		minInterval: minInterval,
	}
}

// Handle processes the location ping. A coalesced ping succeeds without
// side effects.
func (h UpdateDriverLocationCommandHandler) Handle(ctx context.Context, command UpdateDriverLocationCommand) error {
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

	locationRepo := uow.DriverLocationRepository()
	now := time.Now().UTC()

	current, err := locationRepo.GetCurrent(ctx, command.DriverID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}
	if current != nil && now.Sub(current.RecordedAt()) < h.minInterval {
		return nil
	}

	record, err := tracking.NewDriverLocation(
		kernel.NewUUID(), command.DriverID(), command.Location(), now)
	if err != nil {
		return err
	}

	if err = locationRepo.Add(ctx, record); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
