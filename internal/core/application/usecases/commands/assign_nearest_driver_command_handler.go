package commands

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/domain/model/tracking"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// AssignNearestDriverCommandHandler matches a pending delivery with the
// nearest available driver. Candidates come from the proximity index around
// the delivery's pickup point; drivers the user context reports unavailable
// are filtered out before matching.
type AssignNearestDriverCommandHandler struct {
	uowFactory     UoWFactory
	driverClient   ports.DriverClient
	notifier       ports.DriverNotifier
	logger         *slog.Logger
	searchRadiusKm float64
}

// NewAssignNearestDriverCommandHandler creates a handler searching within
// searchRadiusKm of the pickup point.
func NewAssignNearestDriverCommandHandler(
	uowFactory UoWFactory,
	driverClient ports.DriverClient,
	notifier ports.DriverNotifier,
	logger *slog.Logger,
	searchRadiusKm float64,
) AssignNearestDriverCommandHandler {
	return AssignNearestDriverCommandHandler{
		uowFactory:     uowFactory,
		driverClient:   driverClient,
		notifier:       notifier,
		logger:         logger.With("component", "assign_nearest_driver_handler"),
		searchRadiusKm: searchRadiusKm,
	}
}

// Handle processes the matching command.
// Fails with services.ErrNoDriverAvailable when nobody suitable is in
// range, and with errs.ValueIsRequiredError when the delivery has no
// geocoded pickup point to search around.
func (h AssignNearestDriverCommandHandler) Handle(ctx context.Context, command AssignNearestDriverCommand) error {
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
	locationRepo := uow.DriverLocationRepository()

	aggregate, err := deliveryRepo.GetForUpdate(ctx, command.DeliveryID())
	if err != nil {
		return err
	}

	pickup := aggregate.StoreLocation()
	if pickup == nil {
		return errs.NewValueIsRequiredError("storeLocation")
	}

	candidates, err := locationRepo.FindNearbyDrivers(ctx, *pickup, h.searchRadiusKm, true, nil)
	if err != nil {
		return err
	}

	available, err := h.filterAvailable(ctx, candidates)
	if err != nil {
		return err
	}

	best, err := services.NewDriverMatcher().Match(aggregate, available)
	if err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifyDriver(ctx, best, aggregate.ID().String(), aggregate.OrderID().String())
	return nil
}

// filterAvailable keeps candidates the user context reports available.
// A driver missing from the user context is skipped, not an error.
func (h AssignNearestDriverCommandHandler) filterAvailable(
	ctx context.Context,
	candidates []tracking.NearbyDriver,
) ([]tracking.NearbyDriver, error) {
	available := make([]tracking.NearbyDriver, 0, len(candidates))
	for _, candidate := range candidates {
		driver, err := h.driverClient.GetDriver(ctx, candidate.DriverID)
		if errors.Is(err, errs.ErrObjectNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if driver.IsAvailable {
			available = append(available, candidate)
		}
	}
	return available, nil
}

// notifyDriver pushes the assignment notification. Failures are logged only.
func (h AssignNearestDriverCommandHandler) notifyDriver(
	ctx context.Context,
	best tracking.NearbyDriver,
	deliveryID string,
	orderID string,
) {
	notification := ports.Notification{
		Title: "New delivery assigned",
		Body:  "You have been assigned the nearest delivery.",
		Data: map[string]string{
			"delivery_id": deliveryID,
			"order_id":    orderID,
		},
	}

	if err := h.notifier.NotifyDriver(ctx, best.DriverID, notification); err != nil {
		h.logger.WarnContext(ctx, "driver notification failed",
			"driver_id", best.DriverID.String(),
			"delivery_id", deliveryID,
			"error", err)
	}
}
