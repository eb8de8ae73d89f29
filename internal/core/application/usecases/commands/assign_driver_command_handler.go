package commands

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

// ErrDriverNotAvailable is returned when the requested driver exists but is
// not accepting deliveries.
var ErrDriverNotAvailable = errors.New("driver is not available")

// AssignDriverCommandHandler assigns a driver to a delivery.
// The delivery row is locked for the duration of the transaction so
// concurrent assignment attempts serialize; the loser observes an
// InvalidTransitionError because the status has already moved.
//
// The assigned driver is notified after commit. Notification is
// best-effort: the assignment is the source of truth and a notification
// failure is logged, never propagated.
type AssignDriverCommandHandler struct {
	uowFactory   DeliveryUoWFactory
	driverClient ports.DriverClient
	notifier     ports.DriverNotifier
	logger       *slog.Logger
}

// NewAssignDriverCommandHandler creates a handler for driver assignment.
func NewAssignDriverCommandHandler(
	uowFactory DeliveryUoWFactory,
	driverClient ports.DriverClient,
	notifier ports.DriverNotifier,
	logger *slog.Logger,
) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory:   uowFactory,
		driverClient: driverClient,
		notifier:     notifier,
		logger:       logger.With("component", "assign_driver_handler"),
	}
}

// Handle processes the assignment command.
// Fails with errs.ObjectNotFoundError when the delivery or driver is
// unresolvable, ErrDriverNotAvailable when the driver is off shift, and
// delivery.InvalidTransitionError when the current status forbids
// assignment.
func (h AssignDriverCommandHandler) Handle(ctx context.Context, command AssignDriverCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	driver, err := h.driverClient.GetDriver(ctx, command.DriverID())
	if err != nil {
		return err
	}
	if !driver.IsAvailable {
		return ErrDriverNotAvailable
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
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

	if err = aggregate.Assign(driver.ID); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifyDriver(ctx, driver.ID, aggregate)
	return nil
}

// notifyDriver pushes the assignment notification. Failures are logged only.
func (h AssignDriverCommandHandler) notifyDriver(
	ctx context.Context,
	driverID kernel.UUID,
	aggregate *delivery.Delivery,
) {
	notification := ports.Notification{
		Title: "New delivery assigned",
		Body:  "You have been assigned a new delivery.",
		Data: map[string]string{
			"delivery_id": aggregate.ID().String(),
			"order_id":    aggregate.OrderID().String(),
		},
	}

	if err := h.notifier.NotifyDriver(ctx, driverID, notification); err != nil {
		h.logger.WarnContext(ctx, "driver notification failed",
			"driver_id", driverID.String(),
			"delivery_id", aggregate.ID().String(),
			"error", err)
	}
}
