package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// ErrDeliveryAlreadyExists is returned when a delivery was already created
// for the order. A delivery owns exactly one order and is never shared.
var ErrDeliveryAlreadyExists = errors.New("delivery already exists for order")

// CreateDeliveryCommandHandler creates deliveries from paid orders.
// Resolves the order through the OrderClient collaborator, snapshots its
// data, and persists the new pending delivery with its "created" timeline
// event in one transaction.
type CreateDeliveryCommandHandler struct {
	uowFactory  DeliveryUoWFactory
	orderClient ports.OrderClient
}

// NewCreateDeliveryCommandHandler creates a handler for delivery creation.
func NewCreateDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	orderClient ports.OrderClient,
) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory:  uowFactory,
		orderClient: orderClient,
	}
}

// Handle processes the create delivery command.
// Fails with errs.ObjectNotFoundError when the order does not exist and
// with ErrDeliveryAlreadyExists when the order already has a delivery.
func (h CreateDeliveryCommandHandler) Handle(ctx context.Context, command CreateDeliveryCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	order, err := h.orderClient.GetOrder(ctx, command.OrderID())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()

	_, err = deliveryRepo.GetByOrderID(ctx, command.OrderID())
	if err == nil {
		return ErrDeliveryAlreadyExists
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	aggregate, err := delivery.NewDelivery(command.DeliveryID(), order.ID, delivery.OrderSnapshot{
		StoreLocation:  order.StoreLocation,
		Destination:    order.Destination,
		TotalPrice:     order.TotalPrice,
		TotalItems:     order.TotalItems,
		Fee:            order.Fee,
		ScheduleFor:    order.ScheduleFor,
		NotesForDriver: order.NotesForDriver,
	})
	if err != nil {
		return err
	}

	if err = deliveryRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
