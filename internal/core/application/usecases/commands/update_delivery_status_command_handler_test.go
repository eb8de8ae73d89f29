package commands_test

import (
	"errors"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func assignedDelivery(t *testing.T) *delivery.Delivery {
	t.Helper()
	aggregate := pendingDelivery(t)
	require.NoError(t, aggregate.Assign(kernel.NewUUID()))
	aggregate.ClearPendingEvents()
	return aggregate
}

func TestUpdateDeliveryStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := assignedDelivery(t)
	cmd, err := commands.NewUpdateDeliveryStatusCommand(aggregate.ID(), delivery.StatusOutForDelivery, nil, nil)
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	factory := new(MockDeliveryUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("GetForUpdate", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		deliveryRepo.On("Update", ctx, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewUpdateDeliveryStatusCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, delivery.StatusOutForDelivery, aggregate.Status())
	uow.AssertExpectations(t)
	deliveryRepo.AssertExpectations(t)
}

func TestUpdateDeliveryStatusCommandHandler_Handle_EventCarriesNotesAndLocation(t *testing.T) {
	ctx := t.Context()
	aggregate := assignedDelivery(t)
	require.NoError(t, aggregate.ChangeStatus(delivery.StatusOutForDelivery, nil, nil))
	aggregate.ClearPendingEvents()

	notes := "handed to customer"
	point, err := kernel.NewGeoPoint(41.0351, 28.9857)
	require.NoError(t, err)
	cmd, err := commands.NewUpdateDeliveryStatusCommand(aggregate.ID(), delivery.StatusDelivered, &notes, &point)
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	factory := new(MockDeliveryUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("GetForUpdate", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		deliveryRepo.On("Update", ctx, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewUpdateDeliveryStatusCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	updated := deliveryRepo.Calls[1].Arguments[1].(*delivery.Delivery)
	require.Len(t, updated.PendingEvents(), 1)
	event := updated.PendingEvents()[0]
	assert.Equal(t, delivery.EventDelivered, event.Type())
	assert.Equal(t, &notes, event.Notes())
	require.NotNil(t, event.Location())
	equal, err := event.Location().IsEqual(point)
	require.NoError(t, err)
	assert.True(t, equal)
}

func TestUpdateDeliveryStatusCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.UpdateDeliveryStatusCommand{} // not constructed properly

	factory := new(MockDeliveryUoWFactory)
	handler := commands.NewUpdateDeliveryStatusCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrUpdateDeliveryStatusCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestUpdateDeliveryStatusCommandHandler_Handle_DeliveryNotFound(t *testing.T) {
	ctx := t.Context()
	deliveryID := kernel.NewUUID()
	cmd, err := commands.NewUpdateDeliveryStatusCommand(deliveryID, delivery.StatusCancelled, nil, nil)
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	factory := new(MockDeliveryUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("GetForUpdate", ctx, deliveryID).
			Return(nil, errs.NewObjectNotFoundError("delivery", deliveryID)).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewUpdateDeliveryStatusCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit")
}

func TestUpdateDeliveryStatusCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	aggregate := pendingDelivery(t)
	cmd, err := commands.NewUpdateDeliveryStatusCommand(aggregate.ID(), delivery.StatusDelivered, nil, nil)
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	factory := new(MockDeliveryUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("GetForUpdate", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewUpdateDeliveryStatusCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, delivery.ErrInvalidTransition)
	assert.Equal(t, delivery.StatusPending, aggregate.Status())
	deliveryRepo.AssertNotCalled(t, "Update")
}

func TestUpdateDeliveryStatusCommandHandler_Handle_TerminalStatusIsImmutable(t *testing.T) {
	ctx := t.Context()
	aggregate := assignedDelivery(t)
	require.NoError(t, aggregate.ChangeStatus(delivery.StatusCancelled, nil, nil))
	aggregate.ClearPendingEvents()

	cmd, err := commands.NewUpdateDeliveryStatusCommand(aggregate.ID(), delivery.StatusPending, nil, nil)
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	factory := new(MockDeliveryUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("GetForUpdate", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewUpdateDeliveryStatusCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, delivery.ErrInvalidTransition)
	assert.Equal(t, delivery.StatusCancelled, aggregate.Status())
}

func TestUpdateDeliveryStatusCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	aggregate := assignedDelivery(t)
	cmd, err := commands.NewUpdateDeliveryStatusCommand(aggregate.ID(), delivery.StatusCancelled, nil, nil)
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	factory := new(MockDeliveryUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("GetForUpdate", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		deliveryRepo.On("Update", ctx, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewUpdateDeliveryStatusCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.EqualError(t, err, "commit error")
}
