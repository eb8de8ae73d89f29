package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/tracking"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSearchRadiusKm = 5.0

func geocodedDelivery(t *testing.T) (*delivery.Delivery, kernel.GeoPoint) {
	t.Helper()
	store, err := kernel.NewGeoPoint(41.0082, 28.9784)
	require.NoError(t, err)
	aggregate, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), delivery.OrderSnapshot{
		StoreLocation: &store,
	})
	require.NoError(t, err)
	aggregate.ClearPendingEvents()
	return aggregate, store
}

func nearbyDriver(t *testing.T, lat float64, lon float64, distanceKm float64) tracking.NearbyDriver {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return tracking.NearbyDriver{
		DriverID:   kernel.NewUUID(),
		Point:      point,
		DistanceKm: distanceKm,
	}
}

func TestAssignNearestDriverCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate, store := geocodedDelivery(t)
	cmd, err := commands.NewAssignNearestDriverCommand(aggregate.ID())
	require.NoError(t, err)

	// The index returns candidates nearest first.
	near := nearbyDriver(t, 41.0090, 28.9790, 0.1)
	far := nearbyDriver(t, 41.0300, 28.9900, 2.6)
	candidates := []tracking.NearbyDriver{near, far}

	driverClient := new(MockDriverClient)
	notifier := new(MockDriverNotifier)
	deliveryRepo := new(MockDeliveryRepository)
	locationRepo := new(MockDriverLocationRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		uow.On("DriverLocationRepository").Return(locationRepo).Once(),
		deliveryRepo.On("GetForUpdate", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		locationRepo.On("FindNearbyDrivers", ctx, store, testSearchRadiusKm, true, (*kernel.UUID)(nil)).
			Return(candidates, nil).
			Once(),
		driverClient.On("GetDriver", ctx, near.DriverID).
			Return(ports.Driver{ID: near.DriverID, IsAvailable: true}, nil).
			Once(),
		driverClient.On("GetDriver", ctx, far.DriverID).
			Return(ports.Driver{ID: far.DriverID, IsAvailable: true}, nil).
			Once(),
		deliveryRepo.On("Update", ctx, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("NotifyDriver", ctx, near.DriverID, mock.AnythingOfType("ports.Notification")).
			Return(nil).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewAssignNearestDriverCommandHandler(
		factory, driverClient, notifier, testLogger(), testSearchRadiusKm)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, delivery.StatusAssigned, aggregate.Status())
	require.NotNil(t, aggregate.Driver())
	assert.True(t, aggregate.Driver().IsEqual(near.DriverID))
	notifier.AssertExpectations(t)
}

func TestAssignNearestDriverCommandHandler_Handle_SkipsUnavailableDrivers(t *testing.T) {
	ctx := t.Context()
	aggregate, store := geocodedDelivery(t)
	cmd, err := commands.NewAssignNearestDriverCommand(aggregate.ID())
	require.NoError(t, err)

	offShift := nearbyDriver(t, 41.0090, 28.9790, 0.1)
	unknown := nearbyDriver(t, 41.0120, 28.9800, 0.5)
	available := nearbyDriver(t, 41.0300, 28.9900, 2.6)
	candidates := []tracking.NearbyDriver{offShift, unknown, available}

	driverClient := new(MockDriverClient)
	notifier := new(MockDriverNotifier)
	deliveryRepo := new(MockDeliveryRepository)
	locationRepo := new(MockDriverLocationRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		uow.On("DriverLocationRepository").Return(locationRepo).Once(),
		deliveryRepo.On("GetForUpdate", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		locationRepo.On("FindNearbyDrivers", ctx, store, testSearchRadiusKm, true, (*kernel.UUID)(nil)).
			Return(candidates, nil).
			Once(),
		driverClient.On("GetDriver", ctx, offShift.DriverID).
			Return(ports.Driver{ID: offShift.DriverID, IsAvailable: false}, nil).
			Once(),
		driverClient.On("GetDriver", ctx, unknown.DriverID).
			Return(ports.Driver{}, errs.NewObjectNotFoundError("driver", unknown.DriverID)).
			Once(),
		driverClient.On("GetDriver", ctx, available.DriverID).
			Return(ports.Driver{ID: available.DriverID, IsAvailable: true}, nil).
			Once(),
		deliveryRepo.On("Update", ctx, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("NotifyDriver", ctx, available.DriverID, mock.AnythingOfType("ports.Notification")).
			Return(nil).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewAssignNearestDriverCommandHandler(
		factory, driverClient, notifier, testLogger(), testSearchRadiusKm)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, aggregate.Driver())
	assert.True(t, aggregate.Driver().IsEqual(available.DriverID))
}

func TestAssignNearestDriverCommandHandler_Handle_NoDriverInRange(t *testing.T) {
	ctx := t.Context()
	aggregate, store := geocodedDelivery(t)
	cmd, err := commands.NewAssignNearestDriverCommand(aggregate.ID())
	require.NoError(t, err)

	driverClient := new(MockDriverClient)
	notifier := new(MockDriverNotifier)
	deliveryRepo := new(MockDeliveryRepository)
	locationRepo := new(MockDriverLocationRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		uow.On("DriverLocationRepository").Return(locationRepo).Once(),
		deliveryRepo.On("GetForUpdate", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		locationRepo.On("FindNearbyDrivers", ctx, store, testSearchRadiusKm, true, (*kernel.UUID)(nil)).
			Return([]tracking.NearbyDriver{}, nil).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewAssignNearestDriverCommandHandler(
		factory, driverClient, notifier, testLogger(), testSearchRadiusKm)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, services.ErrNoDriverAvailable)
	assert.Equal(t, delivery.StatusPending, aggregate.Status())
	notifier.AssertNotCalled(t, "NotifyDriver")
	uow.AssertNotCalled(t, "Commit")
}

func TestAssignNearestDriverCommandHandler_Handle_NoPickupPoint(t *testing.T) {
	ctx := t.Context()
	aggregate, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), delivery.OrderSnapshot{})
	require.NoError(t, err)
	cmd, err := commands.NewAssignNearestDriverCommand(aggregate.ID())
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	locationRepo := new(MockDriverLocationRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		uow.On("DriverLocationRepository").Return(locationRepo).Once(),
		deliveryRepo.On("GetForUpdate", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewAssignNearestDriverCommandHandler(
		factory, new(MockDriverClient), new(MockDriverNotifier), testLogger(), testSearchRadiusKm)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	locationRepo.AssertNotCalled(t, "FindNearbyDrivers")
}
