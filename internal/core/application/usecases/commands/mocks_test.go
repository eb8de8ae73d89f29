package commands_test

import (
	"context"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/tracking"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) FindNearby(
	ctx context.Context,
	center kernel.GeoPoint,
	radiusKm float64,
	status *delivery.Status,
) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, center, radiusKm, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

type MockDriverLocationRepository struct{ mock.Mock }

func (m *MockDriverLocationRepository) Add(ctx context.Context, record *tracking.DriverLocation) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockDriverLocationRepository) GetCurrent(
	ctx context.Context,
	driverID kernel.UUID,
) (*tracking.DriverLocation, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tracking.DriverLocation), args.Error(1)
}

func (m *MockDriverLocationRepository) FindNearbyDrivers(
	ctx context.Context,
	center kernel.GeoPoint,
	radiusKm float64,
	activeOnly bool,
	excludeDriverID *kernel.UUID,
) ([]tracking.NearbyDriver, error) {
	args := m.Called(ctx, center, radiusKm, activeOnly, excludeDriverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tracking.NearbyDriver), args.Error(1)
}

func (m *MockDriverLocationRepository) PruneHistory(ctx context.Context, keepPerDriver int) (int64, error) {
	args := m.Called(ctx, keepPerDriver)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDriverLocationRepository) DeactivateStale(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockDeliveryLocationRepository struct{ mock.Mock }

func (m *MockDeliveryLocationRepository) Add(ctx context.Context, sample *tracking.DeliveryLocation) error {
	args := m.Called(ctx, sample)
	return args.Error(0)
}

func (m *MockDeliveryLocationRepository) GetLatest(
	ctx context.Context,
	deliveryID kernel.UUID,
) (*tracking.DeliveryLocation, error) {
	args := m.Called(ctx, deliveryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tracking.DeliveryLocation), args.Error(1)
}

type MockTxManager struct{ mock.Mock }

func (m *MockTxManager) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTxManager) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTxManager) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockDeliveryUoW struct{ MockTxManager }

func (m *MockDeliveryUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

type MockLocationUoW struct{ MockTxManager }

func (m *MockLocationUoW) DriverLocationRepository() ports.DriverLocationRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverLocationRepository)
}

type MockLocationUoWFactory struct{ mock.Mock }

func (m *MockLocationUoWFactory) Create() commands.LocationUoW {
	args := m.Called()
	return args.Get(0).(commands.LocationUoW)
}

type MockTransitUoW struct{ MockTxManager }

func (m *MockTransitUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

func (m *MockTransitUoW) DeliveryLocationRepository() ports.DeliveryLocationRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryLocationRepository)
}

type MockTransitUoWFactory struct{ mock.Mock }

func (m *MockTransitUoWFactory) Create() commands.TransitUoW {
	args := m.Called()
	return args.Get(0).(commands.TransitUoW)
}

type MockUoW struct{ MockTxManager }

func (m *MockUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

func (m *MockUoW) DriverLocationRepository() ports.DriverLocationRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverLocationRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderClient struct{ mock.Mock }

func (m *MockOrderClient) GetOrder(ctx context.Context, orderID kernel.UUID) (ports.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(ports.Order), args.Error(1)
}

type MockDriverClient struct{ mock.Mock }

func (m *MockDriverClient) GetDriver(ctx context.Context, driverID kernel.UUID) (ports.Driver, error) {
	args := m.Called(ctx, driverID)
	return args.Get(0).(ports.Driver), args.Error(1)
}

type MockDriverNotifier struct{ mock.Mock }

func (m *MockDriverNotifier) NotifyDriver(
	ctx context.Context,
	driverID kernel.UUID,
	notification ports.Notification,
) error {
	args := m.Called(ctx, driverID, notification)
	return args.Error(0)
}
