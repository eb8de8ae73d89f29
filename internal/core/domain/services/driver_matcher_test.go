package services_test

import (
	"testing"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/tracking"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingDelivery(t *testing.T) *delivery.Delivery {
	t.Helper()
	store, err := kernel.NewGeoPoint(40.0, -74.0)
	require.NoError(t, err)
	d, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), delivery.OrderSnapshot{
		StoreLocation: &store,
	})
	require.NoError(t, err)
	return d
}

func candidateAt(t *testing.T, distanceKm float64) tracking.NearbyDriver {
	t.Helper()
	point, err := kernel.NewGeoPoint(40.01, -74.01)
	require.NoError(t, err)
	return tracking.NearbyDriver{
		DriverID:   kernel.NewUUID(),
		Point:      point,
		DistanceKm: distanceKm,
	}
}

func candidateAtPoint(t *testing.T, latitude, longitude float64) tracking.NearbyDriver {
	t.Helper()
	point, err := kernel.NewGeoPoint(latitude, longitude)
	require.NoError(t, err)
	return tracking.NearbyDriver{
		DriverID: kernel.NewUUID(),
		Point:    point,
	}
}

func TestDriverMatcher_Match(t *testing.T) {
	matcher := services.NewDriverMatcher()

	t.Run("picks nearest candidate and assigns", func(t *testing.T) {
		d := pendingDelivery(t)
		far := candidateAt(t, 4.2)
		near := candidateAt(t, 0.8)
		mid := candidateAt(t, 2.1)

		best, err := matcher.Match(d, []tracking.NearbyDriver{far, near, mid})
		require.NoError(t, err)

		assert.True(t, best.DriverID.IsEqual(near.DriverID))
		assert.Equal(t, delivery.StatusAssigned, d.Status())
		require.NotNil(t, d.Driver())
		assert.True(t, d.Driver().IsEqual(near.DriverID))
	})

	t.Run("measures against pickup when candidates carry no distance", func(t *testing.T) {
		d := pendingDelivery(t)
		far := candidateAtPoint(t, 40.09, -74.0)
		near := candidateAtPoint(t, 40.005, -74.0)

		best, err := matcher.Match(d, []tracking.NearbyDriver{far, near})
		require.NoError(t, err)

		assert.True(t, best.DriverID.IsEqual(near.DriverID))
		require.NotNil(t, d.Driver())
		assert.True(t, d.Driver().IsEqual(near.DriverID))
	})

	t.Run("tie keeps first candidate", func(t *testing.T) {
		d := pendingDelivery(t)
		first := candidateAt(t, 1.5)
		second := candidateAt(t, 1.5)

		best, err := matcher.Match(d, []tracking.NearbyDriver{first, second})
		require.NoError(t, err)
		assert.True(t, best.DriverID.IsEqual(first.DriverID))
	})

	t.Run("no candidates", func(t *testing.T) {
		d := pendingDelivery(t)
		_, err := matcher.Match(d, nil)
		require.ErrorIs(t, err, services.ErrNoDriverAvailable)
		assert.Equal(t, delivery.StatusPending, d.Status())
	})

	t.Run("delivery already assigned", func(t *testing.T) {
		d := pendingDelivery(t)
		require.NoError(t, d.Assign(kernel.NewUUID()))

		_, err := matcher.Match(d, []tracking.NearbyDriver{candidateAt(t, 1)})
		require.ErrorIs(t, err, delivery.ErrInvalidTransition)
	})

	t.Run("invalid candidate id", func(t *testing.T) {
		d := pendingDelivery(t)
		bad := candidateAt(t, 1)
		bad.DriverID = kernel.UUID{}

		_, err := matcher.Match(d, []tracking.NearbyDriver{bad})
		require.Error(t, err)
	})
}
