package tracking_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/tracking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPoint(t *testing.T) kernel.GeoPoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(52.52, 13.405)
	require.NoError(t, err)
	return point
}

func TestNewDriverLocation(t *testing.T) {
	t.Run("valid record is active", func(t *testing.T) {
		record, err := tracking.NewDriverLocation(
			kernel.NewUUID(), kernel.NewUUID(), testPoint(t), time.Now().UTC())
		require.NoError(t, err)
		assert.True(t, record.IsActive())
		require.NoError(t, record.Validate())
	})

	t.Run("zero driver id fails", func(t *testing.T) {
		var zero kernel.UUID
		_, err := tracking.NewDriverLocation(kernel.NewUUID(), zero, testPoint(t), time.Now().UTC())
		require.Error(t, err)
	})

	t.Run("unconstructed point fails", func(t *testing.T) {
		var point kernel.GeoPoint
		_, err := tracking.NewDriverLocation(kernel.NewUUID(), kernel.NewUUID(), point, time.Now().UTC())
		require.Error(t, err)
	})

	t.Run("zero timestamp fails", func(t *testing.T) {
		_, err := tracking.NewDriverLocation(kernel.NewUUID(), kernel.NewUUID(), testPoint(t), time.Time{})
		require.Error(t, err)
	})
}

func TestDriverLocation_Deactivate(t *testing.T) {
	record, err := tracking.NewDriverLocation(
		kernel.NewUUID(), kernel.NewUUID(), testPoint(t), time.Now().UTC())
	require.NoError(t, err)

	record.Deactivate()
	assert.False(t, record.IsActive())
}

func TestRestoreDriverLocation(t *testing.T) {
	recordedAt := time.Now().UTC().Add(-time.Hour)
	record, err := tracking.RestoreDriverLocation(
		kernel.NewUUID(), kernel.NewUUID(), testPoint(t), recordedAt, false)
	require.NoError(t, err)

	assert.False(t, record.IsActive())
	assert.Equal(t, recordedAt, record.RecordedAt())
}

func TestDriverLocation_Validate_ZeroValue(t *testing.T) {
	var record tracking.DriverLocation
	require.Error(t, record.Validate())

	var nilRecord *tracking.DriverLocation
	require.Error(t, nilRecord.Validate())
}

func TestNewDeliveryLocation(t *testing.T) {
	t.Run("valid sample", func(t *testing.T) {
		sample, err := tracking.NewDeliveryLocation(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), testPoint(t), time.Now().UTC())
		require.NoError(t, err)
		require.NoError(t, sample.Validate())
	})

	t.Run("zero delivery id fails", func(t *testing.T) {
		var zero kernel.UUID
		_, err := tracking.NewDeliveryLocation(
			kernel.NewUUID(), zero, kernel.NewUUID(), testPoint(t), time.Now().UTC())
		require.Error(t, err)
	})
}
