package locationrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/tracking"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDriverLocationRepository implements DriverLocationRepository using
// GORM. Proximity search computes great-circle distances in SQL over each
// driver's newest record.
type GormDriverLocationRepository struct {
	db *gorm.DB
}

// NewGormDriverLocationRepository creates a new GORM driver location
// repository.
func NewGormDriverLocationRepository(db *gorm.DB) *GormDriverLocationRepository {
	return &GormDriverLocationRepository{db: db}
}

// Add appends a new location record.
func (r *GormDriverLocationRepository) Add(ctx context.Context, record *tracking.DriverLocation) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := driverLocationFromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetCurrent returns the driver's most recent record.
func (r *GormDriverLocationRepository) GetCurrent(
	ctx context.Context,
	driverID kernel.UUID,
) (*tracking.DriverLocation, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	var dto DriverLocationDTO
	err := r.db.WithContext(ctx).
		Where("driver_id = ?", driverID.Bytes()).
		Order("recorded_at DESC, id DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("driverLocation", driverID.String())
		}
		return nil, err
	}

	return driverLocationToDomain(dto)
}

// FindNearbyDrivers returns drivers whose current location lies within
// radiusKm of center, nearest first with ties broken by record ID.
func (r *GormDriverLocationRepository) FindNearbyDrivers(
	ctx context.Context,
	center kernel.GeoPoint,
	radiusKm float64,
	activeOnly bool,
	excludeDriverID *kernel.UUID,
) ([]tracking.NearbyDriver, error) {
	if err := center.Validate(); err != nil {
		return nil, err
	}
	if radiusKm <= 0 {
		return []tracking.NearbyDriver{}, nil
	}

	var excluded any
	if excludeDriverID != nil {
		if err := excludeDriverID.Validate(); err != nil {
			return nil, err
		}
		excluded = excludeDriverID.Bytes()
	}

	var results []struct {
		DriverID   uuid.UUID
		Latitude   float64
		Longitude  float64
		DistanceKm float64
	}

	err := r.db.WithContext(ctx).Raw(`
		WITH current_locations AS (
			SELECT DISTINCT ON (driver_id)
				id,
				driver_id,
				latitude,
				longitude,
				is_active
			FROM driver_locations
			ORDER BY driver_id, recorded_at DESC, id DESC
		)
		SELECT driver_id, latitude, longitude, distance_km
		FROM (
			SELECT
				id,
				driver_id,
				latitude,
				longitude,
				is_active,
				6371.0 * 2 * ASIN(SQRT(
					POWER(SIN(RADIANS(latitude - ?) / 2), 2) +
					COS(RADIANS(?)) * COS(RADIANS(latitude)) *
					POWER(SIN(RADIANS(longitude - ?) / 2), 2)
				)) AS distance_km
			FROM current_locations
		) located
		WHERE distance_km <= ?
			AND (NOT ? OR is_active)
			AND (?::uuid IS NULL OR driver_id <> ?)
		ORDER BY distance_km, id
	`,
		center.Latitude(), center.Latitude(), center.Longitude(),
		radiusKm, activeOnly, excluded, excluded,
	).Scan(&results).Error
	if err != nil {
		return nil, err
	}

	drivers := make([]tracking.NearbyDriver, 0, len(results))
	for _, row := range results {
		driverID, idErr := kernel.UUIDFromBytes(row.DriverID[:])
		if idErr != nil {
			return nil, idErr
		}
		point, pointErr := kernel.NewGeoPoint(row.Latitude, row.Longitude)
		if pointErr != nil {
			return nil, pointErr
		}

		drivers = append(drivers, tracking.NearbyDriver{
			DriverID:   driverID,
			Point:      point,
			DistanceKm: row.DistanceKm,
		})
	}

	return drivers, nil
}

// PruneHistory deletes, per driver, all records older than the newest
// keepPerDriver ones.
func (r *GormDriverLocationRepository) PruneHistory(ctx context.Context, keepPerDriver int) (int64, error) {
	if keepPerDriver < 1 {
		return 0, errs.NewValueIsInvalidError("keepPerDriver")
	}

	result := r.db.WithContext(ctx).Exec(`
		DELETE FROM driver_locations
		WHERE id IN (
			SELECT id FROM (
				SELECT
					id,
					ROW_NUMBER() OVER (
						PARTITION BY driver_id
						ORDER BY recorded_at DESC, id DESC
					) AS recency_rank
				FROM driver_locations
			) ranked
			WHERE recency_rank > ?
		)
	`, keepPerDriver)

	return result.RowsAffected, result.Error
}

// DeactivateStale flips is_active off on records older than the cutoff.
func (r *GormDriverLocationRepository) DeactivateStale(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&DriverLocationDTO{}).
		Where("is_active AND recorded_at < ?", cutoff).
		Update("is_active", false)

	return result.RowsAffected, result.Error
}

// GormDeliveryLocationRepository implements DeliveryLocationRepository using
// GORM.
type GormDeliveryLocationRepository struct {
	db *gorm.DB
}

// NewGormDeliveryLocationRepository creates a new GORM transit sample
// repository.
func NewGormDeliveryLocationRepository(db *gorm.DB) *GormDeliveryLocationRepository {
	return &GormDeliveryLocationRepository{db: db}
}

// Add appends a transit sample.
func (r *GormDeliveryLocationRepository) Add(ctx context.Context, sample *tracking.DeliveryLocation) error {
	if err := sample.Validate(); err != nil {
		return err
	}

	dto := deliveryLocationFromDomain(sample)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetLatest returns the most recent sample for a delivery.
func (r *GormDeliveryLocationRepository) GetLatest(
	ctx context.Context,
	deliveryID kernel.UUID,
) (*tracking.DeliveryLocation, error) {
	if err := deliveryID.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryLocationDTO
	err := r.db.WithContext(ctx).
		Where("delivery_id = ?", deliveryID.Bytes()).
		Order("recorded_at DESC, id DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("deliveryLocation", deliveryID.String())
		}
		return nil, err
	}

	return deliveryLocationToDomain(dto)
}
