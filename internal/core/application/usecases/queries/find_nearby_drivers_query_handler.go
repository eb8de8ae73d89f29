package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FindNearbyDriversQueryHandler answers driver proximity queries with raw
// SQL. The driver's current location is the newest record per driver; the
// great-circle distance is computed in the database so filtering and
// ordering happen before rows reach the application.
type FindNearbyDriversQueryHandler struct {
	db *gorm.DB
}

// NewFindNearbyDriversQueryHandler creates a handler for driver proximity
// queries.
func NewFindNearbyDriversQueryHandler(db *gorm.DB) FindNearbyDriversQueryHandler {
	return FindNearbyDriversQueryHandler{db: db}
}

// Handle executes the proximity query. Results come back nearest first with
// ties broken by record ID; only active current locations participate.
func (h FindNearbyDriversQueryHandler) Handle(
	ctx context.Context,
	query FindNearbyDriversQuery,
) ([]FindNearbyDriversQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	drivers := make([]FindNearbyDriversQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
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
		SELECT id, driver_id, latitude, longitude, distance_km
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
		WHERE is_active AND distance_km <= ?
		ORDER BY distance_km, id
	`, query.Center().Latitude(), query.Center().Latitude(), query.Center().Longitude(), query.RadiusKm()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var recordID, driverID uuid.UUID
		var latitude, longitude, distanceKm float64

		if err = rows.Scan(&recordID, &driverID, &latitude, &longitude, &distanceKm); err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromBytes(driverID[:])
		if idErr != nil {
			return nil, idErr
		}
		point, pointErr := kernel.NewGeoPoint(latitude, longitude)
		if pointErr != nil {
			return nil, pointErr
		}

		drivers = append(drivers, FindNearbyDriversQueryResponse{
			DriverID:   id,
			Location:   point,
			DistanceKm: distanceKm,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return drivers, nil
}
