package queries

import (
	"context"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FindNearbyDeliveriesQueryHandler answers delivery proximity queries with
// raw SQL over delivery destinations. Deliveries without a geocoded
// destination never match.
type FindNearbyDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewFindNearbyDeliveriesQueryHandler creates a handler for delivery
// proximity queries.
func NewFindNearbyDeliveriesQueryHandler(db *gorm.DB) FindNearbyDeliveriesQueryHandler {
	return FindNearbyDeliveriesQueryHandler{db: db}
}

// Handle executes the proximity query. Results come back nearest first with
// ties broken by delivery ID.
func (h FindNearbyDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query FindNearbyDeliveriesQuery,
) ([]FindNearbyDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var statusFilter *string
	if s := query.Status(); s != nil {
		value := s.String()
		statusFilter = &value
	}

	deliveries := make([]FindNearbyDeliveriesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, order_id, status, dest_latitude, dest_longitude, distance_km
		FROM (
			SELECT
				id,
				order_id,
				status,
				dest_latitude,
				dest_longitude,
				6371.0 * 2 * ASIN(SQRT(
					POWER(SIN(RADIANS(dest_latitude - ?) / 2), 2) +
					COS(RADIANS(?)) * COS(RADIANS(dest_latitude)) *
					POWER(SIN(RADIANS(dest_longitude - ?) / 2), 2)
				)) AS distance_km
			FROM deliveries
			WHERE dest_latitude IS NOT NULL AND dest_longitude IS NOT NULL
		) located
		WHERE distance_km <= ? AND (?::text IS NULL OR status = ?)
		ORDER BY distance_km, id
	`,
		query.Center().Latitude(), query.Center().Latitude(), query.Center().Longitude(),
		query.RadiusKm(), statusFilter, statusFilter,
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id, orderID uuid.UUID
		var status string
		var latitude, longitude, distanceKm float64

		if err = rows.Scan(&id, &orderID, &status, &latitude, &longitude, &distanceKm); err != nil {
			return nil, err
		}

		deliveryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		backingOrderID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}
		destination, pointErr := kernel.NewGeoPoint(latitude, longitude)
		if pointErr != nil {
			return nil, pointErr
		}

		deliveries = append(deliveries, FindNearbyDeliveriesQueryResponse{
			ID:          deliveryID,
			OrderID:     backingOrderID,
			Status:      delivery.Status(status),
			Destination: destination,
			DistanceKm:  distanceKm,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
