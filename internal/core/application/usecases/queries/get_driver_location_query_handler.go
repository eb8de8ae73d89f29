package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDriverLocationQueryHandler reads a driver's most recent location record.
type GetDriverLocationQueryHandler struct {
	db *gorm.DB
}

// NewGetDriverLocationQueryHandler creates a handler for current location
// lookups.
func NewGetDriverLocationQueryHandler(db *gorm.DB) GetDriverLocationQueryHandler {
	return GetDriverLocationQueryHandler{db: db}
}

// Handle executes the lookup. Returns errs.ObjectNotFoundError when the
// driver has never reported a location.
func (h GetDriverLocationQueryHandler) Handle(
	ctx context.Context,
	query GetDriverLocationQuery,
) (GetDriverLocationQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDriverLocationQueryResponse{}, err
	}

	var driverID uuid.UUID
	var latitude, longitude float64
	var recordedAt time.Time
	var isActive bool

	row := h.db.WithContext(ctx).Raw(`
		SELECT driver_id, latitude, longitude, recorded_at, is_active
		FROM driver_locations
		WHERE driver_id = ?
		ORDER BY recorded_at DESC, id DESC
		LIMIT 1
	`, query.DriverID().Bytes()).Row()

	err := row.Scan(&driverID, &latitude, &longitude, &recordedAt, &isActive)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDriverLocationQueryResponse{},
			errs.NewObjectNotFoundError("driverLocation", query.DriverID().String())
	}
	if err != nil {
		return GetDriverLocationQueryResponse{}, err
	}

	id, err := kernel.UUIDFromBytes(driverID[:])
	if err != nil {
		return GetDriverLocationQueryResponse{}, err
	}
	point, err := kernel.NewGeoPoint(latitude, longitude)
	if err != nil {
		return GetDriverLocationQueryResponse{}, err
	}

	return GetDriverLocationQueryResponse{
		DriverID:   id,
		Location:   point,
		RecordedAt: recordedAt,
		IsActive:   isActive,
	}, nil
}
