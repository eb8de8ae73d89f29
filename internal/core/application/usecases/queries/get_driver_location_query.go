package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetDriverLocationQueryIsNotConstructed = errors.New(
	"GetDriverLocationQuery must be created via NewGetDriverLocationQuery constructor",
)

// GetDriverLocationQuery retrieves a driver's current location, i.e. the
// most recent record for the driver regardless of activity.
type GetDriverLocationQuery struct {
	driverID kernel.UUID
	guard    guard.ConstructorGuard
}

// NewGetDriverLocationQuery creates a current location query.
func NewGetDriverLocationQuery(driverID kernel.UUID) (GetDriverLocationQuery, error) {
	if err := driverID.Validate(); err != nil {
		return GetDriverLocationQuery{}, err
	}

	return GetDriverLocationQuery{
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// DriverID returns the driver being looked up.
func (q GetDriverLocationQuery) DriverID() kernel.UUID {
	return q.driverID
}

// Validate ensures the query was created through the constructor.
func (q GetDriverLocationQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverLocationQueryIsNotConstructed)
}

// GetDriverLocationQueryResponse is the current location read model.
type GetDriverLocationQueryResponse struct {
	DriverID   kernel.UUID
	Location   kernel.GeoPoint
	RecordedAt time.Time
	IsActive   bool
}
