package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrFindNearbyDeliveriesQueryIsNotConstructed = errors.New(
	"FindNearbyDeliveriesQuery must be created via NewFindNearbyDeliveriesQuery constructor",
)

// FindNearbyDeliveriesQuery finds deliveries whose destination lies within a
// radius of a center point, nearest first, optionally filtered by status.
type FindNearbyDeliveriesQuery struct {
	center   kernel.GeoPoint
	radiusKm float64
	status   *delivery.Status
	guard    guard.ConstructorGuard
}

// NewFindNearbyDeliveriesQuery creates a delivery proximity query. A nil
// status matches all statuses. The radius must lie within
// [MinSearchRadiusKm, MaxSearchRadiusKm].
func NewFindNearbyDeliveriesQuery(
	center kernel.GeoPoint,
	radiusKm float64,
	status *delivery.Status,
) (FindNearbyDeliveriesQuery, error) {
	if err := center.Validate(); err != nil {
		return FindNearbyDeliveriesQuery{}, err
	}
	if radiusKm < MinSearchRadiusKm || radiusKm > MaxSearchRadiusKm {
		return FindNearbyDeliveriesQuery{}, errs.NewValueIsOutOfRangeError(
			"radiusKm", radiusKm, MinSearchRadiusKm, MaxSearchRadiusKm)
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return FindNearbyDeliveriesQuery{}, err
		}
	}

	return FindNearbyDeliveriesQuery{
		center:   center,
		radiusKm: radiusKm,
		status:   status,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Center returns the query center point.
func (q FindNearbyDeliveriesQuery) Center() kernel.GeoPoint {
	return q.center
}

// RadiusKm returns the search radius in kilometers.
func (q FindNearbyDeliveriesQuery) RadiusKm() float64 {
	return q.radiusKm
}

// Status returns the optional status filter, or nil.
func (q FindNearbyDeliveriesQuery) Status() *delivery.Status {
	return q.status
}

// Validate ensures the query was created through the constructor.
func (q FindNearbyDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrFindNearbyDeliveriesQueryIsNotConstructed)
}

// FindNearbyDeliveriesQueryResponse is one delivery in the proximity read
// model.
type FindNearbyDeliveriesQueryResponse struct {
	ID          kernel.UUID
	OrderID     kernel.UUID
	Status      delivery.Status
	Destination kernel.GeoPoint
	DistanceKm  float64
}
