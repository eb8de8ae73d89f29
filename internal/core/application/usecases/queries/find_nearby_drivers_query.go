// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries bypass the domain repositories and read optimized models straight
// from the database.
package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Search radius bounds shared by all proximity queries. Radii outside
// [MinSearchRadiusKm, MaxSearchRadiusKm] are rejected, not clamped.
const (
	MinSearchRadiusKm = 0.1
	MaxSearchRadiusKm = 50.0

	// DefaultDriverSearchRadiusKm is applied by callers when a driver
	// search request carries no radius.
	DefaultDriverSearchRadiusKm = 5.0

	// DefaultDeliverySearchRadiusKm is applied by callers when a delivery
	// search request carries no radius.
	DefaultDeliverySearchRadiusKm = 2.0
)

var ErrFindNearbyDriversQueryIsNotConstructed = errors.New(
	"FindNearbyDriversQuery must be created via NewFindNearbyDriversQuery constructor",
)

// FindNearbyDriversQuery finds active drivers whose current location lies
// within a radius of a center point, nearest first.
type FindNearbyDriversQuery struct {
	center   kernel.GeoPoint
	radiusKm float64
	guard    guard.ConstructorGuard
}

// NewFindNearbyDriversQuery creates a driver proximity query. The radius
// must lie within [MinSearchRadiusKm, MaxSearchRadiusKm].
func NewFindNearbyDriversQuery(center kernel.GeoPoint, radiusKm float64) (FindNearbyDriversQuery, error) {
	if err := center.Validate(); err != nil {
		return FindNearbyDriversQuery{}, err
	}
	if radiusKm < MinSearchRadiusKm || radiusKm > MaxSearchRadiusKm {
		return FindNearbyDriversQuery{}, errs.NewValueIsOutOfRangeError(
			"radiusKm", radiusKm, MinSearchRadiusKm, MaxSearchRadiusKm)
	}

	return FindNearbyDriversQuery{
		center:   center,
		radiusKm: radiusKm,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Center returns the query center point.
func (q FindNearbyDriversQuery) Center() kernel.GeoPoint {
	return q.center
}

// RadiusKm returns the search radius in kilometers.
func (q FindNearbyDriversQuery) RadiusKm() float64 {
	return q.radiusKm
}

// Validate ensures the query was created through the constructor.
func (q FindNearbyDriversQuery) Validate() error {
	return q.guard.Validate(ErrFindNearbyDriversQueryIsNotConstructed)
}

// FindNearbyDriversQueryResponse is one driver in the proximity read model.
type FindNearbyDriversQueryResponse struct {
	DriverID   kernel.UUID
	Location   kernel.GeoPoint
	DistanceKm float64
}
