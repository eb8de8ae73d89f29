package services

import (
	"errors"
	"math"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/tracking"
)

// ErrNoDriverAvailable is returned when no candidate driver can take the
// delivery, either because no candidates were provided or all were rejected.
var ErrNoDriverAvailable = errors.New("no driver available")

// DriverMatcher is a domain service that selects the best driver for a
// delivery from proximity-search candidates.
//
// Business rules:
//   - the delivery must be valid and in a status that allows assignment
//   - candidates must carry a valid driver id and position
//   - selection minimizes distance to the pickup point; candidates without a
//     precomputed distance are measured against the pickup directly, and ties
//     keep the earlier candidate so the result is deterministic
//   - assignment is applied to the delivery aggregate atomically with
//     selection
//
// Example:
//
//	matcher := services.NewDriverMatcher()
//	driverID, err := matcher.Match(d, candidates)
//	if errors.Is(err, services.ErrNoDriverAvailable) {
//	    // nobody in range
//	}
type DriverMatcher struct{}

// NewDriverMatcher creates a DriverMatcher ready for matching operations.
func NewDriverMatcher() DriverMatcher {
	return DriverMatcher{}
}

// Match selects the nearest candidate and assigns it to the delivery.
// Returns the chosen candidate, or ErrNoDriverAvailable when the candidate
// list is empty. The delivery must allow the transition to assigned; the
// resulting InvalidTransitionError propagates otherwise.
func (m DriverMatcher) Match(
	d *delivery.Delivery,
	candidates []tracking.NearbyDriver,
) (tracking.NearbyDriver, error) {
	if err := d.Validate(); err != nil {
		return tracking.NearbyDriver{}, err
	}

	best, err := m.findNearest(d.StoreLocation(), candidates)
	if err != nil {
		return tracking.NearbyDriver{}, err
	}

	if err = d.Assign(best.DriverID); err != nil {
		return tracking.NearbyDriver{}, err
	}

	return best, nil
}

// findNearest scans the candidates for the minimum distance to the pickup
// point. Strictly-less comparison keeps the first candidate on ties.
func (m DriverMatcher) findNearest(
	pickup *kernel.GeoPoint,
	candidates []tracking.NearbyDriver,
) (tracking.NearbyDriver, error) {
	var (
		best     tracking.NearbyDriver
		bestDist = math.MaxFloat64
		found    bool
	)

	for _, candidate := range candidates {
		if err := candidate.DriverID.Validate(); err != nil {
			return tracking.NearbyDriver{}, err
		}
		if err := candidate.Point.Validate(); err != nil {
			return tracking.NearbyDriver{}, err
		}

		distanceKm, err := m.candidateDistance(pickup, candidate)
		if err != nil {
			return tracking.NearbyDriver{}, err
		}

		if distanceKm < bestDist {
			bestDist = distanceKm
			best = candidate
			found = true
		}
	}

	if !found {
		return tracking.NearbyDriver{}, ErrNoDriverAvailable
	}

	return best, nil
}

// candidateDistance prefers the distance the proximity index computed.
// Candidates that carry none fall back to the great-circle distance between
// the candidate's position and the pickup point.
func (m DriverMatcher) candidateDistance(
	pickup *kernel.GeoPoint,
	candidate tracking.NearbyDriver,
) (float64, error) {
	if candidate.DistanceKm > 0 || pickup == nil {
		return candidate.DistanceKm, nil
	}
	return candidate.Point.DistanceTo(*pickup)
}
