package kernel

import (
	"errors"
	"fmt"
	"math"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Coordinate bounds for WGS84 latitude/longitude values.
const (
	// MinLatitude is the minimum valid latitude in degrees.
	MinLatitude float64 = -90
	// MaxLatitude is the maximum valid latitude in degrees.
	MaxLatitude float64 = 90
	// MinLongitude is the minimum valid longitude in degrees.
	MinLongitude float64 = -180
	// MaxLongitude is the maximum valid longitude in degrees.
	MaxLongitude float64 = 180

	// earthRadiusKm is the mean Earth radius used by the Haversine formula.
	earthRadiusKm = 6371.0
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly
// initialized GeoPoint. Points must be created via the NewGeoPoint constructor.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint represents a validated (latitude, longitude) pair in degrees.
// GeoPoint is an immutable value object: construction fails if either
// coordinate is outside its valid range, and the zero value fails validation.
//
// Example:
//
//	point, err := kernel.NewGeoPoint(48.8566, 2.3522)
//	if err != nil {
//	    // handle validation error
//	}
//	fmt.Println(point) // Output: GeoPoint(48.856600,2.352200)
type GeoPoint struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint from latitude and longitude in degrees.
// Latitude must be within [MinLatitude, MaxLatitude] and longitude within
// [MinLongitude, MaxLongitude]; boundary values are accepted. Out-of-range
// coordinates fail with a ValueIsOutOfRangeError and are never clamped.
func NewGeoPoint(latitude float64, longitude float64) (GeoPoint, error) {
	point := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(point.setLatitude(latitude), point.setLongitude(longitude)); err != nil {
		return GeoPoint{}, err
	}

	return point, nil
}

// Validate checks that the GeoPoint was created via NewGeoPoint.
// The zero value is invalid and returns ErrGeoPointIsNotConstructed.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Latitude returns the latitude in degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude in degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// String returns "GeoPoint(latitude,longitude)" with six decimal places.
// It implements the fmt.Stringer interface.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.6f,%.6f)", p.latitude, p.longitude)
}

// IsEqual compares two points for coordinate equality.
// Both points must be properly constructed for the comparison to succeed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p.latitude == other.latitude && p.longitude == other.longitude, nil
}

// DistanceTo calculates the great-circle distance to another point in
// kilometers using the Haversine formula:
//
//	a = sin²(Δlat/2) + cos(lat1)·cos(lat2)·sin²(Δlon/2)
//	d = 2·R·atan2(√a, √(1−a)), R = 6371.0 km
//
// The computation is pure and side-effect free. Distance is symmetric and
// zero for identical points. Both points must be properly constructed.
func (p GeoPoint) DistanceTo(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := degreesToRadians(p.latitude)
	lat2 := degreesToRadians(other.latitude)
	deltaLat := degreesToRadians(other.latitude - p.latitude)
	deltaLon := degreesToRadians(other.longitude - p.longitude)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c, nil
}

// setLatitude sets the latitude with range validation.
// Pointer receiver is intentional: private setters self-encapsulate
// construction-time validation, all public methods use value receivers.
func (p *GeoPoint) setLatitude(latitude float64) error {
	if latitude < MinLatitude || latitude > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, MinLatitude, MaxLatitude)
	}

	p.latitude = latitude
	return nil
}

// setLongitude sets the longitude with range validation.
func (p *GeoPoint) setLongitude(longitude float64) error {
	if longitude < MinLongitude || longitude > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, MinLongitude, MaxLongitude)
	}

	p.longitude = longitude
	return nil
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
