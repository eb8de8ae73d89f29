// Package guard provides a defensive construction pattern for domain objects.
// Embedding a ConstructorGuard in a value object or entity makes it possible
// to detect zero-value instances that bypassed the designated constructor,
// so that invariants enforced at construction time cannot be skipped.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error was supplied for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as having passed through its constructor.
// The zero value of the guard is "not constructed"; constructors obtain a
// valid guard via NewConstructorGuard, so any struct created by direct
// initialization fails validation.
//
// Example:
//
//	type GeoPoint struct {
//	    latitude  float64
//	    longitude float64
//	    guard     guard.ConstructorGuard
//	}
//
//	func NewGeoPoint(lat, lon float64) (GeoPoint, error) {
//	    // ...validate lat/lon...
//	    return GeoPoint{latitude: lat, longitude: lon, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (p GeoPoint) Validate() error {
//	    return p.guard.Validate(ErrGeoPointIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the enclosing object as
// properly constructed. Call this only from constructors.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil if the object was created through its constructor.
// Otherwise it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
