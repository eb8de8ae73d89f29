// Package kernel provides core domain primitives shared across the dispatch
// domain model.
//
// The package includes:
//   - UUID: a value object for entity identifiers with validation and comparison
//   - GeoPoint: a validated WGS84 (latitude, longitude) pair with great-circle
//     distance computation
//
// Both primitives are immutable, enforce their invariants at construction
// time, and fail validation as zero values, so domain objects built from
// them are always in a valid state.
package kernel
