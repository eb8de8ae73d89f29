// Package locationrepo persists driver location records and delivery
// transit samples. Driver locations are append-only with recency deciding
// the current position; transit samples are append-only per delivery.
package locationrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/tracking"

	"github.com/google/uuid"
)

// DriverLocationDTO is the database representation of a driver location
// record. The composite index on (driver_id, recorded_at) serves both the
// current-location lookup and history pruning.
type DriverLocationDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	DriverID   uuid.UUID `gorm:"type:uuid;index:idx_driver_locations_recency,priority:1"`
	Latitude   float64
	Longitude  float64
	RecordedAt time.Time `gorm:"index:idx_driver_locations_recency,priority:2,sort:desc"`
	IsActive   bool
}

// TableName overrides GORM's default naming to use "driver_locations".
func (DriverLocationDTO) TableName() string {
	return "driver_locations"
}

// DeliveryLocationDTO is the database representation of a transit sample.
type DeliveryLocationDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryID uuid.UUID `gorm:"type:uuid;index"`
	DriverID   uuid.UUID `gorm:"type:uuid"`
	Latitude   float64
	Longitude  float64
	RecordedAt time.Time
}

// TableName overrides GORM's default naming to use "delivery_locations".
func (DeliveryLocationDTO) TableName() string {
	return "delivery_locations"
}

// driverLocationFromDomain converts a record to its database representation.
func driverLocationFromDomain(record *tracking.DriverLocation) DriverLocationDTO {
	return DriverLocationDTO{
		ID:         record.ID().Bytes(),
		DriverID:   record.DriverID().Bytes(),
		Latitude:   record.Point().Latitude(),
		Longitude:  record.Point().Longitude(),
		RecordedAt: record.RecordedAt(),
		IsActive:   record.IsActive(),
	}
}

// driverLocationToDomain converts a database DTO back to a domain record.
func driverLocationToDomain(dto DriverLocationDTO) (*tracking.DriverLocation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}
	point, err := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}

	return tracking.RestoreDriverLocation(id, driverID, point, dto.RecordedAt, dto.IsActive)
}

// deliveryLocationFromDomain converts a sample to its database
// representation.
func deliveryLocationFromDomain(sample *tracking.DeliveryLocation) DeliveryLocationDTO {
	return DeliveryLocationDTO{
		ID:         sample.ID().Bytes(),
		DeliveryID: sample.DeliveryID().Bytes(),
		DriverID:   sample.DriverID().Bytes(),
		Latitude:   sample.Point().Latitude(),
		Longitude:  sample.Point().Longitude(),
		RecordedAt: sample.RecordedAt(),
	}
}

// deliveryLocationToDomain converts a database DTO back to a domain sample.
func deliveryLocationToDomain(dto DeliveryLocationDTO) (*tracking.DeliveryLocation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	deliveryID, err := kernel.UUIDFromBytes(dto.DeliveryID[:])
	if err != nil {
		return nil, err
	}
	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}
	point, err := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}

	return tracking.RestoreDeliveryLocation(id, deliveryID, driverID, point, dto.RecordedAt)
}
