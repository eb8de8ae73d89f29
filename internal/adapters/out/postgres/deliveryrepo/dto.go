// Package deliveryrepo persists the Delivery aggregate and its timeline.
// Deliveries map to the deliveries table; timeline events are append-only
// rows in delivery_timeline_events written in the same transaction as the
// delivery row.
package deliveryrepo

import (
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO is the database representation of a delivery aggregate.
// Snapshot coordinates are nullable pairs; a delivery whose store or
// destination lacks a geocoded address stores NULL in both columns of the
// pair.
type DeliveryDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID  `gorm:"type:uuid;uniqueIndex"`
	DriverID         *uuid.UUID `gorm:"type:uuid;index"`
	Status           string     `gorm:"type:text;index"`
	StoreLatitude    *float64
	StoreLongitude   *float64
	DestLatitude     *float64 `gorm:"index:idx_deliveries_destination"`
	DestLongitude    *float64 `gorm:"index:idx_deliveries_destination"`
	TotalPrice       float64
	TotalItems       int
	Fee              float64
	EstimatedArrival *time.Time
	CreatedAt        time.Time
	ScheduleFor      *time.Time
	NotesForDriver   *string `gorm:"type:text"`
}

// TableName overrides GORM's default naming to use "deliveries".
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// TimelineEventDTO is the database representation of one timeline event.
type TimelineEventDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryID uuid.UUID `gorm:"type:uuid;index"`
	EventType  string    `gorm:"type:text"`
	OccurredAt time.Time `gorm:"index"`
	Notes      *string   `gorm:"type:text"`
	Latitude   *float64
	Longitude  *float64
}

// TableName overrides GORM's default naming to use "delivery_timeline_events".
func (TimelineEventDTO) TableName() string {
	return "delivery_timeline_events"
}

// fromDomain converts a delivery aggregate to its database representation.
func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	var driverID *uuid.UUID
	if id := aggregate.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	storeLat, storeLon := splitPoint(aggregate.StoreLocation())
	destLat, destLon := splitPoint(aggregate.Destination())

	return DeliveryDTO{
		ID:               aggregate.ID().Bytes(),
		OrderID:          aggregate.OrderID().Bytes(),
		DriverID:         driverID,
		Status:           aggregate.Status().String(),
		StoreLatitude:    storeLat,
		StoreLongitude:   storeLon,
		DestLatitude:     destLat,
		DestLongitude:    destLon,
		TotalPrice:       aggregate.TotalPrice(),
		TotalItems:       aggregate.TotalItems(),
		Fee:              aggregate.Fee(),
		EstimatedArrival: aggregate.EstimatedArrival(),
		CreatedAt:        aggregate.CreatedAt(),
		ScheduleFor:      aggregate.ScheduleFor(),
		NotesForDriver:   aggregate.NotesForDriver(),
	}
}

// eventFromDomain converts a timeline event to its database representation.
func eventFromDomain(event delivery.TimelineEvent) TimelineEventDTO {
	lat, lon := splitPoint(event.Location())

	return TimelineEventDTO{
		ID:         event.ID().Bytes(),
		DeliveryID: event.DeliveryID().Bytes(),
		EventType:  string(event.Type()),
		OccurredAt: event.Timestamp(),
		Notes:      event.Notes(),
		Latitude:   lat,
		Longitude:  lon,
	}
}

// toDomain converts a database DTO to a delivery aggregate.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	storeLocation, err := joinPoint(dto.StoreLatitude, dto.StoreLongitude)
	if err != nil {
		return nil, err
	}
	destination, err := joinPoint(dto.DestLatitude, dto.DestLongitude)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(
		id,
		orderID,
		driverID,
		delivery.Status(dto.Status),
		delivery.OrderSnapshot{
			StoreLocation:  storeLocation,
			Destination:    destination,
			TotalPrice:     dto.TotalPrice,
			TotalItems:     dto.TotalItems,
			Fee:            dto.Fee,
			ScheduleFor:    dto.ScheduleFor,
			NotesForDriver: dto.NotesForDriver,
		},
		dto.EstimatedArrival,
		dto.CreatedAt,
	)
}

// splitPoint decomposes an optional point into its nullable column pair.
func splitPoint(point *kernel.GeoPoint) (*float64, *float64) {
	if point == nil {
		return nil, nil
	}
	lat := point.Latitude()
	lon := point.Longitude()
	return &lat, &lon
}

// joinPoint recomposes an optional point from its nullable column pair.
func joinPoint(lat *float64, lon *float64) (*kernel.GeoPoint, error) {
	if lat == nil || lon == nil {
		return nil, nil
	}
	point, err := kernel.NewGeoPoint(*lat, *lon)
	if err != nil {
		return nil, err
	}
	return &point, nil
}
