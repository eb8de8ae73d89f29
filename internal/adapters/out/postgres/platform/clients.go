// Package platform adapts the surrounding commerce schema to the core's
// collaborator ports. Orders and drivers live in tables owned by other
// bounded contexts; this package reads them without taking ownership.
package platform

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderClient resolves orders from the orders table. Only paid orders
// are visible to the delivery context; anything else reads as not found.
type GormOrderClient struct {
	db *gorm.DB
}

// NewGormOrderClient creates an order client over the given connection.
func NewGormOrderClient(db *gorm.DB) *GormOrderClient {
	return &GormOrderClient{db: db}
}

// GetOrder returns the snapshot view of a paid order.
func (c *GormOrderClient) GetOrder(ctx context.Context, orderID kernel.UUID) (ports.Order, error) {
	if err := orderID.Validate(); err != nil {
		return ports.Order{}, err
	}

	var id uuid.UUID
	var storeLat, storeLon, destLat, destLon *float64
	var totalPrice, fee float64
	var totalItems int
	var scheduleFor *time.Time
	var notesForDriver *string

	row := c.db.WithContext(ctx).Raw(`
		SELECT
			id,
			store_latitude,
			store_longitude,
			dest_latitude,
			dest_longitude,
			total_price,
			total_items,
			fee,
			schedule_for,
			notes_for_driver
		FROM orders
		WHERE id = ? AND status = 'paid'
	`, orderID.Bytes()).Row()

	err := row.Scan(&id, &storeLat, &storeLon, &destLat, &destLon,
		&totalPrice, &totalItems, &fee, &scheduleFor, &notesForDriver)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.Order{}, errs.NewObjectNotFoundError("order", orderID.String())
	}
	if err != nil {
		return ports.Order{}, err
	}

	resolvedID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return ports.Order{}, err
	}
	storeLocation, err := optionalPoint(storeLat, storeLon)
	if err != nil {
		return ports.Order{}, err
	}
	destination, err := optionalPoint(destLat, destLon)
	if err != nil {
		return ports.Order{}, err
	}

	return ports.Order{
		ID:             resolvedID,
		StoreLocation:  storeLocation,
		Destination:    destination,
		TotalPrice:     totalPrice,
		TotalItems:     totalItems,
		Fee:            fee,
		ScheduleFor:    scheduleFor,
		NotesForDriver: notesForDriver,
	}, nil
}

// GormDriverClient resolves drivers from the drivers table.
type GormDriverClient struct {
	db *gorm.DB
}

// NewGormDriverClient creates a driver client over the given connection.
func NewGormDriverClient(db *gorm.DB) *GormDriverClient {
	return &GormDriverClient{db: db}
}

// GetDriver returns the driver view used for assignment decisions.
func (c *GormDriverClient) GetDriver(ctx context.Context, driverID kernel.UUID) (ports.Driver, error) {
	if err := driverID.Validate(); err != nil {
		return ports.Driver{}, err
	}

	var id uuid.UUID
	var isAvailable bool

	row := c.db.WithContext(ctx).Raw(`
		SELECT id, is_available
		FROM drivers
		WHERE id = ?
	`, driverID.Bytes()).Row()

	err := row.Scan(&id, &isAvailable)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.Driver{}, errs.NewObjectNotFoundError("driver", driverID.String())
	}
	if err != nil {
		return ports.Driver{}, err
	}

	resolvedID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return ports.Driver{}, err
	}

	return ports.Driver{
		ID:          resolvedID,
		IsAvailable: isAvailable,
	}, nil
}

// optionalPoint builds a GeoPoint from a nullable coordinate pair.
func optionalPoint(lat *float64, lon *float64) (*kernel.GeoPoint, error) {
	if lat == nil || lon == nil {
		return nil, nil
	}
	point, err := kernel.NewGeoPoint(*lat, *lon)
	if err != nil {
		return nil, err
	}
	return &point, nil
}
