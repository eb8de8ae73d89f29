package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// Order is the snapshot view of an order exposed by the order bounded
// context. The delivery core copies these fields at creation time and never
// re-reads them.
type Order struct {
	ID             kernel.UUID
	StoreLocation  *kernel.GeoPoint
	Destination    *kernel.GeoPoint
	TotalPrice     float64
	TotalItems     int
	Fee            float64
	ScheduleFor    *time.Time
	NotesForDriver *string
}

// Driver is the view of a driver exposed by the user bounded context.
type Driver struct {
	ID          kernel.UUID
	IsAvailable bool
}

// OrderClient resolves orders from the order bounded context.
type OrderClient interface {
	// GetOrder returns the order snapshot, or errs.ObjectNotFoundError.
	GetOrder(ctx context.Context, orderID kernel.UUID) (Order, error)
}

// DriverClient resolves drivers from the user bounded context.
type DriverClient interface {
	// GetDriver returns the driver view, or errs.ObjectNotFoundError.
	GetDriver(ctx context.Context, driverID kernel.UUID) (Driver, error)
}

// Notification is a message pushed to a driver's device.
type Notification struct {
	Title string
	Body  string
	Data  map[string]string
}

// DriverNotifier delivers notifications to drivers. Callers treat it as
// fire-and-forget: a notification failure is logged, never propagated as a
// failure of the business operation that triggered it.
type DriverNotifier interface {
	NotifyDriver(ctx context.Context, driverID kernel.UUID, notification Notification) error
}
