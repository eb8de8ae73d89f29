package delivery

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
// created through NewDelivery or RestoreDelivery.
var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")

// ErrDeliveryNotInTransit is returned when recording a transit location for
// a delivery that is not out for delivery.
var ErrDeliveryNotInTransit = errors.New("delivery is not out for delivery")

// OrderSnapshot carries the order data copied into a delivery at creation
// time. The delivery never re-reads order state afterward: the snapshot
// decouples the delivery bounded context from later order changes.
type OrderSnapshot struct {
	StoreLocation  *kernel.GeoPoint
	Destination    *kernel.GeoPoint
	TotalPrice     float64
	TotalItems     int
	Fee            float64
	ScheduleFor    *time.Time
	NotesForDriver *string
}

// Delivery is the aggregate root governing a single order's delivery
// lifecycle. A delivery is created for exactly one order and never shared;
// its status follows the transition table in Status, and every successful
// transition appends exactly one TimelineEvent.
//
// Invariants:
//   - status transitions follow the state machine; terminal statuses are immutable
//   - driverID is set exactly once per assignment cycle, by Assign
//   - timeline events are append-only; the aggregate accumulates uncommitted
//     events in memory and the repository persists them atomically with the
//     status change
type Delivery struct {
	// id uniquely identifies the delivery
	id kernel.UUID
	// orderID is the backing order; exactly one delivery exists per order
	orderID kernel.UUID
	// driverID is the assigned driver, nil until assignment
	driverID *kernel.UUID
	// status is the current lifecycle state
	status Status
	// storeLocation is the pickup point snapshot, nil when the store has no
	// geocoded address
	storeLocation *kernel.GeoPoint
	// destination is the drop-off point snapshot
	destination *kernel.GeoPoint
	// totalPrice, totalItems and fee are order totals snapshotted at creation
	totalPrice float64
	totalItems int
	fee        float64
	// estimatedArrival is the projected arrival time, nil until computed
	estimatedArrival *time.Time
	// createdAt is when the delivery was created
	createdAt time.Time
	// scheduleFor is the optional requested delivery slot
	scheduleFor *time.Time
	// notesForDriver are optional customer instructions
	notesForDriver *string
	// pendingEvents are timeline events not yet persisted
	pendingEvents []TimelineEvent
	// guard ensures the delivery was properly constructed
	guard guard.ConstructorGuard
}

// NewDelivery creates a delivery for the given order with snapshot data
// copied from the order. The delivery starts in StatusPending and carries
// one uncommitted "created" timeline event.
func NewDelivery(id kernel.UUID, orderID kernel.UUID, snapshot OrderSnapshot) (*Delivery, error) {
	d := &Delivery{
		status:    StatusPending,
		createdAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setOrderID(orderID),
		d.setSnapshot(snapshot),
	); err != nil {
		return nil, err
	}

	event, err := NewTimelineEvent(kernel.NewUUID(), d.id, EventCreated, d.createdAt, nil, nil)
	if err != nil {
		return nil, err
	}
	d.pendingEvents = append(d.pendingEvents, event)

	return d, nil
}

// RestoreDelivery reconstructs a delivery aggregate from persistence.
// Unlike NewDelivery it does not append a timeline event; the restored
// aggregate carries no uncommitted events.
func RestoreDelivery(
	id kernel.UUID,
	orderID kernel.UUID,
	driverID *kernel.UUID,
	status Status,
	snapshot OrderSnapshot,
	estimatedArrival *time.Time,
	createdAt time.Time,
) (*Delivery, error) {
	d := &Delivery{
		estimatedArrival: estimatedArrival,
		createdAt:        createdAt,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setOrderID(orderID),
		d.setSnapshot(snapshot),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	d.status = status

	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return nil, err
		}
		d.driverID = driverID
	}

	return d, nil
}

// Validate ensures the Delivery was constructed via NewDelivery or
// RestoreDelivery.
func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

// IsEqual compares two deliveries by identifier.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the delivery identifier.
func (d *Delivery) ID() kernel.UUID { return d.id }

// OrderID returns the backing order identifier.
func (d *Delivery) OrderID() kernel.UUID { return d.orderID }

// Driver returns the assigned driver's ID, or nil if unassigned.
func (d *Delivery) Driver() *kernel.UUID { return d.driverID }

// Status returns the current lifecycle status.
func (d *Delivery) Status() Status { return d.status }

// StoreLocation returns the pickup point, or nil.
func (d *Delivery) StoreLocation() *kernel.GeoPoint { return d.storeLocation }

// Destination returns the drop-off point, or nil.
func (d *Delivery) Destination() *kernel.GeoPoint { return d.destination }

// TotalPrice returns the snapshotted order total.
func (d *Delivery) TotalPrice() float64 { return d.totalPrice }

// TotalItems returns the snapshotted item count.
func (d *Delivery) TotalItems() int { return d.totalItems }

// Fee returns the snapshotted delivery fee.
func (d *Delivery) Fee() float64 { return d.fee }

// EstimatedArrival returns the projected arrival time, or nil.
func (d *Delivery) EstimatedArrival() *time.Time { return d.estimatedArrival }

// CreatedAt returns the creation timestamp.
func (d *Delivery) CreatedAt() time.Time { return d.createdAt }

// ScheduleFor returns the requested delivery slot, or nil.
func (d *Delivery) ScheduleFor() *time.Time { return d.scheduleFor }

// NotesForDriver returns the customer instructions, or nil.
func (d *Delivery) NotesForDriver() *string { return d.notesForDriver }

// PendingEvents returns timeline events accumulated since the aggregate was
// loaded. The repository persists them in the same transaction as the
// delivery row and then calls ClearPendingEvents.
func (d *Delivery) PendingEvents() []TimelineEvent { return d.pendingEvents }

// ClearPendingEvents discards accumulated events after they are persisted.
func (d *Delivery) ClearPendingEvents() { d.pendingEvents = nil }

// SetEstimatedArrival records the projected arrival time.
func (d *Delivery) SetEstimatedArrival(at time.Time) {
	d.estimatedArrival = &at
}

// Assign assigns a driver and transitions the delivery to StatusAssigned.
//
// Business rules:
//   - driverID must be valid
//   - the current status must permit the transition to assigned
//     (only StatusPending does); otherwise an InvalidTransitionError is returned
//
// On success the driver is set and an "assigned" timeline event is appended.
func (d *Delivery) Assign(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	newStatus, err := d.status.TransitionTo(StatusAssigned)
	if err != nil {
		return err
	}

	d.status = newStatus
	d.driverID = &driverID
	return d.appendTransitionEvent(newStatus, nil, nil)
}

// ChangeStatus transitions the delivery to target with optional notes and
// location attached to the mirrored timeline event.
//
// The transition is validated against the state machine; attempts outside
// the table, including any transition out of delivered or cancelled, fail
// with an InvalidTransitionError carrying (current, attempted).
func (d *Delivery) ChangeStatus(target Status, notes *string, location *kernel.GeoPoint) error {
	if target == StatusAssigned {
		// Assignment requires a driver; it goes through Assign.
		if d.driverID == nil {
			return NewInvalidTransitionError(d.status, target)
		}
	}

	newStatus, err := d.status.TransitionTo(target)
	if err != nil {
		return err
	}

	d.status = newStatus
	return d.appendTransitionEvent(newStatus, notes, location)
}

// RecordTransitLocation appends a "location_updated" timeline event for an
// in-transit location sample. Valid only while the delivery is out for
// delivery; the status does not change.
func (d *Delivery) RecordTransitLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	if d.status != StatusOutForDelivery {
		return ErrDeliveryNotInTransit
	}

	event, err := NewTimelineEvent(
		kernel.NewUUID(), d.id, EventLocationUpdated, time.Now().UTC(), nil, &location)
	if err != nil {
		return err
	}

	d.pendingEvents = append(d.pendingEvents, event)
	return nil
}

// appendTransitionEvent appends the timeline event mirroring newStatus.
func (d *Delivery) appendTransitionEvent(newStatus Status, notes *string, location *kernel.GeoPoint) error {
	event, err := NewTimelineEvent(
		kernel.NewUUID(), d.id, eventTypeForStatus(newStatus), time.Now().UTC(), notes, location)
	if err != nil {
		return err
	}

	d.pendingEvents = append(d.pendingEvents, event)
	return nil
}

// setID validates and sets the delivery identifier.
func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

// setOrderID validates and sets the backing order identifier.
func (d *Delivery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	d.orderID = orderID
	return nil
}

// setSnapshot validates and copies the order snapshot fields.
func (d *Delivery) setSnapshot(snapshot OrderSnapshot) error {
	if snapshot.StoreLocation != nil {
		if err := snapshot.StoreLocation.Validate(); err != nil {
			return err
		}
	}
	if snapshot.Destination != nil {
		if err := snapshot.Destination.Validate(); err != nil {
			return err
		}
	}
	if snapshot.TotalItems < 0 {
		return errs.NewValueIsInvalidErrorWithCause("totalItems",
			fmt.Errorf("%d is negative", snapshot.TotalItems))
	}

	d.storeLocation = snapshot.StoreLocation
	d.destination = snapshot.Destination
	d.totalPrice = snapshot.TotalPrice
	d.totalItems = snapshot.TotalItems
	d.fee = snapshot.Fee
	d.scheduleFor = snapshot.ScheduleFor
	d.notesForDriver = snapshot.NotesForDriver
	return nil
}
