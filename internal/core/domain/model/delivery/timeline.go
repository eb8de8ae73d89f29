package delivery

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// EventType classifies entries in a delivery's timeline audit log.
type EventType string

const (
	// EventCreated is appended when the delivery is created.
	EventCreated EventType = "created"
	// EventAssigned is appended when a driver is assigned.
	EventAssigned EventType = "assigned"
	// EventPickedUp is appended when the driver collects the order from the store.
	EventPickedUp EventType = "picked_up"
	// EventOutForDelivery is appended when the delivery goes in transit.
	EventOutForDelivery EventType = "out_for_delivery"
	// EventDelivered is appended when the delivery completes.
	EventDelivered EventType = "delivered"
	// EventCancelled is appended when the delivery is cancelled.
	EventCancelled EventType = "cancelled"
	// EventLocationUpdated is appended for in-transit location samples.
	EventLocationUpdated EventType = "location_updated"
)

// ErrTimelineEventIsNotConstructed is returned when using an improperly
// initialized TimelineEvent.
var ErrTimelineEventIsNotConstructed = errs.NewValueIsRequiredError(
	"timeline event must be created via NewTimelineEvent constructor")

// getEventTypeStrings returns the set of valid event types.
func getEventTypeStrings() map[EventType]struct{} {
	return map[EventType]struct{}{
		EventCreated:         {},
		EventAssigned:        {},
		EventPickedUp:        {},
		EventOutForDelivery:  {},
		EventDelivered:       {},
		EventCancelled:       {},
		EventLocationUpdated: {},
	}
}

// Validate checks that the EventType is one of the known literals.
func (t EventType) Validate() error {
	if _, ok := getEventTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("eventType",
			fmt.Errorf("%q is not a valid event type", string(t)))
	}
	return nil
}

// eventTypeForStatus maps a status entered by a transition to the timeline
// event type that mirrors it. Every successful transition appends exactly
// one event of this type.
func eventTypeForStatus(s Status) EventType {
	switch s {
	case StatusPending:
		return EventCreated
	case StatusAssigned:
		return EventAssigned
	case StatusOutForDelivery:
		return EventOutForDelivery
	case StatusDelivered:
		return EventDelivered
	case StatusCancelled:
		return EventCancelled
	default:
		return EventType(s)
	}
}

// TimelineEvent is an immutable audit record of a delivery state change or
// notable occurrence. Events are append-only: they are never mutated or
// deleted once persisted.
type TimelineEvent struct {
	id         kernel.UUID
	deliveryID kernel.UUID
	eventType  EventType
	timestamp  time.Time
	notes      *string
	location   *kernel.GeoPoint
	guard      guard.ConstructorGuard
}

// NewTimelineEvent creates a timeline event for the given delivery.
// Notes and location are optional; a non-nil location must be a properly
// constructed GeoPoint.
func NewTimelineEvent(
	id kernel.UUID,
	deliveryID kernel.UUID,
	eventType EventType,
	timestamp time.Time,
	notes *string,
	location *kernel.GeoPoint,
) (TimelineEvent, error) {
	if err := errors.Join(id.Validate(), deliveryID.Validate(), eventType.Validate()); err != nil {
		return TimelineEvent{}, err
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return TimelineEvent{}, err
		}
	}
	if timestamp.IsZero() {
		return TimelineEvent{}, errs.NewValueIsRequiredError("timestamp")
	}

	return TimelineEvent{
		id:         id,
		deliveryID: deliveryID,
		eventType:  eventType,
		timestamp:  timestamp,
		notes:      notes,
		location:   location,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// RestoreTimelineEvent reconstructs a timeline event from persistence.
func RestoreTimelineEvent(
	id kernel.UUID,
	deliveryID kernel.UUID,
	eventType EventType,
	timestamp time.Time,
	notes *string,
	location *kernel.GeoPoint,
) (TimelineEvent, error) {
	return NewTimelineEvent(id, deliveryID, eventType, timestamp, notes, location)
}

// Validate checks that the event was created via its constructor.
func (e TimelineEvent) Validate() error {
	return e.guard.Validate(ErrTimelineEventIsNotConstructed)
}

// ID returns the event identifier.
func (e TimelineEvent) ID() kernel.UUID {
	return e.id
}

// DeliveryID returns the identifier of the delivery this event belongs to.
func (e TimelineEvent) DeliveryID() kernel.UUID {
	return e.deliveryID
}

// Type returns the event classification.
func (e TimelineEvent) Type() EventType {
	return e.eventType
}

// Timestamp returns when the event occurred.
func (e TimelineEvent) Timestamp() time.Time {
	return e.timestamp
}

// Notes returns the optional free-text notes, or nil.
func (e TimelineEvent) Notes() *string {
	return e.notes
}

// Location returns the optional location attached to the event, or nil.
func (e TimelineEvent) Location() *kernel.GeoPoint {
	return e.location
}
