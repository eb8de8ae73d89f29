package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetDeliveryTimelineQueryIsNotConstructed = errors.New(
	"GetDeliveryTimelineQuery must be created via NewGetDeliveryTimelineQuery constructor",
)

// GetDeliveryTimelineQuery retrieves a delivery's timeline events in
// chronological order.
type GetDeliveryTimelineQuery struct {
	deliveryID kernel.UUID
	guard      guard.ConstructorGuard
}

// NewGetDeliveryTimelineQuery creates a timeline query.
func NewGetDeliveryTimelineQuery(deliveryID kernel.UUID) (GetDeliveryTimelineQuery, error) {
	if err := deliveryID.Validate(); err != nil {
		return GetDeliveryTimelineQuery{}, err
	}

	return GetDeliveryTimelineQuery{
		deliveryID: deliveryID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// DeliveryID returns the delivery whose timeline is requested.
func (q GetDeliveryTimelineQuery) DeliveryID() kernel.UUID {
	return q.deliveryID
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryTimelineQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryTimelineQueryIsNotConstructed)
}

// GetDeliveryTimelineQueryResponse is one timeline entry in the read model.
type GetDeliveryTimelineQueryResponse struct {
	EventID   kernel.UUID
	Type      delivery.EventType
	Timestamp time.Time
	Notes     *string
	Location  *kernel.GeoPoint
}
