package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDeliveryTimelineQueryHandler reads a delivery's audit timeline.
type GetDeliveryTimelineQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryTimelineQueryHandler creates a handler for timeline queries.
func NewGetDeliveryTimelineQueryHandler(db *gorm.DB) GetDeliveryTimelineQueryHandler {
	return GetDeliveryTimelineQueryHandler{db: db}
}

// Handle executes the timeline query. Events come back oldest first.
// Returns errs.ObjectNotFoundError when the delivery does not exist; a
// delivery always has at least its creation event.
func (h GetDeliveryTimelineQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryTimelineQuery,
) ([]GetDeliveryTimelineQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var exists bool
	err := h.db.WithContext(ctx).
		Raw("SELECT EXISTS (SELECT 1 FROM deliveries WHERE id = ?)", query.DeliveryID().Bytes()).
		Scan(&exists).Error
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewObjectNotFoundError("delivery", query.DeliveryID().String())
	}

	events := make([]GetDeliveryTimelineQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, event_type, occurred_at, notes, latitude, longitude
		FROM delivery_timeline_events
		WHERE delivery_id = ?
		ORDER BY occurred_at, id
	`, query.DeliveryID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var eventType string
		var occurredAt time.Time
		var notes *string
		var latitude, longitude *float64

		if err = rows.Scan(&id, &eventType, &occurredAt, &notes, &latitude, &longitude); err != nil {
			return nil, err
		}

		eventID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		var location *kernel.GeoPoint
		if latitude != nil && longitude != nil {
			point, pointErr := kernel.NewGeoPoint(*latitude, *longitude)
			if pointErr != nil {
				return nil, pointErr
			}
			location = &point
		}

		events = append(events, GetDeliveryTimelineQueryResponse{
			EventID:   eventID,
			Type:      delivery.EventType(eventType),
			Timestamp: occurredAt,
			Notes:     notes,
			Location:  location,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
