package deliveryrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDeliveryRepository implements DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new delivery and flushes its pending timeline events.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if err := r.flushPendingEvents(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing delivery and flushes its pending timeline events.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&DeliveryDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := r.flushPendingEvents(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a delivery by ID without locking.
func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate retrieves a delivery by ID holding a row-level lock until the
// surrounding transaction ends. Concurrent status transitions on the same
// delivery serialize on this lock.
func (r *GormDeliveryRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	return r.get(ctx, id, true)
}

func (r *GormDeliveryRepository) get(ctx context.Context, id kernel.UUID, lock bool) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx)
	if lock {
		query = query.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	}

	var dto DeliveryDTO
	if err := query.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrderID retrieves the delivery backing an order.
func (r *GormDeliveryRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindNearby returns deliveries whose destination lies within radiusKm of
// center, nearest first with ties broken by ID. Deliveries without a
// geocoded destination never match.
func (r *GormDeliveryRepository) FindNearby(
	ctx context.Context,
	center kernel.GeoPoint,
	radiusKm float64,
	status *delivery.Status,
) ([]*delivery.Delivery, error) {
	if err := center.Validate(); err != nil {
		return nil, err
	}
	if radiusKm <= 0 {
		return []*delivery.Delivery{}, nil
	}

	var statusFilter *string
	if status != nil {
		if err := status.Validate(); err != nil {
			return nil, err
		}
		value := status.String()
		statusFilter = &value
	}

	var dtos []DeliveryDTO
	err := r.db.WithContext(ctx).Raw(`
		SELECT * FROM (
			SELECT
				*,
				6371.0 * 2 * ASIN(SQRT(
					POWER(SIN(RADIANS(dest_latitude - ?) / 2), 2) +
					COS(RADIANS(?)) * COS(RADIANS(dest_latitude)) *
					POWER(SIN(RADIANS(dest_longitude - ?) / 2), 2)
				)) AS distance_km
			FROM deliveries
			WHERE dest_latitude IS NOT NULL AND dest_longitude IS NOT NULL
		) located
		WHERE distance_km <= ? AND (?::text IS NULL OR status = ?)
		ORDER BY distance_km, id
	`, center.Latitude(), center.Latitude(), center.Longitude(), radiusKm, statusFilter, statusFilter).
		Scan(&dtos).Error
	if err != nil {
		return nil, err
	}

	deliveries := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		deliveries = append(deliveries, aggregate)
	}

	return deliveries, nil
}

// flushPendingEvents persists accumulated timeline events and clears them
// from the aggregate. Runs in the same transaction as the delivery write.
func (r *GormDeliveryRepository) flushPendingEvents(ctx context.Context, aggregate *delivery.Delivery) error {
	pending := aggregate.PendingEvents()
	if len(pending) == 0 {
		return nil
	}

	dtos := make([]TimelineEventDTO, 0, len(pending))
	for _, event := range pending {
		dtos = append(dtos, eventFromDomain(event))
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return err
	}

	aggregate.ClearPendingEvents()
	return nil
}
