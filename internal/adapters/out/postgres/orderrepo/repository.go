package orderrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
//
// Every write re-checks the stored row's status and version as a condition
// of the UPDATE, so of two racing writers only one commits; the loser gets
// Conflict.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update persists a state transition. The UPDATE is guarded on the source
// status and the loaded version; zero affected rows means another writer got
// there first and the caller observes Conflict.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order, fromStatus order.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := fromStatus.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ? AND version = ?", dto.ID, fromStatus.String(), aggregate.Version()).
		Select("*").Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictError(
			"order status", aggregate.Status().String(), fromStatus.String(),
		)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateAssignment persists the courier reference. The UPDATE additionally
// requires the stored courier column to still be NULL, so a racing second
// assignment fails with Conflict instead of overwriting the first.
func (r *GormOrderRepository) UpdateAssignment(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if aggregate.CourierID() == nil {
		return errs.NewValueIsRequiredError("courier_ref")
	}

	courierID := aggregate.CourierID().Bytes()
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where(
			"id = ? AND status = ? AND courier_id IS NULL AND version = ?",
			aggregate.ID().Bytes(), order.StatusInPreparation.String(), aggregate.Version(),
		).
		Updates(map[string]any{
			"courier_id": courierID,
			"version":    aggregate.Version() + 1,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictError("order courier_ref", "set", "unset")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order_id", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllForParty retrieves every order whose client, merchant, or courier
// reference matches the actor. Admins see all orders.
func (r *GormOrderRepository) GetAllForParty(ctx context.Context, actor kernel.Actor) ([]*order.Order, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	tx := r.db.WithContext(ctx)
	var dtos []OrderDTO
	var err error
	if actor.Role() == kernel.RoleAdmin {
		err = tx.Find(&dtos).Error
	} else {
		party := actor.ID().Bytes()
		err = tx.Find(&dtos, "client_id = ? OR merchant_id = ? OR courier_id = ?", party, party, party).Error
	}
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetAllAwaitingAssignment retrieves orders in preparation with no courier.
func (r *GormOrderRepository) GetAllAwaitingAssignment(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "status = ? AND courier_id IS NULL", order.StatusInPreparation.String()).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

func toDomainAll(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
