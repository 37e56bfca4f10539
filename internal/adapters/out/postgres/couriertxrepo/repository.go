package couriertxrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// GormCourierTransactionRepository implements CourierTransactionRepository using GORM.
type GormCourierTransactionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCourierTransactionRepository creates a new GORM courier transaction repository.
func NewGormCourierTransactionRepository(db *gorm.DB, tracker aggregateTracker) *GormCourierTransactionRepository {
	return &GormCourierTransactionRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new courier transaction to the database.
func (r *GormCourierTransactionRepository) Add(ctx context.Context, aggregate *courier.Transaction) error {
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

// UpdateStatusFrom saves the aggregate only while the stored status
// still matches the expected one. A zero row count means another
// settlement run flipped the row first.
func (r *GormCourierTransactionRepository) UpdateStatusFrom(
	ctx context.Context,
	aggregate *courier.Transaction,
	expected courier.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&TransactionDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(expected)).
		Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ports.ErrStateConflict
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a courier transaction by ID.
func (r *GormCourierTransactionRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Transaction, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TransactionDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("courier transaction", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrderID retrieves the transaction recorded for an order.
func (r *GormCourierTransactionRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*courier.Transaction, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto TransactionDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("courier transaction", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllUnsettledByCourier retrieves every unsettled transaction for a
// courier, oldest first. The settlement run flips these rows inside its
// own transaction.
func (r *GormCourierTransactionRepository) GetAllUnsettledByCourier(
	ctx context.Context,
	courierID kernel.UUID,
) ([]*courier.Transaction, error) {
	if err := courierID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TransactionDTO
	err := r.db.WithContext(ctx).
		Where("courier_id = ? AND status = ?", courierID.Bytes(), int(courier.Unsettled)).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	transactions := make([]*courier.Transaction, 0, len(dtos))
	for _, dto := range dtos {
		tx, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	return transactions, nil
}
