package ledgerrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/pkg/errs"
)

// GormLedgerRepository implements LedgerRepository using GORM.
type GormLedgerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormLedgerRepository creates a new GORM ledger repository.
func NewGormLedgerRepository(db *gorm.DB, tracker aggregateTracker) *GormLedgerRepository {
	return &GormLedgerRepository{
		db:      db,
		tracker: tracker,
	}
}

// AddEntry saves a new ledger entry to the database.
func (r *GormLedgerRepository) AddEntry(ctx context.Context, entry *ledger.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := entryFromDomain(entry)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(entry.ID(), entry)
	return nil
}

// GetEntryByKey retrieves a ledger entry by its idempotency key.
func (r *GormLedgerRepository) GetEntryByKey(ctx context.Context, key string) (*ledger.Entry, error) {
	var dto EntryDTO
	if err := r.db.WithContext(ctx).First(&dto, "idempotency_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("ledger entry", key)
		}
		return nil, err
	}

	return entryToDomain(dto)
}

// AddConfirmation saves a new delivery confirmation to the database.
func (r *GormLedgerRepository) AddConfirmation(ctx context.Context, confirmation *ledger.DeliveryConfirmation) error {
	if err := confirmation.Validate(); err != nil {
		return err
	}

	dto := confirmationFromDomain(confirmation)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(confirmation.ID(), confirmation)
	return nil
}

// UpdateConfirmation saves an existing delivery confirmation to the database.
func (r *GormLedgerRepository) UpdateConfirmation(ctx context.Context, confirmation *ledger.DeliveryConfirmation) error {
	if err := confirmation.Validate(); err != nil {
		return err
	}

	dto := confirmationFromDomain(confirmation)
	result := r.db.WithContext(ctx).Model(&ConfirmationDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(confirmation.ID(), confirmation)
	return nil
}

// GetConfirmationByOrderID retrieves the confirmation recorded for an order.
func (r *GormLedgerRepository) GetConfirmationByOrderID(
	ctx context.Context,
	orderID kernel.UUID,
) (*ledger.DeliveryConfirmation, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto ConfirmationDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery confirmation", orderID.String())
		}
		return nil, err
	}

	return confirmationToDomain(dto)
}
