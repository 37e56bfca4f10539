package partnerrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/partner"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// GormPartnerTransactionRepository implements PartnerTransactionRepository using GORM.
type GormPartnerTransactionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPartnerTransactionRepository creates a new GORM partner transaction repository.
func NewGormPartnerTransactionRepository(db *gorm.DB, tracker aggregateTracker) *GormPartnerTransactionRepository {
	return &GormPartnerTransactionRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new partner transaction to the database.
func (r *GormPartnerTransactionRepository) Add(ctx context.Context, aggregate *partner.Transaction) error {
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

// GetByToken retrieves the transaction carrying the given idempotency token.
func (r *GormPartnerTransactionRepository) GetByToken(ctx context.Context, token string) (*partner.Transaction, error) {
	var dto TransactionDTO
	if err := r.db.WithContext(ctx).First(&dto, "idempotency_token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("partner transaction", token)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GormPartnerConfigProvider resolves partner fee configurations from the
// partner_fee_configs table. Reads run outside any unit of work.
type GormPartnerConfigProvider struct {
	db *gorm.DB
}

// NewGormPartnerConfigProvider creates a new fee configuration provider.
func NewGormPartnerConfigProvider(db *gorm.DB) *GormPartnerConfigProvider {
	return &GormPartnerConfigProvider{db: db}
}

// GetFeeConfig retrieves the fee configuration of a partner.
// A partner without a configuration row is a setup error surfaced as
// errs.MissingPartnerConfigError; dispatch fails fast on it.
func (p *GormPartnerConfigProvider) GetFeeConfig(
	ctx context.Context,
	partnerID kernel.UUID,
) (services.PartnerFeeConfig, error) {
	if err := partnerID.Validate(); err != nil {
		return services.PartnerFeeConfig{}, err
	}

	var dto FeeConfigDTO
	if err := p.db.WithContext(ctx).First(&dto, "partner_id = ?", partnerID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return services.PartnerFeeConfig{}, errs.NewMissingPartnerConfigError(partnerID.String())
		}
		return services.PartnerFeeConfig{}, err
	}

	commission, err := kernel.NewMoney(dto.Commission)
	if err != nil {
		return services.PartnerFeeConfig{}, err
	}
	onlineFee, err := kernel.NewMoney(dto.OnlineFee)
	if err != nil {
		return services.PartnerFeeConfig{}, err
	}

	return services.PartnerFeeConfig{
		Commission: commission,
		OnlineFee:  onlineFee,
	}, nil
}
