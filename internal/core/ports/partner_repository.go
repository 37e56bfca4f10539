package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/partner"
	"fulfillment/internal/core/domain/services"
)

// PartnerTransactionRepository defines the persistence contract for
// partner fee accruals.
type PartnerTransactionRepository interface {
	// Add persists a new partner transaction.
	Add(ctx context.Context, aggregate *partner.Transaction) error

	// GetByToken retrieves the transaction carrying the given
	// idempotency token. Returns errs.ObjectNotFoundError when the fee
	// has not been accrued yet.
	GetByToken(ctx context.Context, token string) (*partner.Transaction, error)
}

// PartnerConfigProvider resolves the fee configuration of a sales
// partner. Returns errs.MissingPartnerConfigError when the partner has
// no configuration on file.
type PartnerConfigProvider interface {
	GetFeeConfig(ctx context.Context, partnerID kernel.UUID) (services.PartnerFeeConfig, error)
}
