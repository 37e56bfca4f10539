package accountrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/pkg/errs"
)

// GormAccountResolver implements AccountResolver using GORM.
type GormAccountResolver struct {
	db *gorm.DB
}

// NewGormAccountResolver creates a new GORM account resolver.
func NewGormAccountResolver(db *gorm.DB) *GormAccountResolver {
	return &GormAccountResolver{db: db}
}

// Resolve returns the account serving the given purpose for a company.
func (r *GormAccountResolver) Resolve(
	ctx context.Context,
	companyID kernel.UUID,
	purpose ledger.AccountPurpose,
) (kernel.UUID, error) {
	if err := companyID.Validate(); err != nil {
		return kernel.UUID{}, err
	}
	if err := purpose.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	var dto AccountDTO
	err := r.db.WithContext(ctx).
		First(&dto, "company_id = ? AND purpose = ?", companyID.Bytes(), purpose.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return kernel.UUID{}, errs.NewMissingAccountError(purpose.String(), companyID.String())
		}
		return kernel.UUID{}, err
	}

	return kernel.UUIDFromBytes(dto.ID[:])
}
