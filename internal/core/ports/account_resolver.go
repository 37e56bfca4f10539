package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
)

// AccountResolver maps an account purpose to the concrete account of a
// company. Returns errs.MissingAccountError when setup is incomplete;
// dispatch flows fail fast on that instead of posting to a fallback.
type AccountResolver interface {
	Resolve(ctx context.Context, companyID kernel.UUID, purpose ledger.AccountPurpose) (kernel.UUID, error)
}
