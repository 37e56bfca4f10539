package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
)

// LedgerRepository defines the persistence contract for ledger entries
// and delivery confirmations. Entry idempotency keys and the one
// confirmation per order are both backed by unique indexes, so a lost
// race on Add surfaces as a storage error instead of a duplicate row.
type LedgerRepository interface {
	// AddEntry persists a new ledger entry.
	AddEntry(ctx context.Context, entry *ledger.Entry) error

	// GetEntryByKey retrieves the entry carrying the given idempotency
	// key. Returns errs.ObjectNotFoundError when no entry exists.
	GetEntryByKey(ctx context.Context, key string) (*ledger.Entry, error)

	// AddConfirmation persists a new delivery confirmation.
	AddConfirmation(ctx context.Context, confirmation *ledger.DeliveryConfirmation) error

	// UpdateConfirmation persists changes to an existing confirmation.
	UpdateConfirmation(ctx context.Context, confirmation *ledger.DeliveryConfirmation) error

	// GetConfirmationByOrderID retrieves the confirmation recorded for
	// an order. Returns errs.ObjectNotFoundError when none exists.
	GetConfirmationByOrderID(ctx context.Context, orderID kernel.UUID) (*ledger.DeliveryConfirmation, error)
}
