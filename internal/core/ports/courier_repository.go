package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
)

// CourierTransactionRepository defines the persistence contract for
// courier ledger rows.
type CourierTransactionRepository interface {
	// Add persists a new courier transaction.
	Add(ctx context.Context, aggregate *courier.Transaction) error

	// UpdateStatusFrom persists the aggregate only while the stored
	// status still equals expected. Returns ErrStateConflict otherwise,
	// so a settlement run can skip rows another run already flipped.
	UpdateStatusFrom(ctx context.Context, aggregate *courier.Transaction, expected courier.Status) error

	// Get retrieves a transaction by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*courier.Transaction, error)

	// GetByOrderID retrieves the transaction recorded for an order.
	// At most one courier transaction exists per order; returns
	// errs.ObjectNotFoundError when none was recorded.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*courier.Transaction, error)

	// GetAllUnsettledByCourier retrieves every unsettled transaction for
	// a courier, oldest first.
	GetAllUnsettledByCourier(ctx context.Context, courierID kernel.UUID) ([]*courier.Transaction, error)
}
