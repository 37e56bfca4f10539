// Package ports defines the contracts between the application core and
// infrastructure adapters. Repositories persist aggregates, the unit of
// work scopes them to one transaction, and the remaining ports cover
// account lookup, partner configuration and event notification.
package ports

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// ErrStateConflict is returned by the compare-and-set update methods
// when the stored state no longer matches the expected one.
var ErrStateConflict = errors.New("stored state changed concurrently")

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, including
	// its idempotency markers.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError if no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateStateFrom persists the aggregate only if the stored state
	// still equals expected. Returns ErrStateConflict otherwise, so a
	// concurrent transition loses instead of overwriting.
	UpdateStateFrom(ctx context.Context, aggregate *order.Order, expected order.State) error
}
