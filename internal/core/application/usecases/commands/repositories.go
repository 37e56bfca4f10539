// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CourierTxRepoFactory provides access to the courier transaction
	// repository within a transaction.
	CourierTxRepoFactory interface {
		CourierTransactionRepository() ports.CourierTransactionRepository
	}

	// PartnerTxRepoFactory provides access to the partner transaction
	// repository within a transaction.
	PartnerTxRepoFactory interface {
		PartnerTransactionRepository() ports.PartnerTransactionRepository
	}

	// LedgerRepoFactory provides access to the ledger repository within a transaction.
	LedgerRepoFactory interface {
		LedgerRepository() ports.LedgerRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands only modify the order aggregate.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// SettlementUoW manages transactions that write settlement artifacts:
	// the order, its courier and partner transactions and its ledger rows
	// commit or roll back together.
	SettlementUoW interface {
		TxManager
		OrderRepoFactory
		CourierTxRepoFactory
		PartnerTxRepoFactory
		LedgerRepoFactory
	}

	// SettlementUoWFactory creates new settlement unit of work instances.
	SettlementUoWFactory interface {
		Create() SettlementUoW
	}
)
