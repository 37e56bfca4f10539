package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/core/ports"
)

// SettleOrderCommandHandler settles one order's courier transaction.
// Unlike a batch run, asking to settle an already settled order is an
// explicit mistake and returns courier.ErrAlreadySettled.
type SettleOrderCommandHandler struct {
	uowFactory SettlementUoWFactory
	accounts   ports.AccountResolver
	notifier   ports.Notifier
}

// NewSettleOrderCommandHandler creates a handler for single-order settlement.
func NewSettleOrderCommandHandler(
	uowFactory SettlementUoWFactory,
	accounts ports.AccountResolver,
	notifier ports.Notifier,
) SettleOrderCommandHandler {
	return SettleOrderCommandHandler{
		uowFactory: uowFactory,
		accounts:   accounts,
		notifier:   notifier,
	}
}

// Handle processes the single-order settlement.
func (h *SettleOrderCommandHandler) Handle(ctx context.Context, cmd SettleOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	txRepo := uow.CourierTransactionRepository()
	tx, err := txRepo.GetByOrderID(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	net := tx.NetAmount()
	if err = tx.Settle(); err != nil {
		return err
	}

	// Losing the status race means another run settled this row between
	// our read and the flip, which is the same mistake as settling twice.
	err = txRepo.UpdateStatusFrom(ctx, tx, courier.Unsettled)
	if errors.Is(err, ports.ErrStateConflict) {
		return courier.ErrAlreadySettled
	}
	if err != nil {
		return err
	}

	if !net.IsZero() {
		orderID := tx.OrderID()
		entry, buildErr := buildClearingEntry(ctx, h.accounts, tx.CompanyID(), &orderID,
			ledger.SingleSettlementKey(orderID), net,
			fmt.Sprintf("settlement of order %s for courier %s", orderID, tx.CourierID()))
		if buildErr != nil {
			return buildErr
		}
		if err = uow.LedgerRepository().AddEntry(ctx, entry); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.NotifyCourierSettled(ctx, tx.CourierID(), net, 1)
	return nil
}
