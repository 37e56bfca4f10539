package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/core/ports"
)

// SettleCourierResult reports what one settlement run cleared.
// Net is signed: positive means the courier handed cash to the branch.
type SettleCourierResult struct {
	SettledCount int
	Net          decimal.Decimal
}

// SettleCourierCommandHandler settles all unsettled transactions of a
// courier. Each row flips to Settled and one consolidated clearing entry
// per company covers the net cash movement; a run that finds nothing to
// settle writes nothing.
type SettleCourierCommandHandler struct {
	uowFactory SettlementUoWFactory
	accounts   ports.AccountResolver
	notifier   ports.Notifier
}

// NewSettleCourierCommandHandler creates a handler for batch settlement.
func NewSettleCourierCommandHandler(
	uowFactory SettlementUoWFactory,
	accounts ports.AccountResolver,
	notifier ports.Notifier,
) SettleCourierCommandHandler {
	return SettleCourierCommandHandler{
		uowFactory: uowFactory,
		accounts:   accounts,
		notifier:   notifier,
	}
}

// Handle processes the settlement run. Only rows actually flipped inside
// this transaction count toward the clearing entries, so two concurrent
// runs cannot both clear the same row's amount.
func (h *SettleCourierCommandHandler) Handle(
	ctx context.Context,
	cmd SettleCourierCommand,
) (SettleCourierResult, error) {
	if err := cmd.Validate(); err != nil {
		return SettleCourierResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SettleCourierResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	txRepo := uow.CourierTransactionRepository()
	transactions, err := txRepo.GetAllUnsettledByCourier(ctx, cmd.CourierID())
	if err != nil {
		return SettleCourierResult{}, err
	}

	result := SettleCourierResult{Net: decimal.Zero}
	netByCompany := make(map[kernel.UUID]decimal.Decimal)

	for _, tx := range transactions {
		if err = tx.Settle(); err != nil {
			return SettleCourierResult{}, err
		}

		// The flip is guarded by the stored status: a row a concurrent
		// run already settled is skipped and stays out of this run's net.
		err = txRepo.UpdateStatusFrom(ctx, tx, courier.Unsettled)
		if errors.Is(err, ports.ErrStateConflict) {
			continue
		}
		if err != nil {
			return SettleCourierResult{}, err
		}

		net := tx.NetAmount()
		netByCompany[tx.CompanyID()] = netByCompany[tx.CompanyID()].Add(net)
		result.Net = result.Net.Add(net)
		result.SettledCount++
	}

	if result.SettledCount > 0 {
		batchID := kernel.NewUUID()
		for companyID, net := range netByCompany {
			if err = h.writeClearingEntry(ctx, uow.LedgerRepository(),
				cmd.CourierID(), companyID, batchID, net); err != nil {
				return SettleCourierResult{}, err
			}
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return SettleCourierResult{}, err
	}

	h.notifier.NotifyCourierSettled(ctx, cmd.CourierID(), result.Net, result.SettledCount)
	return result, nil
}

// writeClearingEntry records the net cash movement of one company's
// share of the run. A zero net still flips the rows but writes no entry.
func (h *SettleCourierCommandHandler) writeClearingEntry(
	ctx context.Context,
	repo ports.LedgerRepository,
	courierID kernel.UUID,
	companyID kernel.UUID,
	batchID kernel.UUID,
	net decimal.Decimal,
) error {
	if net.IsZero() {
		return nil
	}

	entry, err := buildClearingEntry(ctx, h.accounts, companyID, nil,
		ledger.BatchSettlementKey(courierID, companyID, batchID), net,
		fmt.Sprintf("settlement of courier %s", courierID))
	if err != nil {
		return err
	}

	return repo.AddEntry(ctx, entry)
}

// buildClearingEntry resolves the cash and courier payable accounts and
// directs the entry by the sign of the net amount: positive nets debit
// cash (the courier pays in), negative nets credit it (the branch pays
// the courier's fees out).
func buildClearingEntry(
	ctx context.Context,
	accounts ports.AccountResolver,
	companyID kernel.UUID,
	orderID *kernel.UUID,
	key string,
	net decimal.Decimal,
	remarks string,
) (*ledger.Entry, error) {
	cash, err := accounts.Resolve(ctx, companyID, ledger.PurposeCash)
	if err != nil {
		return nil, err
	}
	payable, err := accounts.Resolve(ctx, companyID, ledger.PurposeCourierPayable)
	if err != nil {
		return nil, err
	}

	amount, err := kernel.NewMoney(net.Abs())
	if err != nil {
		return nil, err
	}

	debit, credit := cash, payable
	if net.IsNegative() {
		debit, credit = payable, cash
	}

	return ledger.NewEntry(kernel.NewUUID(), key, ledger.KindJournal,
		companyID, orderID, debit, credit, amount, remarks)
}
