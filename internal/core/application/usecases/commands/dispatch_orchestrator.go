package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/partner"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// Order markers recording which dispatch artifacts already exist.
// Checked before touching storage so a re-dispatched order skips every
// step it completed before.
const (
	markerDeliveryConfirmation = "delivery_confirmation"
	markerCustomerPayment      = "customer_payment"
	markerCourierTransaction   = "courier_transaction"
	markerFreightSettlement    = "freight_settlement"
	markerPartnerTransaction   = "partner_transaction"
)

// artifactOrchestrator creates the settlement artifacts of a dispatch:
// the delivery confirmation, the customer payment entry, the courier
// transaction with its freight entry, and the partner fee accrual.
//
// Every step is idempotent twice over: the order's marker short-circuits
// a step that already ran, and below that each artifact is found by its
// deterministic key before a new one is written. All writes go through
// the repositories of one unit of work, so a failed dispatch leaves no
// partial artifact set behind.
type artifactOrchestrator struct {
	accounts      ports.AccountResolver
	partnerConfig ports.PartnerConfigProvider
	feeCalculator services.PartnerFeeCalculator
}

func newArtifactOrchestrator(
	accounts ports.AccountResolver,
	partnerConfig ports.PartnerConfigProvider,
) artifactOrchestrator {
	return artifactOrchestrator{
		accounts:      accounts,
		partnerConfig: partnerConfig,
		feeCalculator: services.NewPartnerFeeCalculator(),
	}
}

// createArtifacts runs the artifact plan for the chosen strategy inside
// the caller's transaction. It mutates the order (paid position, markers)
// but does not persist it; the caller saves the order and commits.
func (a artifactOrchestrator) createArtifacts(
	ctx context.Context,
	uow SettlementUoW,
	o *order.Order,
	courierID *kernel.UUID,
	strategy services.Strategy,
) error {
	// The courier's collectible is the outstanding amount as dispatched,
	// captured before any payment step clears it.
	collectible := o.Outstanding()

	if err := a.ensureConfirmation(ctx, uow.LedgerRepository(), o, courierID); err != nil {
		return err
	}

	cashCollected, err := a.ensurePayment(ctx, uow.LedgerRepository(), o, strategy)
	if err != nil {
		return err
	}

	if courierID != nil {
		if err := a.ensureCourierTransaction(ctx, uow.CourierTransactionRepository(),
			o, *courierID, collectible, strategy); err != nil {
			return err
		}
		if err := a.ensureFreightEntry(ctx, uow.LedgerRepository(), o, strategy); err != nil {
			return err
		}
	}

	if o.HasPartner() {
		if err := a.ensurePartnerTransaction(ctx, uow.PartnerTransactionRepository(),
			o, cashCollected); err != nil {
			return err
		}
	}

	return nil
}

// ensureConfirmation finds or creates the order's delivery confirmation
// and marks it completed.
func (a artifactOrchestrator) ensureConfirmation(
	ctx context.Context,
	repo ports.LedgerRepository,
	o *order.Order,
	courierID *kernel.UUID,
) error {
	if o.HasMarker(markerDeliveryConfirmation) {
		return nil
	}

	confirmation, err := repo.GetConfirmationByOrderID(ctx, o.ID())
	switch {
	case err == nil:
		if !confirmation.IsCompleted() {
			confirmation.MarkCompleted()
			if err = repo.UpdateConfirmation(ctx, confirmation); err != nil {
				return err
			}
		}
	case errors.Is(err, errs.ErrObjectNotFound):
		confirmation, err = ledger.NewDeliveryConfirmation(
			kernel.NewUUID(), o.ID(), courierID, o.IsPickup(), o.Items())
		if err != nil {
			return err
		}
		confirmation.MarkCompleted()
		if err = repo.AddConfirmation(ctx, confirmation); err != nil {
			return err
		}
	default:
		return err
	}

	return o.AddMarker(markerDeliveryConfirmation)
}

// ensurePayment records the customer payment when the dispatch collects
// it: always for partner orders with an outstanding amount (the partner
// squares up with the branch at handover), otherwise only under the
// unpaid settle-now strategy. Returns whether cash changed hands.
func (a artifactOrchestrator) ensurePayment(
	ctx context.Context,
	repo ports.LedgerRepository,
	o *order.Order,
	strategy services.Strategy,
) (bool, error) {
	if o.HasMarker(markerCustomerPayment) {
		return true, nil
	}
	if o.IsPaid() {
		return false, nil
	}

	var key string
	switch {
	case o.HasPartner():
		key = ledger.PartnerCashKey(o.ID())
	case strategy == services.UnpaidSettleNow:
		key = ledger.PaymentKey(o.ID())
	default:
		// Unpaid settle-later: the courier holds the cash until a
		// settlement run clears the transaction.
		return false, nil
	}

	if _, err := a.ensureEntry(ctx, repo, key, func() (*ledger.Entry, error) {
		return a.buildEntry(ctx, o, key, ledger.KindPayment,
			ledger.PurposeCash, ledger.PurposeReceivable, o.Outstanding(),
			fmt.Sprintf("customer payment for order %s", o.ID()))
	}); err != nil {
		return false, err
	}

	o.MarkPaid()
	return true, o.AddMarker(markerCustomerPayment)
}

// ensureCourierTransaction records the per-order ledger row between the
// branch and the courier. Partner orders never hand cash to the courier,
// so their collectible is zero.
func (a artifactOrchestrator) ensureCourierTransaction(
	ctx context.Context,
	repo ports.CourierTransactionRepository,
	o *order.Order,
	courierID kernel.UUID,
	collectible kernel.Money,
	strategy services.Strategy,
) error {
	if o.HasMarker(markerCourierTransaction) {
		return nil
	}

	_, err := repo.GetByOrderID(ctx, o.ID())
	switch {
	case err == nil:
		// Row already recorded by an earlier dispatch attempt.
	case errors.Is(err, errs.ErrObjectNotFound):
		orderAmount := collectible
		if o.HasPartner() {
			orderAmount = kernel.ZeroMoney()
		}

		status := courier.Unsettled
		if strategy == services.UnpaidSettleNow || strategy == services.PaidSettleNow {
			status = courier.Settled
		}

		tx, buildErr := courier.NewTransaction(
			kernel.NewUUID(), o.ID(), courierID, o.CompanyID(),
			orderAmount, o.ShippingExpense(), status)
		if buildErr != nil {
			return buildErr
		}
		if err = repo.Add(ctx, tx); err != nil {
			return err
		}
	default:
		return err
	}

	return o.AddMarker(markerCourierTransaction)
}

// ensureFreightEntry books the courier's shipping fee. Settle-now
// strategies pay it out in cash at dispatch; paid settle-later accrues
// it against the courier payable, which the settlement run later clears.
// Unpaid settle-later writes nothing: there the fee rides on the
// unsettled transaction until the run nets it against the collected
// cash. Zero fees write nothing.
func (a artifactOrchestrator) ensureFreightEntry(
	ctx context.Context,
	repo ports.LedgerRepository,
	o *order.Order,
	strategy services.Strategy,
) error {
	if o.HasMarker(markerFreightSettlement) {
		return nil
	}
	if strategy == services.UnpaidSettleLater {
		return nil
	}
	if o.ShippingExpense().IsZero() {
		return nil
	}

	creditPurpose := ledger.PurposeCash
	remarks := fmt.Sprintf("courier shipping fee for order %s", o.ID())
	if strategy == services.PaidSettleLater {
		creditPurpose = ledger.PurposeCourierPayable
		remarks = fmt.Sprintf("courier shipping fee accrual for order %s", o.ID())
	}

	key := ledger.FreightKey(o.ID())
	_, err := a.ensureEntry(ctx, repo, key, func() (*ledger.Entry, error) {
		return a.buildEntry(ctx, o, key, ledger.KindJournal,
			ledger.PurposeFreightExpense, creditPurpose, o.ShippingExpense(), remarks)
	})
	if err != nil {
		return err
	}

	return o.AddMarker(markerFreightSettlement)
}

// ensurePartnerTransaction accrues the partner fee exactly once per
// order, keyed by the deterministic transaction token.
func (a artifactOrchestrator) ensurePartnerTransaction(
	ctx context.Context,
	repo ports.PartnerTransactionRepository,
	o *order.Order,
	cashCollected bool,
) error {
	if o.HasMarker(markerPartnerTransaction) {
		return nil
	}

	token := partner.TokenForOrder(o.ID())
	_, err := repo.GetByToken(ctx, token)
	switch {
	case err == nil:
		// Fee already accrued by an earlier dispatch attempt.
	case errors.Is(err, errs.ErrObjectNotFound):
		cfg, cfgErr := a.partnerConfig.GetFeeConfig(ctx, *o.PartnerID())
		if cfgErr != nil {
			return cfgErr
		}

		fee, mode, feeErr := a.feeCalculator.ComputeFee(o, cfg, cashCollected)
		if feeErr != nil {
			return feeErr
		}

		tx, buildErr := partner.NewTransaction(
			kernel.NewUUID(), o.ID(), *o.PartnerID(), fee, mode)
		if buildErr != nil {
			return buildErr
		}
		if err = repo.Add(ctx, tx); err != nil {
			return err
		}
	default:
		return err
	}

	return o.AddMarker(markerPartnerTransaction)
}

// ensureEntry finds the ledger entry by its idempotency key, building
// and persisting it only when absent. Returns whether a new entry was
// written.
func (a artifactOrchestrator) ensureEntry(
	ctx context.Context,
	repo ports.LedgerRepository,
	key string,
	build func() (*ledger.Entry, error),
) (bool, error) {
	_, err := repo.GetEntryByKey(ctx, key)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, errs.ErrObjectNotFound):
		entry, buildErr := build()
		if buildErr != nil {
			return false, buildErr
		}
		if err = repo.AddEntry(ctx, entry); err != nil {
			return false, err
		}
		return true, nil
	default:
		return false, err
	}
}

func (a artifactOrchestrator) buildEntry(
	ctx context.Context,
	o *order.Order,
	key string,
	kind ledger.EntryKind,
	debitPurpose ledger.AccountPurpose,
	creditPurpose ledger.AccountPurpose,
	amount kernel.Money,
	remarks string,
) (*ledger.Entry, error) {
	debit, err := a.accounts.Resolve(ctx, o.CompanyID(), debitPurpose)
	if err != nil {
		return nil, err
	}
	credit, err := a.accounts.Resolve(ctx, o.CompanyID(), creditPurpose)
	if err != nil {
		return nil, err
	}

	orderID := o.ID()
	return ledger.NewEntry(kernel.NewUUID(), key, kind, o.CompanyID(), &orderID,
		debit, credit, amount, remarks)
}
