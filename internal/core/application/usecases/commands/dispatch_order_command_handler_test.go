package commands_test

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/partner"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

type dispatchFixture struct {
	orderRepo   *MockOrderRepository
	courierRepo *MockCourierTxRepository
	partnerRepo *MockPartnerTxRepository
	ledgerRepo  *MockLedgerRepository
	uow         *MockSettlementUoW
	factory     *MockSettlementUoWFactory
	accounts    *MockAccountResolver
	accountIDs  map[ledger.AccountPurpose]kernel.UUID
	config      *MockPartnerConfigProvider
	notifier    *MockNotifier
}

func newDispatchFixture() *dispatchFixture {
	f := &dispatchFixture{
		orderRepo:   new(MockOrderRepository),
		courierRepo: new(MockCourierTxRepository),
		partnerRepo: new(MockPartnerTxRepository),
		ledgerRepo:  new(MockLedgerRepository),
		uow:         new(MockSettlementUoW),
		factory:     new(MockSettlementUoWFactory),
		accounts:    new(MockAccountResolver),
		config:      new(MockPartnerConfigProvider),
		notifier:    new(MockNotifier),
	}

	f.factory.On("Create").Return(f.uow)
	f.uow.On("Begin", mock.Anything).Return(nil)
	f.uow.On("Rollback", mock.Anything).Return(nil)
	f.uow.On("OrderRepository").Return(f.orderRepo)
	f.uow.On("CourierTransactionRepository").Return(f.courierRepo)
	f.uow.On("PartnerTransactionRepository").Return(f.partnerRepo)
	f.uow.On("LedgerRepository").Return(f.ledgerRepo)
	f.accountIDs = stubAccounts(f.accounts)
	return f
}

func (f *dispatchFixture) handler() commands.DispatchOrderCommandHandler {
	return commands.NewDispatchOrderCommandHandler(f.factory, f.accounts, f.config, f.notifier)
}

func (f *dispatchFixture) expectNoExistingArtifacts(orderID kernel.UUID) {
	notFound := errs.NewObjectNotFoundError("order", orderID.String())
	f.ledgerRepo.On("GetConfirmationByOrderID", mock.Anything, orderID).Return(nil, notFound)
	f.ledgerRepo.On("GetEntryByKey", mock.Anything, mock.Anything).Return(nil, notFound)
	f.courierRepo.On("GetByOrderID", mock.Anything, orderID).Return(nil, notFound)
	f.partnerRepo.On("GetByToken", mock.Anything, mock.Anything).Return(nil, notFound)
}

func dispatchCommand(t *testing.T, orderID kernel.UUID, courierID *kernel.UUID, timing services.Timing) commands.DispatchOrderCommand {
	t.Helper()
	cmd, err := commands.NewDispatchOrderCommand(orderID, courierID, timing)
	require.NoError(t, err)
	return cmd
}

func preparingOrder(t *testing.T, orderID kernel.UUID, outstanding float64, partnerID *kernel.UUID, channel order.PaymentChannel) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(
		orderID, kernel.NewUUID(), kernel.NewUUID(), partnerID,
		channel,
		money(t, 100), money(t, outstanding), money(t, 15),
		false, order.Preparing, nil, nil,
	)
	require.NoError(t, err)
	return o
}

func TestDispatchOrderCommandHandler_UnpaidSettleNow(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	aggregate := preparingOrder(t, orderID, 100, nil, order.ChannelCash)

	f := newDispatchFixture()
	f.orderRepo.On("Get", mock.Anything, orderID).Return(aggregate, nil).Once()
	f.expectNoExistingArtifacts(orderID)

	f.ledgerRepo.On("AddConfirmation", mock.Anything, mock.MatchedBy(func(d *ledger.DeliveryConfirmation) bool {
		return d.OrderID().IsEqual(orderID) && d.IsCompleted() && !d.IsPickup()
	})).Return(nil).Once()

	f.ledgerRepo.On("AddEntry", mock.Anything, mock.MatchedBy(func(e *ledger.Entry) bool {
		return e.IdempotencyKey() == ledger.PaymentKey(orderID) &&
			e.Kind() == ledger.KindPayment &&
			e.Amount().IsEqual(money(t, 100))
	})).Return(nil).Once()

	f.courierRepo.On("Add", mock.Anything, mock.MatchedBy(func(tx *courier.Transaction) bool {
		return tx.CourierID().IsEqual(courierID) &&
			tx.OrderAmount().IsEqual(money(t, 100)) &&
			tx.ShippingAmount().IsEqual(money(t, 15)) &&
			tx.IsSettled() &&
			tx.NetAmount().String() == "85"
	})).Return(nil).Once()

	f.ledgerRepo.On("AddEntry", mock.Anything, mock.MatchedBy(func(e *ledger.Entry) bool {
		return e.IdempotencyKey() == ledger.FreightKey(orderID) &&
			e.Amount().IsEqual(money(t, 15)) &&
			e.DebitAccountID().IsEqual(f.accountIDs[ledger.PurposeFreightExpense]) &&
			e.CreditAccountID().IsEqual(f.accountIDs[ledger.PurposeCash])
	})).Return(nil).Once()

	f.orderRepo.On("UpdateStateFrom", mock.Anything, aggregate, order.Preparing).Return(nil).Once()
	f.uow.On("Commit", mock.Anything).Return(nil).Once()
	f.notifier.On("NotifyOrderDispatched", mock.Anything, orderID, services.UnpaidSettleNow).Once()
	f.notifier.On("NotifyOrderTransitioned", mock.Anything, orderID, order.Preparing, order.Dispatched).Once()

	h := f.handler()
	result, err := h.Handle(ctx, dispatchCommand(t, orderID, &courierID, services.SettleNow))
	require.NoError(t, err)
	require.Equal(t, services.UnpaidSettleNow, result.Strategy)
	require.Equal(t, "85", result.NetToCollect.String())

	require.Equal(t, order.Dispatched, aggregate.State())
	require.True(t, aggregate.IsPaid())
	f.ledgerRepo.AssertExpectations(t)
	f.courierRepo.AssertExpectations(t)
	f.orderRepo.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
	f.partnerRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestDispatchOrderCommandHandler_PaidSettleLater(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	aggregate := preparingOrder(t, orderID, 0, nil, order.ChannelOnline)

	f := newDispatchFixture()
	f.orderRepo.On("Get", mock.Anything, orderID).Return(aggregate, nil).Once()
	f.expectNoExistingArtifacts(orderID)

	f.ledgerRepo.On("AddConfirmation", mock.Anything, mock.Anything).Return(nil).Once()

	f.courierRepo.On("Add", mock.Anything, mock.MatchedBy(func(tx *courier.Transaction) bool {
		return tx.OrderAmount().IsZero() &&
			tx.ShippingAmount().IsEqual(money(t, 15)) &&
			!tx.IsSettled() &&
			tx.NetAmount().String() == "-15"
	})).Return(nil).Once()

	// The shipping fee is accrued against the courier payable at
	// dispatch; the settlement run later clears that payable in cash.
	f.ledgerRepo.On("AddEntry", mock.Anything, mock.MatchedBy(func(e *ledger.Entry) bool {
		return e.IdempotencyKey() == ledger.FreightKey(orderID) &&
			e.Kind() == ledger.KindJournal &&
			e.Amount().IsEqual(money(t, 15)) &&
			e.DebitAccountID().IsEqual(f.accountIDs[ledger.PurposeFreightExpense]) &&
			e.CreditAccountID().IsEqual(f.accountIDs[ledger.PurposeCourierPayable])
	})).Return(nil).Once()

	f.orderRepo.On("UpdateStateFrom", mock.Anything, aggregate, order.Preparing).Return(nil).Once()
	f.uow.On("Commit", mock.Anything).Return(nil).Once()
	f.notifier.On("NotifyOrderDispatched", mock.Anything, orderID, services.PaidSettleLater).Once()
	f.notifier.On("NotifyOrderTransitioned", mock.Anything, orderID, order.Preparing, order.Dispatched).Once()

	h := f.handler()
	result, err := h.Handle(ctx, dispatchCommand(t, orderID, &courierID, services.SettleLater))
	require.NoError(t, err)
	require.Equal(t, services.PaidSettleLater, result.Strategy)
	require.Equal(t, "85", result.NetToCollect.String())

	f.ledgerRepo.AssertExpectations(t)
	f.courierRepo.AssertExpectations(t)
}

func TestDispatchOrderCommandHandler_UnpaidSettleLater(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	aggregate := preparingOrder(t, orderID, 100, nil, order.ChannelCash)

	f := newDispatchFixture()
	f.orderRepo.On("Get", mock.Anything, orderID).Return(aggregate, nil).Once()
	f.expectNoExistingArtifacts(orderID)

	f.ledgerRepo.On("AddConfirmation", mock.Anything, mock.Anything).Return(nil).Once()

	// The courier holds the cash and owes the net: both amounts ride on
	// the unsettled transaction, and no ledger entry is written until a
	// settlement run clears it.
	f.courierRepo.On("Add", mock.Anything, mock.MatchedBy(func(tx *courier.Transaction) bool {
		return tx.OrderAmount().IsEqual(money(t, 100)) &&
			tx.ShippingAmount().IsEqual(money(t, 15)) &&
			!tx.IsSettled() &&
			tx.NetAmount().String() == "85"
	})).Return(nil).Once()

	f.orderRepo.On("UpdateStateFrom", mock.Anything, aggregate, order.Preparing).Return(nil).Once()
	f.uow.On("Commit", mock.Anything).Return(nil).Once()
	f.notifier.On("NotifyOrderDispatched", mock.Anything, orderID, services.UnpaidSettleLater).Once()
	f.notifier.On("NotifyOrderTransitioned", mock.Anything, orderID, order.Preparing, order.Dispatched).Once()

	h := f.handler()
	result, err := h.Handle(ctx, dispatchCommand(t, orderID, &courierID, services.SettleLater))
	require.NoError(t, err)
	require.Equal(t, services.UnpaidSettleLater, result.Strategy)

	require.False(t, aggregate.IsPaid())
	f.ledgerRepo.AssertNotCalled(t, "AddEntry", mock.Anything, mock.Anything)
	f.courierRepo.AssertExpectations(t)
}

func TestDispatchOrderCommandHandler_PickupOrder(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	aggregate, err := order.RestoreOrder(
		orderID, kernel.NewUUID(), kernel.NewUUID(), nil,
		order.ChannelCash,
		money(t, 100), money(t, 100), money(t, 0),
		true, order.Preparing, nil, nil,
	)
	require.NoError(t, err)

	f := newDispatchFixture()
	f.orderRepo.On("Get", mock.Anything, orderID).Return(aggregate, nil).Once()
	f.expectNoExistingArtifacts(orderID)

	f.ledgerRepo.On("AddConfirmation", mock.Anything, mock.MatchedBy(func(d *ledger.DeliveryConfirmation) bool {
		return d.IsPickup() && d.CourierID() == nil
	})).Return(nil).Once()

	f.ledgerRepo.On("AddEntry", mock.Anything, mock.MatchedBy(func(e *ledger.Entry) bool {
		return e.IdempotencyKey() == ledger.PaymentKey(orderID) &&
			e.Amount().IsEqual(money(t, 100))
	})).Return(nil).Once()

	f.orderRepo.On("UpdateStateFrom", mock.Anything, aggregate, order.Preparing).Return(nil).Once()
	f.uow.On("Commit", mock.Anything).Return(nil).Once()
	f.notifier.On("NotifyOrderDispatched", mock.Anything, orderID, services.UnpaidSettleNow).Once()
	f.notifier.On("NotifyOrderTransitioned", mock.Anything, orderID, order.Preparing, order.Dispatched).Once()

	h := f.handler()
	result, err := h.Handle(ctx, dispatchCommand(t, orderID, nil, services.SettleNow))
	require.NoError(t, err)
	require.Equal(t, "100", result.NetToCollect.String())

	f.courierRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	f.courierRepo.AssertNotCalled(t, "GetByOrderID", mock.Anything, mock.Anything)
}

func TestDispatchOrderCommandHandler_PickupWithCourier(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	aggregate, err := order.RestoreOrder(
		orderID, kernel.NewUUID(), kernel.NewUUID(), nil,
		order.ChannelCash,
		money(t, 100), money(t, 100), money(t, 0),
		true, order.Preparing, nil, nil,
	)
	require.NoError(t, err)

	f := newDispatchFixture()
	f.orderRepo.On("Get", mock.Anything, orderID).Return(aggregate, nil).Once()
	f.expectNoExistingArtifacts(orderID)

	f.ledgerRepo.On("AddConfirmation", mock.Anything, mock.MatchedBy(func(d *ledger.DeliveryConfirmation) bool {
		return d.IsPickup() && d.CourierID() != nil && d.CourierID().IsEqual(courierID)
	})).Return(nil).Once()

	f.ledgerRepo.On("AddEntry", mock.Anything, mock.MatchedBy(func(e *ledger.Entry) bool {
		return e.IdempotencyKey() == ledger.PaymentKey(orderID)
	})).Return(nil).Once()

	// A courier working a pickup still gets their transaction: full
	// order amount, zero shipping, settled on the spot.
	f.courierRepo.On("Add", mock.Anything, mock.MatchedBy(func(tx *courier.Transaction) bool {
		return tx.CourierID().IsEqual(courierID) &&
			tx.OrderAmount().IsEqual(money(t, 100)) &&
			tx.ShippingAmount().IsZero() &&
			tx.IsSettled() &&
			tx.NetAmount().String() == "100"
	})).Return(nil).Once()

	f.orderRepo.On("UpdateStateFrom", mock.Anything, aggregate, order.Preparing).Return(nil).Once()
	f.uow.On("Commit", mock.Anything).Return(nil).Once()
	f.notifier.On("NotifyOrderDispatched", mock.Anything, orderID, services.UnpaidSettleNow).Once()
	f.notifier.On("NotifyOrderTransitioned", mock.Anything, orderID, order.Preparing, order.Dispatched).Once()

	h := f.handler()
	result, err := h.Handle(ctx, dispatchCommand(t, orderID, &courierID, services.SettleNow))
	require.NoError(t, err)
	require.Equal(t, "100", result.NetToCollect.String())

	f.courierRepo.AssertExpectations(t)
	f.ledgerRepo.AssertExpectations(t)
}

func TestDispatchOrderCommandHandler_DeliveryWithoutCourier(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	aggregate := preparingOrder(t, orderID, 100, nil, order.ChannelCash)

	f := newDispatchFixture()
	f.orderRepo.On("Get", mock.Anything, orderID).Return(aggregate, nil).Once()

	h := f.handler()
	_, err := h.Handle(ctx, dispatchCommand(t, orderID, nil, services.SettleLater))
	require.ErrorIs(t, err, commands.ErrCourierIsRequired)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestDispatchOrderCommandHandler_AlreadyDispatched(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	aggregate, err := order.RestoreOrder(
		orderID, kernel.NewUUID(), kernel.NewUUID(), nil,
		order.ChannelCash,
		money(t, 100), money(t, 0), money(t, 15),
		false, order.Dispatched, nil, nil,
	)
	require.NoError(t, err)

	f := newDispatchFixture()
	f.orderRepo.On("Get", mock.Anything, orderID).Return(aggregate, nil).Once()

	h := f.handler()
	_, err = h.Handle(ctx, dispatchCommand(t, orderID, &courierID, services.SettleNow))
	require.Error(t, err)

	f.ledgerRepo.AssertNotCalled(t, "AddEntry", mock.Anything, mock.Anything)
	f.ledgerRepo.AssertNotCalled(t, "AddConfirmation", mock.Anything, mock.Anything)
	f.courierRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestDispatchOrderCommandHandler_MarkersShortCircuitArtifacts(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	aggregate, err := order.RestoreOrder(
		orderID, kernel.NewUUID(), kernel.NewUUID(), nil,
		order.ChannelCash,
		money(t, 100), money(t, 0), money(t, 15),
		false, order.Preparing,
		[]string{
			"delivery_confirmation", "customer_payment",
			"courier_transaction", "freight_settlement",
		},
		nil,
	)
	require.NoError(t, err)

	f := newDispatchFixture()
	f.orderRepo.On("Get", mock.Anything, orderID).Return(aggregate, nil).Once()
	f.orderRepo.On("UpdateStateFrom", mock.Anything, aggregate, order.Preparing).Return(nil).Once()
	f.uow.On("Commit", mock.Anything).Return(nil).Once()
	f.notifier.On("NotifyOrderDispatched", mock.Anything, orderID, services.PaidSettleNow).Once()
	f.notifier.On("NotifyOrderTransitioned", mock.Anything, orderID, order.Preparing, order.Dispatched).Once()

	h := f.handler()
	_, err = h.Handle(ctx, dispatchCommand(t, orderID, &courierID, services.SettleNow))
	require.NoError(t, err)

	// Every artifact step short-circuits on its marker: storage is never
	// even consulted on a re-dispatch.
	f.ledgerRepo.AssertNotCalled(t, "GetConfirmationByOrderID", mock.Anything, mock.Anything)
	f.ledgerRepo.AssertNotCalled(t, "GetEntryByKey", mock.Anything, mock.Anything)
	f.ledgerRepo.AssertNotCalled(t, "AddEntry", mock.Anything, mock.Anything)
	f.ledgerRepo.AssertNotCalled(t, "AddConfirmation", mock.Anything, mock.Anything)
	f.courierRepo.AssertNotCalled(t, "GetByOrderID", mock.Anything, mock.Anything)
	f.courierRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestDispatchOrderCommandHandler_PartnerOrder(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	partnerID := kernel.NewUUID()
	aggregate := preparingOrder(t, orderID, 100, &partnerID, order.ChannelOnline)

	f := newDispatchFixture()
	f.orderRepo.On("Get", mock.Anything, orderID).Return(aggregate, nil).Once()
	f.expectNoExistingArtifacts(orderID)

	f.ledgerRepo.On("AddConfirmation", mock.Anything, mock.Anything).Return(nil).Once()

	// Partner squares up at handover: the cash entry uses the partner
	// key, and the courier has nothing left to collect.
	f.ledgerRepo.On("AddEntry", mock.Anything, mock.MatchedBy(func(e *ledger.Entry) bool {
		return e.IdempotencyKey() == ledger.PartnerCashKey(orderID) &&
			e.Amount().IsEqual(money(t, 100))
	})).Return(nil).Once()

	f.courierRepo.On("Add", mock.Anything, mock.MatchedBy(func(tx *courier.Transaction) bool {
		return tx.OrderAmount().IsZero() && tx.ShippingAmount().IsEqual(money(t, 15))
	})).Return(nil).Once()

	f.ledgerRepo.On("AddEntry", mock.Anything, mock.MatchedBy(func(e *ledger.Entry) bool {
		return e.IdempotencyKey() == ledger.FreightKey(orderID)
	})).Return(nil).Once()

	f.config.On("GetFeeConfig", mock.Anything, partnerID).Return(services.PartnerFeeConfig{
		Commission: money(t, 10),
		OnlineFee:  money(t, 2),
	}, nil).Once()

	f.partnerRepo.On("Add", mock.Anything, mock.MatchedBy(func(tx *partner.Transaction) bool {
		return tx.PartnerID().IsEqual(partnerID) &&
			tx.Fee().String() == "13.68" &&
			tx.PaymentMode() == partner.ModeCash &&
			tx.IdempotencyToken() == partner.TokenForOrder(orderID)
	})).Return(nil).Once()

	f.orderRepo.On("UpdateStateFrom", mock.Anything, aggregate, order.Preparing).Return(nil).Once()
	f.uow.On("Commit", mock.Anything).Return(nil).Once()
	f.notifier.On("NotifyOrderDispatched", mock.Anything, orderID, services.UnpaidSettleNow).Once()
	f.notifier.On("NotifyOrderTransitioned", mock.Anything, orderID, order.Preparing, order.Dispatched).Once()

	h := f.handler()
	result, err := h.Handle(ctx, dispatchCommand(t, orderID, &courierID, services.SettleNow))
	require.NoError(t, err)
	require.Equal(t, services.UnpaidSettleNow, result.Strategy)

	f.partnerRepo.AssertExpectations(t)
	f.config.AssertExpectations(t)
}

func TestDispatchOrderCommandHandler_MissingPartnerConfig(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	partnerID := kernel.NewUUID()
	aggregate := preparingOrder(t, orderID, 0, &partnerID, order.ChannelOnline)

	f := newDispatchFixture()
	f.orderRepo.On("Get", mock.Anything, orderID).Return(aggregate, nil).Once()
	f.expectNoExistingArtifacts(orderID)
	f.ledgerRepo.On("AddConfirmation", mock.Anything, mock.Anything).Return(nil).Once()
	f.courierRepo.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
	f.ledgerRepo.On("AddEntry", mock.Anything, mock.Anything).Return(nil)

	f.config.On("GetFeeConfig", mock.Anything, partnerID).
		Return(services.PartnerFeeConfig{}, errs.NewMissingPartnerConfigError(partnerID.String())).Once()

	h := f.handler()
	_, err := h.Handle(ctx, dispatchCommand(t, orderID, &courierID, services.SettleNow))
	require.ErrorIs(t, err, errs.ErrMissingPartnerConfig)

	f.partnerRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.notifier.AssertNotCalled(t, "NotifyOrderDispatched", mock.Anything, mock.Anything, mock.Anything)
}
