package commands_test

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/core/ports"
)

func unsettledTransaction(t *testing.T, courierID, companyID kernel.UUID, orderAmount, shippingAmount float64) *courier.Transaction {
	t.Helper()
	tx, err := courier.NewTransaction(
		kernel.NewUUID(), kernel.NewUUID(), courierID, companyID,
		money(t, orderAmount), money(t, shippingAmount), courier.Unsettled,
	)
	require.NoError(t, err)
	return tx
}

type settleFixture struct {
	courierRepo *MockCourierTxRepository
	ledgerRepo  *MockLedgerRepository
	uow         *MockSettlementUoW
	factory     *MockSettlementUoWFactory
	accounts    *MockAccountResolver
	accountIDs  map[ledger.AccountPurpose]kernel.UUID
	notifier    *MockNotifier
}

func newSettleFixture() *settleFixture {
	f := &settleFixture{
		courierRepo: new(MockCourierTxRepository),
		ledgerRepo:  new(MockLedgerRepository),
		uow:         new(MockSettlementUoW),
		factory:     new(MockSettlementUoWFactory),
		accounts:    new(MockAccountResolver),
		notifier:    new(MockNotifier),
	}

	f.factory.On("Create").Return(f.uow)
	f.uow.On("Begin", mock.Anything).Return(nil)
	f.uow.On("Rollback", mock.Anything).Return(nil)
	f.uow.On("CourierTransactionRepository").Return(f.courierRepo)
	f.uow.On("LedgerRepository").Return(f.ledgerRepo)
	f.accountIDs = stubAccounts(f.accounts)
	return f
}

func TestSettleCourierCommandHandler_SettlesAllRows(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	companyID := kernel.NewUUID()
	cmd, err := commands.NewSettleCourierCommand(courierID)
	require.NoError(t, err)

	// One collect-on-delivery row (net +85) and one prepaid delivery
	// row (net -15): the courier hands over 70.
	rows := []*courier.Transaction{
		unsettledTransaction(t, courierID, companyID, 100, 15),
		unsettledTransaction(t, courierID, companyID, 0, 15),
	}

	f := newSettleFixture()
	f.courierRepo.On("GetAllUnsettledByCourier", mock.Anything, courierID).Return(rows, nil).Once()
	f.courierRepo.On("UpdateStatusFrom", mock.Anything, mock.MatchedBy(func(tx *courier.Transaction) bool {
		return tx.IsSettled()
	}), courier.Unsettled).Return(nil).Times(2)

	// Positive net: the courier pays in, so cash is debited.
	f.ledgerRepo.On("AddEntry", mock.Anything, mock.MatchedBy(func(e *ledger.Entry) bool {
		return e.Amount().IsEqual(money(t, 70)) &&
			e.Kind() == ledger.KindJournal &&
			e.CompanyID().IsEqual(companyID) &&
			e.DebitAccountID().IsEqual(f.accountIDs[ledger.PurposeCash]) &&
			e.CreditAccountID().IsEqual(f.accountIDs[ledger.PurposeCourierPayable])
	})).Return(nil).Once()

	f.uow.On("Commit", mock.Anything).Return(nil).Once()
	f.notifier.On("NotifyCourierSettled", mock.Anything, courierID, mock.Anything, 2).Once()

	h := commands.NewSettleCourierCommandHandler(f.factory, f.accounts, f.notifier)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, 2, result.SettledCount)
	require.Equal(t, "70", result.Net.String())

	f.courierRepo.AssertExpectations(t)
	f.ledgerRepo.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestSettleCourierCommandHandler_NothingToSettle(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	cmd, err := commands.NewSettleCourierCommand(courierID)
	require.NoError(t, err)

	f := newSettleFixture()
	f.courierRepo.On("GetAllUnsettledByCourier", mock.Anything, courierID).
		Return([]*courier.Transaction{}, nil).Once()
	f.uow.On("Commit", mock.Anything).Return(nil).Once()
	f.notifier.On("NotifyCourierSettled", mock.Anything, courierID, mock.Anything, 0).Once()

	h := commands.NewSettleCourierCommandHandler(f.factory, f.accounts, f.notifier)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, 0, result.SettledCount)
	require.True(t, result.Net.IsZero())

	// A second run after everything settled clears nothing and writes
	// no entry.
	f.ledgerRepo.AssertNotCalled(t, "AddEntry", mock.Anything, mock.Anything)
	f.courierRepo.AssertNotCalled(t, "UpdateStatusFrom", mock.Anything, mock.Anything, mock.Anything)
}

func TestSettleCourierCommandHandler_SkipsRowsAnotherRunFlipped(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	companyID := kernel.NewUUID()
	cmd, err := commands.NewSettleCourierCommand(courierID)
	require.NoError(t, err)

	won := unsettledTransaction(t, courierID, companyID, 100, 15)
	lost := unsettledTransaction(t, courierID, companyID, 50, 10)

	f := newSettleFixture()
	f.courierRepo.On("GetAllUnsettledByCourier", mock.Anything, courierID).
		Return([]*courier.Transaction{won, lost}, nil).Once()
	f.courierRepo.On("UpdateStatusFrom", mock.Anything, won, courier.Unsettled).Return(nil).Once()
	f.courierRepo.On("UpdateStatusFrom", mock.Anything, lost, courier.Unsettled).
		Return(ports.ErrStateConflict).Once()

	// The lost row stays out of the clearing entry: only the 85 from
	// the row this run actually flipped moves.
	f.ledgerRepo.On("AddEntry", mock.Anything, mock.MatchedBy(func(e *ledger.Entry) bool {
		return e.Amount().IsEqual(money(t, 85))
	})).Return(nil).Once()

	f.uow.On("Commit", mock.Anything).Return(nil).Once()
	f.notifier.On("NotifyCourierSettled", mock.Anything, courierID, mock.Anything, 1).Once()

	h := commands.NewSettleCourierCommandHandler(f.factory, f.accounts, f.notifier)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, 1, result.SettledCount)
	require.Equal(t, "85", result.Net.String())

	f.courierRepo.AssertExpectations(t)
	f.ledgerRepo.AssertExpectations(t)
}

func TestSettleCourierCommandHandler_NegativeNet(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	companyID := kernel.NewUUID()
	cmd, err := commands.NewSettleCourierCommand(courierID)
	require.NoError(t, err)

	rows := []*courier.Transaction{
		unsettledTransaction(t, courierID, companyID, 0, 15),
	}

	f := newSettleFixture()
	f.courierRepo.On("GetAllUnsettledByCourier", mock.Anything, courierID).Return(rows, nil).Once()
	f.courierRepo.On("UpdateStatusFrom", mock.Anything, mock.Anything, courier.Unsettled).Return(nil).Once()

	// Negative net: the branch owes the courier, so the payable is
	// debited and cash credited.
	f.ledgerRepo.On("AddEntry", mock.Anything, mock.MatchedBy(func(e *ledger.Entry) bool {
		return e.Amount().IsEqual(money(t, 15)) &&
			e.DebitAccountID().IsEqual(f.accountIDs[ledger.PurposeCourierPayable]) &&
			e.CreditAccountID().IsEqual(f.accountIDs[ledger.PurposeCash])
	})).Return(nil).Once()
	f.uow.On("Commit", mock.Anything).Return(nil).Once()
	f.notifier.On("NotifyCourierSettled", mock.Anything, courierID, mock.Anything, 1).Once()

	h := commands.NewSettleCourierCommandHandler(f.factory, f.accounts, f.notifier)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, "-15", result.Net.String())

	f.ledgerRepo.AssertExpectations(t)
}

func TestSettleCourierCommandHandler_ZeroNetWritesNoEntry(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	companyID := kernel.NewUUID()
	cmd, err := commands.NewSettleCourierCommand(courierID)
	require.NoError(t, err)

	rows := []*courier.Transaction{
		unsettledTransaction(t, courierID, companyID, 15, 15),
	}

	f := newSettleFixture()
	f.courierRepo.On("GetAllUnsettledByCourier", mock.Anything, courierID).Return(rows, nil).Once()
	f.courierRepo.On("UpdateStatusFrom", mock.Anything, mock.Anything, courier.Unsettled).Return(nil).Once()
	f.uow.On("Commit", mock.Anything).Return(nil).Once()
	f.notifier.On("NotifyCourierSettled", mock.Anything, courierID, mock.Anything, 1).Once()

	h := commands.NewSettleCourierCommandHandler(f.factory, f.accounts, f.notifier)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, 1, result.SettledCount)
	require.True(t, result.Net.IsZero())

	f.ledgerRepo.AssertNotCalled(t, "AddEntry", mock.Anything, mock.Anything)
}
