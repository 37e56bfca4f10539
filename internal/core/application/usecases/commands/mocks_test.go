package commands_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/partner"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

func money(t *testing.T, amount float64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromFloat(amount)
	require.NoError(t, err)
	return m
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStateFrom(ctx context.Context, o *order.Order, expected order.State) error {
	args := m.Called(ctx, o, expected)
	return args.Error(0)
}

type MockCourierTxRepository struct{ mock.Mock }

func (m *MockCourierTxRepository) Add(ctx context.Context, tx *courier.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockCourierTxRepository) UpdateStatusFrom(ctx context.Context, tx *courier.Transaction, expected courier.Status) error {
	args := m.Called(ctx, tx, expected)
	return args.Error(0)
}

func (m *MockCourierTxRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Transaction), args.Error(1)
}

func (m *MockCourierTxRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*courier.Transaction, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Transaction), args.Error(1)
}

func (m *MockCourierTxRepository) GetAllUnsettledByCourier(ctx context.Context, courierID kernel.UUID) ([]*courier.Transaction, error) {
	args := m.Called(ctx, courierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*courier.Transaction), args.Error(1)
}

type MockPartnerTxRepository struct{ mock.Mock }

func (m *MockPartnerTxRepository) Add(ctx context.Context, tx *partner.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPartnerTxRepository) GetByToken(ctx context.Context, token string) (*partner.Transaction, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Transaction), args.Error(1)
}

type MockLedgerRepository struct{ mock.Mock }

func (m *MockLedgerRepository) AddEntry(ctx context.Context, entry *ledger.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) GetEntryByKey(ctx context.Context, key string) (*ledger.Entry, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Entry), args.Error(1)
}

func (m *MockLedgerRepository) AddConfirmation(ctx context.Context, c *ledger.DeliveryConfirmation) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockLedgerRepository) UpdateConfirmation(ctx context.Context, c *ledger.DeliveryConfirmation) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockLedgerRepository) GetConfirmationByOrderID(ctx context.Context, orderID kernel.UUID) (*ledger.DeliveryConfirmation, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.DeliveryConfirmation), args.Error(1)
}

type MockAccountResolver struct{ mock.Mock }

func (m *MockAccountResolver) Resolve(ctx context.Context, companyID kernel.UUID, purpose ledger.AccountPurpose) (kernel.UUID, error) {
	args := m.Called(ctx, companyID, purpose)
	return args.Get(0).(kernel.UUID), args.Error(1)
}

// stubAccounts registers one distinct account per purpose, mirroring a
// real chart of accounts where debit and credit never share an account.
// Returns the account IDs keyed by purpose so tests can assert entry
// directions.
func stubAccounts(m *MockAccountResolver) map[ledger.AccountPurpose]kernel.UUID {
	ids := make(map[ledger.AccountPurpose]kernel.UUID)
	for _, purpose := range []ledger.AccountPurpose{
		ledger.PurposeCash,
		ledger.PurposeReceivable,
		ledger.PurposeFreightExpense,
		ledger.PurposeCourierPayable,
		ledger.PurposePartnerReceivable,
	} {
		id := kernel.NewUUID()
		ids[purpose] = id
		m.On("Resolve", mock.Anything, mock.Anything, purpose).Return(id, nil)
	}
	return ids
}

type MockPartnerConfigProvider struct{ mock.Mock }

func (m *MockPartnerConfigProvider) GetFeeConfig(ctx context.Context, partnerID kernel.UUID) (services.PartnerFeeConfig, error) {
	args := m.Called(ctx, partnerID)
	return args.Get(0).(services.PartnerFeeConfig), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) NotifyOrderTransitioned(ctx context.Context, orderID kernel.UUID, from, to order.State) {
	m.Called(ctx, orderID, from, to)
}

func (m *MockNotifier) NotifyOrderDispatched(ctx context.Context, orderID kernel.UUID, strategy services.Strategy) {
	m.Called(ctx, orderID, strategy)
}

func (m *MockNotifier) NotifyCourierSettled(ctx context.Context, courierID kernel.UUID, net decimal.Decimal, settledCount int) {
	m.Called(ctx, courierID, net, settledCount)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockSettlementUoW struct{ mock.Mock }

func (m *MockSettlementUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSettlementUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSettlementUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSettlementUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockSettlementUoW) CourierTransactionRepository() ports.CourierTransactionRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierTransactionRepository)
}

func (m *MockSettlementUoW) PartnerTransactionRepository() ports.PartnerTransactionRepository {
	args := m.Called()
	return args.Get(0).(ports.PartnerTransactionRepository)
}

func (m *MockSettlementUoW) LedgerRepository() ports.LedgerRepository {
	args := m.Called()
	return args.Get(0).(ports.LedgerRepository)
}

type MockSettlementUoWFactory struct{ mock.Mock }

func (m *MockSettlementUoWFactory) Create() commands.SettlementUoW {
	args := m.Called()
	return args.Get(0).(commands.SettlementUoW)
}
