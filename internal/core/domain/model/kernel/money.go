package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is a value object that represents a non-negative monetary amount.
// It wraps shopspring/decimal to keep ledger math exact; float arithmetic
// is never used for amounts in this domain.
//
// Money is immutable: all arithmetic methods return a new value. Stored
// artifact amounts (payments, accruals, transaction rows) are always
// non-negative; signed results (courier net balances) are computed on the
// underlying decimals via Amount().
//
// The zero value of Money is a valid zero amount, which keeps optional
// amounts (e.g. shipping on pickup orders) simple to handle.
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns a Money of amount zero.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney creates a Money from a decimal amount.
// Returns an error if the amount is negative.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%s is negative", amount.String()),
		)
	}
	return Money{amount: amount}, nil
}

// NewMoneyFromFloat creates a Money from a float64 amount.
// Intended for transport-layer inputs; internal math stays decimal.
func NewMoneyFromFloat(amount float64) (Money, error) {
	return NewMoney(decimal.NewFromFloat(amount))
}

// Amount returns the underlying decimal value.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Float64 returns the amount as a float64 for transport-layer responses.
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns the difference of two amounts.
// Returns an error if the result would be negative.
func (m Money) Sub(other Money) (Money, error) {
	return NewMoney(m.amount.Sub(other.amount))
}

// IsEqual compares two amounts for numeric equality.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String returns the decimal string representation of the amount.
func (m Money) String() string {
	return m.amount.String()
}
