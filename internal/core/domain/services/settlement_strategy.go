package services

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// ErrInvalidStrategyKey indicates a (paid state, timing) pair outside the
// strategy table. The table is an exhaustive enum-indexed array, so this can
// only happen when a caller passes an out-of-range enum value: a programming
// error, never a user-facing condition, and never silently defaulted.
var ErrInvalidStrategyKey = errors.New("no settlement strategy for the given paid state and timing")

// PaidState classifies an order's payment position at dispatch time.
type PaidState int

const (
	// Unpaid means the order still carries an outstanding amount.
	Unpaid PaidState = iota

	// Paid means the order is paid in full.
	Paid
)

// String returns the human-readable name of the paid state.
func (p PaidState) String() string {
	if p == Paid {
		return "Paid"
	}
	return "Unpaid"
}

// PaidStateOf derives the paid state from an order's outstanding amount.
func PaidStateOf(o *order.Order) PaidState {
	if o.IsPaid() {
		return Paid
	}
	return Unpaid
}

// Timing is the operator's settlement-timing choice at dispatch.
type Timing int

const (
	// SettleNow means courier cash movement happens immediately at dispatch.
	SettleNow Timing = iota

	// SettleLater defers courier cash movement to a batch reconciliation.
	SettleLater
)

// String returns the human-readable name of the timing choice.
func (t Timing) String() string {
	if t == SettleLater {
		return "Later"
	}
	return "Now"
}

// TimingFromString resolves a caller-supplied timing name.
// Returns an error for anything other than "now" or "later" (case-insensitive).
func TimingFromString(name string) (Timing, error) {
	switch name {
	case "now", "Now", "NOW":
		return SettleNow, nil
	case "later", "Later", "LATER":
		return SettleLater, nil
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"timing is invalid",
			fmt.Errorf("%q is not a valid settlement timing (expected 'now' or 'later')", name),
		)
	}
}

// Strategy identifies one of the four settlement handlers.
type Strategy int

const (
	// StrategyUnknown represents an invalid or undefined strategy.
	StrategyUnknown Strategy = iota

	// UnpaidSettleNow collects the customer payment immediately, then
	// settles the courier's shipping fee in cash.
	UnpaidSettleNow

	// UnpaidSettleLater defers both customer collection and courier
	// settlement to the delivering courier: an Unsettled courier
	// transaction tracks both the order amount and the shipping amount.
	UnpaidSettleLater

	// PaidSettleNow pays the courier's shipping fee in cash immediately;
	// the customer already paid.
	PaidSettleNow

	// PaidSettleLater accrues the shipping fee as a payable to the courier,
	// cleared at a future settlement; the customer already paid.
	PaidSettleLater
)

// String returns the human-readable name of the strategy.
func (s Strategy) String() string {
	switch s {
	case UnpaidSettleNow:
		return "unpaid_settle_now"
	case UnpaidSettleLater:
		return "unpaid_settle_later"
	case PaidSettleNow:
		return "paid_settle_now"
	case PaidSettleLater:
		return "paid_settle_later"
	default:
		return "unknown"
	}
}

// strategyTable maps every (paid state, timing) pair to its handler.
// Enum-indexed array: the compiler guarantees both dimensions are covered
// for the enumerated values, so no pair the domain defines can miss.
var strategyTable = [2][2]Strategy{
	Unpaid: {SettleNow: UnpaidSettleNow, SettleLater: UnpaidSettleLater},
	Paid:   {SettleNow: PaidSettleNow, SettleLater: PaidSettleLater},
}

// StrategySelector classifies orders into settlement strategies.
//
// The selection matrix is fixed:
//
//	              SettleNow          SettleLater
//	Unpaid   UnpaidSettleNow    UnpaidSettleLater
//	Paid       PaidSettleNow      PaidSettleLater
//
// Partner and pickup concerns do not alter the selection; they modify the
// chosen handler's plan (partner steps run in addition, pickup zeroes
// shipping steps).
type StrategySelector struct{}

// NewStrategySelector creates a new StrategySelector instance.
func NewStrategySelector() StrategySelector {
	return StrategySelector{}
}

// Select returns the strategy for the given paid state and timing.
// Fails fast with ErrInvalidStrategyKey on out-of-range enum values.
func (StrategySelector) Select(paidState PaidState, timing Timing) (Strategy, error) {
	if paidState < Unpaid || paidState > Paid || timing < SettleNow || timing > SettleLater {
		return StrategyUnknown, fmt.Errorf("%w: (%d, %d)", ErrInvalidStrategyKey, paidState, timing)
	}
	return strategyTable[paidState][timing], nil
}

// SelectForOrder classifies the order's payment position and returns the
// strategy for it under the given timing choice.
func (s StrategySelector) SelectForOrder(o *order.Order, timing Timing) (Strategy, error) {
	if err := o.Validate(); err != nil {
		return StrategyUnknown, err
	}
	return s.Select(PaidStateOf(o), timing)
}
