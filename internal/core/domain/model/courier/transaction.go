package courier

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrTransactionIsNotConstructed is returned when a Transaction instance was
	// not created through the NewTransaction or RestoreTransaction factory methods.
	ErrTransactionIsNotConstructed = errors.New("Transaction must be created via NewTransaction or RestoreTransaction")

	// ErrAlreadySettled is returned when a caller explicitly demands settlement
	// of a transaction that is already Settled. Informational: nothing was
	// double-counted and nothing needs retrying.
	ErrAlreadySettled = errors.New("courier transaction is already settled")
)

// Status represents the settlement position of a courier transaction.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Unsettled means the amounts are still outstanding between the branch
	// and the courier. Unsettled rows contribute to the courier's balance.
	Unsettled

	// Settled means the amounts have been cleared by a settlement entry.
	// Terminal; amounts are never edited after settlement.
	Settled
)

// String returns the human-readable name of the status.
func (s Status) String() string {
	switch s {
	case Unsettled:
		return "Unsettled"
	case Settled:
		return "Settled"
	default:
		return "Unknown"
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if s != Unsettled && s != Settled {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid courier transaction status", s),
		)
	}
	return nil
}

// Transaction is the per-order ledger row between the branch and a courier.
//
// Invariants:
//   - At most one non-cancelled transaction exists per (order, courier) pair;
//     the repository enforces this with a uniqueness constraint.
//   - orderAmount is what the courier collected (or will collect) from the
//     customer; shippingAmount is the courier's fee.
//   - Settlement flips status Unsettled -> Settled exactly once and never
//     mutates amounts.
type Transaction struct {
	id             kernel.UUID
	orderID        kernel.UUID
	courierID      kernel.UUID
	companyID      kernel.UUID
	orderAmount    kernel.Money
	shippingAmount kernel.Money
	status         Status

	isConstructed bool
}

// NewTransaction creates a courier transaction for an order at dispatch.
//
// Orders dispatched under "settle now" record a Settled row (cash moved
// immediately); orders under "settle later" or collect-on-delivery record an
// Unsettled row carrying both amounts until a settlement run clears it.
func NewTransaction(
	id kernel.UUID,
	orderID kernel.UUID,
	courierID kernel.UUID,
	companyID kernel.UUID,
	orderAmount kernel.Money,
	shippingAmount kernel.Money,
	status Status,
) (*Transaction, error) {
	tx := &Transaction{
		orderAmount:    orderAmount,
		shippingAmount: shippingAmount,
		isConstructed:  true,
	}

	if err := errors.Join(
		tx.setID(id),
		tx.setOrderID(orderID),
		tx.setCourierID(courierID),
		tx.setCompanyID(companyID),
		tx.setStatus(status),
	); err != nil {
		return nil, err
	}

	return tx, nil
}

// RestoreTransaction reconstructs a courier transaction from persistence.
func RestoreTransaction(
	id kernel.UUID,
	orderID kernel.UUID,
	courierID kernel.UUID,
	companyID kernel.UUID,
	orderAmount kernel.Money,
	shippingAmount kernel.Money,
	status Status,
) (*Transaction, error) {
	return NewTransaction(id, orderID, courierID, companyID, orderAmount, shippingAmount, status)
}

// Validate ensures the Transaction was properly constructed through a factory method.
func (t *Transaction) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTransactionIsNotConstructed
	}
	return nil
}

// ID returns the transaction's unique identifier.
func (t *Transaction) ID() kernel.UUID {
	return t.id
}

// OrderID returns the order this transaction belongs to.
func (t *Transaction) OrderID() kernel.UUID {
	return t.orderID
}

// CourierID returns the courier this transaction belongs to.
func (t *Transaction) CourierID() kernel.UUID {
	return t.courierID
}

// CompanyID returns the company the settlement entry posts against.
func (t *Transaction) CompanyID() kernel.UUID {
	return t.companyID
}

// OrderAmount returns the amount the courier collects from the customer.
func (t *Transaction) OrderAmount() kernel.Money {
	return t.orderAmount
}

// ShippingAmount returns the courier's delivery fee.
func (t *Transaction) ShippingAmount() kernel.Money {
	return t.shippingAmount
}

// Status returns the settlement position of the transaction.
func (t *Transaction) Status() Status {
	return t.status
}

// IsSettled reports whether the transaction has been cleared.
func (t *Transaction) IsSettled() bool {
	return t.status == Settled
}

// NetAmount returns orderAmount minus shippingAmount: positive when the
// courier owes the branch, negative when the branch owes the courier.
func (t *Transaction) NetAmount() decimal.Decimal {
	return t.orderAmount.Amount().Sub(t.shippingAmount.Amount())
}

// Settle flips the transaction to Settled.
// Returns ErrAlreadySettled if it was settled before; amounts are unchanged
// either way.
func (t *Transaction) Settle() error {
	if t.status == Settled {
		return ErrAlreadySettled
	}

	t.status = Settled
	return nil
}

func (t *Transaction) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Transaction) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.orderID = id
	return nil
}

func (t *Transaction) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.courierID = id
	return nil
}

func (t *Transaction) setCompanyID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.companyID = id
	return nil
}

func (t *Transaction) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	t.status = status
	return nil
}
