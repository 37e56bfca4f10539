package partner

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrTransactionIsNotConstructed is returned when a Transaction instance was
// not created through the NewTransaction or RestoreTransaction factory methods.
var ErrTransactionIsNotConstructed = errors.New("Transaction must be created via NewTransaction or RestoreTransaction")

// PaymentMode describes how the partner order's funds move.
type PaymentMode int

const (
	// ModeUnknown represents an invalid or undefined payment mode.
	ModeUnknown PaymentMode = iota

	// ModeCash means the courier collected cash and handed it to the branch
	// at dispatch; a cash payment record accompanies the transaction.
	ModeCash

	// ModeOnline means the partner collected payment online and will remit
	// it; no cash record is created at dispatch.
	ModeOnline
)

// String returns the human-readable name of the payment mode.
func (m PaymentMode) String() string {
	switch m {
	case ModeCash:
		return "Cash"
	case ModeOnline:
		return "Online"
	default:
		return "Unknown"
	}
}

// Validate checks if the PaymentMode value is valid.
func (m PaymentMode) Validate() error {
	if m != ModeCash && m != ModeOnline {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment mode is invalid",
			fmt.Errorf("%d is not a valid partner payment mode", m),
		)
	}
	return nil
}

// TokenForOrder derives the deterministic idempotency token for an order's
// partner transaction. The same order always yields the same token, which
// the repository's uniqueness constraint turns into an exactly-once guarantee.
func TokenForOrder(orderID kernel.UUID) string {
	return fmt.Sprintf("SPTRN::%s", orderID)
}

// Transaction records the fee owed on a marketplace partner order.
//
// Invariants:
//   - Exactly one per order with a partner reference, created at dispatch.
//   - The idempotency token is TokenForOrder(orderID) and unique in storage.
type Transaction struct {
	id               kernel.UUID
	orderID          kernel.UUID
	partnerID        kernel.UUID
	fee              kernel.Money
	paymentMode      PaymentMode
	idempotencyToken string

	isConstructed bool
}

// NewTransaction creates a partner transaction for an order at dispatch.
// The idempotency token is derived from the order identifier.
func NewTransaction(
	id kernel.UUID,
	orderID kernel.UUID,
	partnerID kernel.UUID,
	fee kernel.Money,
	paymentMode PaymentMode,
) (*Transaction, error) {
	tx := &Transaction{
		fee:           fee,
		isConstructed: true,
	}

	if err := errors.Join(
		tx.setID(id),
		tx.setOrderID(orderID),
		tx.setPartnerID(partnerID),
		tx.setPaymentMode(paymentMode),
	); err != nil {
		return nil, err
	}

	tx.idempotencyToken = TokenForOrder(tx.orderID)
	return tx, nil
}

// RestoreTransaction reconstructs a partner transaction from persistence.
func RestoreTransaction(
	id kernel.UUID,
	orderID kernel.UUID,
	partnerID kernel.UUID,
	fee kernel.Money,
	paymentMode PaymentMode,
) (*Transaction, error) {
	return NewTransaction(id, orderID, partnerID, fee, paymentMode)
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

// PartnerID returns the marketplace partner owed the fee.
func (t *Transaction) PartnerID() kernel.UUID {
	return t.partnerID
}

// Fee returns the partner fee including tax.
func (t *Transaction) Fee() kernel.Money {
	return t.fee
}

// PaymentMode returns how the order's funds move.
func (t *Transaction) PaymentMode() PaymentMode {
	return t.paymentMode
}

// IdempotencyToken returns the deterministic token proving this transaction
// exists for its order.
func (t *Transaction) IdempotencyToken() string {
	return t.idempotencyToken
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

func (t *Transaction) setPartnerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.partnerID = id
	return nil
}

func (t *Transaction) setPaymentMode(mode PaymentMode) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	t.paymentMode = mode
	return nil
}
