package ledger

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// EntryKind distinguishes the financial artifact an Entry represents.
type EntryKind int

const (
	KindUnknown EntryKind = iota
	// KindPayment records money received from the customer.
	KindPayment
	// KindJournal moves value between internal accounts.
	KindJournal
)

func (k EntryKind) String() string {
	switch k {
	case KindPayment:
		return "payment"
	case KindJournal:
		return "journal"
	default:
		return "unknown"
	}
}

func (k EntryKind) Validate() error {
	if k != KindPayment && k != KindJournal {
		return errs.NewValueIsInvalidError("kind")
	}
	return nil
}

var ErrEntryIsNotConstructed = errors.New("entry is not constructed")

// Entry is a double-sided ledger record. Every entry carries a unique
// idempotency key so re-running the flow that produced it finds the
// existing row instead of writing a second one.
type Entry struct {
	id              kernel.UUID
	idempotencyKey  string
	kind            EntryKind
	companyID       kernel.UUID
	orderID         *kernel.UUID
	debitAccountID  kernel.UUID
	creditAccountID kernel.UUID
	amount          kernel.Money
	remarks         string

	isConstructed bool
}

// NewEntry creates a ledger entry. The amount must be positive: flows
// that would produce a zero entry skip the write instead.
func NewEntry(
	id kernel.UUID,
	idempotencyKey string,
	kind EntryKind,
	companyID kernel.UUID,
	orderID *kernel.UUID,
	debitAccountID kernel.UUID,
	creditAccountID kernel.UUID,
	amount kernel.Money,
	remarks string,
) (*Entry, error) {
	e := &Entry{isConstructed: true}

	if err := errors.Join(
		e.setID(id),
		e.setIdempotencyKey(idempotencyKey),
		e.setKind(kind),
		e.setCompanyID(companyID),
		e.setAccounts(debitAccountID, creditAccountID),
		e.setAmount(amount),
	); err != nil {
		return nil, err
	}

	e.orderID = copyOptionalID(orderID)
	e.remarks = remarks
	return e, nil
}

// RestoreEntry reconstructs an Entry from persistence.
func RestoreEntry(
	id kernel.UUID,
	idempotencyKey string,
	kind EntryKind,
	companyID kernel.UUID,
	orderID *kernel.UUID,
	debitAccountID kernel.UUID,
	creditAccountID kernel.UUID,
	amount kernel.Money,
	remarks string,
) (*Entry, error) {
	return NewEntry(id, idempotencyKey, kind, companyID, orderID,
		debitAccountID, creditAccountID, amount, remarks)
}

func (e *Entry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Entry) setIdempotencyKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errs.NewValueIsRequiredError("idempotencyKey")
	}
	e.idempotencyKey = key
	return nil
}

func (e *Entry) setKind(kind EntryKind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	e.kind = kind
	return nil
}

func (e *Entry) setCompanyID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.companyID = id
	return nil
}

func (e *Entry) setAccounts(debit, credit kernel.UUID) error {
	if err := errors.Join(debit.Validate(), credit.Validate()); err != nil {
		return err
	}
	if debit.IsEqual(credit) {
		return errs.NewValueIsInvalidError("creditAccountID")
	}
	e.debitAccountID = debit
	e.creditAccountID = credit
	return nil
}

func (e *Entry) setAmount(amount kernel.Money) error {
	if !amount.IsPositive() {
		return errs.NewValueIsOutOfRangeError("amount", amount.String(), 0, nil)
	}
	e.amount = amount
	return nil
}

func (e *Entry) ID() kernel.UUID              { return e.id }
func (e *Entry) IdempotencyKey() string       { return e.idempotencyKey }
func (e *Entry) Kind() EntryKind              { return e.kind }
func (e *Entry) CompanyID() kernel.UUID       { return e.companyID }
func (e *Entry) OrderID() *kernel.UUID        { return copyOptionalID(e.orderID) }
func (e *Entry) DebitAccountID() kernel.UUID  { return e.debitAccountID }
func (e *Entry) CreditAccountID() kernel.UUID { return e.creditAccountID }
func (e *Entry) Amount() kernel.Money         { return e.amount }
func (e *Entry) Remarks() string              { return e.remarks }

func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return fmt.Errorf("%w: use NewEntry or RestoreEntry", ErrEntryIsNotConstructed)
	}
	return nil
}

func copyOptionalID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
