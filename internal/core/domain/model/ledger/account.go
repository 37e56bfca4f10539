package ledger

import "fulfillment/internal/pkg/errs"

// AccountPurpose names the role an account plays in ledger entries.
// Adapters map purposes to concrete chart-of-accounts rows per company.
type AccountPurpose string

const (
	PurposeCash              AccountPurpose = "cash"
	PurposeReceivable        AccountPurpose = "receivable"
	PurposeFreightExpense    AccountPurpose = "freight_expense"
	PurposeCourierPayable    AccountPurpose = "courier_payable"
	PurposePartnerReceivable AccountPurpose = "partner_receivable"
)

func (p AccountPurpose) Validate() error {
	switch p {
	case PurposeCash, PurposeReceivable, PurposeFreightExpense,
		PurposeCourierPayable, PurposePartnerReceivable:
		return nil
	default:
		return errs.NewValueIsInvalidError("accountPurpose")
	}
}

func (p AccountPurpose) String() string {
	return string(p)
}
