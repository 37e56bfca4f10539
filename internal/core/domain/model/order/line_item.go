package order

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// LineItem is a minimal order line copied onto the delivery confirmation at
// dispatch. The catalog and its pricing math live outside this core; only
// the identity, quantity and settled amount of each line are needed here.
type LineItem struct {
	itemCode string
	quantity int
	amount   kernel.Money
}

// NewLineItem creates a validated order line.
// The item code must be non-empty and the quantity positive.
func NewLineItem(itemCode string, quantity int, amount kernel.Money) (LineItem, error) {
	if itemCode == "" {
		return LineItem{}, errs.NewValueIsRequiredError("itemCode")
	}
	if quantity <= 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	return LineItem{
		itemCode: itemCode,
		quantity: quantity,
		amount:   amount,
	}, nil
}

// ItemCode returns the catalog identity of the line.
func (li LineItem) ItemCode() string {
	return li.itemCode
}

// Quantity returns the ordered quantity.
func (li LineItem) Quantity() int {
	return li.quantity
}

// Amount returns the settled amount of the line.
func (li LineItem) Amount() kernel.Money {
	return li.amount
}
