package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
)

var ErrSettleOrderCommandIsNotConstructed = errors.New(
	"SettleOrderCommand must be created via NewSettleOrderCommand constructor",
)

// SettleOrderCommand represents a request to settle the courier
// transaction of one order on its own, outside a batch run.
type SettleOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewSettleOrderCommand creates a command to settle a single order.
func NewSettleOrderCommand(orderID kernel.UUID) (SettleOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return SettleOrderCommand{}, err
	}

	return SettleOrderCommand{
		orderID: orderID,
		guard:   kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SettleOrderCommand) Validate() error {
	return c.guard.Validate(ErrSettleOrderCommandIsNotConstructed)
}

// OrderID returns the order whose courier transaction settles.
func (c SettleOrderCommand) OrderID() kernel.UUID { return c.orderID }
