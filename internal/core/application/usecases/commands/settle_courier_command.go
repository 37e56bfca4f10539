package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
)

var ErrSettleCourierCommandIsNotConstructed = errors.New(
	"SettleCourierCommand must be created via NewSettleCourierCommand constructor",
)

// SettleCourierCommand represents a request to settle every unsettled
// transaction of one courier in a single consolidated run.
type SettleCourierCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewSettleCourierCommand creates a command to settle a courier's balance.
func NewSettleCourierCommand(courierID kernel.UUID) (SettleCourierCommand, error) {
	if err := courierID.Validate(); err != nil {
		return SettleCourierCommand{}, err
	}

	return SettleCourierCommand{
		courierID: courierID,
		guard:     kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SettleCourierCommand) Validate() error {
	return c.guard.Validate(ErrSettleCourierCommandIsNotConstructed)
}

// CourierID returns the courier to settle.
func (c SettleCourierCommand) CourierID() kernel.UUID { return c.courierID }
