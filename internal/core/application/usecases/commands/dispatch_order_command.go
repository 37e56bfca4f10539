package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
)

var (
	ErrDispatchOrderCommandIsNotConstructed = errors.New(
		"DispatchOrderCommand must be created via NewDispatchOrderCommand constructor",
	)

	// ErrCourierIsRequired is returned when a delivery order is dispatched
	// without a courier. Pickup orders have no delivery leg and dispatch
	// without one.
	ErrCourierIsRequired = errors.New("courier is required to dispatch a delivery order")
)

// DispatchOrderCommand represents a request to dispatch an order: the
// transition to Dispatched plus the settlement artifacts the chosen
// strategy requires.
type DispatchOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID *kernel.UUID
	timing    services.Timing

	guard kernel.ConstructorGuard
}

// NewDispatchOrderCommand creates a command to dispatch an order.
// The courier is optional here because pickup orders carry none; the
// handler rejects delivery orders without one.
func NewDispatchOrderCommand(
	orderID kernel.UUID,
	courierID *kernel.UUID,
	timing services.Timing,
) (DispatchOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return DispatchOrderCommand{}, err
	}
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return DispatchOrderCommand{}, err
		}
	}
	if timing != services.SettleNow && timing != services.SettleLater {
		return DispatchOrderCommand{}, services.ErrInvalidStrategyKey
	}

	return DispatchOrderCommand{
		orderID:   orderID,
		courierID: courierID,
		timing:    timing,
		guard:     kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchOrderCommand) Validate() error {
	return c.guard.Validate(ErrDispatchOrderCommandIsNotConstructed)
}

// OrderID returns the order to dispatch.
func (c DispatchOrderCommand) OrderID() kernel.UUID { return c.orderID }

// CourierID returns the delivering courier, nil for pickup orders.
func (c DispatchOrderCommand) CourierID() *kernel.UUID { return c.courierID }

// Timing returns the operator's settlement-timing choice.
func (c DispatchOrderCommand) Timing() services.Timing { return c.timing }
