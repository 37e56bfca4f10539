package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

var (
	ErrTransitionOrderCommandIsNotConstructed = errors.New(
		"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
	)

	// ErrTransitionIsDispatch is returned when the target state is
	// Dispatched: that transition creates settlement artifacts and goes
	// through DispatchOrderCommand instead.
	ErrTransitionIsDispatch = errors.New(
		"transition to Dispatched requires dispatch settlement parameters",
	)
)

// TransitionOrderCommand represents a request to move an order to another
// fulfillment state without creating settlement artifacts.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.State

	guard kernel.ConstructorGuard
}

// NewTransitionOrderCommand creates a command to transition an order.
// The target must be a valid state other than Dispatched.
func NewTransitionOrderCommand(orderID kernel.UUID, target order.State) (TransitionOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return TransitionOrderCommand{}, err
	}
	if err := target.Validate(); err != nil {
		return TransitionOrderCommand{}, err
	}
	if target == order.Dispatched {
		return TransitionOrderCommand{}, ErrTransitionIsDispatch
	}

	return TransitionOrderCommand{
		orderID: orderID,
		target:  target,
		guard:   kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c TransitionOrderCommand) OrderID() kernel.UUID { return c.orderID }

// Target returns the requested fulfillment state.
func (c TransitionOrderCommand) Target() order.State { return c.target }
