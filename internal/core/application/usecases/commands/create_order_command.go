package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to register a new retail order
// entering the fulfillment pipeline. Pickup signals are carried raw; the
// order aggregate normalizes them exactly once at construction.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	customerID      kernel.UUID
	companyID       kernel.UUID
	partnerID       *kernel.UUID
	channel         order.PaymentChannel
	grandTotal      kernel.Money
	outstanding     kernel.Money
	shippingExpense kernel.Money
	pickupSignals   order.PickupSignals
	items           []order.LineItem

	guard kernel.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Identifier validity is checked here; amount and pickup invariants are
// enforced by the order aggregate when the handler constructs it.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	companyID kernel.UUID,
	partnerID *kernel.UUID,
	channel order.PaymentChannel,
	grandTotal kernel.Money,
	outstanding kernel.Money,
	shippingExpense kernel.Money,
	pickupSignals order.PickupSignals,
	items []order.LineItem,
) (CreateOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		customerID.Validate(),
		companyID.Validate(),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	if partnerID != nil {
		if err := partnerID.Validate(); err != nil {
			return CreateOrderCommand{}, err
		}
	}

	return CreateOrderCommand{
		orderID:         orderID,
		customerID:      customerID,
		companyID:       companyID,
		partnerID:       partnerID,
		channel:         channel,
		grandTotal:      grandTotal,
		outstanding:     outstanding,
		shippingExpense: shippingExpense,
		pickupSignals:   pickupSignals,
		items:           append([]order.LineItem(nil), items...),
		guard:           kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// CustomerID returns the ordering customer's identifier.
func (c CreateOrderCommand) CustomerID() kernel.UUID { return c.customerID }

// CompanyID returns the company the order is booked under.
func (c CreateOrderCommand) CompanyID() kernel.UUID { return c.companyID }

// PartnerID returns the marketplace partner reference, nil for direct orders.
func (c CreateOrderCommand) PartnerID() *kernel.UUID { return c.partnerID }

// Channel returns the payment channel.
func (c CreateOrderCommand) Channel() order.PaymentChannel { return c.channel }

// GrandTotal returns the order total.
func (c CreateOrderCommand) GrandTotal() kernel.Money { return c.grandTotal }

// Outstanding returns the unpaid remainder.
func (c CreateOrderCommand) Outstanding() kernel.Money { return c.outstanding }

// ShippingExpense returns the courier fee for the delivery leg.
func (c CreateOrderCommand) ShippingExpense() kernel.Money { return c.shippingExpense }

// PickupSignals returns the raw pickup indicators from the source system.
func (c CreateOrderCommand) PickupSignals() order.PickupSignals { return c.pickupSignals }

// Items returns the order lines.
func (c CreateOrderCommand) Items() []order.LineItem {
	return append([]order.LineItem(nil), c.items...)
}
