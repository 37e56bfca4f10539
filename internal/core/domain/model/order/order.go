package order

import (
	"errors"
	"fmt"
	"sort"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods. This ensures all
	// orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// PaymentChannel describes how the customer pays for the order.
// The channel decides whether a marketplace partner's online payment fee
// applies and which account customer payments route to.
type PaymentChannel int

const (
	// ChannelCash means the customer pays cash on delivery or in store.
	ChannelCash PaymentChannel = iota

	// ChannelOnline means the customer paid through an online processor.
	ChannelOnline
)

// String returns the human-readable name of the payment channel.
func (c PaymentChannel) String() string {
	if c == ChannelOnline {
		return "Online"
	}
	return "Cash"
}

// Order represents a retail delivery order moving through the fulfillment
// pipeline. It is the aggregate root: courier transactions, partner
// transactions, delivery confirmations and ledger entries are all
// order-scoped children created by the settlement orchestrator.
//
// Order maintains these invariants:
//   - Must have valid identifiers for itself, its customer and its company
//   - Outstanding amount never exceeds the grand total
//   - Pickup orders carry zero shipping expense
//   - State transitions follow the fulfillment state machine
//   - Idempotency markers are append-only
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID
	companyID  kernel.UUID

	// partnerID references the marketplace partner the order originated
	// from. Nil for direct orders.
	partnerID *kernel.UUID

	channel     PaymentChannel
	grandTotal  kernel.Money
	outstanding kernel.Money

	// shippingExpense is the courier fee owed for the delivery leg.
	// Zero for pickup orders.
	shippingExpense kernel.Money

	pickup bool
	state  State
	items  []LineItem

	// markers records which settlement artifacts already exist for this
	// order. Opaque strings, checked and written by the orchestrator.
	markers map[string]struct{}

	isConstructed bool
}

// NewOrder creates a new Order entering the pipeline in Received state.
//
// Pickup classification happens here, once: the raw signals are normalized
// into a single flag, and a pickup order's shipping expense is forced to
// zero before any settlement math can observe it.
//
// Parameters:
//   - id, customerID, companyID: aggregate identity (must be valid UUIDs)
//   - partnerID: marketplace partner reference, nil for direct orders
//   - channel: how the customer pays
//   - grandTotal: order total including delivery income
//   - outstanding: unpaid remainder; zero means paid in full
//   - shippingExpense: courier fee for the delivery leg
//   - pickupSignals: raw pickup indicators, normalized once here
//   - items: order lines copied onto the delivery confirmation at dispatch
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	companyID kernel.UUID,
	partnerID *kernel.UUID,
	channel PaymentChannel,
	grandTotal kernel.Money,
	outstanding kernel.Money,
	shippingExpense kernel.Money,
	pickupSignals PickupSignals,
	items []LineItem,
) (*Order, error) {
	o := &Order{
		state:         Received,
		channel:       channel,
		markers:       make(map[string]struct{}),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setCompanyID(companyID),
		o.setPartnerID(partnerID),
		o.setAmounts(grandTotal, outstanding),
	); err != nil {
		return nil, err
	}

	o.pickup = ClassifyPickup(pickupSignals)
	if o.pickup {
		o.shippingExpense = kernel.ZeroMoney()
	} else {
		o.shippingExpense = shippingExpense
	}
	o.items = append([]LineItem(nil), items...)

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence without re-running
// pickup classification; the stored pickup flag is already normalized.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	companyID kernel.UUID,
	partnerID *kernel.UUID,
	channel PaymentChannel,
	grandTotal kernel.Money,
	outstanding kernel.Money,
	shippingExpense kernel.Money,
	pickup bool,
	state State,
	markers []string,
	items []LineItem,
) (*Order, error) {
	if err := state.Validate(); err != nil {
		return nil, err
	}

	o := &Order{
		state:         state,
		channel:       channel,
		pickup:        pickup,
		markers:       make(map[string]struct{}, len(markers)),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setCompanyID(companyID),
		o.setPartnerID(partnerID),
		o.setAmounts(grandTotal, outstanding),
	); err != nil {
		return nil, err
	}

	if pickup {
		o.shippingExpense = kernel.ZeroMoney()
	} else {
		o.shippingExpense = shippingExpense
	}
	for _, m := range markers {
		o.markers[m] = struct{}{}
	}
	o.items = append([]LineItem(nil), items...)

	return o, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method. This prevents bypassing validation by directly
// instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the customer the order belongs to.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// CompanyID returns the company the order is booked under.
// Account resolution is scoped by this identifier.
func (o *Order) CompanyID() kernel.UUID {
	return o.companyID
}

// PartnerID returns the marketplace partner reference.
// Returns nil for direct orders.
func (o *Order) PartnerID() *kernel.UUID {
	return o.partnerID
}

// HasPartner reports whether the order originated from a marketplace partner.
func (o *Order) HasPartner() bool {
	return o.partnerID != nil
}

// Channel returns the order's payment channel.
func (o *Order) Channel() PaymentChannel {
	return o.channel
}

// GrandTotal returns the order total.
func (o *Order) GrandTotal() kernel.Money {
	return o.grandTotal
}

// Outstanding returns the unpaid remainder. Zero means paid in full.
func (o *Order) Outstanding() kernel.Money {
	return o.outstanding
}

// IsPaid reports whether the order is paid in full.
func (o *Order) IsPaid() bool {
	return o.outstanding.IsZero()
}

// ShippingExpense returns the courier fee for the delivery leg.
// Always zero for pickup orders.
func (o *Order) ShippingExpense() kernel.Money {
	return o.shippingExpense
}

// IsPickup reports whether this is a pickup order with no delivery leg.
func (o *Order) IsPickup() bool {
	return o.pickup
}

// State returns the current fulfillment state.
func (o *Order) State() State {
	return o.state
}

// Items returns a copy of the order lines.
func (o *Order) Items() []LineItem {
	return append([]LineItem(nil), o.items...)
}

// NetToCollect returns grand total minus shipping expense: the amount the
// courier hands to the branch after keeping their fee. May be negative when
// the shipping fee exceeds the order total.
func (o *Order) NetToCollect() decimal.Decimal {
	return o.grandTotal.Amount().Sub(o.shippingExpense.Amount())
}

// MarkPaid clears the outstanding amount after a customer payment record
// has been created for the full remainder.
func (o *Order) MarkPaid() {
	o.outstanding = kernel.ZeroMoney()
}

// TransitionTo moves the order to the target fulfillment state.
// Returns an error if the transition violates the state machine; the
// order's state is unchanged on failure.
func (o *Order) TransitionTo(target State) error {
	newState, err := o.state.TransitionTo(target)
	if err != nil {
		return err
	}

	o.state = newState
	return nil
}

// HasMarker reports whether the named settlement artifact already exists
// for this order.
func (o *Order) HasMarker(marker string) bool {
	_, ok := o.markers[marker]
	return ok
}

// AddMarker records that the named settlement artifact now exists.
// Markers are append-only; adding an existing marker is a no-op.
func (o *Order) AddMarker(marker string) error {
	if marker == "" {
		return errs.NewValueIsRequiredError("marker")
	}
	o.markers[marker] = struct{}{}
	return nil
}

// Markers returns the idempotency markers in sorted order for persistence.
func (o *Order) Markers() []string {
	out := make([]string, 0, len(o.markers))
	for m := range o.markers {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.customerID = id
	return nil
}

func (o *Order) setCompanyID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.companyID = id
	return nil
}

func (o *Order) setPartnerID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	o.partnerID = id
	return nil
}

func (o *Order) setAmounts(grandTotal, outstanding kernel.Money) error {
	if outstanding.Amount().GreaterThan(grandTotal.Amount()) {
		return errs.NewValueIsInvalidErrorWithCause(
			"outstanding is invalid",
			fmt.Errorf("outstanding %s exceeds grand total %s", outstanding, grandTotal),
		)
	}
	o.grandTotal = grandTotal
	o.outstanding = outstanding
	return nil
}
