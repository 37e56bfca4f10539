package ledger

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

var ErrConfirmationIsNotConstructed = errors.New("delivery confirmation is not constructed")

// DeliveryConfirmation is the shipment artifact produced when an order is
// dispatched. At most one exists per order; it is created submitted and
// marked completed when the order leaves the facility.
type DeliveryConfirmation struct {
	id        kernel.UUID
	orderID   kernel.UUID
	courierID *kernel.UUID
	pickup    bool
	items     []order.LineItem
	completed bool

	isConstructed bool
}

// NewDeliveryConfirmation creates a confirmation for a dispatched order.
// Pickup orders carry no courier.
func NewDeliveryConfirmation(
	id kernel.UUID,
	orderID kernel.UUID,
	courierID *kernel.UUID,
	pickup bool,
	items []order.LineItem,
) (*DeliveryConfirmation, error) {
	if err := errors.Join(id.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
	}

	return &DeliveryConfirmation{
		id:            id,
		orderID:       orderID,
		courierID:     copyOptionalID(courierID),
		pickup:        pickup,
		items:         append([]order.LineItem(nil), items...),
		isConstructed: true,
	}, nil
}

// RestoreDeliveryConfirmation reconstructs a confirmation from persistence.
func RestoreDeliveryConfirmation(
	id kernel.UUID,
	orderID kernel.UUID,
	courierID *kernel.UUID,
	pickup bool,
	items []order.LineItem,
	completed bool,
) (*DeliveryConfirmation, error) {
	d, err := NewDeliveryConfirmation(id, orderID, courierID, pickup, items)
	if err != nil {
		return nil, err
	}
	d.completed = completed
	return d, nil
}

func (d *DeliveryConfirmation) ID() kernel.UUID         { return d.id }
func (d *DeliveryConfirmation) OrderID() kernel.UUID    { return d.orderID }
func (d *DeliveryConfirmation) CourierID() *kernel.UUID { return copyOptionalID(d.courierID) }
func (d *DeliveryConfirmation) IsPickup() bool          { return d.pickup }
func (d *DeliveryConfirmation) IsCompleted() bool       { return d.completed }

func (d *DeliveryConfirmation) Items() []order.LineItem {
	return append([]order.LineItem(nil), d.items...)
}

// MarkCompleted records that the shipment left the facility. Completing
// twice is a no-op.
func (d *DeliveryConfirmation) MarkCompleted() {
	d.completed = true
}

func (d *DeliveryConfirmation) Validate() error {
	if d == nil || !d.isConstructed {
		return fmt.Errorf("%w: use NewDeliveryConfirmation or RestoreDeliveryConfirmation",
			ErrConfirmationIsNotConstructed)
	}
	return nil
}
