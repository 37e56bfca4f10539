package http

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Error is the JSON error envelope returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrderItem is one order line in a create request.
type NewOrderItem struct {
	ItemCode string          `json:"item_code"`
	Quantity int             `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
}

// NewOrder is the request body for order creation.
type NewOrder struct {
	CustomerID      uuid.UUID       `json:"customer_id"`
	CompanyID       uuid.UUID       `json:"company_id"`
	PartnerID       *uuid.UUID      `json:"partner_id,omitempty"`
	Channel         string          `json:"channel"`
	GrandTotal      decimal.Decimal `json:"grand_total"`
	Outstanding     decimal.Decimal `json:"outstanding"`
	ShippingExpense decimal.Decimal `json:"shipping_expense"`
	Pickup          *bool           `json:"pickup,omitempty"`
	LegacyPickup    *bool           `json:"legacy_pickup,omitempty"`
	Remarks         string          `json:"remarks,omitempty"`
	Items           []NewOrderItem  `json:"items"`
}

// OrderCreated is the response body for a successful creation.
type OrderCreated struct {
	ID uuid.UUID `json:"id"`
}

// Transition is the request body for a state change. Courier and timing
// are only read when the target state is Dispatched.
type Transition struct {
	State     string     `json:"target_state"`
	CourierID *uuid.UUID `json:"courier_id,omitempty"`
	Timing    string     `json:"timing,omitempty"`
}

// Dispatch is the request body for dispatching an order directly.
type Dispatch struct {
	CourierID *uuid.UUID `json:"courier_id,omitempty"`
	Timing    string     `json:"timing,omitempty"`
}

// Dispatched is the response body for a successful dispatch.
type Dispatched struct {
	Strategy     string          `json:"strategy"`
	NetToCollect decimal.Decimal `json:"net_to_collect"`
}

// SettlementRun is the response body for a courier settlement run.
type SettlementRun struct {
	CourierID    uuid.UUID       `json:"courier_id"`
	SettledCount int             `json:"settled_count"`
	Net          decimal.Decimal `json:"net"`
}

// CourierBalance is the response body for a courier balance lookup.
type CourierBalance struct {
	CourierID        uuid.UUID            `json:"courier_id"`
	OrderTotal       decimal.Decimal      `json:"order_total"`
	ShippingTotal    decimal.Decimal      `json:"shipping_total"`
	Net              decimal.Decimal      `json:"net"`
	TransactionCount int                  `json:"transaction_count"`
	Transactions     []CourierBalanceLine `json:"transactions"`
}

// CourierBalanceLine is one unsettled order inside a courier balance.
type CourierBalanceLine struct {
	OrderID uuid.UUID       `json:"order_id"`
	Net     decimal.Decimal `json:"net"`
}

// UnsettledCourier is one row of the open-courier listing.
type UnsettledCourier struct {
	CourierID        uuid.UUID       `json:"courier_id"`
	Net              decimal.Decimal `json:"net"`
	TransactionCount int             `json:"transaction_count"`
}
