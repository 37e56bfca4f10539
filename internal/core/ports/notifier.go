package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
)

// Notifier publishes fulfillment events to interested consumers
// (operator dashboards, downstream sync). Notifications are fire and
// forget: they run after commit and must not fail the business flow.
type Notifier interface {
	// NotifyOrderTransitioned reports a fulfillment state change.
	NotifyOrderTransitioned(ctx context.Context, orderID kernel.UUID, from, to order.State)

	// NotifyOrderDispatched reports that dispatch artifacts were created
	// for an order under the given settlement strategy.
	NotifyOrderDispatched(ctx context.Context, orderID kernel.UUID, strategy services.Strategy)

	// NotifyCourierSettled reports a settlement run. The net amount is
	// signed: positive means the courier owes the company.
	NotifyCourierSettled(ctx context.Context, courierID kernel.UUID, net decimal.Decimal, settledCount int)
}
