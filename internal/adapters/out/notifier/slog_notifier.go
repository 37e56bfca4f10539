// Package notifier publishes fulfillment events. The current
// implementation writes structured log records consumed by the
// operations dashboard pipeline.
package notifier

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
)

// SlogNotifier implements Notifier on top of a structured logger.
type SlogNotifier struct {
	logger *slog.Logger
}

// NewSlogNotifier creates a new log-backed notifier.
func NewSlogNotifier(logger *slog.Logger) *SlogNotifier {
	return &SlogNotifier{
		logger: logger.With("component", "notifier"),
	}
}

// NotifyOrderTransitioned reports a fulfillment state change.
func (n *SlogNotifier) NotifyOrderTransitioned(ctx context.Context, orderID kernel.UUID, from, to order.State) {
	n.logger.InfoContext(ctx, "Order transitioned",
		"order_id", orderID.String(),
		"from", from.String(),
		"to", to.String(),
	)
}

// NotifyOrderDispatched reports that dispatch artifacts were created.
func (n *SlogNotifier) NotifyOrderDispatched(ctx context.Context, orderID kernel.UUID, strategy services.Strategy) {
	n.logger.InfoContext(ctx, "Order dispatched",
		"order_id", orderID.String(),
		"strategy", strategy.String(),
	)
}

// NotifyCourierSettled reports a settlement run.
func (n *SlogNotifier) NotifyCourierSettled(ctx context.Context, courierID kernel.UUID, net decimal.Decimal, settledCount int) {
	n.logger.InfoContext(ctx, "Courier settled",
		"courier_id", courierID.String(),
		"net", net.String(),
		"settled_count", settledCount,
	)
}
