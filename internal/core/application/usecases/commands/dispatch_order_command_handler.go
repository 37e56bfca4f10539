package commands

import (
	"context"

	"github.com/shopspring/decimal"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// DispatchOrderCommandHandler dispatches an order: it classifies the
// order into one of the four settlement strategies, creates the
// strategy's artifacts through the orchestrator and moves the order to
// Dispatched, all in one transaction.
//
// Re-dispatching a fully dispatched order fails on the state machine
// before any artifact work runs; a dispatch retried after a partial
// failure re-runs only the steps that did not complete.
type DispatchOrderCommandHandler struct {
	uowFactory   SettlementUoWFactory
	selector     services.StrategySelector
	orchestrator artifactOrchestrator
	notifier     ports.Notifier
}

// NewDispatchOrderCommandHandler creates a handler for order dispatch.
func NewDispatchOrderCommandHandler(
	uowFactory SettlementUoWFactory,
	accounts ports.AccountResolver,
	partnerConfig ports.PartnerConfigProvider,
	notifier ports.Notifier,
) DispatchOrderCommandHandler {
	return DispatchOrderCommandHandler{
		uowFactory:   uowFactory,
		selector:     services.NewStrategySelector(),
		orchestrator: newArtifactOrchestrator(accounts, partnerConfig),
		notifier:     notifier,
	}
}

// DispatchOrderResult reports what a successful dispatch produced: the
// chosen strategy and the amount the courier collects on the doorstep.
type DispatchOrderResult struct {
	Strategy     services.Strategy
	NetToCollect decimal.Decimal
}

// Handle processes the dispatch command.
func (h *DispatchOrderCommandHandler) Handle(
	ctx context.Context,
	cmd DispatchOrderCommand,
) (DispatchOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return DispatchOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DispatchOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return DispatchOrderResult{}, err
	}

	if !services.IsPickup(aggregate) && cmd.CourierID() == nil {
		return DispatchOrderResult{}, ErrCourierIsRequired
	}

	from := aggregate.State()
	if err = aggregate.TransitionTo(order.Dispatched); err != nil {
		return DispatchOrderResult{}, err
	}

	// Classify before any payment step clears the outstanding amount.
	strategy, err := h.selector.SelectForOrder(aggregate, cmd.Timing())
	if err != nil {
		return DispatchOrderResult{}, err
	}

	// Pickups may run courier-less; a courier assigned anyway still gets
	// their transaction, with the shipping fee already normalized to zero.
	if err = h.orchestrator.createArtifacts(ctx, uow, aggregate, cmd.CourierID(), strategy); err != nil {
		return DispatchOrderResult{}, err
	}

	if err = orderRepo.UpdateStateFrom(ctx, aggregate, from); err != nil {
		return DispatchOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return DispatchOrderResult{}, err
	}

	h.notifier.NotifyOrderDispatched(ctx, aggregate.ID(), strategy)
	h.notifier.NotifyOrderTransitioned(ctx, aggregate.ID(), from, aggregate.State())

	return DispatchOrderResult{
		Strategy:     strategy,
		NetToCollect: aggregate.NetToCollect(),
	}, nil
}
