package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// TransitionOrderCommandHandler handles plain fulfillment state changes.
// The state update is compare-and-swap on the loaded state, so two
// operators racing on the same order cannot both win.
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

// NewTransitionOrderCommandHandler creates a handler for state transitions.
func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the transition command. The notification fires only
// after the transaction commits.
func (h *TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	from := aggregate.State()
	if err = aggregate.TransitionTo(cmd.Target()); err != nil {
		return err
	}

	if err = orderRepo.UpdateStateFrom(ctx, aggregate, from); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.NotifyOrderTransitioned(ctx, aggregate.ID(), from, aggregate.State())
	return nil
}
