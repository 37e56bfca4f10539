package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateFromString(t *testing.T) {
	t.Run("valid names resolve case-insensitively", func(t *testing.T) {
		tests := map[string]order.State{
			"Received":   order.Received,
			"processing": order.Processing,
			"PREPARING":  order.Preparing,
			"dispatched": order.Dispatched,
			"Completed":  order.Completed,
			"cancelled":  order.Cancelled,
		}
		for name, want := range tests {
			got, err := order.StateFromString(name)
			require.NoError(t, err, name)
			assert.Equal(t, want, got, name)
		}
	})

	t.Run("unknown name is rejected", func(t *testing.T) {
		_, err := order.StateFromString("Out For Lunch")
		require.ErrorIs(t, err, order.ErrUnknownState)
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		_, err := order.StateFromString("")
		require.ErrorIs(t, err, order.ErrUnknownState)
	})
}

func TestStateValidate(t *testing.T) {
	t.Run("valid states", func(t *testing.T) {
		for _, s := range []order.State{
			order.Received, order.Processing, order.Preparing,
			order.Dispatched, order.Completed, order.Cancelled,
		} {
			require.NoError(t, s.Validate(), s.String())
		}
	})

	t.Run("unknown is invalid", func(t *testing.T) {
		require.Error(t, order.Unknown.Validate())
		require.Error(t, order.State(42).Validate())
	})
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Dispatched", order.Dispatched.String())
	assert.Equal(t, "Unknown", order.Unknown.String())
	assert.Equal(t, "Unknown", order.State(42).String())
}

func TestStateTransitionTo(t *testing.T) {
	t.Run("linear forward transitions", func(t *testing.T) {
		steps := []order.State{order.Processing, order.Preparing, order.Dispatched, order.Completed}
		current := order.Received
		for _, target := range steps {
			next, err := current.TransitionTo(target)
			require.NoError(t, err)
			current = next
		}
		assert.Equal(t, order.Completed, current)
	})

	t.Run("same state is rejected", func(t *testing.T) {
		_, err := order.Preparing.TransitionTo(order.Preparing)
		require.Error(t, err)
	})

	t.Run("terminal states reject transitions", func(t *testing.T) {
		_, err := order.Completed.TransitionTo(order.Received)
		require.Error(t, err)

		_, err = order.Cancelled.TransitionTo(order.Dispatched)
		require.Error(t, err)
	})

	t.Run("invalid target is rejected", func(t *testing.T) {
		_, err := order.Received.TransitionTo(order.Unknown)
		require.Error(t, err)
	})

	t.Run("cancel from any non-terminal state", func(t *testing.T) {
		for _, s := range []order.State{order.Received, order.Processing, order.Preparing, order.Dispatched} {
			next, err := s.TransitionTo(order.Cancelled)
			require.NoError(t, err, s.String())
			assert.Equal(t, order.Cancelled, next)
		}
	})
}

func TestStateIsTerminal(t *testing.T) {
	assert.True(t, order.Completed.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.Dispatched.IsTerminal())
	assert.False(t, order.Received.IsTerminal())
}
