package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// ErrUnknownState is returned when a state name received from a caller does
// not match any canonical fulfillment state. The request is rejected before
// any side effect runs.
var ErrUnknownState = errs.NewValueIsInvalidError("state is not a known fulfillment state")

// State represents the lifecycle position of an order in the fulfillment
// pipeline. It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Received ──> Processing ──> Preparing ──> Dispatched ──> Completed
//	     │            │             │              │
//	     └────────────┴─────────────┴──────────────┴──> Cancelled
//
// The pipeline is linear. The only structural rules enforced are that the
// target state must differ from the current state and that Completed and
// Cancelled are terminal. Entry into Dispatched triggers settlement side
// effects; those are sequenced by the application layer, not here.
//
// State is a value object that validates transitions and provides string
// representations for persistence and display.
type State int

const (
	// Unknown represents an invalid or undefined state.
	// This value (0) helps catch uninitialized State values.
	Unknown State = iota

	// Received is the initial state when an order enters the pipeline.
	Received

	// Processing indicates the order has been acknowledged and is being worked.
	Processing

	// Preparing indicates the order is being packed for dispatch.
	Preparing

	// Dispatched indicates the order has been handed to a courier.
	// Settlement artifacts are created on entry into this state.
	Dispatched

	// Completed indicates the order has been delivered. Terminal.
	Completed

	// Cancelled indicates the order was abandoned before completion. Terminal.
	// Cancelled orders are excluded from all settlement.
	Cancelled
)

// getStateStrings returns a map of State values to their string representations.
func getStateStrings() map[State]string {
	return map[State]string{
		Unknown:    "Unknown",
		Received:   "Received",
		Processing: "Processing",
		Preparing:  "Preparing",
		Dispatched: "Dispatched",
		Completed:  "Completed",
		Cancelled:  "Cancelled",
	}
}

// getValidStateStrings returns a map of only valid State values.
func getValidStateStrings() map[State]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[State]string{
		Received:   "Received",
		Processing: "Processing",
		Preparing:  "Preparing",
		Dispatched: "Dispatched",
		Completed:  "Completed",
		Cancelled:  "Cancelled",
	}
}

// StateFromString resolves a caller-supplied state name to a State.
// Matching is case-insensitive. Returns ErrUnknownState when the name does
// not match any canonical state; the caller must reject the request without
// side effects.
func StateFromString(name string) (State, error) {
	for state, str := range getValidStateStrings() {
		if strings.EqualFold(str, name) {
			return state, nil
		}
	}
	return Unknown, ErrUnknownState
}

// Validate checks if the State value is valid.
// Unknown (0) and any other out-of-range values are invalid.
func (s State) Validate() error {
	if _, ok := getValidStateStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("state is invalid", fmt.Errorf("%d is not a valid state", s))
	}
	return nil
}

// String returns the human-readable name of the state.
// Implements fmt.Stringer and is safe on any State value.
func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the state allows no further transitions.
func (s State) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// TransitionTo validates a transition from the receiver to target.
//
// Rules:
//   - target must be a valid state
//   - target must differ from the current state
//   - the current state must not be terminal
//
// Returns the target state on success, or an error describing the violated
// rule. The state machine deliberately does not forbid skipping ahead or
// moving backward between non-terminal states; operators reorder the board
// freely and only the Dispatched entry carries side effects.
func (s State) TransitionTo(target State) (State, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}

	if target == s {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"state is invalid",
			fmt.Errorf("order is already in state %s", s),
		)
	}

	if s.IsTerminal() {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"state is invalid",
			fmt.Errorf("%s is terminal and cannot transition to %s", s, target),
		)
	}

	return target, nil
}
