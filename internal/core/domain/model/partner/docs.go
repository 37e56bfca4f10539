// Package partner contains the marketplace partner transaction aggregate.
//
// A partner transaction records the fee owed on an order that originated
// from a third-party marketplace or booking channel. Exactly one exists per
// partner order; the idempotency token is derived deterministically from the
// order identifier so retried dispatches can never create a second one.
package partner
