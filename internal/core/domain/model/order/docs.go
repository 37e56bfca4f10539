// Package order contains the Order aggregate and its fulfillment state machine.
//
// The Order is the root aggregate of the fulfillment domain. It tracks the
// pipeline state of a retail delivery order (Received through Completed),
// the payment position (grand total and outstanding amount), the pickup
// classification, and the set of idempotency markers proving which
// settlement artifacts already exist for the order.
//
// Orders are created externally (at checkout); this core reads and writes
// their payment and state fields, transitions them through the pipeline,
// and never deletes them. Cancellation is a terminal transition.
package order
