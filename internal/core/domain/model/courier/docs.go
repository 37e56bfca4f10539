// Package courier contains the courier transaction aggregate.
//
// A courier transaction is the ledger row tracking what a courier owes the
// branch (order amounts collected on delivery) and what the branch owes the
// courier (shipping fees) for a single order. Unsettled rows accumulate into
// the courier's balance; settlement flips them to Settled exactly once and
// never edits amounts afterwards.
package courier
