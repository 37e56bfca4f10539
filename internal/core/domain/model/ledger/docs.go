// Package ledger models the financial artifacts the dispatch flow
// produces: double-sided ledger entries keyed for idempotent creation,
// the per-order delivery confirmation, and the account purposes entries
// post against.
package ledger
