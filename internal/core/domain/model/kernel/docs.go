// Package kernel contains shared value objects used across the domain model.
//
// The kernel provides the building blocks that every aggregate relies on:
//   - UUID: validated unique identifiers for entities and aggregates
//   - Money: non-negative decimal amounts for ledger math
//   - ConstructorGuard: protection against bypassing constructors
//
// All kernel types are immutable value objects that maintain their invariants
// through factory functions and validation methods.
package kernel
