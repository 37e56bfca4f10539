// Package services provides domain services that orchestrate business
// decisions across the fulfillment aggregates. It implements logic that
// doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - StrategySelector: classifies an order into one of the four settlement
//     strategies from its payment state and the operator's timing choice
//   - PartnerFeeCalculator: computes the marketplace partner fee including tax
//   - Pickup classification helpers over the order's normalized flag
//
// Domain services hold no state beyond fixed configuration and perform no
// I/O; side-effect sequencing lives in the application layer.
package services
