package order

import "strings"

// pickupMarker is the legacy free-text marker that flags a pickup order
// inside the remarks field. Kept only as a compatibility fallback for orders
// ingested from systems that predate the explicit pickup flag.
const pickupMarker = "[pickup]"

// PickupSignals carries the raw pickup indicators an order arrives with.
// Older upstream systems used different field names across schema versions,
// so an order may carry an explicit flag, a legacy flag, free-text remarks,
// or none of them.
type PickupSignals struct {
	// Explicit is the current pickup boolean field. Nil when absent.
	Explicit *bool

	// Legacy is the previous generation's pickup boolean field. Nil when absent.
	Legacy *bool

	// Remarks is free text that may contain the "[PICKUP]" marker.
	Remarks string
}

// ClassifyPickup normalizes the pickup signals into a single boolean.
//
// Signals are checked in priority order: the explicit flag wins when present,
// then the legacy flag, then a case-insensitive marker scan of the remarks.
// Absence of all signals yields false. Classification runs exactly once, at
// order ingestion; live settlement logic reads only the normalized flag.
func ClassifyPickup(signals PickupSignals) bool {
	if signals.Explicit != nil {
		return *signals.Explicit
	}
	if signals.Legacy != nil {
		return *signals.Legacy
	}
	return strings.Contains(strings.ToLower(signals.Remarks), pickupMarker)
}
